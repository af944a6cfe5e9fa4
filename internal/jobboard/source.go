// Package jobboard talks to the external job boards and merges their results.
package jobboard

import (
	"context"
	"errors"
	"time"

	"job-aggregator/internal/models"
)

var (
	ErrUnexpectedStatus   = errors.New("unexpected status code")
	ErrMissingCredentials = errors.New("missing api credentials")
)

// Source is one upstream job board.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error)
}

// SourceConfig is shared by every adapter. APIKey is sent as a bearer token
// when the provider requires one.
type SourceConfig struct {
	BaseURL       string
	APIKey        string
	Client        *RateLimitedClient
	RecencyWindow time.Duration
}

func (c SourceConfig) window() time.Duration {
	if c.RecencyWindow <= 0 {
		return DefaultRecencyWindow
	}
	return c.RecencyWindow
}
