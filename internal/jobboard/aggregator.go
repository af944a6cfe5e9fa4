package jobboard

import (
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"job-aggregator/internal/config"
	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

const DefaultRecencyWindow = 24 * time.Hour

// Aggregator fans a search out to every source and merges the results.
type Aggregator struct {
	sources []Source
	window  time.Duration
	now     func() time.Time
}

func NewAggregator(window time.Duration, sources ...Source) *Aggregator {
	if window <= 0 {
		window = DefaultRecencyWindow
	}
	return &Aggregator{
		sources: sources,
		window:  window,
		now:     time.Now,
	}
}

// NewAggregatorFromConfig wires the four job boards. Each board gets its own
// rate limiter.
func NewAggregatorFromConfig(cfg *config.Config) *Aggregator {
	sourceConfig := func(baseURL, apiKey string) SourceConfig {
		return SourceConfig{
			BaseURL:       baseURL,
			APIKey:        apiKey,
			Client:        NewRateLimitedClient(cfg.UpstreamRateLimit, cfg.UpstreamRateBurst, cfg.UpstreamTimeout),
			RecencyWindow: cfg.RecencyWindow,
		}
	}
	return NewAggregator(cfg.RecencyWindow,
		NewLinkedInSource(sourceConfig(cfg.LinkedInURL, cfg.LinkedInAPIKey)),
		NewIndeedSource(sourceConfig(cfg.IndeedURL, cfg.IndeedAPIKey)),
		NewWeWorkRemotelySource(sourceConfig(cfg.WeWorkRemotelyURL, "")),
		NewGoogleJobsSource(sourceConfig(cfg.GoogleJobsURL, cfg.GoogleJobsAPIKey)),
	)
}

// SearchAll queries every source concurrently and waits for all of them.
// A failing source contributes nothing. The result holds only jobs inside
// the recency window that match filters, newest first. The error is non-nil
// only when ctx ended before the merge.
func (a *Aggregator) SearchAll(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error) {
	log := logger.Get()

	results := make([][]models.Job, len(a.sources))
	var g errgroup.Group
	for i, src := range a.sources {
		g.Go(func() error {
			results[i] = a.searchSource(ctx, src, query, filters)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search aborted: %w", err)
	}

	now := a.now()
	jobs := make([]models.Job, 0)
	var received int
	for _, batch := range results {
		received += len(batch)
		for _, job := range batch {
			if withinWindow(job.PostedDate, now, a.window) && filters.Matches(job) {
				jobs = append(jobs, job)
			}
		}
	}

	slices.SortStableFunc(jobs, func(x, y models.Job) int {
		return y.PostedDate.Compare(x.PostedDate)
	})

	log.Info().
		Str("query", query).
		Int("received", received).
		Int("job_count", len(jobs)).
		Msg("Aggregated job search")
	return jobs, nil
}

func (a *Aggregator) searchSource(ctx context.Context, src Source, query string, filters models.SearchFilters) (jobs []models.Job) {
	log := logger.Get().With().Str("source", src.Name()).Logger()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Source panicked")
			jobs = nil
		}
	}()

	jobs, err := src.Search(ctx, query, filters)
	if err != nil {
		log.Error().Err(err).Dur("latency", time.Since(start)).Msg("Source unavailable")
		return nil
	}
	log.Debug().Int("job_count", len(jobs)).Dur("latency", time.Since(start)).Msg("Source responded")
	return jobs
}

// withinWindow reports whether posted is at most window before now.
// Undated jobs never qualify.
func withinWindow(posted, now time.Time, window time.Duration) bool {
	if posted.IsZero() {
		return false
	}
	return now.Sub(posted) <= window
}
