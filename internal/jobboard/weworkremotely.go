package jobboard

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

const weWorkRemotelyName = "WeWorkRemotely"

// WeWorkRemotelySource needs no credentials. Its API has no date filter, so
// results are trimmed to the recency window here.
type WeWorkRemotelySource struct {
	cfg SourceConfig
	now func() time.Time
}

func NewWeWorkRemotelySource(cfg SourceConfig) *WeWorkRemotelySource {
	return &WeWorkRemotelySource{cfg: cfg, now: time.Now}
}

type weWorkRemotelyResponse struct {
	Jobs []weWorkRemotelyJob `json:"jobs"`
}

type weWorkRemotelyJob struct {
	ID           flexString `json:"id"`
	Title        string     `json:"title"`
	CompanyName  string     `json:"company_name"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Salary       flexString `json:"salary"`
	PostedAt     timestamp  `json:"posted_at"`
	ContractType string     `json:"contract_type"`
	Requirements []string   `json:"requirements"`
	URL          string     `json:"url"`
}

func (s *WeWorkRemotelySource) Name() string { return weWorkRemotelyName }

func (s *WeWorkRemotelySource) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error) {
	log := logger.Get().With().Str("source", weWorkRemotelyName).Logger()

	params := url.Values{}
	params.Set("search", keywords(query))
	params.Set("category", "all")
	params.Set("region", filters.Country)

	var resp weWorkRemotelyResponse
	if err := s.cfg.Client.getJSON(ctx, s.cfg.BaseURL, params, "", &resp); err != nil {
		return nil, fmt.Errorf("weworkremotely: %w", err)
	}

	now := s.now()
	jobs := make([]models.Job, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		if !withinWindow(j.PostedAt.Time, now, s.cfg.window()) {
			continue
		}
		jobs = append(jobs, models.Job{
			ID:           string(j.ID),
			Title:        j.Title,
			Company:      j.CompanyName,
			Location:     j.Location,
			Description:  htmlToText(j.Description),
			Salary:       string(j.Salary),
			PostedDate:   j.PostedAt.Time,
			ContractType: j.ContractType,
			IsRemote:     true,
			Country:      filters.Country,
			Requirements: requirementsOrEmpty(j.Requirements),
			Source:       weWorkRemotelyName,
			ApplyURL:     j.URL,
		})
	}

	log.Debug().Int("received", len(resp.Jobs)).Int("job_count", len(jobs)).Msg("Completed WeWorkRemotely search")
	return jobs, nil
}
