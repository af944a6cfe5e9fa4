package jobboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

const indeedName = "Indeed"

type IndeedSource struct {
	cfg SourceConfig
}

func NewIndeedSource(cfg SourceConfig) *IndeedSource {
	return &IndeedSource{cfg: cfg}
}

type indeedResponse struct {
	Results []indeedJob `json:"results"`
}

type indeedJob struct {
	JobKey            flexString `json:"jobkey"`
	JobTitle          string     `json:"jobtitle"`
	Company           string     `json:"company"`
	FormattedLocation string     `json:"formattedLocation"`
	Snippet           string     `json:"snippet"`
	Salary            flexString `json:"salary"`
	Date              timestamp  `json:"date"`
	JobType           string     `json:"jobtype"`
	Remote            bool       `json:"remote"`
	Requirements      []string   `json:"requirements"`
	URL               string     `json:"url"`
}

func (s *IndeedSource) Name() string { return indeedName }

func (s *IndeedSource) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error) {
	log := logger.Get().With().Str("source", indeedName).Logger()
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("indeed: %w", ErrMissingCredentials)
	}

	params := url.Values{}
	params.Set("query", keywords(query))
	params.Set("location", filters.Country)
	params.Set("remote", strconv.FormatBool(filters.RemoteOnly))
	params.Set("fromage", "1") // days
	params.Set("lang", "en")

	var resp indeedResponse
	if err := s.cfg.Client.getJSON(ctx, s.cfg.BaseURL, params, s.cfg.APIKey, &resp); err != nil {
		return nil, fmt.Errorf("indeed: %w", err)
	}

	jobs := make([]models.Job, 0, len(resp.Results))
	for _, r := range resp.Results {
		jobs = append(jobs, models.Job{
			ID:           string(r.JobKey),
			Title:        r.JobTitle,
			Company:      r.Company,
			Location:     r.FormattedLocation,
			Description:  htmlToText(r.Snippet),
			Salary:       string(r.Salary),
			PostedDate:   r.Date.Time,
			ContractType: r.JobType,
			IsRemote:     r.Remote,
			Country:      filters.Country,
			Requirements: requirementsOrEmpty(r.Requirements),
			Source:       indeedName,
			ApplyURL:     r.URL,
		})
	}

	log.Debug().Int("job_count", len(jobs)).Msg("Completed Indeed search")
	return jobs, nil
}
