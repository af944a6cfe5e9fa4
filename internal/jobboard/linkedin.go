package jobboard

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

const linkedInName = "LinkedIn"

type LinkedInSource struct {
	cfg SourceConfig
}

func NewLinkedInSource(cfg SourceConfig) *LinkedInSource {
	return &LinkedInSource{cfg: cfg}
}

type linkedInResponse struct {
	Elements []linkedInJob `json:"elements"`
}

type linkedInJob struct {
	ID      flexString `json:"id"`
	Title   string     `json:"title"`
	Company struct {
		Name string `json:"name"`
	} `json:"company"`
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Description string `json:"description"`
	Salary      *struct {
		Range flexString `json:"range"`
	} `json:"salary"`
	PostedAt         timestamp `json:"postedAt"`
	EmploymentStatus string    `json:"employmentStatus"`
	Remote           bool      `json:"remote"`
	Requirements     []string  `json:"requirements"`
	ApplyURL         string    `json:"applyUrl"`
}

func (s *LinkedInSource) Name() string { return linkedInName }

func (s *LinkedInSource) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error) {
	log := logger.Get().With().Str("source", linkedInName).Logger()
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("linkedin: %w", ErrMissingCredentials)
	}

	params := url.Values{}
	params.Set("keywords", keywords(query))
	params.Set("location", filters.Country)
	params.Set("remote", strconv.FormatBool(filters.RemoteOnly))
	params.Set("postedTime", "PAST_24_HOURS")
	params.Set("language", "en")

	var resp linkedInResponse
	if err := s.cfg.Client.getJSON(ctx, s.cfg.BaseURL, params, s.cfg.APIKey, &resp); err != nil {
		return nil, fmt.Errorf("linkedin: %w", err)
	}

	jobs := make([]models.Job, 0, len(resp.Elements))
	for _, e := range resp.Elements {
		country := e.Location.Country
		if country == "" {
			country = filters.Country
		}
		var salary string
		if e.Salary != nil {
			salary = string(e.Salary.Range)
		}
		jobs = append(jobs, models.Job{
			ID:           string(e.ID),
			Title:        e.Title,
			Company:      e.Company.Name,
			Location:     e.Location.Name,
			Description:  htmlToText(e.Description),
			Salary:       salary,
			PostedDate:   e.PostedAt.Time,
			ContractType: e.EmploymentStatus,
			IsRemote:     e.Remote,
			Country:      country,
			Requirements: requirementsOrEmpty(e.Requirements),
			Source:       linkedInName,
			ApplyURL:     e.ApplyURL,
		})
	}

	log.Debug().Int("job_count", len(jobs)).Msg("Completed LinkedIn search")
	return jobs, nil
}
