package jobboard

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

const googleJobsName = "Google Jobs"

type GoogleJobsSource struct {
	cfg SourceConfig
}

func NewGoogleJobsSource(cfg SourceConfig) *GoogleJobsSource {
	return &GoogleJobsSource{cfg: cfg}
}

type googleJobsResponse struct {
	Jobs []googleJob `json:"jobs"`
}

type googleJob struct {
	ID             flexString `json:"id"`
	Title          string     `json:"title"`
	CompanyName    string     `json:"companyName"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	Salary         flexString `json:"salary"`
	PostedAt       timestamp  `json:"postedAt"`
	EmploymentType string     `json:"employmentType"`
	Remote         bool       `json:"remote"`
	Requirements   []string   `json:"requirements"`
	ApplyURL       string     `json:"applyUrl"`
}

func (s *GoogleJobsSource) Name() string { return googleJobsName }

// googleQuery folds country and remote into the free-text query, which is
// how the provider expects them.
func googleQuery(query string, filters models.SearchFilters) string {
	parts := []string{keywords(query)}
	if filters.Country != "" {
		parts = append(parts, filters.Country)
	}
	if filters.RemoteOnly {
		parts = append(parts, "remote")
	}
	return strings.Join(parts, " ")
}

func (s *GoogleJobsSource) Search(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error) {
	log := logger.Get().With().Str("source", googleJobsName).Logger()
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("google jobs: %w", ErrMissingCredentials)
	}

	params := url.Values{}
	params.Set("query", googleQuery(query, filters))
	params.Set("location", filters.Country)
	params.Set("datePosted", "PAST_24_HOURS")
	params.Set("language", "en")

	var resp googleJobsResponse
	if err := s.cfg.Client.getJSON(ctx, s.cfg.BaseURL, params, s.cfg.APIKey, &resp); err != nil {
		return nil, fmt.Errorf("google jobs: %w", err)
	}

	jobs := make([]models.Job, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		jobs = append(jobs, models.Job{
			ID:           string(j.ID),
			Title:        j.Title,
			Company:      j.CompanyName,
			Location:     j.Location,
			Description:  htmlToText(j.Description),
			Salary:       string(j.Salary),
			PostedDate:   j.PostedAt.Time,
			ContractType: j.EmploymentType,
			IsRemote:     j.Remote,
			Country:      filters.Country,
			Requirements: requirementsOrEmpty(j.Requirements),
			Source:       googleJobsName,
			ApplyURL:     j.ApplyURL,
		})
	}

	log.Debug().Int("job_count", len(jobs)).Msg("Completed Google Jobs search")
	return jobs, nil
}
