package models

import "time"

// Job is a posting normalized from any upstream job board.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Salary       string    `json:"salary,omitempty"`
	PostedDate   time.Time `json:"postedDate"`
	ContractType string    `json:"contractType"`
	IsRemote     bool      `json:"isRemote"`
	Country      string    `json:"country"`
	Requirements []string  `json:"requirements"`
	Source       string    `json:"source"`
	ApplyURL     string    `json:"applyUrl"`
}

const (
	DefaultContractType = "B2B"
	DefaultCountry      = "Portugal"
)

// SearchFilters are the constraints every source receives for one search.
type SearchFilters struct {
	ContractType string
	Country      string
	RemoteOnly   bool
}

// Matches reports whether job satisfies the filters. Empty contract type or
// country disables that check.
func (f SearchFilters) Matches(job Job) bool {
	if f.ContractType != "" && job.ContractType != f.ContractType {
		return false
	}
	if f.Country != "" && job.Country != f.Country {
		return false
	}
	if f.RemoteOnly && !job.IsRemote {
		return false
	}
	return true
}
