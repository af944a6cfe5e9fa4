package notify

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"job-aggregator/internal/models"
)

// jobKey identifies a posting across runs. IDs are only unique per source.
func jobKey(job models.Job) string {
	return job.Source + "/" + job.ID
}

func clean(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}

func SaveJobsToFile(jobs []models.Job, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	for _, job := range jobs {
		_, err := fmt.Fprintf(f, "%s\t%s\t%s\t%s\t%s\n", clean(job.Source), clean(job.ID), clean(job.Title), clean(job.Company), clean(job.ApplyURL))
		if err != nil {
			return fmt.Errorf("writing job: %w", err)
		}
	}
	return f.Close()
}

func LoadPreviousJobs(filename string) ([]models.Job, error) {
	content, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var jobs []models.Job
	for _, line := range bytes.Split(content, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		parts := bytes.Split(line, []byte("\t"))
		if len(parts) >= 5 {
			jobs = append(jobs, models.Job{
				Source:   string(parts[0]),
				ID:       string(parts[1]),
				Title:    string(parts[2]),
				Company:  string(parts[3]),
				ApplyURL: string(parts[4]),
			})
		}
	}
	return jobs, nil
}

func FindNewJobs(previous, current []models.Job) []models.Job {
	seen := make(map[string]bool)
	for _, job := range previous {
		seen[jobKey(job)] = true
	}

	var newJobs []models.Job
	for _, job := range current {
		if !seen[jobKey(job)] {
			newJobs = append(newJobs, job)
		}
	}
	return newJobs
}
