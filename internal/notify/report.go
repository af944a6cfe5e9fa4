package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

type JobReport struct {
	Date    time.Time
	Jobs    []models.Job
	NewJobs []models.Job // Jobs that weren't in the previous report
	Query   string
	Filters models.SearchFilters
}

const reportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; }
        .job { margin: 20px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
        .new { background-color: #e6ffe6; }
        .title { color: #2c5282; font-size: 18px; margin-bottom: 5px; }
        .company { color: #4a5568; font-size: 16px; font-weight: bold; margin-bottom: 5px; }
        .source { color: #718096; font-size: 14px; }
        .location { color: #4a5568; font-style: italic; margin-bottom: 5px; }
    </style>
</head>
<body>
    <h1>Job Search Report - {{.Date.Format "Jan 02, 2006"}}</h1>
    <h2>Search Parameters</h2>
    <p>Query: {{if .Query}}{{.Query}}{{else}}target roles{{end}}</p>
    <p>Contract type: {{.Filters.ContractType}}</p>
    <p>Country: {{.Filters.Country}}</p>
    <p>Remote only: {{.Filters.RemoteOnly}}</p>
{{define "job"}}
        <div class="title">{{.Title}}</div>
        <div class="company">Company: {{.Company}}</div>
        {{if .Location}}<div class="location">Location: {{.Location}}</div>{{end}}
        {{if .Salary}}<div class="location">Salary: {{.Salary}}</div>{{end}}
        <div class="source">Source: {{.Source}} · Posted {{.PostedDate.Format "Jan 02 15:04 MST"}}</div>
        {{if .ApplyURL}}<a href="{{.ApplyURL}}">Apply</a>{{end}}
{{end}}
    {{if .NewJobs}}
    <h2>New Jobs Since Last Report</h2>
    {{range .NewJobs}}
    <div class="job new">{{template "job" .}}</div>
    {{end}}
    {{end}}

    <h2>All Jobs</h2>
    {{range .Jobs}}
    <div class="job">{{template "job" .}}</div>
    {{else}}
    <p>No postings in the last 24 hours.</p>
    {{end}}
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// SendJobReport mails the digest to the given address.
func (s *SMTPSender) SendJobReport(ctx context.Context, to string, report JobReport) error {
	log := logger.Get()
	log.Info().Int("job_count", len(report.Jobs)).Int("new_count", len(report.NewJobs)).Msg("Generating report email")

	var body bytes.Buffer
	if err := reportTmpl.Execute(&body, report); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	title := report.Query
	if title == "" {
		title = "target roles"
	}
	subject := fmt.Sprintf("Job Search Report for %s - %s", title, report.Date.Format("Jan 02, 2006"))
	return s.deliver(ctx, to, subject, body.Bytes())
}
