package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"job-aggregator/internal/config"
	"job-aggregator/internal/jobboard"
	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
	"job-aggregator/internal/notify"
)

type reportOptions struct {
	query        string
	contractType string
	country      string
	remote       bool
	email        string
	dataDir      string
	timeout      time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Search every job board and mail a digest of recent postings",
		Long: `Runs one aggregate search across the configured job boards, compares the
results with the previous run and e-mails an HTML digest with new postings
highlighted.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.query, "query", "q", "", "Search keywords (default: target roles)")
	flags.StringVar(&opts.contractType, "contract-type", models.DefaultContractType, "Contract type to keep")
	flags.StringVar(&opts.country, "country", models.DefaultCountry, "Country to search in")
	flags.BoolVar(&opts.remote, "remote", false, "Only keep remote postings")
	flags.StringVarP(&opts.email, "email", "e", "", "Address to send the report to (default: NOTIFY_TO)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory for the seen-jobs file (default: REPORT_DATA_DIR or ~/.job-aggregator)")
	flags.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "Overall time limit")

	return cmd
}

func runReport(ctx context.Context, opts *reportOptions) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	to := opts.email
	if to == "" {
		to = cfg.NotifyTo
	}
	if to == "" {
		return fmt.Errorf("an e-mail address is required (--email or NOTIFY_TO)")
	}

	dataDir, err := resolveDataDir(opts.dataDir, cfg.ReportDataDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	filters := models.SearchFilters{
		ContractType: opts.contractType,
		Country:      opts.country,
		RemoteOnly:   opts.remote,
	}
	jobs, err := jobboard.NewAggregatorFromConfig(cfg).SearchAll(ctx, opts.query, filters)
	if err != nil {
		return fmt.Errorf("searching jobs: %w", err)
	}

	prevJobsFile := filepath.Join(dataDir, "previous_jobs.txt")
	prevJobs, err := notify.LoadPreviousJobs(prevJobsFile)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load previous jobs")
	}
	newJobs := notify.FindNewJobs(prevJobs, jobs)

	sender := notify.NewSMTPSender(notify.EmailConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		FromEmail:    cfg.NotifyFrom,
		ToEmail:      to,
	})
	report := notify.JobReport{
		Date:    time.Now(),
		Jobs:    jobs,
		NewJobs: newJobs,
		Query:   opts.query,
		Filters: filters,
	}
	if err := sender.SendJobReport(ctx, to, report); err != nil {
		return fmt.Errorf("sending report: %w", err)
	}

	// Only remember jobs once the digest went out, so a failed send
	// reports them as new again next time.
	if err := notify.SaveJobsToFile(jobs, prevJobsFile); err != nil {
		log.Warn().Err(err).Msg("Failed to save jobs")
	}

	log.Info().Int("job_count", len(jobs)).Int("new_count", len(newJobs)).Str("to", to).Msg("Report sent")
	return nil
}

func resolveDataDir(flagValue, configValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if configValue != "" {
		return configValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".job-aggregator"), nil
}
