// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings of the server and the report command.
type Config struct {
	Port        string `mapstructure:"port"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	GinMode     string `mapstructure:"gin_mode"`
	CORSOrigins string `mapstructure:"cors_allowed_origins"`

	// Job board credentials
	LinkedInAPIKey   string `mapstructure:"linkedin_api_key"`
	IndeedAPIKey     string `mapstructure:"indeed_api_key"`
	GoogleJobsAPIKey string `mapstructure:"google_jobs_api_key"`

	LinkedInURL       string `mapstructure:"linkedin_api_url"`
	IndeedURL         string `mapstructure:"indeed_api_url"`
	WeWorkRemotelyURL string `mapstructure:"weworkremotely_api_url"`
	GoogleJobsURL     string `mapstructure:"google_jobs_api_url"`

	UpstreamTimeout   time.Duration `mapstructure:"upstream_timeout"`
	UpstreamRateLimit float64       `mapstructure:"upstream_rate_limit"`
	UpstreamRateBurst int           `mapstructure:"upstream_rate_burst"`
	RecencyWindow     time.Duration `mapstructure:"recency_window"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	NotifyFrom   string `mapstructure:"notify_from"`
	NotifyTo     string `mapstructure:"notify_to"`

	ReportDataDir string `mapstructure:"report_data_dir"`
}

var keys = []string{
	"port", "log_level", "log_format", "gin_mode", "cors_allowed_origins",
	"linkedin_api_key", "indeed_api_key", "google_jobs_api_key",
	"linkedin_api_url", "indeed_api_url", "weworkremotely_api_url", "google_jobs_api_url",
	"upstream_timeout", "upstream_rate_limit", "upstream_rate_burst", "recency_window",
	"smtp_host", "smtp_port", "smtp_username", "smtp_password", "notify_from", "notify_to",
	"report_data_dir",
}

// Load reads envFiles (missing files are skipped) and the process
// environment, applying defaults for everything unset.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	// AutomaticEnv only affects Get; Unmarshal needs every key bound.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("binding %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("cors_allowed_origins", "*")

	v.SetDefault("linkedin_api_url", "https://api.linkedin.com/v2/jobs")
	v.SetDefault("indeed_api_url", "https://api.indeed.com/v2/jobs")
	v.SetDefault("weworkremotely_api_url", "https://weworkremotely.com/api/v1/jobs")
	v.SetDefault("google_jobs_api_url", "https://www.googleapis.com/jobs/v3/search")

	v.SetDefault("upstream_timeout", 10*time.Second)
	v.SetDefault("upstream_rate_limit", 2.0)
	v.SetDefault("upstream_rate_burst", 5)
	v.SetDefault("recency_window", 24*time.Hour)

	v.SetDefault("smtp_port", 587)
	v.SetDefault("report_data_dir", "")
}

func (c *Config) validate() error {
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}
	if c.UpstreamRateLimit <= 0 {
		return fmt.Errorf("UPSTREAM_RATE_LIMIT must be positive, got %v", c.UpstreamRateLimit)
	}
	if c.UpstreamRateBurst < 1 {
		return fmt.Errorf("UPSTREAM_RATE_BURST must be at least 1, got %d", c.UpstreamRateBurst)
	}
	if c.RecencyWindow <= 0 {
		return fmt.Errorf("RECENCY_WINDOW must be positive, got %s", c.RecencyWindow)
	}
	if c.SMTPPort <= 0 {
		return fmt.Errorf("SMTP_PORT must be a positive integer, got %d", c.SMTPPort)
	}
	return nil
}
