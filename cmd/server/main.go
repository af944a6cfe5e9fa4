package main

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"job-aggregator/internal/api"
	"job-aggregator/internal/config"
	"job-aggregator/internal/jobboard"
	"job-aggregator/internal/logger"
	"job-aggregator/internal/notify"
	"job-aggregator/internal/resume"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	gin.SetMode(cfg.GinMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(loggerMiddleware())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	aggregator := jobboard.NewAggregatorFromConfig(cfg)
	sender := notify.NewSMTPSender(notify.EmailConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
		FromEmail:    cfg.NotifyFrom,
		ToEmail:      cfg.NotifyTo,
	})
	if cfg.SMTPHost == "" || cfg.NotifyTo == "" {
		log.Warn().Msg("SMTP not configured, applications will fail until SMTP_HOST and NOTIFY_TO are set")
	}

	handler := api.NewHandler(aggregator, sender, resume.NewStore())

	// Routes
	r.GET("/health", api.HealthCheck)
	handler.Register(r)
	handler.Register(r.Group("/api"))

	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func corsConfig(origins string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}

	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}
	if len(allowed) == 0 || (len(allowed) == 1 && allowed[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowed
	}
	return config
}
