// Package notify delivers application confirmations and job digests by
// e-mail.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"strconv"
	"time"

	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

var ErrNotConfigured = errors.New("smtp transport not configured")

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	ToEmail      string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends HTML mail through a single SMTP relay.
type SMTPSender struct {
	config EmailConfig
	send   sendFunc
}

func NewSMTPSender(config EmailConfig) *SMTPSender {
	return &SMTPSender{config: config, send: smtp.SendMail}
}

const applicationTemplate = `
<h2>Job Application Confirmation</h2>
<p>Your application has been submitted successfully!</p>

<h3>Application Details:</h3>
<ul>
    <li><strong>Position:</strong> {{.JobTitle}}</li>
    <li><strong>Company:</strong> {{.Company}}</li>
    <li><strong>Location:</strong> {{.Location}}</li>
    <li><strong>Application Date:</strong> {{.ApplicationDate.Format "Jan 02, 2006 15:04 MST"}}</li>
    <li><strong>Status:</strong> {{.Status}}</li>
</ul>

<p>We'll keep you updated on the status of your application.</p>

<p>Best regards,<br>Job Search Automation</p>
`

var applicationTmpl = template.Must(template.New("application").Parse(applicationTemplate))

// SendApplicationNotification mails the confirmation for one application to
// the configured recipient.
func (s *SMTPSender) SendApplicationNotification(ctx context.Context, n models.ApplicationNotification) error {
	var body bytes.Buffer
	if err := applicationTmpl.Execute(&body, n); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	subject := fmt.Sprintf("Job Application Confirmation: %s at %s", n.JobTitle, n.Company)
	if err := s.deliver(ctx, s.config.ToEmail, subject, body.Bytes()); err != nil {
		return err
	}
	log := logger.Get()
	log.Info().
		Str("job_title", n.JobTitle).
		Str("company", n.Company).
		Str("status", string(n.Status)).
		Msg("Application notification email sent")
	return nil
}

func (s *SMTPSender) deliver(ctx context.Context, to, subject string, body []byte) error {
	cfg := s.config
	if cfg.SMTPHost == "" || cfg.FromEmail == "" || to == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := [][2]string{
		{"From", cfg.FromEmail},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}

	var message bytes.Buffer
	for _, h := range headers {
		fmt.Fprintf(&message, "%s: %s\r\n", h[0], h[1])
	}
	message.WriteString("\r\n")
	message.Write(body)

	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	addr := cfg.SMTPHost + ":" + strconv.Itoa(cfg.SMTPPort)

	log := logger.Get()
	log.Debug().Str("from", cfg.FromEmail).Str("to", to).Str("addr", addr).Msg("Sending email")
	if err := s.send(addr, auth, cfg.FromEmail, []string{to}, message.Bytes()); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
