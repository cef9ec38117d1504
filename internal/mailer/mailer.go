package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/model"
)

var (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// ErrRejected is returned when the provider answers with a 4xx/5xx status.
var ErrRejected = errors.New("mail rejected by provider")

// Sender delivers a single mail job.
type Sender interface {
	Send(ctx context.Context, job model.MailJob) error
}

// New returns a SendGrid sender when an API key is configured, otherwise a
// sender that only logs the message.
func New(cfg *config.Config, log zerolog.Logger) Sender {
	if cfg.SendGridAPIKey == "" {
		log.Warn().Msg("SENDGRID_API_KEY not set, emails will only be logged")
		return NewLogSender(log)
	}
	return NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFrom)
}

// SendGridSender delivers mail through the SendGrid v3 API.
type SendGridSender struct {
	key  string
	from *sgmail.Email
}

// NewSendGridSender creates a SendGridSender.
func NewSendGridSender(key, fromName, fromEmail string) *SendGridSender {
	return &SendGridSender{
		key:  key,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

// Build converts a job into a SendGrid message.
func (s *SendGridSender) Build(job model.MailJob) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = job.Subject
	p.AddTos(sgmail.NewEmail(job.ToName, job.To))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(
		sgmail.NewContent("text/plain", job.BodyText),
		sgmail.NewContent("text/html", job.BodyHTML),
	)
	return m
}

func (s *SendGridSender) Send(ctx context.Context, job model.MailJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.Build(job))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, res.StatusCode, res.Body)
	}
	return nil
}

// LogSender writes mails to the logger instead of sending them. Used in development.
type LogSender struct {
	log zerolog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log.With().Str("component", "log_mailer").Logger()}
}

func (s *LogSender) Send(_ context.Context, job model.MailJob) error {
	s.log.Info().
		Str("to", job.To).
		Str("subject", job.Subject).
		Str("body", job.BodyText).
		Msg("Email (not sent)")
	return nil
}
