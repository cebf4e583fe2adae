// Package mailer delivers notification e-mails through SMTP, SendGrid or the
// console. Sends are synchronous so callers can count failures.
package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/sahilchouksey/studyflow/config"
)

// Message is one outgoing e-mail with a plain text body and an HTML alternative
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the mailer selected by MAIL_PROVIDER
func New(cfg *config.EnvironmentVariable) (Mailer, error) {
	from, err := mail.ParseAddress(cfg.MAIL_FROM)
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_FROM %q: %w", cfg.MAIL_FROM, err)
	}

	switch cfg.MAIL_PROVIDER {
	case config.MailSMTP:
		if cfg.SMTP_HOST == "" {
			return nil, fmt.Errorf("SMTP_HOST is required for the smtp mail provider")
		}
		return NewSMTPMailer(SMTPConfig{
			Host:     cfg.SMTP_HOST,
			Port:     cfg.SMTP_PORT,
			Username: cfg.SMTP_USERNAME,
			Password: cfg.SMTP_PASSWORD,
			From:     *from,
		}), nil
	case config.MailSendGrid:
		if cfg.SENDGRID_API_KEY == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is required for the sendgrid mail provider")
		}
		return NewSendGridMailer(cfg.SENDGRID_API_KEY, *from), nil
	default:
		return NewConsoleMailer(*from, false), nil
	}
}
