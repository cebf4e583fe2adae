package mailer

import (
	"context"
	"fmt"
	"log"
	"net/mail"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds SMTP server settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     mail.Address
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	from   mail.Address
	dialer *gomail.Dialer
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a new SMTP mailer. Port 465 uses implicit TLS.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Port == 465
	return &SMTPMailer{
		from:   cfg.From,
		dialer: dialer,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", message.FormatAddress(m.from.Address, m.from.Name))
	message.SetHeader("To", message.FormatAddress(msg.To, msg.ToName))
	message.SetHeader("Subject", msg.Subject)
	message.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		message.AddAlternative("text/html", msg.HTML)
	}

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}

	log.Printf("📧 Email sent successfully to %s", msg.To)
	return nil
}
