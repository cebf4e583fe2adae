package mailer

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"sync"
	"time"
)

// ConsoleMailer prints messages to the log and keeps a copy of each one.
// It is the development default and the test double.
type ConsoleMailer struct {
	from          mail.Address
	disableOutput bool

	mu   sync.Mutex
	sent []Message
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer(from mail.Address, disableOutput bool) *ConsoleMailer {
	return &ConsoleMailer{
		from:          from,
		disableOutput: disableOutput,
	}
}

func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if !m.disableOutput {
		body := new(strings.Builder)
		_, _ = fmt.Fprintf(body, "From: %s\r\n", m.from.String())
		_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
		_, _ = fmt.Fprintf(body, "Subject: %s\r\n", msg.Subject)
		_, _ = fmt.Fprintf(body, "To: %s\r\n", (&mail.Address{Name: msg.ToName, Address: msg.To}).String())
		_, _ = fmt.Fprint(body, "\r\n")
		_, _ = fmt.Fprintf(body, "%s\r\n", msg.Text)
		log.Println(body.String())
	}

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of every message sent so far
func (m *ConsoleMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
