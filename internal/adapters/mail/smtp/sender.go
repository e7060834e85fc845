// Package smtp delivers outbound email over plain SMTP with optional
// AUTH. The reset-password flow depends on delivery failures being
// reported, so errors are returned as-is rather than logged and dropped.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/taskman/api/internal/core/ports"
)

type Sender struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSender(host, port, username, password, from string) ports.Mailer {
	return &Sender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *Sender) Send(ctx context.Context, email ports.Email) error {
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", email.To),
		fmt.Sprintf("Subject: %s", email.Subject),
		"",
		email.Body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	// smtp.SendMail has no context support; run it in a goroutine so a
	// cancelled request is not stuck behind a slow mail server.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.from, []string{email.To}, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
