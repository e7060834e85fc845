package ports

import "context"

type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a message out-of-band. A failed delivery must be
// reported so callers can roll back state that depends on it.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
