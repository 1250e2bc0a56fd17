package portfolio

import (
	"context"
	"errors"
	"regexp"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidEmail  = errors.New("invalid email address")

	emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Submission is the contact form payload. It is never persisted - it only
// travels from the endpoint to the notification mailer.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s *Submission) Validate() error {
	if s.Name == "" || s.Email == "" || s.Subject == "" || s.Message == "" {
		return ErrMissingFields
	}
	if !emailRx.MatchString(s.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Mailer delivers the operator notification for a submission and returns
// the provider delivery id.
type Mailer interface {
	Send(ctx context.Context, s *Submission) (string, error)
}
