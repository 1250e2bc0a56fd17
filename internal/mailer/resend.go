// mailer delivers the contact form notifications through the Resend API.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	log "github.com/sirupsen/logrus"

	"github.com/dasiyes/ivmfolio/internal/portfolio"
)

// ErrProvider marks a delivery the provider rejected or errored on, as
// opposed to a local failure building the message.
var ErrProvider = errors.New("mail provider error")

type resendMailer struct {
	client *resend.Client
	from   string
	to     string
	lgr    *log.Logger
}

func NewResendMailer(apiKey, from, to string, lgr *log.Logger) (portfolio.Mailer, error) {
	if apiKey == "" || from == "" || to == "" {
		return nil, fmt.Errorf("mail configuration incomplete (api key, from and to are required)")
	}
	if lgr == nil {
		lgr = log.New()
	}
	return &resendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
		lgr:    lgr,
	}, nil
}

// Send delivers the operator notification with the submitter set as
// reply-to. One shot - a failure is terminal for this submission.
func (m *resendMailer) Send(ctx context.Context, s *portfolio.Submission) (string, error) {

	body, err := notificationBody(s)
	if err != nil {
		return "", fmt.Errorf("unable to render notification body. error: %v", err)
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		ReplyTo: s.Email,
		Subject: "Portfolio Contact: " + s.Subject,
		Html:    body,
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		m.lgr.Errorf("notification delivery failed. error: %v", err)
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}

	return sent.Id, nil
}
