package mailer

import (
	"html/template"
	"strings"
	"time"

	"github.com/dasiyes/ivmfolio/internal/portfolio"
)

// The notification keeps the look of the portfolio site: a gradient header
// card, the contact details table and the message body, with a reply hint at
// the bottom. Submitted values are escaped by the template engine.
var notificationTmpl = template.Must(template.New("notification").Parse(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; color: #1f2937;">
  <div style="background: linear-gradient(135deg, #3b82f6 0%, #8b5cf6 100%); padding: 40px 30px; text-align: center; border-radius: 12px 12px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 32px; font-weight: 600;">New Contact Form Submission</h1>
    <p style="color: rgba(255,255,255,0.9); margin: 12px 0 0 0; font-size: 16px;">From your portfolio website</p>
  </div>
  <div style="background: #f9fafb; padding: 40px 30px; border-radius: 0 0 12px 12px;">
    <div style="background: white; padding: 30px; border-radius: 12px; margin-bottom: 24px;">
      <h2 style="color: #111827; margin-top: 0; font-size: 20px; border-bottom: 2px solid #3b82f6; padding-bottom: 12px;">Contact Information</h2>
      <table style="width: 100%; border-collapse: collapse;">
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; font-weight: 500; color: #374151; width: 100px;">Name:</td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; color: #111827;">{{.Name}}</td>
        </tr>
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; font-weight: 500; color: #374151;">Email:</td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb;"><a href="mailto:{{.Email}}" style="color: #3b82f6; text-decoration: none;">{{.Email}}</a></td>
        </tr>
        <tr>
          <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; font-weight: 500; color: #374151;">Subject:</td>
          <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; color: #111827;">{{.Subject}}</td>
        </tr>
        <tr>
          <td style="padding: 12px 0; font-weight: 500; color: #374151;">Received:</td>
          <td style="padding: 12px 0; color: #6b7280;">{{.Received}}</td>
        </tr>
      </table>
    </div>
    <div style="background: white; padding: 30px; border-radius: 12px; margin-bottom: 24px;">
      <h2 style="color: #111827; margin-top: 0; font-size: 20px; border-bottom: 2px solid #3b82f6; padding-bottom: 12px;">Message</h2>
      <div style="line-height: 1.7; color: #374151; white-space: pre-wrap; background: #f9fafb; padding: 24px; border-radius: 8px; border-left: 4px solid #3b82f6;">{{.Message}}</div>
    </div>
    <div style="background: #ecfdf5; padding: 20px; border-radius: 12px; border-left: 4px solid #10b981;">
      <p style="margin: 0; color: #065f46; font-weight: 600; font-size: 14px;">Quick Reply</p>
      <p style="margin: 4px 0 0 0; color: #047857; font-size: 14px;">Reply directly to this email to respond to {{.Name}}</p>
    </div>
  </div>
</div>
`))

type notificationData struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Received string
}

func notificationBody(s *portfolio.Submission) (string, error) {

	var b strings.Builder
	data := notificationData{
		Name:     s.Name,
		Email:    s.Email,
		Subject:  s.Subject,
		Message:  s.Message,
		Received: time.Now().Format("Monday, January 2, 2006 15:04 MST"),
	}

	if err := notificationTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
