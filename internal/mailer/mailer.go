package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	gomail "gopkg.in/gomail.v2"
)

// Mail is one outbound message. Template names one of the templates in
// templates.go; Data is handed to it verbatim.
type Mail struct {
	To       string
	Subject  string
	Template string
	Data     interface{}
}

// Mailer sends notification mail. Every call site in this service treats
// delivery as best-effort: failures are logged by the caller and never fail
// the surrounding request.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// SMTPMailer renders an html template and delivers it over SMTP.
type SMTPMailer struct {
	dialer    *gomail.Dialer
	from      string
	templates *template.Template
}

// NewSMTP creates an SMTP-backed mailer.
func NewSMTP(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(host, port, user, pass),
		from:      from,
		templates: template.Must(template.New("mails").Parse(mailTemplates)),
	}
}

// Send renders the named template and delivers the message. The context is
// accepted for interface symmetry; gomail has no cancellation hook.
func (s *SMTPMailer) Send(_ context.Context, m Mail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, m.Template, m.Data); err != nil {
		return fmt.Errorf("render mail template %q: %w", m.Template, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", body.String())

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", m.To, err)
	}
	return nil
}
