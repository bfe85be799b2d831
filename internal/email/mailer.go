// Package email sends transactional mail (password resets).  The
// Mailer interface keeps handlers independent of the transport; the
// SMTP implementation covers production and LogMailer covers
// development, where reset links land in the server log instead of an
// inbox.
package email

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer sends one message to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers through a plain SMTP relay with optional AUTH.
type SMTPMailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// Send builds an RFC 5322 message and submits it to the relay.
func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.From, to, subject, body))

	var auth smtp.Auth
	if m.User != "" {
		auth = smtp.PlainAuth("", m.User, m.Pass, m.Host)
	}
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes the message to the server log. Default when no SMTP
// host is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Printf("mail (log transport): to=%s subject=%q\n%s", to, subject, body)
	return nil
}
