package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer sends plain-text mail through the SMTP relay configured via
// SMTP_HOST / SMTP_PORT / SMTP_USER / SMTP_PASS / SMTP_FROM.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func New() *Mailer {
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	return &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		from: os.Getenv("SMTP_FROM"),
	}
}

// Configured reports whether the SMTP environment is set up. Callers treat
// mail as optional and skip sending when it is not.
func (m *Mailer) Configured() bool {
	return m != nil && m.user != "" && m.pass != "" && m.from != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.Configured() {
		log.Println("Email not sent: SMTP environment variables are not configured")
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg))
}
