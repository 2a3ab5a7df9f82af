package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/go-auth-api/internal/config"
)

// Mailer dispatches the two transactional emails the auth flows send.
type Mailer interface {
	SendVerificationCode(to, code string) error
	SendPasswordResetLink(to, link string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf("Your verification code is: %s\r\nThis code will expire shortly.", code)
	return m.send(to, "Email Verification", body)
}

func (m *mailer) SendPasswordResetLink(to, link string) error {
	body := fmt.Sprintf("Click the link below to reset your password:\r\n%s\r\nThis link will expire in 30 minutes.", link)
	return m.send(to, "Password Reset Request", body)
}

func (m *mailer) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
