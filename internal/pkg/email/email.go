package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/dayflow-hr/dayflow-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendVerification(msg VerificationEmail) error
}

// VerificationEmail is the payload of a signup verification mail.
type VerificationEmail struct {
	To               string `json:"to"`
	Name             string `json:"name"`
	EmployeeID       string `json:"employeeId"`
	VerificationLink string `json:"verificationLink"`
	ExpiresAt        string `json:"expiresAt"`
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

func (s *emailServiceImpl) SendVerification(msg VerificationEmail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "verify_email.html", msg); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(msg.To, "Verify your Dayflow account", body.String())
}

// composeMessage renders the RFC 5322 headers and HTML body of one mail.
func (s *emailServiceImpl) composeMessage(to, subject, htmlBody string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	return b.Bytes()
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, dropping mail", "to", to, "subject", subject)
		return nil
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	message := s.composeMessage(to, subject, htmlBody)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = s.send(addr, auth, s.cfg.From, []string{to}, message); err == nil {
			slog.Info("Email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}
		slog.Warn("Email delivery attempt failed", "to", to, "attempt", attempt, "error", err)

		// doubles per attempt: backoff, 2*backoff, ...
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("send mail to %s after %d attempts: %w", to, maxRetries, err)
}
