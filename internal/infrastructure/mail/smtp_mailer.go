package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/innolink/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ContactMessage is a message submitted through the public contact form
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Mailer delivers contact form submissions
type Mailer interface {
	SendContactMessage(ctx context.Context, msg ContactMessage) error
}

// SMTPMailer sends mail through a plain SMTP relay
type SMTPMailer struct {
	config config.MailConfig
	logger *zap.Logger
	// send is swappable in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer backed by the configured SMTP host
func NewSMTPMailer(cfg config.MailConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: cfg,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// SendContactMessage forwards a contact submission to the configured inbox
func (m *SMTPMailer) SendContactMessage(_ context.Context, msg ContactMessage) error {
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("mail: name, email and message are required")
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", m.config.Username)
	fmt.Fprintf(&body, "To: %s\r\n", m.config.To)
	fmt.Fprintf(&body, "Reply-To: %s\r\n", msg.Email)
	fmt.Fprintf(&body, "Subject: Contact form: %s\r\n", msg.Name)
	body.WriteString("\r\n")
	fmt.Fprintf(&body, "Name: %s\nEmail: %s\n\n%s\n", msg.Name, msg.Email, msg.Message)

	if err := m.send(addr, auth, m.config.Username, []string{m.config.To}, []byte(body.String())); err != nil {
		m.logger.Error("Failed to send contact mail", zap.Error(err))
		return fmt.Errorf("mail: failed to send: %w", err)
	}

	m.logger.Info("Contact mail sent", zap.String("from", msg.Email))
	return nil
}
