package service

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cookbookd/backend/config"
)

// EmailService sends transactional mail over SMTP. When SMTP is not
// configured the mail is logged instead, which keeps development setups
// working without a relay.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	logger       *zap.Logger
}

func NewEmailService(cfg *config.Config, logger *zap.Logger) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.EmailFrom,
		fromName:     cfg.EmailFromName,
		logger:       logger,
	}
}

// SendPasswordReset mails the reset link for the given token to the user.
func (s *EmailService) SendPasswordReset(to, resetLink string) error {
	caser := cases.Title(language.English)
	subject := fmt.Sprintf("[%s] Password reset request", caser.String(s.fromName))
	body := fmt.Sprintf("Click the link below to reset your password: %s", resetLink)
	return s.Send(to, subject, body)
}

// Send delivers a plain-text mail to a single recipient.
func (s *EmailService) Send(to, subject, body string) error {
	if s.smtpHost == "" || s.smtpPort == "" {
		s.logger.Info("SMTP not configured, logging email instead",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body),
		)
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.fromName, s.fromEmail, to, subject, body)

	addr := s.smtpHost + ":" + s.smtpPort
	var auth smtp.Auth
	if s.smtpUsername != "" {
		auth = smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	}

	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
