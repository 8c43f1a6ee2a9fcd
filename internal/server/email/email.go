// Package email отправляет транзакционные письма пользователям.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Sender defines interface for sending transactional email
type Sender interface {
	// SendVerification sends the email-verification link to the address
	SendVerification(ctx context.Context, to, verifyURL string) error
}

// LogSender пишет письма в лог вместо отправки. Используется в
// разработке и тестах.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender создает sender, пишущий письма в лог
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendVerification логирует ссылку подтверждения
func (s *LogSender) SendVerification(ctx context.Context, to, verifyURL string) error {
	s.logger.InfoContext(ctx, "verification email",
		slog.String("to", to),
		slog.String("url", verifyURL))
	return nil
}

// SMTPConfig содержит настройки SMTP-отправки
type SMTPConfig struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
}

// SMTPSender отправляет письма через SMTP
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender создает SMTP sender
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendVerification отправляет письмо со ссылкой подтверждения
func (s *SMTPSender) SendVerification(_ context.Context, to, verifyURL string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	msg.WriteString("Subject: Verify your email\r\n")
	msg.WriteString("\r\n")
	fmt.Fprintf(&msg, "Follow the link to verify your email address:\r\n%s\r\n", verifyURL)

	host := s.cfg.Addr
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, host)
	}

	if err := smtp.SendMail(s.cfg.Addr, auth, s.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}
