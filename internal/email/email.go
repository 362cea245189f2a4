// Package email delivers verification and password-reset mail. Delivery is
// best-effort from the caller's point of view: failures are logged by the
// sender and never roll back the flow that requested the mail.
package email

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Sender sends out-of-band verification artifacts to users.
type Sender interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendResetEmail(ctx context.Context, to, token string) error
}

// SMTPConfig configures the SMTP transport.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	// BaseURL is the dashboard URL embedded into the emailed links.
	BaseURL string
}

// SMTPSender delivers mail over SMTP via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	cfg    SMTPConfig
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates an SMTP-backed sender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		cfg:    cfg,
	}
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.BaseURL, token)
	body := fmt.Sprintf(
		"<p>Welcome to DidSecPlus.</p><p>Please verify your email address by clicking <a href=%q>this link</a>. The link expires in 24 hours.</p>",
		link,
	)
	return s.send(to, "Verify your email address", body)
}

func (s *SMTPSender) SendResetEmail(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.BaseURL, token)
	body := fmt.Sprintf(
		"<p>A password reset was requested for your account.</p><p>Click <a href=%q>this link</a> to choose a new password. The link expires in 1 hour.</p><p>If you did not request this, you can ignore this email.</p>",
		link,
	)
	return s.send(to, "Reset your password", body)
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// LogSender logs instead of sending, for local development without SMTP.
// The token itself is not logged.
type LogSender struct{}

var _ Sender = (*LogSender)(nil)

func (LogSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	log.Printf("email: would send verification email to %s", to)
	return nil
}

func (LogSender) SendResetEmail(ctx context.Context, to, token string) error {
	log.Printf("email: would send password reset email to %s", to)
	return nil
}
