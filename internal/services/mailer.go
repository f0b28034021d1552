package services

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/novaxiii/agency-backend/internal/config"
	"github.com/novaxiii/agency-backend/internal/logger"
)

// Email is an outgoing HTML message.
type Email struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers an email. Implementations make one attempt only.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	from   string
	client *mail.Client
}

func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.EmailHost,
		mail.WithPort(cfg.EmailPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.EmailUser),
		mail.WithPassword(cfg.EmailPass),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{from: cfg.EmailUser, client: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(e.To); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextHTML, e.HTML)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// LogMailer only logs the messages; used when no SMTP credentials are set.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, e Email) error {
	logger.Info("Email (not sent, SMTP disabled) to=%s subject=%q", e.To, e.Subject)
	return nil
}
