// Package mail delivers stamped documents as email attachments.
//
// The Sender interface is the injection point for the stamping service;
// implementations are constructed once at startup and passed in, never
// reached through process-wide state.
package mail

import (
	"bytes"
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// Message is one outbound email carrying a stamped document.
type Message struct {
	From       string
	To         string
	Subject    string
	Body       string
	Attachment []byte
	Filename   string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig configures an SMTP relay connection.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	client *gomail.Client
}

// NewSMTPSender connects the sender's client configuration. Credentials
// are optional; when a username is set, PLAIN auth is used.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []gomail.Option{}
	if cfg.Port > 0 {
		opts = append(opts, gomail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: creating SMTP client: %w", err)
	}
	return &SMTPSender{client: client}, nil
}

// Send builds a plain-text message with the document attached under its
// resolved filename and delivers it.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("mail: from address %q: %w", m.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("mail: to address %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, m.Body)
	if len(m.Attachment) > 0 {
		if err := msg.AttachReader(m.Filename, bytes.NewReader(m.Attachment)); err != nil {
			return fmt.Errorf("mail: attaching %s: %w", m.Filename, err)
		}
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: sending to %s: %w", m.To, err)
	}
	return nil
}
