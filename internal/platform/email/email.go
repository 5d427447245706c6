package email

import (
	"context"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"hrportal/internal/platform/config"
)

// Mailer sends one plain-text message. The queue worker is the only
// caller; handlers never send mail inline.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, string, string, string) error {
	return nil
}

type smtpMailer struct {
	client *gomail.Client
	from   string
}

// New returns a no-op mailer when SMTP is not configured, so every other
// component can treat mail as always available.
func New(cfg config.Config) (Mailer, error) {
	if cfg.SMTP.Host == "" {
		return noopMailer{}, nil
	}
	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTP.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTP.Username),
			gomail.WithPassword(cfg.SMTP.Password),
		)
	}
	client, err := gomail.NewClient(cfg.SMTP.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &smtpMailer{client: client, from: cfg.SMTP.From}, nil
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return nil
	}
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return m.client.DialAndSendWithContext(ctx, msg)
}
