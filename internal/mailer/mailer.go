// Package mailer sends the registration confirmation email. Without real
// SMTP credentials it provisions a disposable Ethereal test account, so
// every environment can exercise the full delivery path.
package mailer

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/teamreg/backend/internal/model"
	"github.com/teamreg/backend/pkg/logger"
)

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type Dispatcher struct {
	cfg    SMTPConfig
	logger *zap.Logger

	once      sync.Once
	client    *mail.Client
	clientErr error

	// sandboxURL overrides the Ethereal provisioning endpoint in tests.
	sandboxURL string
}

type Option func(*Dispatcher)

// WithSandboxEndpoint overrides the Ethereal account-provisioning URL.
func WithSandboxEndpoint(url string) Option {
	return func(d *Dispatcher) {
		d.sandboxURL = url
	}
}

func NewDispatcher(cfg SMTPConfig, l *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:        cfg,
		logger:     l,
		sandboxURL: etherealAccountURL,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// getClient builds the SMTP client once per process. Without configured
// credentials it provisions an Ethereal sandbox account and logs where the
// sent mail can be inspected.
func (d *Dispatcher) getClient(ctx context.Context) (*mail.Client, error) {
	d.once.Do(func() {
		cfg := d.cfg

		if cfg.User == "" || cfg.Pass == "" {
			d.logger.Info("no SMTP credentials configured, provisioning Ethereal test account")

			account, err := createEtherealAccount(ctx, d.sandboxURL)
			if err != nil {
				d.clientErr = errors.Wrap(err, "failed to create Ethereal test account")
				return
			}

			d.logger.Info("Ethereal test account created, view sent emails at https://ethereal.email",
				zap.String("user", account.User),
				zap.String("pass", account.Pass))

			cfg.Host = account.SMTP.Host
			cfg.Port = account.SMTP.Port
			cfg.User = account.User
			cfg.Pass = account.Pass
		}

		d.client, d.clientErr = mail.NewClient(cfg.Host,
			mail.WithPort(cfg.Port),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Pass),
			mail.WithTLSPolicy(mail.TLSOpportunistic),
		)
	})

	return d.client, d.clientErr
}

// SendConfirmation renders and sends the confirmation email to the team
// leader. Errors are returned to the caller, which treats delivery as
// best-effort.
func (d *Dispatcher) SendConfirmation(ctx context.Context, reg *model.Registration) error {
	l := logger.FromContext(ctx)

	client, err := d.getClient(ctx)
	if err != nil {
		return err
	}

	html, text, err := renderConfirmation(reg)
	if err != nil {
		return errors.Wrap(err, "failed to render confirmation email")
	}

	msg := mail.NewMsg()
	if err = msg.FromFormat("Team Registration Platform", d.cfg.From); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err = msg.To(reg.TeamLeaderEmail); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject("Team Registration Confirmed - " + reg.TeamID)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send confirmation email")
	}

	l.Info("confirmation email sent",
		zap.String("team_id", reg.TeamID),
		zap.String("to", reg.TeamLeaderEmail))

	return nil
}
