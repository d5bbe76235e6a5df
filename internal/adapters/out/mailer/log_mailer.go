// Package mailer delivers transactional e-mails. LogMailer writes them to the
// structured log instead of an SMTP relay.
package mailer

import (
	"context"
	"log/slog"

	"crowdship/internal/core/ports"
	"crowdship/internal/pkg/errs"
)

type LogMailer struct {
	from   string
	logger *slog.Logger
}

var _ ports.Mailer = (*LogMailer)(nil)

func NewLogMailer(from string, logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{from: from, logger: logger.With("component", "mailer")}
}

func (m *LogMailer) SendVerificationCode(ctx context.Context, to, name, code string) error {
	if to == "" {
		return errs.NewValueIsRequiredError("to")
	}
	m.logger.InfoContext(ctx, "mail sent",
		"from", m.from,
		"to", to,
		"subject", "Verify your email",
		"name", name,
		"code", code,
	)
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	if to == "" {
		return errs.NewValueIsRequiredError("to")
	}
	m.logger.InfoContext(ctx, "mail sent",
		"from", m.from,
		"to", to,
		"subject", "Reset Password",
		"name", name,
		"reset_url", resetURL,
	)
	return nil
}
