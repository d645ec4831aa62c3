// Package notifier carries verification links to users. Mail delivery is an
// external collaborator; the log notifier stands in wherever SMTP is not
// wired, and records only that a send happened, never the token.
package notifier

import (
	"context"
	"log/slog"
)

// LogNotifier satisfies domain.Notifier by logging delivery intents.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendEmailVerification(ctx context.Context, email, token string) error {
	slog.Info("email verification link queued", "email", email)
	return nil
}

func (n *LogNotifier) SendEmailChangeVerification(ctx context.Context, newEmail, token string) error {
	slog.Info("email change verification link queued", "email", newEmail)
	return nil
}

func (n *LogNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	slog.Info("password reset link queued", "email", email)
	return nil
}
