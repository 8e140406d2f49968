package usecase

import (
	"context"
	"fmt"
	"time"

	"smart-dine/internal/data/entity"
	"smart-dine/pkg/mailer"
	"smart-dine/pkg/metrics"
	"smart-dine/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier sends transactional mail. It reports whether the relay accepted the
// message; failures are logged and never retried.
type Notifier interface {
	SendVerification(ctx context.Context, user *entity.User, token uuid.UUID) bool
	SendPasswordReset(ctx context.Context, user *entity.User, token uuid.UUID) bool
}

type notifier struct {
	sender      mailer.Sender
	templates   *mailer.Renderer
	frontendURL string
	tokens      utils.TokenConfig
	log         *zap.Logger
}

func NewNotifier(sender mailer.Sender, templates *mailer.Renderer, frontendURL string, tokens utils.TokenConfig, log *zap.Logger) Notifier {
	return &notifier{
		sender:      sender,
		templates:   templates,
		frontendURL: frontendURL,
		tokens:      tokens,
		log:         log.With(zap.String("service", "notify")),
	}
}

func (n *notifier) SendVerification(ctx context.Context, user *entity.User, token uuid.UUID) bool {
	return n.send(ctx, mailer.TemplateVerification, user, mailer.Data{
		Username:  user.Username,
		Link:      fmt.Sprintf("%s/verify-email/%s", n.frontendURL, token),
		ExpiresIn: humanizeTTL(n.tokens.VerificationTTL, entity.VerificationTokenTTL),
	})
}

func (n *notifier) SendPasswordReset(ctx context.Context, user *entity.User, token uuid.UUID) bool {
	return n.send(ctx, mailer.TemplatePasswordReset, user, mailer.Data{
		Username:  user.Username,
		Link:      fmt.Sprintf("%s/reset-password/%s", n.frontendURL, token),
		ExpiresIn: humanizeTTL(n.tokens.ResetTTL, entity.ResetTokenTTL),
	})
}

func (n *notifier) send(ctx context.Context, kind string, user *entity.User, data mailer.Data) bool {
	msg, err := n.templates.Render(kind, user.Email, data)
	if err != nil {
		n.log.Error("Failed to render email", zap.String("kind", kind), zap.Error(err))
		metrics.RecordEmail(kind, false)
		return false
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		n.log.Error("Failed to send email",
			zap.String("kind", kind),
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
		metrics.RecordEmail(kind, false)
		return false
	}

	n.log.Info("Email sent", zap.String("kind", kind), zap.String("user_id", user.ID.String()))
	metrics.RecordEmail(kind, true)
	return true
}

// humanizeTTL renders d as "24 hours", "1 hour" or "30 minutes".
func humanizeTTL(d, fallback time.Duration) string {
	if d <= 0 {
		d = fallback
	}

	unit, n := "minute", int(d/time.Minute)
	if d%time.Hour == 0 {
		unit, n = "hour", int(d/time.Hour)
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}
