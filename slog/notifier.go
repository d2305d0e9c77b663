package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vipbot"
)

// Ensure LoggingNotifier implements vipbot.Notifier.
var _ vipbot.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with logging.
type LoggingNotifier struct {
	next   vipbot.Notifier
	logger *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next vipbot.Notifier, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger}
}

// NotifyUpdate delegates to the wrapped notifier and logs the operation.
func (n *LoggingNotifier) NotifyUpdate(ctx context.Context, u vipbot.CatalogUpdate) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("notify update",
			"revision", u.Revision,
			"products", u.Products,
			"faq", u.FAQ,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.NotifyUpdate(ctx, u)
}
