package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vipbot"
)

// Ensure LoggingAsker implements vipbot.Asker.
var _ vipbot.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging.
type LoggingAsker struct {
	next   vipbot.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next vipbot.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the operation.
func (a *LoggingAsker) Ask(ctx context.Context, question string, related []*vipbot.Product) (answer string, err error) {
	defer func(begin time.Time) {
		a.logger.Info("ask",
			"question", vipbot.Truncate(question, 80),
			"related", len(related),
			"answer_len", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, question, related)
}
