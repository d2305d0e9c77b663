package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vipbot"
)

// Ensure LoggingSource implements vipbot.Source.
var _ vipbot.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with debug logging.
type LoggingSource struct {
	next   vipbot.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next vipbot.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// FetchDataset delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchDataset(ctx context.Context) (content string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("fetch dataset",
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchDataset(ctx)
}

// FetchRevision delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchRevision(ctx context.Context) (rev string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("fetch revision",
			"revision", rev,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchRevision(ctx)
}
