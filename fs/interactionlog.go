// Package fs provides file-based sinks.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/vipbot"
)

// Ensure InteractionLog implements vipbot.InteractionLog at compile time.
var _ vipbot.InteractionLog = (*InteractionLog)(nil)

// InteractionLog appends human-readable interaction records to a text file.
type InteractionLog struct {
	mu   sync.Mutex
	path string
}

// NewInteractionLog creates an InteractionLog appending to path.
func NewInteractionLog(path string) *InteractionLog {
	return &InteractionLog{path: path}
}

// FormatInteraction formats an interaction as a log record:
//
//	[2006-01-02 15:04:05] User: name (ID: id)
//	Query: question
//	Answer: first 300 characters...
//	--------...
func FormatInteraction(i *vipbot.Interaction) string {
	ts := i.CreatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(ts.Format(time.DateTime))
	b.WriteString("] User: ")
	b.WriteString(i.UserName)
	b.WriteString(" (ID: ")
	b.WriteString(i.UserID)
	b.WriteString(")\nQuery: ")
	b.WriteString(i.Query)
	b.WriteString("\nAnswer: ")
	b.WriteString(i.TruncatedAnswer())
	b.WriteString("...\n")
	b.WriteString(strings.Repeat("-", 80))
	b.WriteString("\n\n")
	return b.String()
}

// LogInteraction appends the interaction to the log file, creating the file
// and its parent directories if needed.
func (l *InteractionLog) LogInteraction(ctx context.Context, i *vipbot.Interaction) error {
	if err := i.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(FormatInteraction(i)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
