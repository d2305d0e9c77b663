package vipbot

import (
	"context"
	"errors"
	"time"
)

// MaxLoggedAnswer is the number of runes of an answer kept in interaction logs.
const MaxLoggedAnswer = 300

// User identifies the person issuing a command.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Interaction is a question asked by a user and the answer given.
type Interaction struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the interaction contains invalid fields.
func (i *Interaction) Validate() error {
	if i.UserID == "" {
		return Errorf(EINVALID, "interaction user ID required")
	}
	if i.Query == "" {
		return Errorf(EINVALID, "interaction query required")
	}
	return nil
}

// TruncatedAnswer returns the answer cut to MaxLoggedAnswer runes.
func (i *Interaction) TruncatedAnswer() string {
	return Truncate(i.Answer, MaxLoggedAnswer)
}

// InteractionLog records answered questions. Implementations are best-effort
// sinks; callers log and ignore their errors.
type InteractionLog interface {
	LogInteraction(ctx context.Context, i *Interaction) error
}

// InteractionService represents a queryable store of interactions.
type InteractionService interface {
	InteractionLog

	// FindInteractions retrieves interactions matching the filter, newest first.
	FindInteractions(ctx context.Context, filter InteractionFilter) ([]*Interaction, error)
}

// InteractionFilter represents a filter for FindInteractions.
type InteractionFilter struct {
	UserID *string `json:"userId"`

	Limit int `json:"limit"`
}

// MultiInteractionLog writes every interaction to all of its logs.
type MultiInteractionLog []InteractionLog

// LogInteraction writes i to each log and joins their errors.
func (m MultiInteractionLog) LogInteraction(ctx context.Context, i *Interaction) error {
	var errs []error
	for _, l := range m {
		if err := l.LogInteraction(ctx, i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
