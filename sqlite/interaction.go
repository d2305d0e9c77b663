package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ vipbot.InteractionService = (*InteractionService)(nil)

// InteractionService implements vipbot.InteractionService using SQLite.
type InteractionService struct {
	db *DB
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(db *DB) *InteractionService {
	return &InteractionService{db: db}
}

// LogInteraction stores an interaction. The answer is truncated to
// vipbot.MaxLoggedAnswer runes.
func (s *InteractionService) LogInteraction(ctx context.Context, i *vipbot.Interaction) error {
	if err := i.Validate(); err != nil {
		return err
	}

	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interactions (id, user_id, user_name, query, answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, i.ID, i.UserID, i.UserName, i.Query, i.TruncatedAnswer(), formatTime(i.CreatedAt))

	return err
}

// FindInteractions retrieves interactions matching the filter, newest first.
func (s *InteractionService) FindInteractions(ctx context.Context, filter vipbot.InteractionFilter) ([]*vipbot.Interaction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, user_id, user_name, query, answer, created_at FROM interactions WHERE 1=1")

	if filter.UserID != nil {
		query.WriteString(" AND user_id = ?")
		args = append(args, *filter.UserID)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendLimit(&query, &args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []*vipbot.Interaction
	for rows.Next() {
		var i vipbot.Interaction
		var createdAt string

		if err := rows.Scan(&i.ID, &i.UserID, &i.UserName, &i.Query, &i.Answer, &createdAt); err != nil {
			return nil, err
		}

		if i.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}

		interactions = append(interactions, &i)
	}

	return interactions, rows.Err()
}
