package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/vipbot"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ vipbot.UpdateService = (*UpdateService)(nil)

// UpdateService records adopted catalog updates using SQLite.
type UpdateService struct {
	db *DB
}

// NewUpdateService creates a new UpdateService.
func NewUpdateService(db *DB) *UpdateService {
	return &UpdateService{db: db}
}

// NotifyUpdate stores the update.
func (s *UpdateService) NotifyUpdate(ctx context.Context, u vipbot.CatalogUpdate) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.AdoptedAt.IsZero() {
		u.AdoptedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO updates (id, revision, products, faq, categories, adopted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Revision, u.Products, u.FAQ, u.Categories, formatTime(u.AdoptedAt))

	return err
}

// FindUpdates returns the most recent updates, newest first.
// A limit of zero returns all updates.
func (s *UpdateService) FindUpdates(ctx context.Context, limit int) ([]*vipbot.CatalogUpdate, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, revision, products, faq, categories, adopted_at FROM updates ORDER BY adopted_at DESC, rowid DESC")
	appendLimit(&query, &args, limit)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []*vipbot.CatalogUpdate
	for rows.Next() {
		var u vipbot.CatalogUpdate
		var adoptedAt string

		if err := rows.Scan(&u.ID, &u.Revision, &u.Products, &u.FAQ, &u.Categories, &adoptedAt); err != nil {
			return nil, err
		}

		if u.AdoptedAt, err = parseTime(adoptedAt, "adopted_at"); err != nil {
			return nil, err
		}

		updates = append(updates, &u)
	}

	return updates, rows.Err()
}
