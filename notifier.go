package vipbot

import (
	"context"
	"errors"
	"time"
)

// CatalogUpdate describes a newly adopted snapshot.
type CatalogUpdate struct {
	ID         string    `json:"id"`
	Revision   string    `json:"revision"`
	Products   int       `json:"products"`
	FAQ        int       `json:"faq"`
	Categories int       `json:"categories"`
	AdoptedAt  time.Time `json:"adoptedAt"`
}

// NewCatalogUpdate summarizes s as an update adopted at s.FetchedAt.
func NewCatalogUpdate(s *Snapshot) CatalogUpdate {
	return CatalogUpdate{
		Revision:   s.Revision,
		Products:   len(s.Products),
		FAQ:        len(s.FAQ),
		Categories: len(s.Categories),
		AdoptedAt:  s.FetchedAt,
	}
}

// Notifier announces catalog changes detected after startup.
type Notifier interface {
	NotifyUpdate(ctx context.Context, u CatalogUpdate) error
}

// UpdateService represents a queryable history of adopted updates.
type UpdateService interface {
	Notifier

	// FindUpdates returns the most recent updates, newest first.
	FindUpdates(ctx context.Context, limit int) ([]*CatalogUpdate, error)
}

// MultiNotifier sends every update to all of its notifiers.
type MultiNotifier []Notifier

// NotifyUpdate notifies each notifier and joins their errors.
func (m MultiNotifier) NotifyUpdate(ctx context.Context, u CatalogUpdate) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyUpdate(ctx, u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
