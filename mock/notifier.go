package mock

import (
	"context"

	"github.com/fwojciec/vipbot"
)

var (
	_ vipbot.Notifier      = (*Notifier)(nil)
	_ vipbot.UpdateService = (*UpdateService)(nil)
)

// Notifier is a mock implementation of vipbot.Notifier.
type Notifier struct {
	NotifyUpdateFn func(ctx context.Context, u vipbot.CatalogUpdate) error
}

func (n *Notifier) NotifyUpdate(ctx context.Context, u vipbot.CatalogUpdate) error {
	return n.NotifyUpdateFn(ctx, u)
}

// UpdateService is a mock implementation of vipbot.UpdateService.
type UpdateService struct {
	NotifyUpdateFn func(ctx context.Context, u vipbot.CatalogUpdate) error
	FindUpdatesFn  func(ctx context.Context, limit int) ([]*vipbot.CatalogUpdate, error)
}

func (s *UpdateService) NotifyUpdate(ctx context.Context, u vipbot.CatalogUpdate) error {
	return s.NotifyUpdateFn(ctx, u)
}

func (s *UpdateService) FindUpdates(ctx context.Context, limit int) ([]*vipbot.CatalogUpdate, error) {
	return s.FindUpdatesFn(ctx, limit)
}
