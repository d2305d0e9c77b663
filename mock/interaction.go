package mock

import (
	"context"

	"github.com/fwojciec/vipbot"
)

var (
	_ vipbot.InteractionLog     = (*InteractionLog)(nil)
	_ vipbot.InteractionService = (*InteractionService)(nil)
)

// InteractionLog is a mock implementation of vipbot.InteractionLog.
type InteractionLog struct {
	LogInteractionFn func(ctx context.Context, i *vipbot.Interaction) error
}

func (l *InteractionLog) LogInteraction(ctx context.Context, i *vipbot.Interaction) error {
	return l.LogInteractionFn(ctx, i)
}

// InteractionService is a mock implementation of vipbot.InteractionService.
type InteractionService struct {
	LogInteractionFn   func(ctx context.Context, i *vipbot.Interaction) error
	FindInteractionsFn func(ctx context.Context, filter vipbot.InteractionFilter) ([]*vipbot.Interaction, error)
}

func (s *InteractionService) LogInteraction(ctx context.Context, i *vipbot.Interaction) error {
	return s.LogInteractionFn(ctx, i)
}

func (s *InteractionService) FindInteractions(ctx context.Context, filter vipbot.InteractionFilter) ([]*vipbot.Interaction, error) {
	return s.FindInteractionsFn(ctx, filter)
}
