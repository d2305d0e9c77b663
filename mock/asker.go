package mock

import (
	"context"

	"github.com/fwojciec/vipbot"
)

var _ vipbot.Asker = (*Asker)(nil)

// Asker is a mock implementation of vipbot.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string, related []*vipbot.Product) (string, error)
}

func (a *Asker) Ask(ctx context.Context, question string, related []*vipbot.Product) (string, error) {
	return a.AskFn(ctx, question, related)
}
