package mock

import (
	"context"

	"github.com/fwojciec/vipbot"
)

var _ vipbot.Source = (*Source)(nil)

// Source is a mock implementation of vipbot.Source.
type Source struct {
	FetchDatasetFn  func(ctx context.Context) (string, error)
	FetchRevisionFn func(ctx context.Context) (string, error)
}

func (s *Source) FetchDataset(ctx context.Context) (string, error) {
	return s.FetchDatasetFn(ctx)
}

func (s *Source) FetchRevision(ctx context.Context) (string, error) {
	return s.FetchRevisionFn(ctx)
}
