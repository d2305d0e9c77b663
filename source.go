package vipbot

import "context"

// Source retrieves the published dataset and its revision marker.
type Source interface {
	// FetchDataset returns the raw dataset text.
	// Returns EUNAVAILABLE when the dataset cannot be retrieved.
	FetchDataset(ctx context.Context) (string, error)

	// FetchRevision returns the current revision marker of the dataset.
	// The marker is opaque and only compared for equality.
	// Returns EUNAVAILABLE when the marker cannot be retrieved.
	FetchRevision(ctx context.Context) (string, error)
}
