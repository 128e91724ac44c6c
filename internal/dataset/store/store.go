// Package store holds the dataset snapshot the dashboard serves from. Stores
// are interface-driven so handlers and the admin reload stay testable.
package store

import (
	"context"

	"covidboard/internal/dataset"
	dErrors "covidboard/pkg/domain-errors"
)

// ErrNotLoaded is returned before the first ingestion completes.
var ErrNotLoaded = dErrors.New(dErrors.CodeUnavailable, "dataset not loaded yet")

// SnapshotStore exposes the current table and swaps in a replacement. The
// table itself is immutable; only the pointer moves.
type SnapshotStore interface {
	Current(ctx context.Context) (*dataset.Table, error)
	Replace(ctx context.Context, table *dataset.Table) error
}
