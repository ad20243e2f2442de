// internal/storage/bar/interface.go
package bar

import (
	"context"

	"github.com/finsig/finsig/internal/core"
)

// Record is a stored bar with its assigned ID.
type Record struct {
	ID string `json:"id"`
	core.Bar
}

// Store defines the interface for ticker bar persistence. Implementations
// keep records ordered by timestamp, with ties broken by insertion order.
type Store interface {
	// Save persists a single bar and assigns an ID.
	Save(ctx context.Context, b core.Bar) (Record, error)

	// SaveBulk persists many bars in one call, preserving input order
	// for equal timestamps.
	SaveBulk(ctx context.Context, bars []core.Bar) ([]Record, error)

	// List returns all records in timestamp order.
	List(ctx context.Context) ([]Record, error)

	// Bars returns all stored bars in timestamp order.
	Bars(ctx context.Context) ([]core.Bar, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every record and reports how many were removed.
	DeleteAll(ctx context.Context) (int, error)
}
