// Package report contains the time-windowed financial aggregation core.
package report

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/entity"
)

// Snapshot is a full, immutable view of an owner's collections. The external
// store replaces it wholesale on every change; the pipeline never patches one
// incrementally.
type Snapshot struct {
	Sales    []*entity.Sale
	Expenses []*entity.Expense
	Items    []*entity.InventoryItem
}

// SnapshotRepository loads a full snapshot of an owner's records.
type SnapshotRepository interface {
	// LoadSnapshot returns all sales, expenses, and inventory items for the
	// owner. Implementations must not reuse slices between calls.
	LoadSnapshot(ctx context.Context, ownerID uuid.UUID) (*Snapshot, error)
}
