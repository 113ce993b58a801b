// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/application/usecase/report"
)

// snapshotRepository loads an owner's full dataset through the individual
// repositories. Reporting always works from a complete snapshot rather than
// querying aggregates in SQL, so the dashboard, the lists, and the exports
// share one filtering code path.
type snapshotRepository struct {
	saleRepo      adapter.SaleRepository
	expenseRepo   adapter.ExpenseRepository
	inventoryRepo adapter.InventoryRepository
}

// NewSnapshotRepository creates a new snapshot repository instance.
func NewSnapshotRepository(
	saleRepo adapter.SaleRepository,
	expenseRepo adapter.ExpenseRepository,
	inventoryRepo adapter.InventoryRepository,
) report.SnapshotRepository {
	return &snapshotRepository{
		saleRepo:      saleRepo,
		expenseRepo:   expenseRepo,
		inventoryRepo: inventoryRepo,
	}
}

// LoadSnapshot retrieves the owner's sales, expenses, and inventory.
func (r *snapshotRepository) LoadSnapshot(ctx context.Context, ownerID uuid.UUID) (*report.Snapshot, error) {
	sales, err := r.saleRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	expenses, err := r.expenseRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	items, err := r.inventoryRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	return &report.Snapshot{
		Sales:    sales,
		Expenses: expenses,
		Items:    items,
	}, nil
}
