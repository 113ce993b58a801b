// Package alert contains stock alert use cases.
package alert

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
)

// CheckLowStockInput represents the input for a low-stock sweep.
type CheckLowStockInput struct {
	OwnerID uuid.UUID
}

// CheckLowStockOutput represents the output of a low-stock sweep.
type CheckLowStockOutput struct {
	QueuedJobs int
}

// CheckLowStockUseCase scans an owner's inventory and queues one alert email
// per item that sits at or below its reorder level. The queue repository's
// deduplication window prevents re-alerting on every sweep while an item
// stays low; a low item that later runs out still triggers a fresh
// out-of-stock alert because the alert type differs.
type CheckLowStockUseCase struct {
	inventoryRepo adapter.InventoryRepository
	alertRepo     adapter.AlertQueueRepository
	recipients    []string
}

// NewCheckLowStockUseCase creates a new CheckLowStockUseCase instance.
func NewCheckLowStockUseCase(
	inventoryRepo adapter.InventoryRepository,
	alertRepo adapter.AlertQueueRepository,
	recipients []string,
) *CheckLowStockUseCase {
	return &CheckLowStockUseCase{
		inventoryRepo: inventoryRepo,
		alertRepo:     alertRepo,
		recipients:    recipients,
	}
}

// Execute performs the sweep and returns how many alerts were queued.
func (uc *CheckLowStockUseCase) Execute(ctx context.Context, input CheckLowStockInput) (*CheckLowStockOutput, error) {
	if len(uc.recipients) == 0 {
		return &CheckLowStockOutput{QueuedJobs: 0}, nil
	}

	items, err := uc.inventoryRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	queued := 0
	for _, item := range items {
		var alertType entity.AlertType
		switch item.Status() {
		case entity.StockStatusOut:
			alertType = entity.AlertTypeOutOfStock
		case entity.StockStatusLow:
			alertType = entity.AlertTypeLowStock
		default:
			continue
		}

		recent, err := uc.alertRepo.HasRecentAlert(ctx, input.OwnerID, item.SKU, alertType)
		if err != nil {
			return nil, fmt.Errorf("failed to check recent alerts: %w", err)
		}
		if recent {
			continue
		}

		job := buildAlertJob(input.OwnerID, alertType, item, uc.recipients)
		if err := uc.alertRepo.Create(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to queue alert: %w", err)
		}
		queued++
	}

	return &CheckLowStockOutput{QueuedJobs: queued}, nil
}

// ExecuteAll runs the sweep for every owner that has inventory. Used by the
// periodic background sweep; a failing owner aborts the run so the next tick
// retries from scratch.
func (uc *CheckLowStockUseCase) ExecuteAll(ctx context.Context) (*CheckLowStockOutput, error) {
	if len(uc.recipients) == 0 {
		return &CheckLowStockOutput{QueuedJobs: 0}, nil
	}

	owners, err := uc.inventoryRepo.DistinctOwners(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory owners: %w", err)
	}

	queued := 0
	for _, ownerID := range owners {
		output, err := uc.Execute(ctx, CheckLowStockInput{OwnerID: ownerID})
		if err != nil {
			return nil, err
		}
		queued += output.QueuedJobs
	}

	return &CheckLowStockOutput{QueuedJobs: queued}, nil
}

// buildAlertJob renders the email at queue time so the delivery worker never
// needs inventory access.
func buildAlertJob(ownerID uuid.UUID, alertType entity.AlertType, item *entity.InventoryItem, recipients []string) *entity.AlertJob {
	var subject, headline string
	switch alertType {
	case entity.AlertTypeOutOfStock:
		subject = fmt.Sprintf("Out of stock: %s", item.Product)
		headline = fmt.Sprintf("%s (SKU %s) is out of stock.", item.Product, item.SKU)
	default:
		subject = fmt.Sprintf("Low stock: %s", item.Product)
		headline = fmt.Sprintf("%s (SKU %s) is down to %d units (reorder level %d).",
			item.Product, item.SKU, item.Quantity, item.ReorderLevel)
	}

	bodyText := headline + "\n\nRestock it from the inventory page."
	bodyHTML := fmt.Sprintf(
		"<p>%s</p><p>Restock it from the inventory page.</p>",
		headline,
	)

	return entity.NewAlertJob(ownerID, alertType, item.SKU, recipients, subject, bodyHTML, bodyText)
}
