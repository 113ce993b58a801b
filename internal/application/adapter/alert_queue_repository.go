// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/entity"
)

// AlertQueueRepository defines the interface for alert queue persistence operations.
type AlertQueueRepository interface {
	// Create adds a new alert job to the queue.
	Create(ctx context.Context, job *entity.AlertJob) error

	// GetPendingJobs retrieves jobs ready to be processed, ordered by scheduled_at.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.AlertJob, error)

	// Update saves changes to an alert job.
	Update(ctx context.Context, job *entity.AlertJob) error

	// GetByID retrieves a specific job by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AlertJob, error)

	// HasRecentAlert reports whether an alert of the given type for the SKU
	// was queued within the deduplication window. Used to avoid re-alerting
	// on every snapshot while an item stays low.
	HasRecentAlert(ctx context.Context, ownerID uuid.UUID, sku string, alertType entity.AlertType) (bool, error)

	// DeleteOldSentJobs removes sent jobs older than the specified number of days.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
