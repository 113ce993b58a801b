// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
	"github.com/stockbook/backend/internal/integration/persistence/model"
)

// recentAlertWindow is how long a queued alert suppresses re-alerting for the
// same SKU and alert type.
const recentAlertWindow = 24 * time.Hour

// alertQueueRepository implements the adapter.AlertQueueRepository interface.
type alertQueueRepository struct {
	db *gorm.DB
}

// NewAlertQueueRepository creates a new alert queue repository instance.
func NewAlertQueueRepository(db *gorm.DB) adapter.AlertQueueRepository {
	return &alertQueueRepository{
		db: db,
	}
}

// Create adds a new alert job to the queue.
func (r *alertQueueRepository) Create(ctx context.Context, job *entity.AlertJob) error {
	result := r.db.WithContext(ctx).Create(model.AlertQueueModelFromEntity(job))
	if result.Error != nil {
		return domainerror.NewAlertError(
			domainerror.ErrCodeAlertQueueFailed,
			"failed to create alert job",
			result.Error,
		)
	}
	return nil
}

// GetPendingJobs retrieves jobs ready to be processed.
func (r *alertQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.AlertJob, error) {
	var models []model.AlertQueueModel

	result := r.db.WithContext(ctx).
		Where("status = ?", entity.AlertStatusPending).
		Where("scheduled_at <= ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	jobs := make([]*entity.AlertJob, len(models))
	for i, m := range models {
		jobs[i] = m.ToEntity()
	}

	return jobs, nil
}

// Update saves changes to an alert job.
func (r *alertQueueRepository) Update(ctx context.Context, job *entity.AlertJob) error {
	result := r.db.WithContext(ctx).Save(model.AlertQueueModelFromEntity(job))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// GetByID retrieves a specific job by its ID.
func (r *alertQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AlertJob, error) {
	var alertModel model.AlertQueueModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&alertModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAlertJobNotFound
		}
		return nil, result.Error
	}
	return alertModel.ToEntity(), nil
}

// HasRecentAlert reports whether an alert of the given type for the SKU was
// queued within the deduplication window. Failed jobs count too: a provider
// outage should not flood the queue with duplicates.
func (r *alertQueueRepository) HasRecentAlert(ctx context.Context, ownerID uuid.UUID, sku string, alertType entity.AlertType) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.AlertQueueModel{}).
		Where("owner_id = ? AND sku = ? AND type = ?", ownerID, sku, alertType).
		Where("created_at > ?", time.Now().UTC().Add(-recentAlertWindow)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// DeleteOldSentJobs removes sent jobs older than the specified number of days.
func (r *alertQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	result := r.db.WithContext(ctx).
		Where("status = ?", entity.AlertStatusSent).
		Where("processed_at < ?", cutoff).
		Delete(&model.AlertQueueModel{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
