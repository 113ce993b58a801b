// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/stockbook/backend/internal/domain/entity"
)

// AlertQueueModel represents the alert_queue table in the database.
type AlertQueueModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type        string         `gorm:"type:varchar(20);not null;index"`
	SKU         string         `gorm:"type:varchar(50);not null;index"`
	Recipients  pq.StringArray `gorm:"type:text[];not null"`
	Subject     string         `gorm:"type:varchar(500);not null"`
	BodyHTML    string         `gorm:"type:text;not null"`
	BodyText    string         `gorm:"type:text;not null"`
	Status      string         `gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts    int            `gorm:"not null;default:0"`
	MaxAttempts int            `gorm:"not null;default:3"`
	LastError   string         `gorm:"type:text"`
	ProviderID  string         `gorm:"type:varchar(100)"`
	CreatedAt   time.Time      `gorm:"not null"`
	ScheduledAt time.Time      `gorm:"not null"`
	ProcessedAt sql.NullTime   `gorm:"type:timestamptz"`
}

// TableName returns the table name for the AlertQueueModel.
func (AlertQueueModel) TableName() string {
	return "alert_queue"
}

// ToEntity converts an AlertQueueModel to a domain AlertJob entity.
func (m *AlertQueueModel) ToEntity() *entity.AlertJob {
	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}

	return &entity.AlertJob{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Type:        entity.AlertType(m.Type),
		SKU:         m.SKU,
		Recipients:  m.Recipients,
		Subject:     m.Subject,
		BodyHTML:    m.BodyHTML,
		BodyText:    m.BodyText,
		Status:      entity.AlertStatus(m.Status),
		Attempts:    m.Attempts,
		MaxAttempts: m.MaxAttempts,
		LastError:   m.LastError,
		ProviderID:  m.ProviderID,
		CreatedAt:   m.CreatedAt,
		ScheduledAt: m.ScheduledAt,
		ProcessedAt: processedAt,
	}
}

// AlertQueueModelFromEntity creates an AlertQueueModel from a domain AlertJob entity.
func AlertQueueModelFromEntity(job *entity.AlertJob) *AlertQueueModel {
	var processedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}

	return &AlertQueueModel{
		ID:          job.ID,
		OwnerID:     job.OwnerID,
		Type:        string(job.Type),
		SKU:         job.SKU,
		Recipients:  pq.StringArray(job.Recipients),
		Subject:     job.Subject,
		BodyHTML:    job.BodyHTML,
		BodyText:    job.BodyText,
		Status:      string(job.Status),
		Attempts:    job.Attempts,
		MaxAttempts: job.MaxAttempts,
		LastError:   job.LastError,
		ProviderID:  job.ProviderID,
		CreatedAt:   job.CreatedAt,
		ScheduledAt: job.ScheduledAt,
		ProcessedAt: processedAt,
	}
}
