// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus represents the status of an alert job in the queue.
type AlertStatus string

const (
	AlertStatusPending    AlertStatus = "pending"
	AlertStatusProcessing AlertStatus = "processing"
	AlertStatusSent       AlertStatus = "sent"
	AlertStatusFailed     AlertStatus = "failed"
)

// AlertType represents the kind of stock alert.
type AlertType string

const (
	AlertTypeLowStock   AlertType = "low_stock"
	AlertTypeOutOfStock AlertType = "out_of_stock"
)

// AlertJob represents a stock alert email waiting in the queue. The subject
// and body are rendered at queue time so the worker only has to send.
type AlertJob struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Type        AlertType
	SKU         string
	Recipients  []string
	Subject     string
	BodyHTML    string
	BodyText    string
	Status      AlertStatus
	Attempts    int
	MaxAttempts int
	LastError   string
	ProviderID  string
	CreatedAt   time.Time
	ScheduledAt time.Time
	ProcessedAt *time.Time
}

// NewAlertJob creates a new AlertJob with default values.
func NewAlertJob(ownerID uuid.UUID, alertType AlertType, sku string, recipients []string, subject, bodyHTML, bodyText string) *AlertJob {
	now := time.Now().UTC()
	return &AlertJob{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Type:        alertType,
		SKU:         sku,
		Recipients:  recipients,
		Subject:     subject,
		BodyHTML:    bodyHTML,
		BodyText:    bodyText,
		Status:      AlertStatusPending,
		Attempts:    0,
		MaxAttempts: 3,
		CreatedAt:   now,
		ScheduledAt: now,
	}
}

// MarkProcessing marks the alert job as currently being processed.
func (a *AlertJob) MarkProcessing() {
	a.Status = AlertStatusProcessing
}

// MarkSent marks the alert job as successfully sent.
func (a *AlertJob) MarkSent(providerID string) {
	a.Status = AlertStatusSent
	a.ProviderID = providerID
	now := time.Now().UTC()
	a.ProcessedAt = &now
}

// MarkFailed marks the alert job as failed and schedules a retry if attempts remain.
func (a *AlertJob) MarkFailed(err error, permanent bool) {
	a.Attempts++
	a.LastError = err.Error()

	if permanent || a.Attempts >= a.MaxAttempts {
		a.Status = AlertStatusFailed
		now := time.Now().UTC()
		a.ProcessedAt = &now
	} else {
		a.Status = AlertStatusPending
		a.ScheduledAt = a.calculateNextRetry()
	}
}

// calculateNextRetry calculates the next retry time using exponential backoff.
// Retry delays: 0s (immediate), 1min, 5min
func (a *AlertJob) calculateNextRetry() time.Time {
	delays := []time.Duration{0, 1 * time.Minute, 5 * time.Minute}
	if a.Attempts < len(delays) {
		return time.Now().UTC().Add(delays[a.Attempts])
	}
	return time.Now().UTC().Add(5 * time.Minute)
}

// CanRetry returns true if the alert job can be retried.
func (a *AlertJob) CanRetry() bool {
	return a.Attempts < a.MaxAttempts
}
