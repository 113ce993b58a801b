package stream

import (
	"sync"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/usecase/report"
)

// ownerMetrics is one owner's latest all-time aggregate.
type ownerMetrics struct {
	metrics report.Metrics
}

// MetricsHolder keeps the most recent all-time metrics per owner, replaced
// wholesale on every snapshot delivery. Absence of an entry means no snapshot
// has arrived yet, which consumers must render as "no data", never as zeros.
type MetricsHolder struct {
	mu      sync.RWMutex
	byOwner map[uuid.UUID]ownerMetrics
}

// NewMetricsHolder creates an empty MetricsHolder.
func NewMetricsHolder() *MetricsHolder {
	return &MetricsHolder{
		byOwner: make(map[uuid.UUID]ownerMetrics),
	}
}

// Set replaces the owner's metrics.
func (h *MetricsHolder) Set(ownerID uuid.UUID, m report.Metrics) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.byOwner[ownerID] = ownerMetrics{metrics: m}
}

// Get returns the owner's latest metrics. hasData is false until the first
// snapshot for the owner has been aggregated.
func (h *MetricsHolder) Get(ownerID uuid.UUID) (m report.Metrics, hasData bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	entry, ok := h.byOwner[ownerID]
	if !ok {
		return report.Metrics{}, false
	}
	return entry.metrics, true
}

// Clear drops the owner's metrics, forcing the next read to report no data.
func (h *MetricsHolder) Clear(ownerID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.byOwner, ownerID)
}
