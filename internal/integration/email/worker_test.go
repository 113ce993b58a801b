package email

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

type fakeAlertQueue struct {
	jobs    []*entity.AlertJob
	updates []*entity.AlertJob
}

func (f *fakeAlertQueue) Create(ctx context.Context, job *entity.AlertJob) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeAlertQueue) GetPendingJobs(ctx context.Context, limit int) ([]*entity.AlertJob, error) {
	var pending []*entity.AlertJob
	for _, j := range f.jobs {
		if j.Status == entity.AlertStatusPending {
			pending = append(pending, j)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (f *fakeAlertQueue) Update(ctx context.Context, job *entity.AlertJob) error {
	f.updates = append(f.updates, job)
	return nil
}

func (f *fakeAlertQueue) GetByID(ctx context.Context, id uuid.UUID) (*entity.AlertJob, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, domainerror.ErrAlertJobNotFound
}

func (f *fakeAlertQueue) HasRecentAlert(ctx context.Context, ownerID uuid.UUID, sku string, alertType entity.AlertType) (bool, error) {
	return false, nil
}

func (f *fakeAlertQueue) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

func pendingJob() *entity.AlertJob {
	return entity.NewAlertJob(
		uuid.New(),
		entity.AlertTypeLowStock,
		"COF-1",
		[]string{"owner@shop.test"},
		"Low stock: Coffee Beans",
		"<p>Coffee Beans (SKU COF-1) is down to 3 units.</p>",
		"Coffee Beans (SKU COF-1) is down to 3 units.",
	)
}

func TestWorker_SendsPendingJob(t *testing.T) {
	job := pendingJob()
	queue := &fakeAlertQueue{jobs: []*entity.AlertJob{job}}
	sender := NewMockEmailSender()

	w := NewWorker(queue, sender, DefaultWorkerConfig())
	w.processBatch(context.Background())

	if len(sender.SentEmails) != 1 {
		t.Fatalf("expected 1 sent email, got %d", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.Subject != "Low stock: Coffee Beans" {
		t.Errorf("unexpected subject: %q", sent.Subject)
	}
	if len(sent.To) != 1 || sent.To[0] != "owner@shop.test" {
		t.Errorf("unexpected recipients: %v", sent.To)
	}
	if job.Status != entity.AlertStatusSent {
		t.Errorf("Status = %s, want sent", job.Status)
	}
	if job.ProviderID == "" {
		t.Error("ProviderID should be recorded")
	}
}

func TestWorker_TemporaryFailureSchedulesRetry(t *testing.T) {
	job := pendingJob()
	queue := &fakeAlertQueue{jobs: []*entity.AlertJob{job}}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("rate limited"), false)

	w := NewWorker(queue, sender, DefaultWorkerConfig())
	w.processBatch(context.Background())

	if job.Status != entity.AlertStatusPending {
		t.Errorf("Status = %s, want pending for retry", job.Status)
	}
	if job.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", job.Attempts)
	}
}

func TestWorker_PermanentFailureDoesNotRetry(t *testing.T) {
	job := pendingJob()
	queue := &fakeAlertQueue{jobs: []*entity.AlertJob{job}}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("422 validation error"), true)

	w := NewWorker(queue, sender, DefaultWorkerConfig())
	w.processBatch(context.Background())

	if job.Status != entity.AlertStatusFailed {
		t.Errorf("Status = %s, want failed", job.Status)
	}
}

func TestWorker_ExhaustedAttemptsFail(t *testing.T) {
	job := pendingJob()
	queue := &fakeAlertQueue{jobs: []*entity.AlertJob{job}}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("server error"), false)

	w := NewWorker(queue, sender, DefaultWorkerConfig())
	for i := 0; i < job.MaxAttempts; i++ {
		job.Status = entity.AlertStatusPending
		job.ScheduledAt = job.CreatedAt // make it due again
		w.processJob(context.Background(), job)
	}

	if job.Status != entity.AlertStatusFailed {
		t.Errorf("Status = %s after %d attempts, want failed", job.Status, job.Attempts)
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unauthorized", errors.New("401 unauthorized"), true},
		{"validation", errors.New("validation failed: missing to"), true},
		{"rate limit", errors.New("429 too many requests"), false},
		{"server error", errors.New("500 internal server error"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanentError(tt.err); got != tt.want {
				t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
