package stream

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/stockbook/backend/internal/application/usecase/report"
)

// Watcher subscribes to change notifications and keeps the metrics holder
// current. Every notification triggers a full snapshot reload and a complete
// re-aggregation; nothing is patched incrementally, so a burst of changes
// converges on the last write's state regardless of delivery order.
type Watcher struct {
	client    *redis.Client
	snapshots report.SnapshotRepository
	holder    *MetricsHolder
}

// NewWatcher creates a new snapshot watcher.
func NewWatcher(client *redis.Client, snapshots report.SnapshotRepository, holder *MetricsHolder) *Watcher {
	return &Watcher{
		client:    client,
		snapshots: snapshots,
		holder:    holder,
	}
}

// Run subscribes to all owners' change channels and processes notifications
// until the context is cancelled. If the subscription cannot be established
// the holder stays empty and consumers keep seeing "no data".
func (w *Watcher) Run(ctx context.Context) error {
	sub := w.client.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	// Fail fast when Redis is unreachable rather than looping on a dead
	// subscription.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	slog.Info("snapshot watcher started")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, msg *redis.Message) {
	ownerID, err := ParseOwnerID(msg.Channel)
	if err != nil {
		slog.Warn("ignoring notification on unexpected channel", "channel", msg.Channel)
		return
	}

	snapshot, err := w.snapshots.LoadSnapshot(ctx, ownerID)
	if err != nil {
		// Keep the previous metrics: stale data beats losing the holder
		// entry, and the next notification retries anyway.
		slog.Error("failed to reload snapshot",
			"owner_id", ownerID,
			"collection", msg.Payload,
			"error", err,
		)
		return
	}

	metrics := report.Summarize(snapshot, report.UnboundedRange())
	w.holder.Set(ownerID, metrics)

	slog.Debug("snapshot recomputed",
		"owner_id", ownerID,
		"collection", msg.Payload,
		"transactions", metrics.TransactionCount,
	)
}
