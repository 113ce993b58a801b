// Package stream propagates data-change notifications between the write paths
// and the snapshot watcher over Redis pub/sub.
package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stockbook/backend/internal/application/adapter"
)

// channelPrefix is the Redis channel namespace for change notifications. The
// full channel is "stockbook:changes:<ownerID>" and the payload is the
// collection name.
const channelPrefix = "stockbook:changes:"

// ChannelFor returns the notification channel for an owner.
func ChannelFor(ownerID uuid.UUID) string {
	return channelPrefix + ownerID.String()
}

// redisPublisher implements adapter.ChangePublisher over Redis pub/sub.
type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis-backed change publisher.
func NewRedisPublisher(client *redis.Client) adapter.ChangePublisher {
	return &redisPublisher{
		client: client,
	}
}

// PublishChange announces that an owner's collection changed. Delivery is best
// effort: a write must never fail because Redis is down, so errors are logged
// and swallowed. The watcher reloads everything on each notification, which
// also means a dropped message is repaired by the next successful one.
func (p *redisPublisher) PublishChange(ctx context.Context, ownerID uuid.UUID, collection string) {
	if err := p.client.Publish(ctx, ChannelFor(ownerID), collection).Err(); err != nil {
		slog.Warn("failed to publish change notification",
			"owner_id", ownerID,
			"collection", collection,
			"error", err,
		)
	}
}

// ParseOwnerID extracts the owner ID from a notification channel name.
func ParseOwnerID(channel string) (uuid.UUID, error) {
	if len(channel) <= len(channelPrefix) || channel[:len(channelPrefix)] != channelPrefix {
		return uuid.Nil, fmt.Errorf("not a change channel: %s", channel)
	}
	return uuid.Parse(channel[len(channelPrefix):])
}
