// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// Collection names used in change notifications.
const (
	CollectionSales     = "sales"
	CollectionExpenses  = "expenses"
	CollectionInventory = "inventory"
)

// ChangePublisher announces that an owner's collection changed. Subscribers
// react by reloading a full snapshot; notifications carry no payload beyond
// the collection name, matching the store's replace-the-world model.
type ChangePublisher interface {
	// PublishChange is fire-and-forget: write paths must not fail because a
	// notification could not be delivered.
	PublishChange(ctx context.Context, ownerID uuid.UUID, collection string)
}
