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

// inventoryRepository implements the adapter.InventoryRepository interface.
type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository instance.
func NewInventoryRepository(db *gorm.DB) adapter.InventoryRepository {
	return &inventoryRepository{
		db: db,
	}
}

// Create adds a new inventory item.
func (r *inventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	result := r.db.WithContext(ctx).Create(model.InventoryItemFromEntity(item))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves an item by its ID.
func (r *inventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	var itemModel model.InventoryItemModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&itemModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrItemNotFound
		}
		return nil, result.Error
	}
	return itemModel.ToEntity(), nil
}

// FindBySKU retrieves an item by owner and SKU.
func (r *inventoryRepository) FindBySKU(ctx context.Context, ownerID uuid.UUID, sku string) (*entity.InventoryItem, error) {
	var itemModel model.InventoryItemModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND sku = ?", ownerID, sku).
		First(&itemModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrItemNotFound
		}
		return nil, result.Error
	}
	return itemModel.ToEntity(), nil
}

// FindByOwner retrieves all items for an owner, ordered by product name.
func (r *inventoryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.InventoryItem, error) {
	var itemModels []model.InventoryItemModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("product ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*entity.InventoryItem, len(itemModels))
	for i, im := range itemModels {
		items[i] = im.ToEntity()
	}
	return items, nil
}

// AdjustQuantity adds delta to an item's quantity in a single UPDATE, flooring
// at zero. Concurrent adjustments serialize on the row lock instead of
// read-modify-write races in application code.
func (r *inventoryRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*entity.InventoryItem, error) {
	result := r.db.WithContext(ctx).Model(&model.InventoryItemModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("CASE WHEN quantity + ? > 0 THEN quantity + ? ELSE 0 END", delta, delta),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerror.ErrItemNotFound
	}

	return r.FindByID(ctx, id)
}

// DistinctOwners lists every owner that has at least one item.
func (r *inventoryRepository) DistinctOwners(ctx context.Context) ([]uuid.UUID, error) {
	var owners []uuid.UUID
	result := r.db.WithContext(ctx).Model(&model.InventoryItemModel{}).
		Distinct("owner_id").
		Pluck("owner_id", &owners)
	if result.Error != nil {
		return nil, result.Error
	}
	return owners, nil
}

// Delete removes an item by ID.
func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.InventoryItemModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrItemNotFound
	}
	return nil
}
