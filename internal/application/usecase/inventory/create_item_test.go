package inventory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

type fakeInventoryRepository struct {
	items []*entity.InventoryItem
	err   error
}

func (f *fakeInventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, domainerror.ErrItemNotFound
}

func (f *fakeInventoryRepository) FindBySKU(ctx context.Context, ownerID uuid.UUID, sku string) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.OwnerID == ownerID && it.SKU == sku {
			return it, nil
		}
	}
	return nil, domainerror.ErrItemNotFound
}

func (f *fakeInventoryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.InventoryItem, error) {
	return f.items, f.err
}

func (f *fakeInventoryRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*entity.InventoryItem, error) {
	item, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Quantity += delta
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	return item, nil
}

func (f *fakeInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrItemNotFound
}

func (f *fakeInventoryRepository) DistinctOwners(ctx context.Context) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]bool)
	var owners []uuid.UUID
	for _, it := range f.items {
		if !seen[it.OwnerID] {
			seen[it.OwnerID] = true
			owners = append(owners, it.OwnerID)
		}
	}
	return owners, nil
}

type fakePublisher struct {
	collections []string
}

func (f *fakePublisher) PublishChange(ctx context.Context, ownerID uuid.UUID, collection string) {
	f.collections = append(f.collections, collection)
}

func TestCreateItem_GeneratesSKU(t *testing.T) {
	repo := &fakeInventoryRepository{}
	uc := NewCreateItemUseCase(repo, &fakePublisher{})

	out, err := uc.Execute(context.Background(), CreateItemInput{
		OwnerID:  uuid.New(),
		Product:  "Arabica Beans",
		Category: "Coffee",
		Quantity: 12,
		Cost:     decimal.NewFromInt(8),
		Price:    decimal.NewFromInt(15),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.HasPrefix(out.Item.SKU, "COF-") {
		t.Errorf("SKU = %q, want COF- prefix", out.Item.SKU)
	}
	if out.Item.ReorderLevel != entity.DefaultReorderLevel {
		t.Errorf("ReorderLevel = %d, want default %d", out.Item.ReorderLevel, entity.DefaultReorderLevel)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 created item, got %d", len(repo.items))
	}
}

func TestCreateItem_DuplicateSKU(t *testing.T) {
	ownerID := uuid.New()
	existing := entity.NewInventoryItem(ownerID, "COF-1", "Beans", "Coffee", 5, decimal.NewFromInt(8), decimal.NewFromInt(15), 5)
	repo := &fakeInventoryRepository{items: []*entity.InventoryItem{existing}}

	uc := NewCreateItemUseCase(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), CreateItemInput{
		OwnerID:  ownerID,
		SKU:      "COF-1",
		Product:  "More Beans",
		Category: "Coffee",
		Quantity: 3,
	})
	if !errors.Is(err, domainerror.ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	uc := NewCreateItemUseCase(&fakeInventoryRepository{}, &fakePublisher{})

	tests := []struct {
		name    string
		input   CreateItemInput
		wantErr error
	}{
		{
			name:    "blank product name",
			input:   CreateItemInput{OwnerID: uuid.New(), Product: "  ", Quantity: 1},
			wantErr: domainerror.ErrMissingProductName,
		},
		{
			name:    "negative quantity",
			input:   CreateItemInput{OwnerID: uuid.New(), Product: "Beans", Quantity: -1},
			wantErr: domainerror.ErrInvalidItemQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRestockItem(t *testing.T) {
	ownerID := uuid.New()
	item := entity.NewInventoryItem(ownerID, "COF-1", "Beans", "Coffee", 2, decimal.NewFromInt(8), decimal.NewFromInt(15), 5)
	repo := &fakeInventoryRepository{items: []*entity.InventoryItem{item}}
	publisher := &fakePublisher{}

	uc := NewRestockItemUseCase(repo, publisher)

	out, err := uc.Execute(context.Background(), RestockItemInput{
		ItemID:   item.ID,
		OwnerID:  ownerID,
		Quantity: 10,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Item.Quantity != 12 {
		t.Errorf("Quantity = %d, want 12", out.Item.Quantity)
	}
	if len(publisher.collections) != 1 {
		t.Errorf("expected inventory notification, got %v", publisher.collections)
	}
}

func TestRestockItem_RejectsNonPositiveQuantity(t *testing.T) {
	uc := NewRestockItemUseCase(&fakeInventoryRepository{}, &fakePublisher{})

	for _, qty := range []int{0, -3} {
		_, err := uc.Execute(context.Background(), RestockItemInput{
			ItemID:   uuid.New(),
			OwnerID:  uuid.New(),
			Quantity: qty,
		})
		if !errors.Is(err, domainerror.ErrInvalidRestockQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidRestockQuantity, got %v", qty, err)
		}
	}
}

func TestRestockItem_OwnerMismatch(t *testing.T) {
	item := entity.NewInventoryItem(uuid.New(), "COF-1", "Beans", "Coffee", 2, decimal.NewFromInt(8), decimal.NewFromInt(15), 5)
	repo := &fakeInventoryRepository{items: []*entity.InventoryItem{item}}

	uc := NewRestockItemUseCase(repo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), RestockItemInput{
		ItemID:   item.ID,
		OwnerID:  uuid.New(),
		Quantity: 5,
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifyItem) {
		t.Fatalf("expected ErrNotAuthorizedToModifyItem, got %v", err)
	}
}

func TestListItems_StatusFilterKeepsFullCounts(t *testing.T) {
	ownerID := uuid.New()
	items := []*entity.InventoryItem{
		entity.NewInventoryItem(ownerID, "A-1", "Plenty", "Misc", 50, decimal.Zero, decimal.Zero, 5),
		entity.NewInventoryItem(ownerID, "B-1", "Low", "Misc", 3, decimal.Zero, decimal.Zero, 5),
		entity.NewInventoryItem(ownerID, "C-1", "Gone", "Misc", 0, decimal.Zero, decimal.Zero, 5),
	}
	repo := &fakeInventoryRepository{items: items}

	uc := NewListItemsUseCase(repo)

	out, err := uc.Execute(context.Background(), ListItemsInput{
		OwnerID:      ownerID,
		StatusFilter: entity.StockStatusLow,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(out.Items) != 1 || out.Items[0].Product != "Low" {
		t.Errorf("expected only the low item, got %d items", len(out.Items))
	}
	// Counts describe the whole inventory regardless of the list filter.
	if out.Stock.LowStock != 1 || out.Stock.OutOfStock != 1 {
		t.Errorf("Stock = %+v, want 1 low / 1 out", out.Stock)
	}
}
