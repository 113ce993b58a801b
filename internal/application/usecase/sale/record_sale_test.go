package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

type fakeSaleRepository struct {
	created []*entity.Sale
	sales   []*entity.Sale
	err     error
}

func (f *fakeSaleRepository) CreateWithStockDeduction(ctx context.Context, sale *entity.Sale) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, sale)
	return nil
}

func (f *fakeSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domainerror.ErrSaleNotFound
}

func (f *fakeSaleRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Sale, error) {
	return f.sales, nil
}

func (f *fakeSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i, s := range f.sales {
		if s.ID == id {
			f.sales = append(f.sales[:i], f.sales[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrSaleNotFound
}

type fakeInventoryRepository struct {
	items []*entity.InventoryItem
}

func (f *fakeInventoryRepository) Create(ctx context.Context, item *entity.InventoryItem) error {
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
	return f.items, nil
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

func TestRecordSale_AdHoc(t *testing.T) {
	saleRepo := &fakeSaleRepository{}
	publisher := &fakePublisher{}
	uc := NewRecordSaleUseCase(saleRepo, &fakeInventoryRepository{}, publisher)

	out, err := uc.Execute(context.Background(), RecordSaleInput{
		OwnerID:       uuid.New(),
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
		ProductName:   "Umbrella",
		Quantity:      2,
		UnitPrice:     decimal.NewFromFloat(9.99),
		PaymentMethod: entity.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := out.Sale.Total.StringFixed(2); got != "19.98" {
		t.Errorf("Total = %s, want 19.98", got)
	}
	if out.Sale.Customer != entity.DefaultCustomer {
		t.Errorf("Customer = %q, want default", out.Sale.Customer)
	}
	if len(saleRepo.created) != 1 {
		t.Fatalf("expected 1 created sale, got %d", len(saleRepo.created))
	}
	if len(publisher.collections) != 1 || publisher.collections[0] != "sales" {
		t.Errorf("expected single sales notification, got %v", publisher.collections)
	}
}

func TestRecordSale_LinkedProductBackfillsName(t *testing.T) {
	ownerID := uuid.New()
	item := entity.NewInventoryItem(ownerID, "COF-1", "Coffee Beans 1kg", "Coffee", 10, decimal.NewFromInt(8), decimal.NewFromInt(15), 5)

	saleRepo := &fakeSaleRepository{}
	publisher := &fakePublisher{}
	uc := NewRecordSaleUseCase(saleRepo, &fakeInventoryRepository{items: []*entity.InventoryItem{item}}, publisher)

	out, err := uc.Execute(context.Background(), RecordSaleInput{
		OwnerID:       ownerID,
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
		ProductID:     &item.ID,
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(15),
		PaymentMethod: entity.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out.Sale.ProductName != "Coffee Beans 1kg" {
		t.Errorf("ProductName = %q, want item's current name", out.Sale.ProductName)
	}
	// A linked sale also invalidates inventory-derived numbers.
	if len(publisher.collections) != 2 {
		t.Errorf("expected sales + inventory notifications, got %v", publisher.collections)
	}
}

func TestRecordSale_LinkedProductBackfillsPrice(t *testing.T) {
	ownerID := uuid.New()
	item := entity.NewInventoryItem(ownerID, "COF-1", "Coffee Beans 1kg", "Coffee", 10, decimal.NewFromInt(8), decimal.NewFromInt(15), 5)

	saleRepo := &fakeSaleRepository{}
	uc := NewRecordSaleUseCase(saleRepo, &fakeInventoryRepository{items: []*entity.InventoryItem{item}}, &fakePublisher{})

	out, err := uc.Execute(context.Background(), RecordSaleInput{
		OwnerID:       ownerID,
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
		ProductID:     &item.ID,
		Quantity:      2,
		PaymentMethod: entity.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := out.Sale.Total.StringFixed(2); got != "30.00" {
		t.Errorf("Total = %s, want item price x quantity", got)
	}
}

func TestRecordSale_ProductOwnedByAnotherUser(t *testing.T) {
	item := entity.NewInventoryItem(uuid.New(), "COF-1", "Coffee", "Coffee", 10, decimal.NewFromInt(8), decimal.NewFromInt(15), 5)

	uc := NewRecordSaleUseCase(&fakeSaleRepository{}, &fakeInventoryRepository{items: []*entity.InventoryItem{item}}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), RecordSaleInput{
		OwnerID:       uuid.New(), // not the item's owner
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
		ProductID:     &item.ID,
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(15),
		PaymentMethod: entity.PaymentMethodCash,
	})
	if !errors.Is(err, domainerror.ErrSaleProductNotFound) {
		t.Fatalf("expected ErrSaleProductNotFound, got %v", err)
	}
}

func TestRecordSale_Validation(t *testing.T) {
	valid := RecordSaleInput{
		OwnerID:       uuid.New(),
		Date:          time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local),
		ProductName:   "Umbrella",
		Quantity:      1,
		UnitPrice:     decimal.NewFromInt(5),
		PaymentMethod: entity.PaymentMethodCash,
	}

	tests := []struct {
		name    string
		mutate  func(*RecordSaleInput)
		wantErr error
	}{
		{
			name:    "zero date",
			mutate:  func(in *RecordSaleInput) { in.Date = time.Time{} },
			wantErr: domainerror.ErrInvalidSaleDate,
		},
		{
			name:    "negative quantity",
			mutate:  func(in *RecordSaleInput) { in.Quantity = -1 },
			wantErr: domainerror.ErrInvalidSaleQuantity,
		},
		{
			name:    "negative price",
			mutate:  func(in *RecordSaleInput) { in.UnitPrice = decimal.NewFromInt(-1) },
			wantErr: domainerror.ErrInvalidSalePrice,
		},
		{
			name:    "unknown payment method",
			mutate:  func(in *RecordSaleInput) { in.PaymentMethod = "crypto" },
			wantErr: domainerror.ErrInvalidPaymentMethod,
		},
	}

	uc := NewRecordSaleUseCase(&fakeSaleRepository{}, &fakeInventoryRepository{}, &fakePublisher{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteSale_OwnerMismatch(t *testing.T) {
	sale := entity.NewSale(uuid.New(), time.Now(), nil, "Umbrella", 1, decimal.NewFromInt(5), "", entity.PaymentMethodCash)
	saleRepo := &fakeSaleRepository{sales: []*entity.Sale{sale}}

	uc := NewDeleteSaleUseCase(saleRepo, &fakePublisher{})

	_, err := uc.Execute(context.Background(), DeleteSaleInput{
		SaleID:  sale.ID,
		OwnerID: uuid.New(),
	})
	if !errors.Is(err, domainerror.ErrNotAuthorizedToModifySale) {
		t.Fatalf("expected ErrNotAuthorizedToModifySale, got %v", err)
	}
	if len(saleRepo.sales) != 1 {
		t.Error("sale should not have been deleted")
	}
}

func TestDeleteSale_DoesNotRestoreStock(t *testing.T) {
	ownerID := uuid.New()
	sale := entity.NewSale(ownerID, time.Now(), nil, "Umbrella", 1, decimal.NewFromInt(5), "", entity.PaymentMethodCash)
	saleRepo := &fakeSaleRepository{sales: []*entity.Sale{sale}}
	publisher := &fakePublisher{}

	uc := NewDeleteSaleUseCase(saleRepo, publisher)

	out, err := uc.Execute(context.Background(), DeleteSaleInput{SaleID: sale.ID, OwnerID: ownerID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Success {
		t.Error("expected Success")
	}
	if len(saleRepo.sales) != 0 {
		t.Error("sale should have been deleted")
	}
	// Deletion corrects the books only; no inventory notification is sent
	// because stock is never restored.
	if len(publisher.collections) != 1 || publisher.collections[0] != "sales" {
		t.Errorf("expected single sales notification, got %v", publisher.collections)
	}
}
