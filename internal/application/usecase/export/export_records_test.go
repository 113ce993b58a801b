package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/usecase/report"
	"github.com/stockbook/backend/internal/domain/entity"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

type stubSaleRepository struct {
	sales []*entity.Sale
	err   error
}

func (s *stubSaleRepository) CreateWithStockDeduction(ctx context.Context, sale *entity.Sale) error {
	return nil
}

func (s *stubSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return nil, domainerror.ErrSaleNotFound
}

func (s *stubSaleRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Sale, error) {
	return s.sales, s.err
}

func (s *stubSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubExpenseRepository struct {
	expenses []*entity.Expense
	err      error
}

func (s *stubExpenseRepository) CreateBatch(ctx context.Context, expenses []*entity.Expense) error {
	return nil
}

func (s *stubExpenseRepository) FindByID(ctx context.Context, id string) (*entity.Expense, error) {
	return nil, domainerror.ErrExpenseNotFound
}

func (s *stubExpenseRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Expense, error) {
	return s.expenses, s.err
}

func (s *stubExpenseRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestExportRecords_SalesCSV(t *testing.T) {
	ownerID := uuid.New()
	sales := []*entity.Sale{
		{
			ID:            uuid.New(),
			OwnerID:       ownerID,
			Date:          date(2025, time.January, 10),
			ProductName:   "Coffee, Large",
			Quantity:      3,
			UnitPrice:     decimal.NewFromFloat(2.50),
			Total:         decimal.NewFromFloat(7.50),
			Customer:      "Walk-in Customer",
			PaymentMethod: entity.PaymentMethodCash,
		},
		{
			ID:            uuid.New(),
			OwnerID:       ownerID,
			Date:          date(2025, time.February, 1), // outside January
			ProductName:   "Tea",
			Quantity:      1,
			UnitPrice:     decimal.NewFromInt(2),
			Total:         decimal.NewFromInt(2),
			Customer:      "Walk-in Customer",
			PaymentMethod: entity.PaymentMethodCard,
		},
	}

	uc := NewExportRecordsUseCase(&stubSaleRepository{sales: sales}, &stubExpenseRepository{})
	custom := date(2025, time.January, 15)

	out, err := uc.Execute(context.Background(), ExportRecordsInput{
		OwnerID:    ownerID,
		Kind:       RecordKindSales,
		Period:     report.PeriodMonth,
		Now:        custom,
		CustomDate: nil,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out.Data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "Date,Product,Quantity,Unit Price,Total,Customer,Payment Method" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	// Field with a comma must come out quoted.
	if lines[1] != `2025-01-10,"Coffee, Large",3,2.50,7.50,Walk-in Customer,cash` {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if out.Filename != "sales-2025-01-15.csv" {
		t.Errorf("unexpected filename: %q", out.Filename)
	}
}

func TestExportRecords_ExpensesCSV(t *testing.T) {
	ownerID := uuid.New()
	expenses := []*entity.Expense{
		{
			ID:            "EXP-1736500000000-0",
			OwnerID:       ownerID,
			Date:          date(2025, time.January, 5),
			Category:      "Rent",
			Description:   "January rent",
			ExpenseAmount: decimal.NewFromInt(450),
			PaymentMethod: entity.PaymentMethodTransfer,
			Status:        entity.ExpenseStatusPaid,
		},
	}

	uc := NewExportRecordsUseCase(&stubSaleRepository{}, &stubExpenseRepository{expenses: expenses})

	out, err := uc.Execute(context.Background(), ExportRecordsInput{
		OwnerID: ownerID,
		Kind:    RecordKindExpenses,
		Period:  report.PeriodAll,
		Now:     date(2025, time.March, 1),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out.Data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Date,Category,Description,Amount,Payment Method,Status" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2025-01-05,Rent,January rent,450.00,transfer,Paid" {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestExportRecords_EmptyStillWritesHeader(t *testing.T) {
	uc := NewExportRecordsUseCase(&stubSaleRepository{}, &stubExpenseRepository{})

	out, err := uc.Execute(context.Background(), ExportRecordsInput{
		OwnerID: uuid.New(),
		Kind:    RecordKindSales,
		Period:  report.PeriodToday,
		Now:     date(2025, time.June, 1),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got := strings.TrimRight(string(out.Data), "\n"); got != "Date,Product,Quantity,Unit Price,Total,Customer,Payment Method" {
		t.Errorf("expected header only, got %q", got)
	}
}

func TestExportRecords_UnknownKind(t *testing.T) {
	uc := NewExportRecordsUseCase(&stubSaleRepository{}, &stubExpenseRepository{})

	_, err := uc.Execute(context.Background(), ExportRecordsInput{
		OwnerID: uuid.New(),
		Kind:    RecordKind("pdf"),
		Period:  report.PeriodToday,
		Now:     date(2025, time.June, 1),
	})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}

	var reportErr *domainerror.ReportError
	if !errors.As(err, &reportErr) {
		t.Fatalf("expected ReportError, got %T", err)
	}
	if reportErr.Code != domainerror.ErrCodeInvalidExportKind {
		t.Errorf("unexpected code: %s", reportErr.Code)
	}
}

func TestExportRecords_InvalidPeriodFailsBeforeLoad(t *testing.T) {
	saleRepo := &stubSaleRepository{err: errors.New("should not be called")}
	uc := NewExportRecordsUseCase(saleRepo, &stubExpenseRepository{})

	_, err := uc.Execute(context.Background(), ExportRecordsInput{
		OwnerID: uuid.New(),
		Kind:    RecordKindSales,
		Period:  report.PeriodToken("quarter"),
		Now:     date(2025, time.June, 1),
	})
	if !errors.Is(err, domainerror.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}
