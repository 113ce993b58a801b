// Package export builds CSV downloads of filtered sales and expenses.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/application/usecase/report"
	domainerror "github.com/stockbook/backend/internal/domain/error"
)

// RecordKind selects which collection is exported.
type RecordKind string

const (
	RecordKindSales    RecordKind = "sales"
	RecordKindExpenses RecordKind = "expenses"
)

const exportDateLayout = "2006-01-02"

var (
	salesHeader   = []string{"Date", "Product", "Quantity", "Unit Price", "Total", "Customer", "Payment Method"}
	expenseHeader = []string{"Date", "Category", "Description", "Amount", "Payment Method", "Status"}
)

// ExportRecordsInput represents the input for a CSV export.
type ExportRecordsInput struct {
	OwnerID    uuid.UUID
	Kind       RecordKind
	Period     report.PeriodToken
	Now        time.Time
	CustomDate *time.Time
}

// ExportRecordsOutput carries the rendered CSV and the filename the download
// should use.
type ExportRecordsOutput struct {
	Filename string
	Data     []byte
}

// ExportRecordsUseCase renders the owner's filtered sales or expenses as CSV.
// The same period resolver and filter feed the dashboard, so an export always
// matches the totals on screen.
type ExportRecordsUseCase struct {
	saleRepo    adapter.SaleRepository
	expenseRepo adapter.ExpenseRepository
}

// NewExportRecordsUseCase creates a new ExportRecordsUseCase instance.
func NewExportRecordsUseCase(saleRepo adapter.SaleRepository, expenseRepo adapter.ExpenseRepository) *ExportRecordsUseCase {
	return &ExportRecordsUseCase{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
	}
}

// Execute builds the CSV export.
func (uc *ExportRecordsUseCase) Execute(ctx context.Context, input ExportRecordsInput) (*ExportRecordsOutput, error) {
	dateRange, err := report.ResolvePeriod(input.Period, input.Now, input.CustomDate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch input.Kind {
	case RecordKindSales:
		if err := uc.writeSales(ctx, w, input.OwnerID, dateRange); err != nil {
			return nil, err
		}
	case RecordKindExpenses:
		if err := uc.writeExpenses(ctx, w, input.OwnerID, dateRange); err != nil {
			return nil, err
		}
	default:
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidExportKind,
			fmt.Sprintf("unknown export kind: %s", input.Kind),
			domainerror.ErrInvalidExportKind,
		)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render csv: %w", err)
	}

	return &ExportRecordsOutput{
		Filename: fmt.Sprintf("%s-%s.csv", input.Kind, input.Now.Format(exportDateLayout)),
		Data:     buf.Bytes(),
	}, nil
}

func (uc *ExportRecordsUseCase) writeSales(ctx context.Context, w *csv.Writer, ownerID uuid.UUID, r report.DateRange) error {
	sales, err := uc.saleRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}

	filtered, _ := report.FilterByDate(sales, r)

	if err := w.Write(salesHeader); err != nil {
		return err
	}
	for _, s := range filtered {
		row := []string{
			s.Date.Format(exportDateLayout),
			s.ProductName,
			strconv.Itoa(s.Quantity),
			s.UnitPrice.StringFixed(2),
			s.Total.StringFixed(2),
			s.Customer,
			string(s.PaymentMethod),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ExportRecordsUseCase) writeExpenses(ctx context.Context, w *csv.Writer, ownerID uuid.UUID, r report.DateRange) error {
	expenses, err := uc.expenseRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	filtered, _ := report.FilterByDate(expenses, r)

	if err := w.Write(expenseHeader); err != nil {
		return err
	}
	for _, e := range filtered {
		row := []string{
			e.Date.Format(exportDateLayout),
			e.Category,
			e.Description,
			e.ExpenseAmount.StringFixed(2),
			string(e.PaymentMethod),
			string(e.Status),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
