package steps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/domain/entity"
	"github.com/stockbook/backend/internal/integration/persistence"
	"github.com/stockbook/backend/internal/integration/stream"
	"github.com/stockbook/backend/test/integration/mock"
)

const seedDateLayout = "2006-01-02"

// tableRows converts a godog table into maps keyed by the header row.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 2 {
		return nil, errors.New("table needs a header row and at least one data row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != len(header) {
			return nil, fmt.Errorf("row has %d cells, header has %d", len(row.Cells), len(header))
		}
		m := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			m[header[i]] = cell.Value
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func parseMoney(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(value)
}

func parseCount(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// theFollowingInventoryItemsExist seeds inventory through the repository.
// Columns: sku, product, category, quantity, cost, price, reorderLevel.
func (t *testContext) theFollowingInventoryItemsExist(table *godog.Table) error {
	if t.ownerID == uuid.Nil {
		return errors.New("authenticate before seeding data")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	repo := persistence.NewInventoryRepository(testDB.DbConn)
	for _, row := range rows {
		quantity, err := parseCount(row["quantity"])
		if err != nil {
			return err
		}
		reorderLevel, err := parseCount(row["reorderLevel"])
		if err != nil {
			return err
		}
		cost, err := parseMoney(row["cost"])
		if err != nil {
			return err
		}
		price, err := parseMoney(row["price"])
		if err != nil {
			return err
		}

		item := entity.NewInventoryItem(
			t.ownerID,
			row["sku"],
			row["product"],
			row["category"],
			quantity,
			cost,
			price,
			reorderLevel,
		)
		if err := repo.Create(context.Background(), item); err != nil {
			return fmt.Errorf("failed to seed inventory item %q: %w", row["product"], err)
		}
		t.lastItemID = item.ID.String()
	}
	return nil
}

// theFollowingSalesExist seeds sales without touching inventory.
// Columns: date, product, quantity, unitPrice, customer, paymentMethod.
func (t *testContext) theFollowingSalesExist(table *godog.Table) error {
	if t.ownerID == uuid.Nil {
		return errors.New("authenticate before seeding data")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	repo := persistence.NewSaleRepository(testDB.DbConn)
	for _, row := range rows {
		date, err := time.Parse(seedDateLayout, row["date"])
		if err != nil {
			return fmt.Errorf("bad date %q: %w", row["date"], err)
		}
		quantity, err := parseCount(row["quantity"])
		if err != nil {
			return err
		}
		unitPrice, err := parseMoney(row["unitPrice"])
		if err != nil {
			return err
		}

		paymentMethod := entity.PaymentMethod(row["paymentMethod"])
		if paymentMethod == "" {
			paymentMethod = entity.PaymentMethodCash
		}

		sale := entity.NewSale(
			t.ownerID,
			date,
			nil,
			row["product"],
			quantity,
			unitPrice,
			row["customer"],
			paymentMethod,
		)
		if err := repo.CreateWithStockDeduction(context.Background(), sale); err != nil {
			return fmt.Errorf("failed to seed sale %q: %w", row["product"], err)
		}
		t.lastSaleID = sale.ID.String()
	}
	return nil
}

// theFollowingExpensesExist seeds one expense submission per table.
// Columns: date, category, description, amount, paymentMethod, status.
func (t *testContext) theFollowingExpensesExist(table *godog.Table) error {
	if t.ownerID == uuid.Nil {
		return errors.New("authenticate before seeding data")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	lines := make([]entity.ExpenseLine, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse(seedDateLayout, row["date"])
		if err != nil {
			return fmt.Errorf("bad date %q: %w", row["date"], err)
		}
		amount, err := parseMoney(row["amount"])
		if err != nil {
			return err
		}

		paymentMethod := entity.PaymentMethod(row["paymentMethod"])
		if paymentMethod == "" {
			paymentMethod = entity.PaymentMethodCash
		}

		lines = append(lines, entity.ExpenseLine{
			Date:          date,
			Category:      row["category"],
			Description:   row["description"],
			Amount:        amount,
			PaymentMethod: paymentMethod,
			Status:        entity.ExpenseStatus(row["status"]),
		})
	}

	expenses := entity.NewExpenseBatch(t.ownerID, time.Now(), lines)
	repo := persistence.NewExpenseRepository(testDB.DbConn)
	if err := repo.CreateBatch(context.Background(), expenses); err != nil {
		return fmt.Errorf("failed to seed expenses: %w", err)
	}
	if len(expenses) > 0 {
		t.lastExpenseID = expenses[len(expenses)-1].ID
	}
	return nil
}

// theLiveMetricsHaveBeenRefreshed publishes a change notification for the
// current owner and waits for the watcher to recompute, observed through the
// live endpoint answering 200 instead of 204.
func (t *testContext) theLiveMetricsHaveBeenRefreshed() error {
	if t.accessToken == "" {
		return errors.New("authenticate before refreshing live metrics")
	}

	publisher := stream.NewRedisPublisher(mock.NewRedis())
	publisher.PublishChange(context.Background(), t.ownerID, adapter.CollectionSales)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		req, err := http.NewRequest(http.MethodGet, testServer.URL+"/api/v1/reports/live", nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+t.accessToken)

		resp, err := t.client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return errors.New("live metrics were not refreshed in time")
}
