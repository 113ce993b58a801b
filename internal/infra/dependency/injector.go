// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/stockbook/backend/config"
	"github.com/stockbook/backend/internal/application/adapter"
	"github.com/stockbook/backend/internal/application/usecase/alert"
	"github.com/stockbook/backend/internal/application/usecase/expense"
	"github.com/stockbook/backend/internal/application/usecase/export"
	"github.com/stockbook/backend/internal/application/usecase/inventory"
	"github.com/stockbook/backend/internal/application/usecase/report"
	"github.com/stockbook/backend/internal/application/usecase/sale"
	"github.com/stockbook/backend/internal/infra/server/router"
	"github.com/stockbook/backend/internal/integration/adapters"
	"github.com/stockbook/backend/internal/integration/email"
	"github.com/stockbook/backend/internal/integration/entrypoint/controller"
	"github.com/stockbook/backend/internal/integration/entrypoint/middleware"
	"github.com/stockbook/backend/internal/integration/persistence"
	"github.com/stockbook/backend/internal/integration/stream"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Watcher     *stream.Watcher
	AlertWorker *email.Worker
	StockSweep  *alert.CheckLowStockUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	saleRepo := persistence.NewSaleRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	inventoryRepo := persistence.NewInventoryRepository(db)
	alertQueueRepo := persistence.NewAlertQueueRepository(db)
	snapshotRepo := persistence.NewSnapshotRepository(saleRepo, expenseRepo, inventoryRepo)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	publisher := stream.NewRedisPublisher(redisClient)
	metricsHolder := stream.NewMetricsHolder()
	watcher := stream.NewWatcher(redisClient, snapshotRepo, metricsHolder)
	suggester := adapters.NewGeminiService(cfg.Gemini.APIKey)

	var emailSender adapter.EmailSender
	if cfg.Alerts.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Alerts.ResendAPIKey, cfg.Alerts.FromName, cfg.Alerts.FromEmail)
	} else {
		// Without an API key alerts are still queued and marked sent, which
		// keeps local development from piling up pending jobs.
		emailSender = email.NewMockEmailSender()
	}
	alertWorker := email.NewWorker(alertQueueRepo, emailSender, email.WorkerConfig{
		PollInterval: cfg.Alerts.PollInterval,
		BatchSize:    cfg.Alerts.BatchSize,
	})

	// Create sale use cases
	recordSaleUseCase := sale.NewRecordSaleUseCase(saleRepo, inventoryRepo, publisher)
	deleteSaleUseCase := sale.NewDeleteSaleUseCase(saleRepo, publisher)
	listSalesUseCase := sale.NewListSalesUseCase(saleRepo)

	// Create expense use cases
	recordExpensesUseCase := expense.NewRecordExpensesUseCase(expenseRepo, publisher)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, publisher)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	suggestCategoryUseCase := expense.NewSuggestCategoryUseCase(expenseRepo, suggester)

	// Create inventory use cases
	createItemUseCase := inventory.NewCreateItemUseCase(inventoryRepo, publisher)
	restockItemUseCase := inventory.NewRestockItemUseCase(inventoryRepo, publisher)
	listItemsUseCase := inventory.NewListItemsUseCase(inventoryRepo)
	deleteItemUseCase := inventory.NewDeleteItemUseCase(inventoryRepo, publisher)

	// Create report and export use cases
	getSummaryUseCase := report.NewGetSummaryUseCase(snapshotRepo)
	getBreakdownUseCase := report.NewGetBreakdownUseCase(snapshotRepo)
	getTrendBucketsUseCase := report.NewGetTrendBucketsUseCase(snapshotRepo)
	exportRecordsUseCase := export.NewExportRecordsUseCase(saleRepo, expenseRepo)

	// Create alert sweep use case
	checkLowStockUseCase := alert.NewCheckLowStockUseCase(inventoryRepo, alertQueueRepo, cfg.Alerts.Recipients)

	// Create controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		func() bool {
			if redisClient == nil {
				return false
			}
			return redisClient.Ping(context.Background()).Err() == nil
		},
	)

	saleController := controller.NewSaleController(
		recordSaleUseCase,
		deleteSaleUseCase,
		listSalesUseCase,
	)

	expenseController := controller.NewExpenseController(
		recordExpensesUseCase,
		deleteExpenseUseCase,
		listExpensesUseCase,
		suggestCategoryUseCase,
	)

	inventoryController := controller.NewInventoryController(
		createItemUseCase,
		restockItemUseCase,
		listItemsUseCase,
		deleteItemUseCase,
	)

	reportController := controller.NewReportController(
		getSummaryUseCase,
		getBreakdownUseCase,
		getTrendBucketsUseCase,
		metricsHolder,
	)

	exportController := controller.NewExportController(exportRecordsUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var writeRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		writeRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		writeRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		saleController,
		expenseController,
		inventoryController,
		reportController,
		exportController,
		writeRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Watcher:     watcher,
		AlertWorker: alertWorker,
		StockSweep:  checkLowStockUseCase,
	}
}
