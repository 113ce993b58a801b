// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/stockbook/backend/internal/integration/entrypoint/controller"
	"github.com/stockbook/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	saleController      *controller.SaleController
	expenseController   *controller.ExpenseController
	inventoryController *controller.InventoryController
	reportController    *controller.ReportController
	exportController    *controller.ExportController
	writeRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	saleController *controller.SaleController,
	expenseController *controller.ExpenseController,
	inventoryController *controller.InventoryController,
	reportController *controller.ReportController,
	exportController *controller.ExportController,
	writeRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		saleController:      saleController,
		expenseController:   expenseController,
		inventoryController: inventoryController,
		reportController:    reportController,
		exportController:    exportController,
		writeRateLimiter:    writeRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Sale routes (require authentication)
		if r.saleController != nil && r.authMiddleware != nil {
			sales := v1.Group("/sales")
			sales.Use(r.authMiddleware.Authenticate())
			{
				sales.POST("", r.limited(), r.saleController.Record)
				sales.GET("", r.saleController.List)
				sales.DELETE("/:id", r.saleController.Delete)
			}
		}

		// Expense routes (require authentication)
		if r.expenseController != nil && r.authMiddleware != nil {
			expenses := v1.Group("/expenses")
			expenses.Use(r.authMiddleware.Authenticate())
			{
				expenses.POST("", r.limited(), r.expenseController.Record)
				expenses.GET("", r.expenseController.List)
				expenses.DELETE("/:id", r.expenseController.Delete)
				expenses.POST("/suggest-category", r.limited(), r.expenseController.SuggestCategory)
			}
		}

		// Inventory routes (require authentication)
		if r.inventoryController != nil && r.authMiddleware != nil {
			inventory := v1.Group("/inventory")
			inventory.Use(r.authMiddleware.Authenticate())
			{
				inventory.POST("", r.limited(), r.inventoryController.Create)
				inventory.GET("", r.inventoryController.List)
				inventory.POST("/:id/restock", r.limited(), r.inventoryController.Restock)
				inventory.DELETE("/:id", r.inventoryController.Delete)
			}
		}

		// Report routes (require authentication)
		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/summary", r.reportController.Summary)
				reports.GET("/live", r.reportController.Live)
				reports.GET("/breakdown", r.reportController.Breakdown)
				reports.GET("/trend", r.reportController.Trend)
			}
		}

		// Export routes (require authentication)
		if r.exportController != nil && r.authMiddleware != nil {
			v1.GET("/export/:kind", r.authMiddleware.Authenticate(), r.exportController.Download)
		}
	}
}

// limited returns the write rate limiter middleware, or a no-op when the
// limiter is not configured (integration tests run without one).
func (r *Router) limited() gin.HandlerFunc {
	if r.writeRateLimiter == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}
	return r.writeRateLimiter.Middleware()
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
