package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mnsts/ims-api/internal/application/analytics"
	"github.com/mnsts/ims-api/internal/application/auth"
	"github.com/mnsts/ims-api/internal/application/category"
	"github.com/mnsts/ims-api/internal/application/chatbot"
	"github.com/mnsts/ims-api/internal/application/inventory"
	"github.com/mnsts/ims-api/internal/application/ledger"
	"github.com/mnsts/ims-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LedgerUC    *ledger.LedgerUseCase
	InventoryUC *inventory.InventoryUseCase
	CategoryUC  *category.CategoryUseCase
	DashboardUC *analytics.DashboardUseCase
	ChartsUC    *analytics.ChartsUseCase
	AlertsUC    *analytics.AlertsUseCase
	ChatbotUC   *chatbot.ChatbotUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// Items (protegido; la baja es solo admin)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.LedgerUC, deps.InventoryUC)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.Get)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", RequireRole(entity.RoleAdmin), itemHandler.Delete)

	// Categories (protegido; borrar es solo admin)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC, deps.InventoryUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)

	// Dashboard, gráficos y alertas (protegido)
	analyticsHandler := NewAnalyticsHandler(deps.DashboardUC, deps.ChartsUC, deps.AlertsUC)
	protected.Get("/dashboard", analyticsHandler.Dashboard)
	protected.Get("/alerts/low-stock", analyticsHandler.LowStockAlerts)
	charts := protected.Group("/charts")
	charts.Get("/stock-overview", analyticsHandler.StockOverview)
	charts.Get("/stock-movements", analyticsHandler.StockMovements)
	charts.Get("/category-distribution", analyticsHandler.CategoryDistribution)

	// Chatbot (protegido)
	chatbotHandler := NewChatbotHandler(deps.ChatbotUC)
	protected.Post("/chatbot", chatbotHandler.Ask)
}
