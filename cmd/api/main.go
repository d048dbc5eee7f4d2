package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/mnsts/ims-api/internal/application/analytics"
	"github.com/mnsts/ims-api/internal/application/auth"
	"github.com/mnsts/ims-api/internal/application/category"
	"github.com/mnsts/ims-api/internal/application/chatbot"
	"github.com/mnsts/ims-api/internal/application/inventory"
	"github.com/mnsts/ims-api/internal/application/ledger"
	infraai "github.com/mnsts/ims-api/internal/infrastructure/ai"
	"github.com/mnsts/ims-api/internal/infrastructure/email"
	"github.com/mnsts/ims-api/internal/infrastructure/postgres"
	httpRouter "github.com/mnsts/ims-api/internal/interfaces/http"
	"github.com/mnsts/ims-api/pkg/config"
	"github.com/mnsts/ims-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool; el TxRunner crea variantes atadas a la tx.
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := email.NewGomailSender(cfg.SMTP, log)

	ledgerUC := ledger.NewLedgerUseCase(txRunner, itemRepo, categoryRepo, notifier, log)
	inventoryUC := inventory.NewInventoryUseCase(itemRepo, movementRepo, categoryRepo)
	categoryUC := category.NewCategoryUseCase(categoryRepo, itemRepo)
	authUC := auth.NewAuthUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, movementRepo)
	chartsUC := appanalytics.NewChartsUseCase(analyticsRepo)
	alertsUC := appanalytics.NewAlertsUseCase(itemRepo)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	chatbotUC := chatbot.NewChatbotUseCase(anthropicSvc, itemRepo, categoryRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MNSTS IMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		LedgerUC:    ledgerUC,
		InventoryUC: inventoryUC,
		CategoryUC:  categoryUC,
		DashboardUC: dashboardUC,
		ChartsUC:    chartsUC,
		AlertsUC:    alertsUC,
		ChatbotUC:   chatbotUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
