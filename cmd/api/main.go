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

	"github.com/hotelvistamar/inventario-api/internal/application/alerts"
	"github.com/hotelvistamar/inventario-api/internal/application/auth"
	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/application/procurement"
	"github.com/hotelvistamar/inventario-api/internal/application/usecase"
	infraexcel "github.com/hotelvistamar/inventario-api/internal/infrastructure/excel"
	infrapdf "github.com/hotelvistamar/inventario-api/internal/infrastructure/pdf"
	"github.com/hotelvistamar/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/hotelvistamar/inventario-api/internal/interfaces/http"
	"github.com/hotelvistamar/inventario-api/pkg/config"
	"github.com/hotelvistamar/inventario-api/pkg/logger"
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

	categoryRepo := postgres.NewCategoryRepository(pool)
	areaRepo := postgres.NewAreaRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	areaUC := usecase.NewAreaUseCase(areaRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	reportUC := usecase.NewReportUseCase(reportRepo)
	applyMovementUC := inventory.NewApplyMovementUseCase(txRunner, productRepo, areaRepo)
	historyUC := inventory.NewHistoryUseCase(movementRepo, stockRepo, productRepo)
	reconcileUC := inventory.NewReconcileUseCase(stockRepo, movementRepo)
	alertUC := alerts.NewUseCase(alertRepo, productRepo)
	entryUC := procurement.NewEntryUseCase(txRunner, entryRepo, productRepo, areaRepo, supplierRepo)
	orderUC := procurement.NewOrderUseCase(txRunner, orderRepo, productRepo, areaRepo, supplierRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	xlsxExporter := infraexcel.NewStockReportExporter()
	pdfGenerator := infrapdf.NewLowStockReportGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. Solo se monta si el
	// spec existe; sin él el middleware haría panic al arrancar.
	const swaggerSpec = "./docs/swagger.json"
	if _, err := os.Stat(swaggerSpec); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerSpec,
			Path:     "docs",
			Title:    "Inventario Hotel API",
		}))
	} else {
		log.Warn().Str("path", swaggerSpec).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CategoryUC:    categoryUC,
		AreaUC:        areaUC,
		SupplierUC:    supplierUC,
		ReportUC:      reportUC,
		ApplyMovement: applyMovementUC,
		History:       historyUC,
		Reconcile:     reconcileUC,
		AlertUC:       alertUC,
		EntryUC:       entryUC,
		OrderUC:       orderUC,
		AuthUC:        authUC,
		XLSXExporter:  xlsxExporter,
		PDFGenerator:  pdfGenerator,
		JWTSecret:     cfg.JWT.Secret,
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
