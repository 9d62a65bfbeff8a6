package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotelvistamar/inventario-api/internal/application/alerts"
	"github.com/hotelvistamar/inventario-api/internal/application/auth"
	"github.com/hotelvistamar/inventario-api/internal/application/inventory"
	"github.com/hotelvistamar/inventario-api/internal/application/procurement"
	"github.com/hotelvistamar/inventario-api/internal/application/usecase"
	"github.com/hotelvistamar/inventario-api/internal/domain/entity"
	"github.com/hotelvistamar/inventario-api/internal/infrastructure/excel"
	"github.com/hotelvistamar/inventario-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CategoryUC    *usecase.CategoryUseCase
	AreaUC        *usecase.AreaUseCase
	SupplierUC    *usecase.SupplierUseCase
	ReportUC      *usecase.ReportUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	History       *inventory.HistoryUseCase
	Reconcile     *inventory.ReconcileUseCase
	AlertUC       *alerts.UseCase
	EntryUC       *procurement.EntryUseCase
	OrderUC       *procurement.OrderUseCase
	AuthUC        *auth.UseCase
	XLSXExporter  *excel.StockReportExporter
	PDFGenerator  *pdf.LowStockReportGenerator
	JWTSecret     string
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

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)

	// Areas (protegido)
	areas := protected.Group("/areas")
	areaHandler := NewAreaHandler(deps.AreaUC)
	areas.Post("/", areaHandler.Create)
	areas.Get("/", areaHandler.List)
	areas.Get("/:id", areaHandler.GetByID)
	areas.Put("/:id", areaHandler.Update)

	// Products (protegido); el historial y el stock por área cuelgan
	// del producto.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement, deps.History, deps.Reconcile)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Deactivate)
	products.Get("/:id/movements", inventoryHandler.History)
	products.Get("/:id/stock", inventoryHandler.StockBreakdown)

	// Inventory movements (protegido)
	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), inventoryHandler.ApplyMovement)
	invGroup.Get("/reconcile", RequireRole(entity.RoleAdmin), inventoryHandler.Reconcile)

	// Alerts (protegido)
	alertGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alertGroup.Get("/", alertHandler.ListActive)
	alertGroup.Post("/:id/resolve", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), alertHandler.Resolve)
	alertGroup.Post("/:id/ignore", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), alertHandler.Ignore)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), supplierHandler.Update)

	// Stock entries (protegido)
	entries := protected.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)

	// Purchase orders (protegido); recepciones cuelgan del pedido.
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/send", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), orderHandler.Send)
	orders.Post("/:id/confirm", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), orderHandler.Confirm)
	orders.Post("/:id/cancel", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), orderHandler.Cancel)
	orders.Post("/:id/receptions", orderHandler.Receive)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.XLSXExporter, deps.PDFGenerator)
	reports.Get("/stock-by-category", reportHandler.StockByCategory)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/movement-summary", reportHandler.MovementSummary)
}
