package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
)

// UserService perfil propio y administración de usuarios.
type UserService interface {
	ProfileService
	UserAdminService
}

// ReportService consultas de solo lectura (admin y listado de productos).
type ReportService interface {
	AdminReporter
	ProductLister
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     AuthService
	UserUC     UserService
	ProductUC  ProductService
	CategoryUC CategoryService
	MovementUC StockMovementService
	AlertUC    AlertService
	Reporter   ReportService
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", authRequired, authHandler.Profile)
	authGroup.Put("/profile", authRequired, authHandler.UpdateProfile)
	authGroup.Put("/change-password", authRequired, authHandler.ChangePassword)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, deps.Reporter)
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	products := api.Group("/products", authRequired)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/movements", inventoryHandler.ProductMovements)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories", authRequired)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", adminOnly, categoryHandler.Create)

	// Movimientos: entradas solo admin, salidas cualquier usuario autenticado
	inv := api.Group("/inventory", authRequired)
	inv.Post("/stock-in", adminOnly, inventoryHandler.StockIn)
	inv.Post("/stock-out", inventoryHandler.StockOut)

	// Alerts
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts := api.Group("/alerts", authRequired)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/scan", adminOnly, alertHandler.Scan)
	alerts.Put("/read-all", alertHandler.MarkAllRead)
	alerts.Put("/:id/read", alertHandler.MarkRead)
	alerts.Delete("/:id", alertHandler.Delete)

	// Admin
	adminHandler := NewAdminHandler(deps.Reporter, deps.UserUC)
	admin := api.Group("/admin", authRequired, adminOnly)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.Users)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/stock-out-history", adminHandler.StockOutHistory)
	admin.Get("/stock-in-history", adminHandler.StockInHistory)
	admin.Get("/inventory-value", adminHandler.InventoryValue)
	admin.Get("/inventory-value/pdf", adminHandler.InventoryValuePDF)
}
