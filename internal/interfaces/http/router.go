package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmoralesv/taller-api/internal/application/auth"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC    *usecase.ClientUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	InventoryUC *usecase.InventoryUseCase
	HardwareUC  *usecase.HardwareUseCase
	PurchaseUC  *usecase.PurchaseUseCase
	BillUC      *usecase.BillUseCase
	RepairUC    *repairs.UseCase
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Las lecturas son públicas; las
// escrituras exigen Bearer Token y los borrados además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole("admin")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", authMW, clientHandler.Create)
	clients.Put("/:id", authMW, clientHandler.Update)
	clients.Delete("/:id", authMW, adminOnly, clientHandler.Delete)

	// Employees
	employees := api.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Post("/", authMW, employeeHandler.Create)
	employees.Put("/:id", authMW, employeeHandler.Update)
	employees.Delete("/:id", authMW, adminOnly, employeeHandler.Delete)

	// Inventories (repuestos)
	inventories := api.Group("/inventories")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventories.Get("/", inventoryHandler.List)
	inventories.Get("/:id", inventoryHandler.GetByID)
	inventories.Post("/", authMW, inventoryHandler.Create)
	inventories.Put("/add/:id", authMW, inventoryHandler.Restock)
	inventories.Put("/:id", authMW, inventoryHandler.Update)
	inventories.Delete("/:id", authMW, adminOnly, inventoryHandler.Delete)

	// Hardwares (equipos del taller)
	hardwares := api.Group("/hardwares")
	hardwareHandler := NewHardwareHandler(deps.HardwareUC)
	hardwares.Get("/", hardwareHandler.List)
	hardwares.Get("/:id", hardwareHandler.GetByID)
	hardwares.Post("/", authMW, hardwareHandler.Create)
	hardwares.Put("/add/:id", authMW, hardwareHandler.Restock)
	hardwares.Put("/:id", authMW, hardwareHandler.Update)
	hardwares.Delete("/:id", authMW, adminOnly, hardwareHandler.Delete)

	// Purchases (libro de compras)
	purchases := api.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/", authMW, purchaseHandler.Create)
	purchases.Put("/:id", authMW, purchaseHandler.Update)
	purchases.Delete("/:id", authMW, adminOnly, purchaseHandler.Delete)

	// Bills (facturas)
	bills := api.Group("/bills")
	billHandler := NewBillHandler(deps.BillUC)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Post("/", authMW, billHandler.Create)
	bills.Put("/:id", authMW, billHandler.Update)
	bills.Delete("/:id", authMW, adminOnly, billHandler.Delete)

	// Repairs
	repairsGroup := api.Group("/repairs")
	repairHandler := NewRepairHandler(deps.RepairUC)
	repairsGroup.Get("/", repairHandler.List)
	repairsGroup.Get("/:id", repairHandler.GetByID)
	repairsGroup.Post("/", authMW, repairHandler.Create)
	repairsGroup.Put("/bill/:id", authMW, repairHandler.SyncBill)
	repairsGroup.Put("/:id", authMW, repairHandler.Update)
	repairsGroup.Delete("/:id", authMW, adminOnly, repairHandler.Delete)
}
