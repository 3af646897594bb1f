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

	"github.com/jmoralesv/taller-api/internal/application/auth"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/infrastructure/mongodb"
	httpRouter "github.com/jmoralesv/taller-api/internal/interfaces/http"
	"github.com/jmoralesv/taller-api/pkg/config"
	"github.com/jmoralesv/taller-api/pkg/logger"
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
	mongoClient, err := mongodb.Connect(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	db := mongoClient.Database(cfg.DB.Database)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("creación de índices")
	}

	clientRepo := mongodb.NewClientRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	inventoryRepo := mongodb.NewInventoryRepository(db)
	hardwareRepo := mongodb.NewHardwareRepository(db)
	repairRepo := mongodb.NewRepairRepository(db)
	billRepo := mongodb.NewBillRepository(db)
	purchaseRepo := mongodb.NewPurchaseRepository(db)

	propagator := repairs.NewRenamePropagator(repairRepo, log)
	repairUC := repairs.NewUseCase(repairRepo, inventoryRepo, billRepo, log)
	clientUC := usecase.NewClientUseCase(clientRepo, propagator)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, propagator)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo, purchaseRepo, propagator, log)
	hardwareUC := usecase.NewHardwareUseCase(hardwareRepo, purchaseRepo, log)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo)
	billUC := usecase.NewBillUseCase(billRepo)
	authUC := auth.NewUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:    clientUC,
		EmployeeUC:  employeeUC,
		InventoryUC: inventoryUC,
		HardwareUC:  hardwareUC,
		PurchaseUC:  purchaseUC,
		BillUC:      billUC,
		RepairUC:    repairUC,
		AuthUC:      authUC,
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
