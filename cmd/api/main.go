package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/farmaciasantana/pos-api/internal/application/service"
	"github.com/farmaciasantana/pos-api/internal/config"
	"github.com/farmaciasantana/pos-api/internal/infrastructure/database"
	"github.com/farmaciasantana/pos-api/internal/infrastructure/repository"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/handler"
	"github.com/farmaciasantana/pos-api/internal/presentation/http/routes"
	"github.com/farmaciasantana/pos-api/pkg/printer"
	"github.com/farmaciasantana/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	clientRepo := repository.NewClientRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	saleNumberRepo := repository.NewSaleNumberRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, categoryRepo)
	clientService := service.NewClientService(clientRepo)
	cartService := service.NewCartService(productRepo)
	saleService := service.NewSaleService(
		cartService,
		saleRepo,
		saleNumberRepo,
		clientRepo,
		cfg.Store.FacturaSeries,
		cfg.Store.BoletaSeries,
	)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(saleRepo, userRepo, thermalPrinter, cfg.Store)
	dashboardService := service.NewDashboardService(productRepo, clientRepo, saleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Client:    handler.NewClientHandler(clientService),
		Cart:      handler.NewCartHandler(cartService),
		Sale:      handler.NewSaleHandler(saleService),
		Printer:   handler.NewPrinterHandler(printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
