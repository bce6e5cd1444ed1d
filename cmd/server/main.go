package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	httpapi "equiprent-backend/internal/api/http"
	"equiprent-backend/internal/config"
	"equiprent-backend/internal/database"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository/postgres"
	"equiprent-backend/internal/security"
	"equiprent-backend/internal/service"
	"equiprent-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrationsPath := flag.String("migrations", "file://migrations", "Path to database migrations")
	flag.Parse()

	// A missing .env file is fine, env overrides are optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting equipment rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := database.Migrate(cfg.GetDatabaseConnectionString(), *migrationsPath); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiryHours)*time.Hour)

	// Initialize Photo Storage
	photoStorage, err := storage.NewLocalPhotoStorage(cfg.Storage.PhotoDir)
	if err != nil {
		logger.Error("Failed to initialize photo storage", "error", err)
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}
	logger.Info("Photo storage initialized", "dir", cfg.Storage.PhotoDir)

	// Initialize Services
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository, store.WarehouseRepository, photoStorage)
	rentalSvc := service.NewRentalService(store, store.RentalRepository, store.EquipmentRepository, store.OrderRepository)
	returnSvc := service.NewReturnService(store, store.RentalRepository, store.ReturnRepository, store.EquipmentRepository)
	transferSvc := service.NewTransferService(store, store.TransferRepository, store.EquipmentRepository, store.WarehouseRepository)
	saleSvc := service.NewSaleService(store, store.SaleRepository, store.EquipmentRepository)
	writeOffSvc := service.NewWriteOffService(store, store.WriteOffRepository, store.EquipmentRepository)
	inventorySvc := service.NewInventoryService(store, store.InventoryRepository, store.EquipmentRepository, store.WarehouseRepository)
	billingSvc := service.NewBillingService(store, store.BillingRepository, store.RentalRepository, store.OrderRepository)
	orderSvc := service.NewOrderService(store.OrderRepository, store.CustomerRepository, store.RentalRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	warehouseSvc := service.NewWarehouseService(store.WarehouseRepository)
	supplierSvc := service.NewSupplierService(store.SupplierRepository)
	categorySvc := service.NewCategoryService(store.CategoryRepository)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)

	// Initialize HTTP handlers
	equipmentHandler := httpapi.NewEquipmentHandler(equipmentSvc, photoStorage, cfg.Storage.MaxFileSizeMB)
	rentalHandler := httpapi.NewRentalHandler(rentalSvc, returnSvc)
	movementHandler := httpapi.NewMovementHandler(transferSvc, saleSvc, writeOffSvc)
	inventoryHandler := httpapi.NewInventoryHandler(inventorySvc)
	orderHandler := httpapi.NewOrderHandler(orderSvc, billingSvc)
	referenceHandler := httpapi.NewReferenceHandler(customerSvc, warehouseSvc, supplierSvc, categorySvc)
	authHandler := httpapi.NewAuthHandler(authSvc)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	router := httpapi.NewRouter(
		equipmentHandler,
		rentalHandler,
		movementHandler,
		inventoryHandler,
		orderHandler,
		referenceHandler,
		authHandler,
		authMiddleware,
	)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server stopped", "error", err)
		log.Fatalf("Server stopped: %v", err)
	}
}
