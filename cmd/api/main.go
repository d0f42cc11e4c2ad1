package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stockroom/internal/handler"
	"go-stockroom/internal/model"
	"go-stockroom/internal/repository"
	"go-stockroom/internal/service"
	"go-stockroom/internal/ws"
	"go-stockroom/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database. AutoMigrate is additive-only: existing tables and
	// data survive every restart, matching the one-time schema init of the
	// original system.
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Inventory{},
		&model.Supply{},
		&model.SupplyItem{},
		&model.StockHistoryEntry{},
	); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	supplyRepo := repository.NewSupplyRepo(db)
	historyRepo := repository.NewStockHistoryRepo(db)

	catalogService := service.NewCatalogService(productRepo, categoryRepo, supplierRepo, wsHub)
	inventoryService := service.NewInventoryService(productRepo, inventoryRepo, historyRepo, db, wsHub)
	supplyService := service.NewSupplyService(supplyRepo, supplierRepo, productRepo, inventoryRepo, historyRepo, db, wsHub)
	reportService := service.NewReportService(productRepo, inventoryRepo, supplyRepo, historyRepo)

	productHandler := handler.NewProductHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	supplierHandler := handler.NewSupplierHandler(catalogService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	supplyHandler := handler.NewSupplyHandler(supplyService)
	reportHandler := handler.NewReportHandler(reportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stockroom v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// Product Catalog
	api.Get("/products", productHandler.GetProducts)
	api.Post("/products", productHandler.CreateProduct)
	api.Put("/products/:id", productHandler.UpdateProduct)
	api.Delete("/products/:id", productHandler.DeleteProduct)
	api.Get("/products/:id/history", inventoryHandler.GetProductHistory)

	// Categories
	api.Get("/categories", categoryHandler.GetCategories)
	api.Post("/categories", categoryHandler.CreateCategory)
	api.Put("/categories/:id", categoryHandler.UpdateCategory)
	api.Delete("/categories/:id", categoryHandler.DeleteCategory)

	// Suppliers
	api.Get("/suppliers", supplierHandler.GetSuppliers)
	api.Post("/suppliers", supplierHandler.CreateSupplier)
	api.Put("/suppliers/:id", supplierHandler.UpdateSupplier)
	api.Delete("/suppliers/:id", supplierHandler.DeleteSupplier)

	// Inventory & Stock History
	api.Get("/inventory", inventoryHandler.GetInventory)
	api.Post("/inventory/:id/adjust", inventoryHandler.AdjustStock)
	api.Get("/stock-history", inventoryHandler.GetStockHistory)

	// Supplies
	api.Get("/supplies", supplyHandler.GetSupplies)
	api.Post("/supplies", supplyHandler.CreateSupply)
	api.Get("/supplies/:id/items", supplyHandler.GetSupplyItems)
	api.Post("/supplies/:id/items", supplyHandler.AddSupplyItem)
	api.Post("/supplies/:id/complete", supplyHandler.CompleteSupply)

	// Reports
	api.Get("/reports/stock", reportHandler.GetStockReport)
	api.Get("/reports/supplies", reportHandler.GetSupplyReport)
	api.Get("/reports/stock-movement", reportHandler.GetStockMovementReport)
	api.Get("/reports/stats", reportHandler.GetStats)
	api.Get("/reports/stock/export", reportHandler.ExportStockReport)
	api.Get("/reports/stock-movement/export", reportHandler.ExportMovementReport)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
