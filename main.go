package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"

	"prodcats/internal/apperrors"
	"prodcats/internal/database"
	"prodcats/internal/handlers"
	"prodcats/internal/models"
	"prodcats/internal/repositories"
	"prodcats/internal/services"
	"prodcats/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:4200")
	viper.SetDefault("SEED_DATA", true)
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Repositories ---
	// With a DSN we run against PostgreSQL; without one the catalog lives in
	// memory, which is enough for local development.
	var productRepo repositories.ProductRepository
	var categoryRepo repositories.CategoryRepository

	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		db, err := database.Connect(dsn)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if viper.GetBool("SEED_DATA") {
			if err := database.Seed(db); err != nil {
				log.Fatalf("Failed to seed database: %v", err)
			}
		}
		productRepo = repositories.NewGORMProductRepository(db)
		categoryRepo = repositories.NewGORMCategoryRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory repositories")
		mockCategoryRepo := repositories.NewMockCategoryRepository()
		mockProductRepo := repositories.NewMockProductRepository(mockCategoryRepo)
		if viper.GetBool("SEED_DATA") {
			seedCatalog(mockCategoryRepo, mockProductRepo)
		}
		categoryRepo = mockCategoryRepo
		productRepo = mockProductRepo
	}

	// --- Event Publisher ---
	// Optional; the services are nil-safe without a broker.
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	// --- Services ---
	productService := services.NewProductService(productRepo, categoryRepo, publisher)
	categoryService := services.NewCategoryService(categoryRepo, publisher)

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     viper.GetString("CORS_ORIGINS"),
		AllowCredentials: true,
	}))

	// --- API Routes ---
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// seedCatalog populates the in-memory repositories with a small starter
// catalog, mirroring what database.Seed does for PostgreSQL.
func seedCatalog(categoryRepo *repositories.MockCategoryRepository, productRepo *repositories.MockProductRepository) {
	categories := []models.Category{
		{Name: "Electronics", Description: "Electronic devices and gadgets", IsActive: true},
		{Name: "Clothing", Description: "Apparel and fashion items", IsActive: true},
		{Name: "Toys - Inactive", Description: "Toys and games", IsActive: false},
	}
	for i := range categories {
		if err := categoryRepo.Create(&categories[i]); err != nil {
			log.Printf("Error seeding category %s: %v", categories[i].Name, err)
		}
	}

	products := []models.Product{
		{Name: "Wireless Headphones", Description: "Bluetooth wireless headphones with noise cancellation", Price: 99.99, CategoryID: categories[0].ID, StockQuantity: 50, IsActive: true},
		{Name: "Smartphone", Description: "Latest model smartphone with 128GB storage", Price: 699.99, CategoryID: categories[0].ID, StockQuantity: 25, IsActive: true},
		{Name: "Cotton T-Shirt", Description: "Plain cotton t-shirt, multiple colors", Price: 12.99, CategoryID: categories[1].ID, StockQuantity: 0, IsActive: true},
	}
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
}
