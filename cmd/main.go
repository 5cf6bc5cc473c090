package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marketplace-service/internal/config"
	"marketplace-service/internal/events"
	"marketplace-service/internal/handlers"
	"marketplace-service/internal/middleware"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/storage"
)

// @title Marketplace API
// @version 1.0.0
// @description Marketplace backend: categories, products, dynamic attributes, favourites and product images

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	handlers.SetDB(db)

	// Initialize Redis client
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
		redisClient = nil
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize structured logger for side components
	serviceLogger := logrus.New()
	serviceLogger.SetFormatter(&logrus.JSONFormatter{})
	serviceLogger.SetLevel(logrus.InfoLevel)

	// Initialize NATS events publisher
	eventsPublisher, err := events.NewPublisher(serviceLogger)
	if err != nil {
		log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
	} else {
		log.Println("✓ NATS events publisher initialized")
	}

	// Initialize static file storage for uploads
	fileStore, err := storage.NewLocalStore(cfg.StaticDir, serviceLogger)
	if err != nil {
		log.Fatal("Failed to initialize file storage:", err)
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db, redisClient)
	productRepo := repository.NewProductRepository(db, categoryRepo)
	attributeRepo := repository.NewAttributeRepository(db)
	userRepo := repository.NewUserRepository(db)
	favouriteRepo := repository.NewFavouriteRepository(db)
	imageRepo := repository.NewImageRepository(db)

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, fileStore, eventsPublisher)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, userRepo, fileStore, eventsPublisher)
	attributeHandler := handlers.NewAttributeHandler(attributeRepo)
	userHandler := handlers.NewUserHandler(userRepo, cfg.JWTSecret)
	favouriteHandler := handlers.NewFavouriteHandler(favouriteRepo)
	imageHandler := handlers.NewImageHandler(imageRepo, productRepo, fileStore)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.ReadinessCheck)

	// Uploaded images are served as static files
	router.Static("/static", fileStore.Dir())

	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	// API routes
	v1 := router.Group("/api/v1")
	{
		user := v1.Group("/user")
		{
			user.POST("/reg", userHandler.Register)
			user.GET("", userHandler.GetUsers)
			user.GET("/:id", userHandler.GetUser)
			user.PUT("/:id", auth, userHandler.UpdateUser)
		}

		category := v1.Group("/category")
		{
			category.POST("", categoryHandler.CreateCategory)
			category.GET("", categoryHandler.GetCategoryList)
			category.GET("/:id", categoryHandler.GetCategory)
			category.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		product := v1.Group("/product")
		{
			product.POST("", productHandler.CreateProduct)
			product.GET("", productHandler.GetProductList)
			product.GET("/:id", productHandler.GetProduct)
			product.GET("/category/:categoryTitle", productHandler.GetProductsByCategory)
			product.GET("/user/:userId", productHandler.GetProductsByUser)
			product.PUT("/:id", productHandler.UpdateProduct)
			product.DELETE("/:id", productHandler.DeleteProduct)
		}

		attribute := v1.Group("/attribute")
		{
			attribute.POST("/category", attributeHandler.CreateAttributeCategory)
			attribute.GET("/category", attributeHandler.GetAttributeCategories)
			attribute.GET("/category/:categoryTitle", attributeHandler.GetAttributeCategoriesByCategory)
			attribute.DELETE("/category/:id", attributeHandler.DeleteAttributeCategory)

			attribute.POST("", attributeHandler.CreateAttribute)
			attribute.GET("", attributeHandler.GetAttributes)
			attribute.GET("/sub/:parentAttributeName", attributeHandler.GetSubAttributes)
			attribute.GET("/products/:ids", attributeHandler.SearchProductsByAttributes)
			attribute.DELETE("/:name", attributeHandler.DeleteAttribute)

			attribute.POST("/subcategory", attributeHandler.CreateSubCategory)
			attribute.GET("/subcategory/:parentAttributeName", attributeHandler.GetSubCategories)
			attribute.DELETE("/subcategory/:id", attributeHandler.DeleteSubCategory)

			attribute.POST("/product", attributeHandler.BindProductAttribute)
			attribute.GET("/product/:productId", attributeHandler.GetProductAttributes)
			attribute.DELETE("/product/:productId", attributeHandler.UnbindProductAttributes)
		}

		productImage := v1.Group("/product-image")
		{
			productImage.POST("", imageHandler.UploadImage)
			productImage.GET("/product/:productId", imageHandler.GetImagesByProduct)
			productImage.GET("/url/:url", imageHandler.GetImageByURL)
			productImage.DELETE("/product/:productId", imageHandler.DeleteImagesByProduct)
			productImage.DELETE("/product/:productId/image/:id", imageHandler.DeleteImage)
			productImage.DELETE("/url/:url", imageHandler.DeleteImageByURL)
		}

		favourite := v1.Group("/favourite")
		favourite.Use(auth)
		{
			favourite.POST("", favouriteHandler.CreateFavourite)
			favourite.GET("/user/:userId", favouriteHandler.GetFavouritesByUser)
			favourite.DELETE("", favouriteHandler.DeleteFavourite)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Marketplace service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down marketplace-service...")

	// Close events publisher
	if eventsPublisher != nil {
		eventsPublisher.Close()
		log.Println("✓ Events publisher closed")
	}

	log.Println("Marketplace service stopped")
}
