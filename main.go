// @title Gallery Catalog API
// @version 1.0
// @description Catalog and media management API for the gallery storefront
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/controllers/cms/content_controller"
	"github.com/yash77492562/E-commerce-sub000/controllers/cms/product_controller"
	"github.com/yash77492562/E-commerce-sub000/controllers/cms/taxonomy_controller"
	_ "github.com/yash77492562/E-commerce-sub000/docs"
	"github.com/yash77492562/E-commerce-sub000/middleware"
	"github.com/yash77492562/E-commerce-sub000/routes/cms_routes"
	"github.com/yash77492562/E-commerce-sub000/services"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Connect to DB
	config.InitDB()
	// Redis connection
	config.ConnectRedis()

	// Initialize object storage
	storage, err := services.NewMinioStorage(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// ✅ JWT secret must be present for the admin perimeter
	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	log.Println("✅ JWT secret loaded")

	// Wire services into controllers
	lifecycle := services.NewImageLifecycleService(config.CatalogGorm, storage, services.PassthroughProcessor{})
	taxonomy := services.NewSubCategoryService(config.CatalogGorm, config.StoreDB)
	product_controller.Init(lifecycle, taxonomy)
	taxonomy_controller.Init(taxonomy)
	content_controller.Init(lifecycle)

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(100, time.Minute))

	cms_routes.SetupCatalogRoutes(api)
	cms_routes.SetupContentRoutes(api)
	log.Println("✅ Catalog routes registered")

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	fmt.Println("🚀 Server is running on http://localhost:8081")
	router.Run(":8081")
}
