package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yash77492562/E-commerce-sub000/controllers/cms/product_controller"
	"github.com/yash77492562/E-commerce-sub000/controllers/cms/taxonomy_controller"
	"github.com/yash77492562/E-commerce-sub000/middleware"
)

func SetupCatalogRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════
	catalog.GET("/products", product_controller.GetProducts)
	catalog.GET("/products/:id", product_controller.GetProductByID)
	catalog.GET("/categories", taxonomy_controller.GetCategories)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth + Activity Logging)
	// ════════════════════════════════════════════════════════════
	protected := catalog.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	protected.Use(middleware.ActivityLoggingMiddleware())
	{
		// Product writes
		protected.POST("/products", product_controller.CreateProduct)
		protected.PATCH("/products/:id", product_controller.UpdateProduct)
		protected.DELETE("/products", product_controller.DeleteProduct)

		// Gallery writes
		protected.POST("/products/:id/images", product_controller.AppendProductImages)
		protected.PUT("/products/:id/images/reorder", product_controller.ReorderProductImages)
		protected.DELETE("/products/:id/images/:imageId", product_controller.DeleteProductImage)
	}
}
