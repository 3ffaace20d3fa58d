package cms_routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yash77492562/E-commerce-sub000/controllers/cms/content_controller"
	"github.com/yash77492562/E-commerce-sub000/middleware"
)

func SetupContentRoutes(rg *gin.RouterGroup) {
	content := rg.Group("/content")

	// ════════════════════════════════════════════════════════════
	// Public Routes (No Auth Required)
	// ════════════════════════════════════════════════════════════
	content.GET("/:entity/:ownerId/images", content_controller.GetContentImages)

	// ════════════════════════════════════════════════════════════
	// Protected Routes (Auth + Activity Logging)
	// ════════════════════════════════════════════════════════════
	protected := content.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	protected.Use(middleware.ActivityLoggingMiddleware())
	{
		protected.PUT("/:entity/images/:imageId", content_controller.ReplaceContentImage)
		protected.DELETE("/:entity/images/:imageId", content_controller.DeleteContentImage)
	}
}
