package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
)

// pathToResourceType maps URL path segments to resource types
var pathToResourceType = map[string]string{
	"products": models.ResourceTypeProduct,
	"images":   models.ResourceTypeProductImage,
	"content":  models.ResourceTypeContentImage,
}

// methodToActionVerb maps HTTP methods to action verbs
var methodToActionVerb = map[string]string{
	"POST":   "created",
	"PATCH":  "updated",
	"PUT":    "updated",
	"DELETE": "deleted",
}

// ActivityLoggingMiddleware logs admin catalog mutations automatically.
// Must be used AFTER AdminAuthMiddleware (which sets adminID and adminEmail).
func ActivityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only mutations are logged
		if c.Request.Method == "GET" {
			c.Next()
			return
		}

		adminIDStr, adminIDExists := GetAdminIDFromContext(c)
		adminEmail, adminEmailExists := GetAdminEmailFromContext(c)
		if !adminIDExists || !adminEmailExists {
			log.Printf("[activity-logging] warning: admin info not in context")
			c.Next()
			return
		}

		adminID, err := uuid.Parse(adminIDStr)
		if err != nil {
			log.Printf("[activity-logging] failed to parse admin ID: %v", err)
			c.Next()
			return
		}

		resourceType := extractResourceType(c.Request.URL.Path)
		if resourceType == "" {
			c.Next()
			return
		}

		resourceID := c.Param("imageId")
		if resourceID == "" {
			resourceID = c.Param("id")
		}

		action := methodToActionVerb[c.Request.Method] + "_" + resourceType

		c.Next()

		statusCode := c.Writer.Status()
		req := services.LogActivityRequest{
			AdminID:      adminID,
			AdminEmail:   adminEmail,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Detail: map[string]interface{}{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"status": statusCode,
			},
			Context: c,
		}

		if statusCode >= 200 && statusCode < 300 {
			req.Status = models.StatusSuccess
		} else {
			req.Status = models.StatusFailed
			req.ErrorMessage = "Request failed with status " + http.StatusText(statusCode)
		}
		services.LogActivity(req)
	}
}

// extractResourceType walks the path segments and returns the most specific
// resource type: /catalog/products/:id/images → product_image, while
// /catalog/products/:id → product.
func extractResourceType(path string) string {
	if strings.Contains(path, "/content/") {
		return models.ResourceTypeContentImage
	}
	parts := strings.Split(path, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] == "" || isIDParam(parts[i]) {
			continue
		}
		if parts[i] == "reorder" {
			continue
		}
		if resourceType, exists := pathToResourceType[parts[i]]; exists {
			return resourceType
		}
	}
	return ""
}

// isIDParam checks if a path segment is an ID parameter
func isIDParam(segment string) bool {
	if _, err := uuid.Parse(segment); err == nil {
		return true
	}
	return false
}
