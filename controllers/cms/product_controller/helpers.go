package product_controller

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
)

var (
	lifecycle *services.ImageLifecycleService
	taxonomy  *services.SubCategoryService
)

// Init wires the services this controller depends on. Called once from main.
func Init(l *services.ImageLifecycleService, t *services.SubCategoryService) {
	lifecycle = l
	taxonomy = t
}

// respondAppError logs the cause and writes the tagged envelope with the
// status the error taxonomy prescribes.
func respondAppError(c *gin.Context, err error) {
	appErr := models.AsAppError(err)
	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), appErr)
	c.JSON(appErr.HTTPStatus(), models.TaggedErrorResponse(c, appErr))
}

// materializeProduct attaches the product's ordered image list with fresh
// signed URLs.
func materializeProduct(ctx context.Context, product *models.Product) error {
	images, err := lifecycle.ListImages(ctx, services.ProductImages, product.ID)
	if err != nil {
		return err
	}
	product.Images = images
	return nil
}

// parseTags accepts either a JSON array ("[\"a\",\"b\"]") or a
// comma-separated list ("a,b") from a multipart form field.
func parseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err == nil {
			return tags
		}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
