package content_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
)

var lifecycle *services.ImageLifecycleService

// Init wires the image lifecycle service. Called once from main.
func Init(l *services.ImageLifecycleService) {
	lifecycle = l
}

// entitySet resolves the :entity path param to its image set. Content
// entities are single-slot: each row is a fixed slot whose blob gets
// replaced or soft-deleted, never removed.
func entitySet(entity string) (services.ImageSet, bool) {
	switch entity {
	case "home":
		return services.HomeImages, true
	case "about":
		return services.AboutImages, true
	default:
		return services.ImageSet{}, false
	}
}

func respondAppError(c *gin.Context, err error) {
	appErr := models.AsAppError(err)
	log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.FullPath(), appErr)
	c.JSON(appErr.HTTPStatus(), models.TaggedErrorResponse(c, appErr))
}

// GetContentImages godoc
// @Summary Get a content entity's images
// @Description Ordered image slots for a home/about section with fresh signed URLs; soft-deleted slots come back with empty key and url
// @Tags CMS - Content
// @Produce json
// @Param entity path string true "Content entity" Enums(home, about)
// @Param ownerId path string true "Section ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Router /api/v1/content/{entity}/{ownerId}/images [get]
func GetContentImages(c *gin.Context) {
	// Step 1: Resolve entity and owner
	set, ok := entitySet(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown content entity"))
		return
	}
	ownerID, err := uuid.Parse(c.Param("ownerId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid owner ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Fetch slots
	images, err := lifecycle.ListImages(ctx, set, ownerID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Images fetched successfully", images))
}

// ReplaceContentImage godoc
// @Summary Replace the image in a content slot
// @Description Deletes the old blob when the slot has one, uploads the new file and rewrites key/url in place; index and main flag are untouched
// @Tags CMS - Content
// @Accept multipart/form-data
// @Produce json
// @Param entity path string true "Content entity" Enums(home, about)
// @Param imageId path string true "Image ID (UUID)"
// @Param image formData file true "Replacement image file"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/content/{entity}/images/{imageId} [put]
func ReplaceContentImage(c *gin.Context) {
	// Step 1: Resolve entity and image
	set, ok := entitySet(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown content entity"))
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid image ID"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "An image file is required"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Swap the blob behind the slot
	image, err := lifecycle.ReplaceSingle(ctx, set, imageID, file)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Image replaced successfully", image))
}

// DeleteContentImage godoc
// @Summary Soft-delete the image in a content slot
// @Description Deletes the blob and blanks key/url; the row survives so the slot stays addressable for re-upload
// @Tags CMS - Content
// @Produce json
// @Param entity path string true "Content entity" Enums(home, about)
// @Param imageId path string true "Image ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/content/{entity}/images/{imageId} [delete]
func DeleteContentImage(c *gin.Context) {
	// Step 1: Resolve entity and image
	set, ok := entitySet(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown content entity"))
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid image ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Blob gone, row kept
	image, err := lifecycle.SoftDelete(ctx, set, imageID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Image removed successfully", image))
}
