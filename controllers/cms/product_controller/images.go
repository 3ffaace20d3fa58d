package product_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
)

// AppendProductImages godoc
// @Summary Append images to a product gallery
// @Description Uploads new files after the current last index; a new image becomes main only when the gallery has no live images
// @Tags CMS - Product Images
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param last_index formData int true "Current highest index in the gallery"
// @Param images formData file true "Image files to append"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/catalog/products/{id}/images [post]
func AppendProductImages(c *gin.Context) {
	// Step 1: Parse and validate product ID
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Product must exist
	var product models.Product
	if err := config.CatalogGorm.WithContext(ctx).
		Select("id").
		First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Product not found"))
		} else {
			respondAppError(c, models.PersistenceError(err))
		}
		return
	}

	// Step 3: Parse form — files plus the caller's current last index
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid multipart form: "+err.Error()))
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "At least one image file is required"))
		return
	}

	lastIndex, err := strconv.Atoi(c.PostForm("last_index"))
	if err != nil || lastIndex < -1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "last_index must be an integer >= -1"))
		return
	}

	// Step 4: Upload and persist
	images, err := lifecycle.AppendImages(ctx, services.ProductImages, productID, lastIndex+1, files)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Images appended successfully", images))
}

// ReorderProductImages godoc
// @Summary Reorder a product gallery
// @Description Full ordered id list; index follows position and the first image becomes main. Never touches object storage.
// @Tags CMS - Product Images
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param request body models.ReorderImagesRequest true "Every image id in desired order"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/catalog/products/{id}/images/reorder [put]
func ReorderProductImages(c *gin.Context) {
	// Step 1: Parse and validate product ID
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var req models.ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: All-or-nothing batch rewrite
	images, err := lifecycle.Reorder(ctx, services.ProductImages, productID, req.ImageIDs)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Images reordered successfully", images))
}

// DeleteProductImage godoc
// @Summary Delete one image from a product gallery
// @Description Deletes the blob then the row; when the deleted image was main, the remaining lowest-index image is promoted
// @Tags CMS - Product Images
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param imageId path string true "Image ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/catalog/products/{id}/images/{imageId} [delete]
func DeleteProductImage(c *gin.Context) {
	// Step 1: Parse and validate IDs
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}
	imageID, err := uuid.Parse(c.Param("imageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid image ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Blob first, then row, with main promotion inside one transaction
	images, err := lifecycle.HardDeleteFromGallery(ctx, services.ProductImages, productID, imageID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Image deleted successfully", images))
}
