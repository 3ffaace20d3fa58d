package product_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
)

// GetProductByID godoc
// @Summary Get a product by ID
// @Description Retrieve a single product with its ordered image list
// @Tags CMS - Products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/catalog/products/{id} [get]
func GetProductByID(c *gin.Context) {
	// Step 1: Parse and validate product ID
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Fetch product
	var product models.Product
	if err := config.CatalogGorm.WithContext(ctx).
		First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		} else {
			respondAppError(c, models.PersistenceError(err))
		}
		return
	}

	// Step 3: Attach ordered images with fresh signed URLs
	if err := materializeProduct(ctx, &product); err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", product))
}
