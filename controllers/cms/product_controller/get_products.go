package product_controller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
)

// GetProducts godoc
// @Summary Get paginated products
// @Description Retrieve products with pagination and optional category filter; images carry fresh signed URLs
// @Tags CMS - Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param category query string false "Filter by category (case-insensitive)"
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/catalog/products [get]
func GetProducts(c *gin.Context) {
	// Step 1: Parse and validate pagination params
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Build query with optional filters
	query := config.CatalogGorm.WithContext(ctx).Model(&models.Product{})
	if category := c.Query("category"); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}

	// Step 3: Count total products
	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondAppError(c, models.PersistenceError(err))
		return
	}

	// Step 4: Fetch the page
	products := make([]models.Product, 0)
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error; err != nil {
		respondAppError(c, models.PersistenceError(err))
		return
	}

	// Step 5: Attach ordered images with fresh signed URLs
	for i := range products {
		if err := materializeProduct(ctx, &products[i]); err != nil {
			respondAppError(c, err)
			return
		}
	}

	// Step 6: Prepare pagination meta
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      int(total),
		TotalPages: totalPages,
	}

	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", products, meta))
}
