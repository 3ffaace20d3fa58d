package taxonomy_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	taxonomy_cache "github.com/yash77492562/E-commerce-sub000/cache"
	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
)

var taxonomy *services.SubCategoryService

// Init wires the taxonomy service. Called once from main.
func Init(t *services.SubCategoryService) {
	taxonomy = t
}

// GetCategories godoc
// @Summary Get the category breakdown
// @Description Derived category → subcategory view with taxonomy state per category; served from a short-lived in-process cache
// @Tags CMS - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/catalog/categories [get]
func GetCategories(c *gin.Context) {
	// Step 1: Serve from cache when fresh
	if cached, ok := taxonomy_cache.Get(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully (cached)", cached))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Compute and cache the breakdown
	breakdown, err := taxonomy.BuildCategoryBreakdown(ctx)
	if err != nil {
		appErr := models.AsAppError(err)
		c.JSON(appErr.HTTPStatus(), models.TaggedErrorResponse(c, appErr))
		return
	}
	taxonomy_cache.Set(breakdown)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", breakdown))
}
