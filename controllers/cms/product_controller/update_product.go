package product_controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	taxonomy_cache "github.com/yash77492562/E-commerce-sub000/cache"
	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
)

// UpdateProduct godoc
// @Summary Update an existing product
// @Description Partial update; subcategory and category changes go through the consistency engine inside one transaction
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param product body models.UpdateProductRequest true "Product update fields"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/catalog/products/{id} [patch]
func UpdateProduct(c *gin.Context) {
	// Step 1: Parse and validate product ID
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	var input models.UpdateProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Find existing product
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

	// Step 3: Resolve the requested subcategory value. The create-new
	// sentinel means "take the label from new_sub_category and backfill";
	// an explicit empty string means "clear".
	subCategoryProvided := input.SubCategory != nil
	desiredSub := input.SubCategory
	updateDefault := input.UpdateDefaultSubCategory
	if subCategoryProvided && *input.SubCategory == models.SubCategoryCreateNew {
		if input.NewSubCategory == nil || strings.TrimSpace(*input.NewSubCategory) == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "new_sub_category is required with the create-new sentinel"))
			return
		}
		label := strings.TrimSpace(*input.NewSubCategory)
		desiredSub = &label
		updateDefault = true
	}

	// Step 4: Work out the target category and whether membership moves
	oldCategory := product.Category
	targetCategory := oldCategory
	categoryChanged := false
	if input.Category != nil {
		trimmed := strings.TrimSpace(*input.Category)
		if trimmed == "" {
			targetCategory = nil
		} else {
			targetCategory = &trimmed
		}
		categoryChanged = (oldCategory == nil) != (targetCategory == nil) ||
			(oldCategory != nil && targetCategory != nil && !strings.EqualFold(*oldCategory, *targetCategory))
	}
	if subCategoryProvided && targetCategory == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "sub_category requires a category"))
		return
	}

	// Step 5: Evaluate the taxonomy decision against the target category's
	// current siblings
	var decision services.SubCategoryDecision
	needDecision := subCategoryProvided && targetCategory != nil
	if needDecision {
		siblings, err := taxonomy.LoadCategorySiblings(ctx, *targetCategory)
		if err != nil {
			respondAppError(c, err)
			return
		}
		decision = services.EvaluateSubCategoryChange(siblings, productID, desiredSub, updateDefault)
		if !decision.Allowed {
			// Rejected clears surface as 400 with the taxonomy message
			appErr := models.RelationshipConflict(decision.Reason)
			c.JSON(http.StatusBadRequest, models.TaggedErrorResponse(c, appErr))
			return
		}
	}

	// Step 6: Collect scalar field updates
	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.DiscountRate != nil {
		updates["discount_rate"] = *input.DiscountRate
	}
	if input.Tags != nil {
		updates["tags"] = models.TagsList(*input.Tags)
	}
	if input.Category != nil {
		updates["category"] = targetCategory
		if !subCategoryProvided && categoryChanged {
			// Moving categories without naming a subcategory: the label does
			// not travel along
			updates["sub_category"] = nil
		}
	}

	// Step 7: One transaction — old-category reset, scalar writes, engine
	// decision on the target category
	err = config.CatalogGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if categoryChanged && oldCategory != nil {
			oldSiblings, err := taxonomy.LoadCategorySiblings(ctx, *oldCategory)
			if err != nil {
				return err
			}
			if services.EvaluateDeleteReset(oldSiblings, productID) {
				if err := taxonomy.ApplyDeleteReset(tx, *oldCategory, productID); err != nil {
					return err
				}
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", productID).
				Updates(updates).Error; err != nil {
				return models.PersistenceError(err)
			}
		}

		if needDecision {
			return taxonomy.ApplyDecision(tx, *targetCategory, productID, desiredSub, decision)
		}
		return nil
	})
	if err != nil {
		respondAppError(c, err)
		return
	}

	taxonomy_cache.Invalidate()

	// Step 8: Reload and materialize the updated product
	if err := config.CatalogGorm.WithContext(ctx).
		First(&product, "id = ?", productID).Error; err != nil {
		respondAppError(c, models.PersistenceError(err))
		return
	}
	if err := materializeProduct(ctx, &product); err != nil {
		respondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product updated successfully", product))
}
