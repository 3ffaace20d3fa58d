package product_controller

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	taxonomy_cache "github.com/yash77492562/E-commerce-sub000/cache"
	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
)

// DeleteProduct godoc
// @Summary Delete a product
// @Description Delete a product, its image rows and blobs; blocked while referenced by active or recently delivered orders. Blob deletes happen before any row is removed.
// @Tags CMS - Products
// @Accept json
// @Produce json
// @Param request body models.DeleteProductRequest true "Product to delete"
// @Success 200 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/catalog/products [delete]
func DeleteProduct(c *gin.Context) {
	// Step 1: Parse and validate the request body
	var req models.DeleteProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	// Step 2: Find the product
	var product models.Product
	if err := config.CatalogGorm.WithContext(ctx).
		First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Product not found"))
		} else {
			respondAppError(c, models.PersistenceError(err))
		}
		return
	}

	// Step 3: Order preconditions against the storefront database
	if err := taxonomy.CanDeleteProduct(ctx, productID); err != nil {
		respondAppError(c, err)
		return
	}

	// Step 4: Delete every live blob. A storage failure aborts here, before
	// any row is touched.
	images, err := lifecycle.ListImages(ctx, services.ProductImages, productID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	for _, img := range images {
		if !img.Live() {
			continue
		}
		if err := lifecycle.DeleteBlob(ctx, img.ImageKey); err != nil {
			respondAppError(c, err)
			return
		}
	}

	// Step 5: Evaluate whether removing this product forces a sibling reset
	needReset := false
	if product.Category != nil {
		siblings, err := taxonomy.LoadCategorySiblings(ctx, *product.Category)
		if err != nil {
			respondAppError(c, err)
			return
		}
		needReset = services.EvaluateDeleteReset(siblings, productID)
	}

	// Step 6: One transaction — sibling reset, image rows, product row
	err = config.CatalogGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if needReset {
			if err := taxonomy.ApplyDeleteReset(tx, *product.Category, productID); err != nil {
				return err
			}
		}
		if err := tx.Table(services.ProductImages.Table).
			Where("owner_id = ?", productID).
			Delete(&models.Image{}).Error; err != nil {
			return models.PersistenceError(err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return models.PersistenceError(err)
		}
		return nil
	})
	if err != nil {
		respondAppError(c, err)
		return
	}

	taxonomy_cache.Invalidate()

	// Step 7: Purge stale cart references after commit, best-effort
	go func(id uuid.UUID) {
		purgeCtx, purgeCancel := config.WithCustomTimeout(10 * time.Second)
		defer purgeCancel()

		purged, err := taxonomy.PurgeStaleCartRefs(purgeCtx, id)
		if err != nil {
			log.Printf("[ERROR] cart purge for product %s failed: %v", id, err)
			return
		}
		if purged > 0 {
			log.Printf("🧹 Purged %d stale cart references for product %s", purged, id)
		}
	}(productID)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product deleted successfully", map[string]string{
		"id": productID.String(),
	}))
}
