package product_controller

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	taxonomy_cache "github.com/yash77492562/E-commerce-sub000/cache"
	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
	"github.com/yash77492562/E-commerce-sub000/utils"
)

// CreateProduct godoc
// @Summary Create a new product with images
// @Description Multipart create: every image is uploaded first (all-or-nothing), then product row and image rows are written in one transaction
// @Tags CMS - Products
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Product title"
// @Param price formData int true "Price in minor currency units"
// @Param discount_rate formData int false "Discount rate in basis points"
// @Param category formData string false "Category name"
// @Param sub_category formData string false "SubCategory label"
// @Param update_default_sub_category formData bool false "Backfill null siblings to default"
// @Param tags formData string false "Tags as JSON array or comma-separated"
// @Param images formData file true "Image files, first becomes main"
// @Success 201 {object} models.ApiResponse
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /api/v1/catalog/products [post]
func CreateProduct(c *gin.Context) {
	overallStart := time.Now()
	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("[PERF] CREATE PRODUCT START")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	// Step 1: Parse multipart form
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid multipart form: "+err.Error()))
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Title is required"))
		return
	}

	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Price must be a non-negative integer"))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "At least one image file is required"))
		return
	}

	// Step 2: Build product model (ID assigned up front, image keys need it)
	product := models.Product{
		ID:    uuid.Must(uuid.NewV7()),
		Title: title,
		Price: price,
		Tags:  models.TagsList(parseTags(c.PostForm("tags"))),
	}

	if raw := c.PostForm("discount_rate"); raw != "" {
		rate, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || rate < 0 || rate > 10000 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "discount_rate must be between 0 and 10000 basis points"))
			return
		}
		product.DiscountRate = &rate
	}
	if category := strings.TrimSpace(c.PostForm("category")); category != "" {
		product.Category = &category
	}

	// Step 3: Resolve the requested subcategory (may carry the create-new sentinel)
	var desiredSub *string
	updateDefault := c.PostForm("update_default_sub_category") == "true"
	if raw := strings.TrimSpace(c.PostForm("sub_category")); raw != "" {
		if raw == models.SubCategoryCreateNew {
			label := strings.TrimSpace(c.PostForm("new_sub_category"))
			if label == "" {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "new_sub_category is required with the create-new sentinel"))
				return
			}
			desiredSub = &label
			updateDefault = true
		} else {
			desiredSub = &raw
		}
		product.SubCategory = desiredSub
	}
	if desiredSub != nil && product.Category == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "sub_category requires a category"))
		return
	}

	// Step 4: Derive a unique slug from the title
	slug, err := utils.UniqueSlug(config.CatalogGorm.WithContext(ctx), "products", title)
	if err != nil {
		respondAppError(c, models.PersistenceError(err))
		return
	}
	product.Slug = slug

	// Step 5: Evaluate the taxonomy impact before touching storage
	var decision services.SubCategoryDecision
	if product.Category != nil {
		siblings, err := taxonomy.LoadCategorySiblings(ctx, *product.Category)
		if err != nil {
			respondAppError(c, err)
			return
		}
		decision = services.EvaluateSubCategoryChange(siblings, product.ID, desiredSub, updateDefault)
	}

	// Step 6: Upload every image; any failure fails the whole create before
	// a single row exists
	uploadStart := time.Now()
	rows, err := lifecycle.UploadNew(ctx, services.ProductImages, product.ID, files)
	if err != nil {
		respondAppError(c, err)
		return
	}
	log.Printf("[PERF] ⏱️  Uploaded %d images: %v", len(rows), time.Since(uploadStart))

	// Step 7: One transaction — product row, image rows, sibling backfill
	dbStart := time.Now()
	err = config.CatalogGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return models.PersistenceError(err)
		}
		if err := lifecycle.InsertRows(tx, services.ProductImages, rows); err != nil {
			return err
		}
		if product.Category != nil && decision.BackfillDefault {
			return taxonomy.ApplyDecision(tx, *product.Category, product.ID, desiredSub, decision)
		}
		return nil
	})
	if err != nil {
		respondAppError(c, err)
		return
	}
	log.Printf("[PERF] ⏱️  Database insert: %v", time.Since(dbStart))
	log.Printf("[PERF] 🆔 Product ID (UUID v7): %s", product.ID)

	taxonomy_cache.Invalidate()

	product.Images = rows
	product.ComputeDiscount()

	log.Printf("[PERF] ⏱️  ⭐ TOTAL TIME: %v", time.Since(overallStart))
	log.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Product created successfully", product))
}
