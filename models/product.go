package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ════════════════════════════════════════════════════════════
// SubCategory sentinels
// ════════════════════════════════════════════════════════════

// SubCategoryDefault is the reserved label assigned to every sibling when a
// category first gains a concrete subcategory (flat → normalized).
const SubCategoryDefault = "default"

// SubCategoryCreateNew is the sentinel the admin UI sends when the desired
// subcategory is a brand-new label; the label itself travels in
// NewSubCategory and the default backfill is implied.
const SubCategoryCreateNew = "create-new-subcategory"

// ════════════════════════════════════════════════════════════
// JSONB Type Definitions
// ════════════════════════════════════════════════════════════

type TagsList []string

func (t *TagsList) Scan(value interface{}) error {
	if value == nil {
		*t = make(TagsList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to scan TagsList")
	}
	return json.Unmarshal(bytes, t)
}

func (t TagsList) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(t)
}

// ════════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ════════════════════════════════════════════════════════════

// Product is a catalog entry. Price is stored in minor currency units and
// DiscountRate in basis points; Discount and DiscountLessValue are derived
// on read, never stored. Category/SubCategory are free strings — the valid
// combinations per category are enforced by the consistency engine, not by
// the schema.
type Product struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string    `json:"title" gorm:"not null;index"`
	Slug         string    `json:"slug" gorm:"uniqueIndex;not null"`
	Price        int64     `json:"price" gorm:"not null;check:price >= 0"`
	DiscountRate *int64    `json:"discount_rate,omitempty"`
	Category     *string   `json:"category,omitempty" gorm:"index"`
	SubCategory  *string   `json:"sub_category,omitempty" gorm:"index"`
	Tags         TagsList  `json:"tags" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Derived fields (computed in AfterFind / ComputeDiscount)
	Discount          *int64 `json:"discount,omitempty" gorm:"-"`
	DiscountLessValue *int64 `json:"discount_less_value,omitempty" gorm:"-"`

	// Materialized separately with fresh signed URLs
	Images []Image `json:"images,omitempty" gorm:"-"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// AfterFind hook - populate derived discount fields
func (p *Product) AfterFind(tx *gorm.DB) error {
	p.ComputeDiscount()
	return nil
}

// ComputeDiscount fills Discount and DiscountLessValue from Price and
// DiscountRate (basis points). Both stay nil when no rate is set.
func (p *Product) ComputeDiscount() {
	if p.DiscountRate == nil {
		p.Discount = nil
		p.DiscountLessValue = nil
		return
	}
	discount := p.Price * *p.DiscountRate / 10000
	remainder := p.Price - discount
	p.Discount = &discount
	p.DiscountLessValue = &remainder
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ════════════════════════════════════════════════════════════
// Request Models
// ════════════════════════════════════════════════════════════

// UpdateProductRequest carries the PATCH body. Pointer fields distinguish
// "not provided" from an explicit value; an explicit empty SubCategory means
// "clear it" and is subject to the consistency engine's decision.
type UpdateProductRequest struct {
	Title                    *string   `json:"title"`
	Price                    *int64    `json:"price" binding:"omitempty,min=0"`
	DiscountRate             *int64    `json:"discount_rate" binding:"omitempty,min=0,max=10000"`
	Category                 *string   `json:"category"`
	SubCategory              *string   `json:"sub_category"`
	NewSubCategory           *string   `json:"new_sub_category"`
	UpdateDefaultSubCategory bool      `json:"update_default_sub_category"`
	Tags                     *[]string `json:"tags"`
}

// DeleteProductRequest identifies the product to delete.
type DeleteProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}
