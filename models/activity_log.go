package models

import (
	"time"

	"github.com/google/uuid"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog records one admin catalog mutation (created_product,
// updated_product, deleted_product, reordered_images, ...).
type ActivityLog struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	AdminID      uuid.UUID      `json:"admin_id" gorm:"type:uuid;not null;index:idx_activity_admin_date,sort:desc"`
	AdminEmail   string         `json:"admin_email" gorm:"not null"`
	Action       string         `json:"action" gorm:"not null;index"`
	ResourceType string         `json:"resource_type" gorm:"not null;index"` // product, product_image, content_image
	ResourceID   string         `json:"resource_id" gorm:"not null;index"`
	Detail       datatypes.JSON `json:"detail" gorm:"type:jsonb"`
	Status       string         `json:"status" gorm:"not null"` // success, failed
	ErrorMessage string         `json:"error_message"`
	IPAddress    string         `json:"ip_address"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime;index:idx_activity_admin_date,sort:desc"`
}

// Resource types used by the activity logging middleware.
const (
	ResourceTypeProduct      = "product"
	ResourceTypeProductImage = "product_image"
	ResourceTypeContentImage = "content_image"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// BeforeCreate hook - auto-generate UUID v7
func (al *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.Must(uuid.NewV7())
	}
	if al.Status == "" {
		al.Status = "success"
	}
	return nil
}

// TableName specifies the table name
func (ActivityLog) TableName() string {
	return "activity_logs"
}
