package services

import (
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
)

// LogActivityRequest contains the parameters for logging one admin action.
type LogActivityRequest struct {
	AdminID      uuid.UUID
	AdminEmail   string
	Action       string // created_product, reordered_images, ...
	ResourceType string // ResourceTypeProduct, ResourceTypeProductImage, ...
	ResourceID   string
	Detail       map[string]interface{}
	Status       string
	ErrorMessage string
	Context      *gin.Context // for IP extraction
}

// LogActivity writes one activity row. Logging never fails the request: any
// error here is logged and swallowed.
func LogActivity(req LogActivityRequest) {
	if req.AdminID == uuid.Nil {
		log.Printf("[activity-log] warning: AdminID is nil for action %s", req.Action)
		return
	}

	var detailJSON []byte
	if req.Detail != nil {
		data, err := json.Marshal(req.Detail)
		if err != nil {
			log.Printf("[activity-log] failed to marshal detail: %v", err)
			detailJSON = []byte("{}")
		} else {
			detailJSON = data
		}
	}

	if req.Status == "" {
		req.Status = models.StatusSuccess
	}

	entry := models.ActivityLog{
		AdminID:      req.AdminID,
		AdminEmail:   req.AdminEmail,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Detail:       detailJSON,
		Status:       req.Status,
		ErrorMessage: req.ErrorMessage,
		IPAddress:    extractClientIP(req.Context),
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	if err := config.CatalogGorm.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("[activity-log] failed to create activity log: %v", err)
		return
	}

	log.Printf("[activity-log] %s: %s/%s by %s", req.Action, req.ResourceType, req.ResourceID, req.AdminEmail)
}

// extractClientIP checks X-Forwarded-For, X-Real-IP, then RemoteAddr.
func extractClientIP(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		return forwardedFor
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.RemoteIP()
}
