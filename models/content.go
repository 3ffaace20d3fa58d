package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HomeSection is a "home" page content entity. Each section owns a
// single-slot image set in the home_images table: the row persists across
// soft deletes so the UI slot stays addressable for re-upload.
type HomeSection struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Heading   string    `json:"heading"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (h *HomeSection) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (HomeSection) TableName() string {
	return "home_sections"
}

// AboutSection is an "about" page content entity with a named position;
// each position holds exactly one image row in the about_images table.
type AboutSection struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Position  string    `json:"position" gorm:"uniqueIndex;not null"`
	Heading   string    `json:"heading"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (a *AboutSection) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (AboutSection) TableName() string {
	return "about_sections"
}
