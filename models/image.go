package models

import (
	"time"

	"github.com/google/uuid"
)

// Image is one row of an owner's ordered image list. The same shape backs
// the product gallery and the "home"/"about" content entities; the table is
// chosen per entity kind, so the struct carries no TableName.
//
// Invariants kept by the image lifecycle service:
//   - at most one row per owner has IsMain = true; when any live row exists,
//     exactly one is main
//   - Idx is contiguous from 0 for the owner's live rows; the row at Idx 0
//     is the one promoted when the prior main disappears
//   - ImageKey is authoritative; empty string means the slot has no backing
//     blob (soft-deleted). ImageURL is a cached signed URL and is
//     regenerated on every read.
type Image struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Idx       int       `json:"index" gorm:"column:idx;not null"`
	ImageKey  string    `json:"image_key"`
	ImageURL  string    `json:"image_url"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Live reports whether the row still has a backing blob.
func (i Image) Live() bool {
	return i.ImageKey != ""
}

// ReorderImagesRequest carries the full image list in desired order; the
// first id becomes main.
type ReorderImagesRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids" binding:"required,min=1"`
}
