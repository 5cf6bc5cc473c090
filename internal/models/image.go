package models

import (
	"time"

	"github.com/google/uuid"
)

// Image represents an uploaded product image. URL is the generated file
// name under the static directory, unique across all products. The
// composite unique index on (id, product_id) backs per-product lookups.
type Image struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;uniqueIndex:idx_image_product"`
	URL       string    `json:"url" gorm:"uniqueIndex;not null"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index;uniqueIndex:idx_image_product"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Image model
func (Image) TableName() string {
	return "images"
}
