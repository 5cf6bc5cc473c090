package models

import (
	"time"

	"github.com/google/uuid"
)

// Favourite marks a product as favourited by a user
type Favourite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"userId" gorm:"not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// FavouriteRequest identifies a (user, product) pair for create and delete
type FavouriteRequest struct {
	UserID    int64  `json:"userId"`
	ProductID string `json:"productId"`
}

// TableName returns the table name for the Favourite model
func (Favourite) TableName() string {
	return "favourites"
}
