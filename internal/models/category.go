package models

import "time"

// Category represents a top-level product category
type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Title string `json:"title" gorm:"uniqueIndex;not null"`
	Img   string `json:"img" gorm:"not null"`
	// Total is maintained by the product repository; it always mirrors the
	// live count of products under this category title.
	Total     int       `json:"total" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	AttributeCategories []AttributeCategory `json:"attributeCategories,omitempty" gorm:"foreignKey:CategoryTitle;references:Title"`
	Products            []Product           `json:"products,omitempty" gorm:"foreignKey:CategoryTitle;references:Title"`
}

// CreateCategoryRequest represents the multipart form fields for category
// creation. The image file arrives as the "img" form file.
type CreateCategoryRequest struct {
	Title string `form:"title" binding:"required"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
