package models

import (
	"time"

	"github.com/google/uuid"
)

// AttributeCategory is a named group of attributes scoped to one product
// category, e.g. "Size" for "Clothing". Attributes reference it by name
// rather than by surrogate id: names are unique and clients address the
// taxonomy with them.
type AttributeCategory struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	Type          string    `json:"type" gorm:"not null"`
	CategoryTitle string    `json:"categoryTitle" gorm:"not null;index"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Relationships
	Attributes    []Attribute   `json:"attributes,omitempty" gorm:"foreignKey:AttributeCategoryName;references:Name"`
	SubCategories []SubCategory `json:"subCategories,omitempty" gorm:"foreignKey:AttributeCategoryName;references:Name"`
}

// Attribute is a single filterable property within an attribute category.
// ParentAttributeName is an optional key into the sub-category arena: an
// attribute created under a sub-category stores that sub-category's name
// and stays addressable even when siblings are removed.
type Attribute struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	Name                  string    `json:"name" gorm:"uniqueIndex;not null"`
	AttributeCategoryName string    `json:"attributeCategoryName" gorm:"not null;index"`
	ParentAttributeName   *string   `json:"parentAttributeName,omitempty" gorm:"index"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// SubCategory is a refinement level below an attribute, e.g. attribute
// "Color" refined by sub-category "Shade".
type SubCategory struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	Name                  string    `json:"name" gorm:"uniqueIndex;not null"`
	AttributeCategoryName string    `json:"attributeCategoryName" gorm:"not null;index"`
	ParentAttributeName   string    `json:"parentAttributeName" gorm:"not null;index"`
	Type                  string    `json:"type"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ProductAttribute assigns a concrete attribute value to a product.
// (product_id, attribute_id) pairs may repeat: attributes are multi-valued.
type ProductAttribute struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProductID   uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	AttributeID uint      `json:"attributeId" gorm:"not null;index"`
	Value       string    `json:"value" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relationships
	Attribute *Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
}

// CreateAttributeCategoryRequest represents a request to create an attribute category
type CreateAttributeCategoryRequest struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	CategoryTitle string `json:"categoryTitle"`
}

// CreateAttributeRequest represents a request to create an attribute
type CreateAttributeRequest struct {
	Name                  string  `json:"name"`
	AttributeCategoryName string  `json:"attributeCategoryName"`
	ParentAttributeName   *string `json:"parentAttributeName,omitempty"`
}

// CreateSubCategoryRequest represents a request to create a sub-category
type CreateSubCategoryRequest struct {
	Name                  string `json:"name"`
	AttributeCategoryName string `json:"attributeCategoryName"`
	ParentAttributeName   string `json:"parentAttributeName"`
	Type                  string `json:"type"`
}

// BindProductAttributeRequest links a product to an attribute value
type BindProductAttributeRequest struct {
	ProductID   string `json:"productId"`
	AttributeID uint   `json:"attributeId"`
	Value       string `json:"value"`
}

// TableName returns the table name for the AttributeCategory model
func (AttributeCategory) TableName() string {
	return "attribute_categories"
}

// TableName returns the table name for the Attribute model
func (Attribute) TableName() string {
	return "attributes"
}

// TableName returns the table name for the SubCategory model
func (SubCategory) TableName() string {
	return "sub_categories"
}

// TableName returns the table name for the ProductAttribute model
func (ProductAttribute) TableName() string {
	return "product_attributes"
}
