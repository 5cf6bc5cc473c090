package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GeoEntry represents one location a product is offered in
type GeoEntry struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Region  string `json:"region,omitempty"`
	Address string `json:"address,omitempty"`
}

// GeoList type for PostgreSQL JSONB (array of geo entries)
type GeoList []GeoEntry

func (g GeoList) Value() (driver.Value, error) {
	return json.Marshal(g)
}

func (g *GeoList) Scan(value interface{}) error {
	if value == nil {
		*g = make(GeoList, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, g)
}

// Product represents a product listing
type Product struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primary_key"`
	Title         string          `json:"title" gorm:"not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Introtext     string          `json:"introtext" gorm:"not null"`
	Geo           GeoList         `json:"geo" gorm:"type:jsonb;not null"`
	CategoryTitle string          `json:"categoryTitle" gorm:"not null;index"`
	UserID        int64           `json:"userId" gorm:"not null;index"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	// Relationships
	Category          *Category          `json:"category,omitempty" gorm:"foreignKey:CategoryTitle;references:Title"`
	User              *User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Images            []Image            `json:"images,omitempty" gorm:"foreignKey:ProductID"`
	ProductAttributes []ProductAttribute `json:"productAttributes,omitempty" gorm:"foreignKey:ProductID"`
}

// CreateProductRequest represents a request to create a product listing.
// Every field is required; price must be a positive decimal.
type CreateProductRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	Introtext     string          `json:"introtext" binding:"required"`
	Geo           GeoList         `json:"geo"`
	CategoryTitle string          `json:"categoryTitle" binding:"required"`
	UserID        int64           `json:"userId" binding:"required"`
}

// UpdateProductRequest represents a partial product update. Category and
// owner are fixed at creation time; changing them would desync the
// category totals without a matching recount.
type UpdateProductRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Introtext   *string          `json:"introtext,omitempty"`
	Geo         *GeoList         `json:"geo,omitempty"`
}

// ProductSearchFilters narrows attribute-based product search
type ProductSearchFilters struct {
	FromPrice     *decimal.Decimal
	ToPrice       *decimal.Decimal
	CategoryTitle string
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
