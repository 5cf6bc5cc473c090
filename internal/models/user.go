package models

import "time"

// DefaultUserStatus is assigned when a registration omits the status field.
const DefaultUserStatus = "DEFAULT"

// User represents a marketplace user. IDs are assigned by the identity
// provider on the client side, so the primary key is not auto-incremented.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name      string    `json:"name" gorm:"not null"`
	Img       string    `json:"img" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null;default:'DEFAULT'"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Products   []Product   `json:"products,omitempty" gorm:"foreignKey:UserID"`
	Favourites []Favourite `json:"favourites,omitempty" gorm:"foreignKey:UserID"`
}

// RegisterUserRequest represents a registration request
type RegisterUserRequest struct {
	ID     int64  `json:"id" binding:"required"`
	Name   string `json:"name"`
	Img    string `json:"img"`
	Status string `json:"status"`
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	Img    *string `json:"img,omitempty"`
	Status *string `json:"status,omitempty"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
