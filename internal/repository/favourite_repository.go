package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace-service/internal/models"
)

// FavouriteStore is the favourites persistence contract used by handlers
type FavouriteStore interface {
	Create(favourite *models.Favourite) error
	GetAllByUser(userID int64) ([]models.Favourite, error)
	Delete(userID int64, productID uuid.UUID) error
}

type FavouriteRepository struct {
	db *gorm.DB
}

var _ FavouriteStore = (*FavouriteRepository)(nil)

func NewFavouriteRepository(db *gorm.DB) *FavouriteRepository {
	return &FavouriteRepository{db: db}
}

// Create adds a product to a user's favourites
func (r *FavouriteRepository) Create(favourite *models.Favourite) error {
	return r.db.Create(favourite).Error
}

// GetAllByUser retrieves a user's favourites with product detail
func (r *FavouriteRepository) GetAllByUser(userID int64) ([]models.Favourite, error) {
	var favourites []models.Favourite
	err := r.db.Preload("Product").
		Where("user_id = ?", userID).
		Find(&favourites).Error
	return favourites, err
}

// Delete removes a favourite. A missing row is a no-op: absence is
// expected, not an error.
func (r *FavouriteRepository) Delete(userID int64, productID uuid.UUID) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favourite{}).Error
}
