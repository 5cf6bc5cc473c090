package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace-service/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

// ImageStore is the image persistence contract used by handlers
type ImageStore interface {
	Create(image *models.Image) error
	GetByProduct(productID uuid.UUID) ([]models.Image, error)
	GetByURL(url string) (*models.Image, error)
	DeleteByID(productID, id uuid.UUID) (*models.Image, error)
	DeleteByURL(url string) (*models.Image, error)
	DeleteAllByProduct(productID uuid.UUID) ([]string, error)
}

type ImageRepository struct {
	db *gorm.DB
}

var _ ImageStore = (*ImageRepository)(nil)

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Create records an uploaded image
func (r *ImageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

// GetByProduct retrieves all images for a product
func (r *ImageRepository) GetByProduct(productID uuid.UUID) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Where("product_id = ?", productID).Find(&images).Error
	return images, err
}

// GetByURL retrieves an image by its unique file name
func (r *ImageRepository) GetByURL(url string) (*models.Image, error) {
	var image models.Image
	err := r.db.Where("url = ?", url).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

// DeleteByID removes one image of a product and returns the deleted row so
// the caller can remove the backing file.
func (r *ImageRepository) DeleteByID(productID, id uuid.UUID) (*models.Image, error) {
	var image models.Image
	err := r.db.Where("id = ? AND product_id = ?", id, productID).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	if err := r.db.Where("id = ? AND product_id = ?", id, productID).
		Delete(&models.Image{}).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteByURL removes an image by file name and returns the deleted row
func (r *ImageRepository) DeleteByURL(url string) (*models.Image, error) {
	image, err := r.GetByURL(url)
	if err != nil {
		return nil, err
	}
	if err := r.db.Where("url = ?", url).Delete(&models.Image{}).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// DeleteAllByProduct removes every image row for a product and returns the
// file names that backed them. Not-found is signalled by an empty slice.
func (r *ImageRepository) DeleteAllByProduct(productID uuid.UUID) ([]string, error) {
	var urls []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Image{}).
			Where("product_id = ?", productID).
			Pluck("url", &urls).Error; err != nil {
			return err
		}
		if len(urls) == 0 {
			return nil
		}
		return tx.Where("product_id = ?", productID).
			Delete(&models.Image{}).Error
	})
	return urls, err
}
