package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace-service/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStore is the product persistence contract used by handlers
type ProductStore interface {
	Create(product *models.Product) error
	GetAll() ([]models.Product, error)
	GetByID(id uuid.UUID) (*models.Product, error)
	GetByCategory(categoryTitle string) ([]models.Product, error)
	GetByUser(userID int64) ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uuid.UUID) (*DeletedProduct, error)
}

// DeletedProduct reports what a product deletion removed. Image URLs are
// returned so the caller can clean up files outside the transaction.
type DeletedProduct struct {
	Product   *models.Product
	ImageURLs []string
}

type ProductRepository struct {
	db         *gorm.DB
	categories *CategoryRepository
}

var _ ProductStore = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB, categories *CategoryRepository) *ProductRepository {
	return &ProductRepository{
		db:         db,
		categories: categories,
	}
}

// recountCategoryTotal recomputes Category.Total from the live product
// count. Recounting (rather than incrementing) keeps the aggregate exact
// even if it ever drifted; the two strategies are never mixed.
func recountCategoryTotal(tx *gorm.DB, categoryTitle string) error {
	var total int64
	if err := tx.Model(&models.Product{}).
		Where("category_title = ?", categoryTitle).
		Count(&total).Error; err != nil {
		return err
	}
	return tx.Model(&models.Category{}).
		Where("title = ?", categoryTitle).
		Update("total", total).Error
}

// Create inserts a product and recounts its category total in the same
// transaction. Category and user existence must be checked by the caller.
func (r *ProductRepository) Create(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return recountCategoryTotal(tx, product.CategoryTitle)
	})

	if err == nil && r.categories != nil {
		r.categories.InvalidateCache(context.Background(), nil)
	}
	return err
}

// GetAll retrieves all products with their category
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Preload("Category").Find(&products).Error
	return products, err
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ?", id).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GetByCategory retrieves products under a category title
func (r *ProductRepository) GetByCategory(categoryTitle string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("category_title = ?", categoryTitle).Find(&products).Error
	return products, err
}

// GetByUser retrieves products listed by a user
func (r *ProductRepository) GetByUser(userID int64) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("user_id = ?", userID).Find(&products).Error
	return products, err
}

// Update saves changed product fields. Category and owner never change
// here, so totals are untouched.
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product together with its favourites, images and
// attribute bindings, then recounts the category total. All steps share
// one transaction; no partial cascade is observable.
func (r *ProductRepository) Delete(id uuid.UUID) (*DeletedProduct, error) {
	deleted := &DeletedProduct{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ?", id).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		deleted.Product = &product

		// Favourites are best-effort: absence is expected and tolerated.
		if err := tx.Where("product_id = ?", id).
			Delete(&models.Favourite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).
			Delete(&models.ProductAttribute{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Image{}).
			Where("product_id = ?", id).
			Pluck("url", &deleted.ImageURLs).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).
			Delete(&models.Image{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return err
		}

		return recountCategoryTotal(tx, product.CategoryTitle)
	})

	if err != nil {
		return nil, err
	}
	if r.categories != nil {
		r.categories.InvalidateCache(context.Background(), nil)
	}
	return deleted, nil
}
