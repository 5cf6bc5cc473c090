package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"marketplace-service/internal/models"
)

// Cache TTL constants
const (
	CategoryCacheTTL     = 30 * time.Minute // Categories rarely change
	CategoryListCacheTTL = 15 * time.Minute // Category lists
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has products")
)

// CategoryStore is the category persistence contract used by handlers
type CategoryStore interface {
	Create(category *models.Category) error
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	GetByTitle(title string) (*models.Category, error)
	Delete(id uint) error
}

type CategoryRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ CategoryStore = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB, redis *redis.Client) *CategoryRepository {
	return &CategoryRepository{
		db:    db,
		redis: redis,
	}
}

func categoryCacheKey(id uint) string {
	return fmt.Sprintf("marketplace:categories:category:%d", id)
}

const categoryListCacheKey = "marketplace:categories:list"

// InvalidateCache drops cached categories. Called after any mutation that
// changes a category row, including total recounts from the product side.
func (r *CategoryRepository) InvalidateCache(ctx context.Context, categoryID *uint) {
	if r.redis == nil {
		return
	}

	if categoryID != nil {
		r.redis.Del(ctx, categoryCacheKey(*categoryID))
	} else {
		keys, _ := r.redis.Keys(ctx, "marketplace:categories:category:*").Result()
		if len(keys) > 0 {
			r.redis.Del(ctx, keys...)
		}
	}
	r.redis.Del(ctx, categoryListCacheKey)
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) error {
	err := r.db.Create(category).Error
	if err == nil {
		r.InvalidateCache(context.Background(), nil)
	}
	return err
}

// GetAll retrieves all categories ordered by id, with caching
func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	ctx := context.Background()

	if r.redis != nil {
		val, err := r.redis.Get(ctx, categoryListCacheKey).Result()
		if err == nil {
			var categories []models.Category
			if err := json.Unmarshal([]byte(val), &categories); err == nil {
				return categories, nil
			}
		}
	}

	var categories []models.Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(categories)
		if err == nil {
			r.redis.Set(ctx, categoryListCacheKey, data, CategoryListCacheTTL)
		}
	}

	return categories, nil
}

// GetByID retrieves a category by ID with caching
func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	ctx := context.Background()
	cacheKey := categoryCacheKey(id)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var category models.Category
			if err := json.Unmarshal([]byte(val), &category); err == nil {
				return &category, nil
			}
		}
	}

	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		data, err := json.Marshal(category)
		if err == nil {
			r.redis.Set(ctx, cacheKey, data, CategoryCacheTTL)
		}
	}

	return &category, nil
}

// GetByTitle retrieves a category by its unique title
func (r *CategoryRepository) GetByTitle(title string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("title = ?", title).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Delete removes a category and its attribute taxonomy in one transaction.
// Deletion is refused while live products still reference the title, so
// orphaned listings can never be observed.
func (r *CategoryRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var productCount int64
		if err := tx.Model(&models.Product{}).
			Where("category_title = ?", category.Title).
			Count(&productCount).Error; err != nil {
			return err
		}
		if productCount > 0 {
			return ErrCategoryInUse
		}

		if err := deleteTaxonomyForCategory(tx, category.Title); err != nil {
			return err
		}

		return tx.Delete(&models.Category{}, id).Error
	})

	if err == nil {
		r.InvalidateCache(context.Background(), &id)
	}
	return err
}

// deleteTaxonomyForCategory removes every attribute category scoped to the
// given product category, together with its attributes, sub-categories and
// product-attribute rows. Runs inside the caller's transaction.
func deleteTaxonomyForCategory(tx *gorm.DB, categoryTitle string) error {
	var names []string
	if err := tx.Model(&models.AttributeCategory{}).
		Where("category_title = ?", categoryTitle).
		Pluck("name", &names).Error; err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	var attributeIDs []uint
	if err := tx.Model(&models.Attribute{}).
		Where("attribute_category_name IN ?", names).
		Pluck("id", &attributeIDs).Error; err != nil {
		return err
	}

	if len(attributeIDs) > 0 {
		if err := tx.Where("attribute_id IN ?", attributeIDs).
			Delete(&models.ProductAttribute{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("attribute_category_name IN ?", names).
		Delete(&models.SubCategory{}).Error; err != nil {
		return err
	}
	if err := tx.Where("attribute_category_name IN ?", names).
		Delete(&models.Attribute{}).Error; err != nil {
		return err
	}
	return tx.Where("category_title = ?", categoryTitle).
		Delete(&models.AttributeCategory{}).Error
}
