package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketplace-service/internal/models"
)

var (
	ErrAttributeCategoryNotFound = errors.New("attribute category not found")
	ErrAttributeNotFound         = errors.New("attribute not found")
	ErrSubCategoryNotFound       = errors.New("sub-category not found")
)

// AttributeStore is the taxonomy and binder contract used by handlers
type AttributeStore interface {
	CreateAttributeCategory(ac *models.AttributeCategory) error
	GetAttributeCategories() ([]models.AttributeCategory, error)
	GetAttributeCategoriesByCategory(categoryTitle string) ([]models.AttributeCategory, error)
	DeleteAttributeCategory(id uint) error

	CreateAttribute(attribute *models.Attribute) error
	GetAttributes() ([]models.Attribute, error)
	GetSubAttributes(parentAttributeName string) ([]models.Attribute, error)
	DeleteAttribute(name string) error

	CreateSubCategory(sc *models.SubCategory) error
	GetSubCategoriesByParentAttribute(parentAttributeName string) ([]models.SubCategory, error)
	DeleteSubCategory(id uint) error

	Bind(pa *models.ProductAttribute) error
	ListByProduct(productID uuid.UUID) ([]models.ProductAttribute, error)
	UnbindAllForProduct(productID uuid.UUID) (int64, error)
	FindProductsByAttributeIDs(ids []uint, filters models.ProductSearchFilters) ([]models.Product, error)
}

type AttributeRepository struct {
	db *gorm.DB
}

var _ AttributeStore = (*AttributeRepository)(nil)

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

// CreateAttributeCategory inserts an attribute category after verifying the
// referenced product category exists. The unique constraint on name is left
// to the database.
func (r *AttributeRepository) CreateAttributeCategory(ac *models.AttributeCategory) error {
	var count int64
	if err := r.db.Model(&models.Category{}).
		Where("title = ?", ac.CategoryTitle).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}
	return r.db.Create(ac).Error
}

// GetAttributeCategories retrieves all attribute categories with their
// attributes eagerly loaded
func (r *AttributeRepository) GetAttributeCategories() ([]models.AttributeCategory, error) {
	var categories []models.AttributeCategory
	err := r.db.Preload("Attributes").Find(&categories).Error
	return categories, err
}

// GetAttributeCategoriesByCategory retrieves attribute categories scoped to
// one product category, with attributes eagerly loaded
func (r *AttributeRepository) GetAttributeCategoriesByCategory(categoryTitle string) ([]models.AttributeCategory, error) {
	var categories []models.AttributeCategory
	err := r.db.Preload("Attributes").
		Where("category_title = ?", categoryTitle).
		Find(&categories).Error
	return categories, err
}

// DeleteAttributeCategory removes an attribute category and everything
// scoped under it: sub-categories, attributes and the product-attribute
// rows referencing those attributes. All-or-nothing.
func (r *AttributeRepository) DeleteAttributeCategory(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ac models.AttributeCategory
		if err := tx.First(&ac, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttributeCategoryNotFound
			}
			return err
		}

		var attributeIDs []uint
		if err := tx.Model(&models.Attribute{}).
			Where("attribute_category_name = ?", ac.Name).
			Pluck("id", &attributeIDs).Error; err != nil {
			return err
		}
		if len(attributeIDs) > 0 {
			if err := tx.Where("attribute_id IN ?", attributeIDs).
				Delete(&models.ProductAttribute{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("attribute_category_name = ?", ac.Name).
			Delete(&models.SubCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attribute_category_name = ?", ac.Name).
			Delete(&models.Attribute{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.AttributeCategory{}, id).Error
	})
}

// CreateAttribute inserts an attribute. The attribute category must exist;
// when a parent is named, a sub-category with that name must exist too.
func (r *AttributeRepository) CreateAttribute(attribute *models.Attribute) error {
	var count int64
	if err := r.db.Model(&models.AttributeCategory{}).
		Where("name = ?", attribute.AttributeCategoryName).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAttributeCategoryNotFound
	}

	if attribute.ParentAttributeName != nil {
		var parents int64
		if err := r.db.Model(&models.SubCategory{}).
			Where("name = ?", *attribute.ParentAttributeName).
			Count(&parents).Error; err != nil {
			return err
		}
		if parents == 0 {
			return ErrSubCategoryNotFound
		}
	}

	return r.db.Create(attribute).Error
}

// GetAttributes retrieves all attributes
func (r *AttributeRepository) GetAttributes() ([]models.Attribute, error) {
	var attributes []models.Attribute
	err := r.db.Find(&attributes).Error
	return attributes, err
}

// GetSubAttributes retrieves attributes nested under the named parent
func (r *AttributeRepository) GetSubAttributes(parentAttributeName string) ([]models.Attribute, error) {
	var attributes []models.Attribute
	err := r.db.Where("parent_attribute_name = ?", parentAttributeName).
		Find(&attributes).Error
	return attributes, err
}

// DeleteAttribute removes an attribute by its unique name. Bindings and
// sub-categories parented on it go with it; child attribute references are
// rewritten to nil rather than followed, so the remaining rows never point
// at a dead attribute or sub-category.
func (r *AttributeRepository) DeleteAttribute(name string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attribute models.Attribute
		if err := tx.Where("name = ?", name).First(&attribute).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAttributeNotFound
			}
			return err
		}

		if err := tx.Where("attribute_id = ?", attribute.ID).
			Delete(&models.ProductAttribute{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Attribute{}).
			Where("parent_attribute_name = ?", name).
			Update("parent_attribute_name", gorm.Expr("NULL")).Error; err != nil {
			return err
		}

		var subNames []string
		if err := tx.Model(&models.SubCategory{}).
			Where("parent_attribute_name = ?", name).
			Pluck("name", &subNames).Error; err != nil {
			return err
		}
		if len(subNames) > 0 {
			if err := tx.Model(&models.Attribute{}).
				Where("parent_attribute_name IN ?", subNames).
				Update("parent_attribute_name", gorm.Expr("NULL")).Error; err != nil {
				return err
			}
			if err := tx.Where("parent_attribute_name = ?", name).
				Delete(&models.SubCategory{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("name = ?", name).Delete(&models.Attribute{}).Error
	})
}

// CreateSubCategory inserts a sub-category under an existing attribute category
func (r *AttributeRepository) CreateSubCategory(sc *models.SubCategory) error {
	var count int64
	if err := r.db.Model(&models.AttributeCategory{}).
		Where("name = ?", sc.AttributeCategoryName).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAttributeCategoryNotFound
	}
	return r.db.Create(sc).Error
}

// GetSubCategoriesByParentAttribute retrieves sub-categories refining the
// named attribute
func (r *AttributeRepository) GetSubCategoriesByParentAttribute(parentAttributeName string) ([]models.SubCategory, error) {
	var subCategories []models.SubCategory
	err := r.db.Where("parent_attribute_name = ?", parentAttributeName).
		Find(&subCategories).Error
	return subCategories, err
}

// DeleteSubCategory removes a sub-category by id
func (r *AttributeRepository) DeleteSubCategory(id uint) error {
	result := r.db.Delete(&models.SubCategory{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubCategoryNotFound
	}
	return nil
}

// Bind links a product to an attribute value. The pair may repeat:
// attributes are multi-valued per product.
func (r *AttributeRepository) Bind(pa *models.ProductAttribute) error {
	var products int64
	if err := r.db.Model(&models.Product{}).
		Where("id = ?", pa.ProductID).
		Count(&products).Error; err != nil {
		return err
	}
	if products == 0 {
		return ErrProductNotFound
	}

	var attributes int64
	if err := r.db.Model(&models.Attribute{}).
		Where("id = ?", pa.AttributeID).
		Count(&attributes).Error; err != nil {
		return err
	}
	if attributes == 0 {
		return ErrAttributeNotFound
	}

	return r.db.Create(pa).Error
}

// ListByProduct retrieves a product's attribute bindings with attribute detail
func (r *AttributeRepository) ListByProduct(productID uuid.UUID) ([]models.ProductAttribute, error) {
	var bindings []models.ProductAttribute
	err := r.db.Preload("Attribute").
		Where("product_id = ?", productID).
		Find(&bindings).Error
	return bindings, err
}

// UnbindAllForProduct deletes every binding for a product and returns how
// many rows went away. Zero is a valid outcome, not an error.
func (r *AttributeRepository) UnbindAllForProduct(productID uuid.UUID) (int64, error) {
	result := r.db.Where("product_id = ?", productID).
		Delete(&models.ProductAttribute{})
	return result.RowsAffected, result.Error
}

// FindProductsByAttributeIDs returns the products holding at least one
// binding to any of the given attributes, optionally narrowed by price
// range and category. A product matching several attributes appears once.
func (r *AttributeRepository) FindProductsByAttributeIDs(ids []uint, filters models.ProductSearchFilters) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).
		Joins("JOIN product_attributes ON product_attributes.product_id = products.id").
		Where("product_attributes.attribute_id IN ?", ids)

	if filters.FromPrice != nil {
		query = query.Where("products.price >= ?", *filters.FromPrice)
	}
	if filters.ToPrice != nil {
		query = query.Where("products.price <= ?", *filters.ToPrice)
	}
	if filters.CategoryTitle != "" {
		query = query.Where("products.category_title = ?", filters.CategoryTitle)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return dedupeProducts(products), nil
}

// dedupeProducts collapses join duplicates, keeping first occurrence order
func dedupeProducts(products []models.Product) []models.Product {
	seen := make(map[uuid.UUID]struct{}, len(products))
	deduped := make([]models.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		deduped = append(deduped, p)
	}
	return deduped
}
