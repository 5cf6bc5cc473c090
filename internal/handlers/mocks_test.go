package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/storage"
)

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *mockCategoryStore) GetAll() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryStore) GetByID(id uint) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryStore) GetByTitle(title string) (*models.Category, error) {
	args := m.Called(title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryStore) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockProductStore struct {
	mock.Mock
}

func (m *mockProductStore) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *mockProductStore) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductStore) GetByID(id uuid.UUID) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductStore) GetByCategory(categoryTitle string) ([]models.Product, error) {
	args := m.Called(categoryTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductStore) GetByUser(userID int64) ([]models.Product, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductStore) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *mockProductStore) Delete(id uuid.UUID) (*repository.DeletedProduct, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DeletedProduct), args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserStore) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserStore) GetByID(id int64) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

type mockAttributeStore struct {
	mock.Mock
}

func (m *mockAttributeStore) CreateAttributeCategory(ac *models.AttributeCategory) error {
	args := m.Called(ac)
	return args.Error(0)
}

func (m *mockAttributeStore) GetAttributeCategories() ([]models.AttributeCategory, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttributeCategory), args.Error(1)
}

func (m *mockAttributeStore) GetAttributeCategoriesByCategory(categoryTitle string) ([]models.AttributeCategory, error) {
	args := m.Called(categoryTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttributeCategory), args.Error(1)
}

func (m *mockAttributeStore) DeleteAttributeCategory(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockAttributeStore) CreateAttribute(attribute *models.Attribute) error {
	args := m.Called(attribute)
	return args.Error(0)
}

func (m *mockAttributeStore) GetAttributes() ([]models.Attribute, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attribute), args.Error(1)
}

func (m *mockAttributeStore) GetSubAttributes(parentAttributeName string) ([]models.Attribute, error) {
	args := m.Called(parentAttributeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attribute), args.Error(1)
}

func (m *mockAttributeStore) DeleteAttribute(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *mockAttributeStore) CreateSubCategory(sc *models.SubCategory) error {
	args := m.Called(sc)
	return args.Error(0)
}

func (m *mockAttributeStore) GetSubCategoriesByParentAttribute(parentAttributeName string) ([]models.SubCategory, error) {
	args := m.Called(parentAttributeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubCategory), args.Error(1)
}

func (m *mockAttributeStore) DeleteSubCategory(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockAttributeStore) Bind(pa *models.ProductAttribute) error {
	args := m.Called(pa)
	return args.Error(0)
}

func (m *mockAttributeStore) ListByProduct(productID uuid.UUID) ([]models.ProductAttribute, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductAttribute), args.Error(1)
}

func (m *mockAttributeStore) UnbindAllForProduct(productID uuid.UUID) (int64, error) {
	args := m.Called(productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAttributeStore) FindProductsByAttributeIDs(ids []uint, filters models.ProductSearchFilters) ([]models.Product, error) {
	args := m.Called(ids, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type mockFavouriteStore struct {
	mock.Mock
}

func (m *mockFavouriteStore) Create(favourite *models.Favourite) error {
	args := m.Called(favourite)
	return args.Error(0)
}

func (m *mockFavouriteStore) GetAllByUser(userID int64) ([]models.Favourite, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Favourite), args.Error(1)
}

func (m *mockFavouriteStore) Delete(userID int64, productID uuid.UUID) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Create(image *models.Image) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *mockImageStore) GetByProduct(productID uuid.UUID) ([]models.Image, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *mockImageStore) GetByURL(url string) (*models.Image, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *mockImageStore) DeleteByID(productID, id uuid.UUID) (*models.Image, error) {
	args := m.Called(productID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *mockImageStore) DeleteByURL(url string) (*models.Image, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func (m *mockImageStore) DeleteAllByProduct(productID uuid.UUID) ([]string, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// newTestStore builds a LocalStore rooted in a per-test temp directory
func newTestStore(t *testing.T) *storage.LocalStore {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	store, err := storage.NewLocalStore(t.TempDir(), logger)
	require.NoError(t, err)
	return store
}
