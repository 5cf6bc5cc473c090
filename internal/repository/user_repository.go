package repository

import (
	"errors"

	"gorm.io/gorm"

	"marketplace-service/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore is the user persistence contract used by handlers
type UserStore interface {
	Create(user *models.User) error
	GetAll() ([]models.User, error)
	GetByID(id int64) (*models.User, error)
	Update(user *models.User) error
}

type UserRepository struct {
	db *gorm.DB
}

var _ UserStore = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetAll retrieves all users
func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Find(&users).Error
	return users, err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update saves changed user fields
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
