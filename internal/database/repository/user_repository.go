package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ikubinfo/enrollment-engine/internal/database/models"
)

// UserRepository defines the interface for student data operations
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
	ListAll() ([]models.User, error)
	Filter(criteria UserCriteria) ([]models.User, int64, error)
	FindRoleByName(name string) (*models.Role, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID returns ErrUserNotFound for missing and soft-deleted users alike.
func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND deleted = ?", id, false).
		Preload("Role").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("deleted = ?", false).
		Preload("Role").
		Order("last_name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepository) Filter(criteria UserCriteria) ([]models.User, int64, error) {
	spec := criteria.specification()

	var total int64
	if err := spec.where(r.db.Model(&models.User{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := spec.apply(r.db).Preload("Role").Find(&users).Error
	return users, total, err
}

func (r *userRepository) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// Repository errors for users
var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
)
