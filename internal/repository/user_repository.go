package repository

import (
	"errors"
	"time"

	"github.com/libas-next/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the user data access interface.
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateFields(id uint, updates map[string]interface{}) error
	BumpTokenVersion(id uint) error
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository is the GORM implementation.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the user repository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByID fetches a user by id.
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername fetches a user by login name.
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email.
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a user.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateFields updates selected columns.
func (r *GormUserRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

// BumpTokenVersion invalidates all outstanding tokens for the user.
func (r *GormUserRepository) BumpTokenVersion(id uint) error {
	now := time.Now()
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"token_version":        gorm.Expr("token_version + 1"),
		"token_invalid_before": now,
		"updated_at":           now,
	}).Error
}
