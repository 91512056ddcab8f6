package repository

import (
	"errors"
	"time"

	"github.com/libas-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository is the wishlist data access interface.
type WishlistRepository interface {
	GetByUserID(userID uint) (*models.Wishlist, error)
	Create(wishlist *models.Wishlist) error
	ListItems(wishlistID uint) ([]models.WishlistItem, error)
	FindItem(wishlistID, productID uint) (*models.WishlistItem, error)
	AddItem(item *models.WishlistItem) error
	RemoveItem(wishlistID, productID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormWishlistRepository
}

// GormWishlistRepository is the GORM implementation.
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates the wishlist repository.
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormWishlistRepository) WithTx(tx *gorm.DB) *GormWishlistRepository {
	if tx == nil {
		return r
	}
	return &GormWishlistRepository{db: tx}
}

// GetByUserID fetches the wishlist of a user.
func (r *GormWishlistRepository) GetByUserID(userID uint) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.Where("user_id = ?", userID).First(&wishlist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wishlist, nil
}

// Create inserts a wishlist header.
func (r *GormWishlistRepository) Create(wishlist *models.Wishlist) error {
	return r.db.Create(wishlist).Error
}

// ListItems returns saved products with detail, newest saved first.
func (r *GormWishlistRepository) ListItems(wishlistID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").
		Where("wishlist_id = ?", wishlistID).
		Order("added_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindItem fetches the row for a (wishlist, product) pair, nil when absent.
func (r *GormWishlistRepository) FindItem(wishlistID, productID uint) (*models.WishlistItem, error) {
	var item models.WishlistItem
	err := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AddItem inserts a saved product.
func (r *GormWishlistRepository) AddItem(item *models.WishlistItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	return r.db.Create(item).Error
}

// RemoveItem deletes by the composite key and reports the affected rows.
// Hard delete keeps the pair re-addable under the uniqueness index.
func (r *GormWishlistRepository) RemoveItem(wishlistID, productID uint) (int64, error) {
	result := r.db.Unscoped().
		Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Delete(&models.WishlistItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
