package repository

import (
	"errors"
	"time"

	"github.com/libas-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository is the cart data access interface.
type CartRepository interface {
	GetBySessionID(sessionID string) (*models.Cart, error)
	GetByUserID(userID uint) (*models.Cart, error)
	GetByID(id uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	AssignUser(cartID, userID uint) error
	Delete(cartID uint) error
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItem(itemID uint) (*models.CartItem, error)
	FindLine(cartID, productID, variantID uint) (*models.CartItem, error)
	UpsertLine(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository is the GORM implementation.
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates the cart repository.
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetBySessionID fetches the cart owned by a session.
func (r *GormCartRepository) GetBySessionID(sessionID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByUserID fetches the cart owned by a user.
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetByID fetches a cart header.
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create inserts a cart header.
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// AssignUser sets the cart owner, the one-time guest-to-user association.
func (r *GormCartRepository) AssignUser(cartID, userID uint) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Updates(map[string]interface{}{
		"user_id":    userID,
		"updated_at": time.Now(),
	}).Error
}

// Delete retires a cart header and its lines.
func (r *GormCartRepository) Delete(cartID uint) error {
	if err := r.ClearItems(cartID); err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, cartID).Error
}

// ListItems returns the cart lines with product and variant detail.
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").Preload("Variant").
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem fetches a single cart line.
func (r *GormCartRepository) GetItem(itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindLine fetches the line for a (product, variant) pair, nil when absent.
func (r *GormCartRepository) FindLine(cartID, productID, variantID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ? AND variant_id = ?", cartID, productID, variantID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertLine adds a line or folds the quantity into the existing line for
// the same (product, variant) pair. A create that loses the race against a
// concurrent insert hits the line uniqueness index and retries as an
// increment.
func (r *GormCartRepository) UpsertLine(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	existing, err := r.FindLine(item.CartID, item.ProductID, item.VariantID)
	if err != nil {
		return err
	}
	if existing == nil {
		createErr := r.db.Create(item).Error
		if createErr == nil {
			return nil
		}
		existing, err = r.FindLine(item.CartID, item.ProductID, item.VariantID)
		if err != nil {
			return err
		}
		if existing == nil {
			return createErr
		}
	}
	return r.db.Model(&models.CartItem{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", item.Quantity),
		"updated_at": time.Now(),
	}).Error
}

// UpdateItemQuantity replaces the quantity on a line.
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Updates(map[string]interface{}{
		"quantity":   quantity,
		"updated_at": time.Now(),
	}).Error
}

// DeleteItem removes a line. Lines are hard-deleted so a removed pair can
// be re-added without tripping the uniqueness index.
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Unscoped().Delete(&models.CartItem{}, itemID).Error
}

// ClearItems removes every line of a cart.
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Unscoped().Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
