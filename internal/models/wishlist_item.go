package models

import (
	"time"

	"gorm.io/gorm"
)

// WishlistItem saved-product row; (wishlist, product) is unique.
type WishlistItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                       // primary key
	WishlistID uint           `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"wishlist_id"` // owning wishlist
	ProductID  uint           `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"product_id"`  // saved product
	AddedAt    time.Time      `gorm:"index" json:"added_at"`                                      // when the product was saved
	CreatedAt  time.Time      `json:"created_at"`                                                 // created time
	UpdatedAt  time.Time      `json:"updated_at"`                                                 // updated time
	DeletedAt  gorm.DeletedAt `json:"-"`                                                          // soft delete

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // denormalized detail
}

// TableName sets the table name.
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
