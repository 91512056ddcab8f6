package models

import (
	"time"

	"gorm.io/gorm"
)

// Wishlist header row, one per user.
type Wishlist struct {
	ID        uint           `gorm:"primarykey" json:"id"`               // primary key
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"` // owning user
	CreatedAt time.Time      `json:"created_at"`                         // created time
	UpdatedAt time.Time      `json:"updated_at"`                         // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                     // soft delete

	Items []WishlistItem `gorm:"foreignKey:WishlistID" json:"items,omitempty"` // saved products
}

// TableName sets the table name.
func (Wishlist) TableName() string {
	return "wishlists"
}
