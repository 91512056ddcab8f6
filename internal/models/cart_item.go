package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem line row. UnitPrice is frozen at add-time. VariantID of 0 means
// the line has no variant; the zero sentinel keeps the line uniqueness
// index effective where NULLs would not collide.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                        // primary key
	CartID    uint           `gorm:"not null;uniqueIndex:idx_cart_line" json:"cart_id"`           // owning cart
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_line" json:"product_id"`        // product
	VariantID uint           `gorm:"not null;default:0;uniqueIndex:idx_cart_line" json:"variant_id,omitempty"` // variant, 0 for none
	Quantity  int            `gorm:"not null" json:"quantity"`                                    // count, >= 1
	UnitPrice Money          `gorm:"type:decimal(12,2);not null;default:0" json:"unit_price"`     // price captured at add-time
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                     // created time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                     // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                              // soft delete

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"` // denormalized detail
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // denormalized detail
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}
