package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem immutable line snapshot copied from the cart at checkout.
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                    // primary key
	OrderID   uint           `gorm:"index;not null" json:"order_id"`                          // owning order
	ProductID uint           `gorm:"index;not null" json:"product_id"`                        // product at purchase time
	VariantID uint           `gorm:"not null;default:0" json:"variant_id,omitempty"`          // variant, 0 for none
	Quantity  int            `gorm:"not null" json:"quantity"`                                // count
	UnitPrice Money          `gorm:"type:decimal(12,2);not null;default:0" json:"unit_price"` // billed unit price
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                 // created time
	UpdatedAt time.Time      `json:"updated_at"`                                              // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                          // soft delete

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"` // denormalized detail
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // denormalized detail
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
