package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant is one sellable combination of color and size for a
// product. Either axis may be blank, but the (product, color, size)
// combination is unique; blank axes use the empty string rather than NULL
// so the index holds across both dialects.
type ProductVariant struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                                       // primary key
	ProductID     uint           `gorm:"not null;uniqueIndex:idx_variant_combination" json:"product_id"`            // owning product
	Color         string         `gorm:"type:varchar(40);not null;default:'';uniqueIndex:idx_variant_combination" json:"color,omitempty"` // color axis, blank when unused
	Size          string         `gorm:"type:varchar(20);not null;default:'';uniqueIndex:idx_variant_combination" json:"size,omitempty"`  // size axis, blank when unused
	InStock       bool           `gorm:"default:true" json:"in_stock"`                                               // purchasable flag
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`                                   // units on hand
	PriceOverride *Money         `gorm:"type:decimal(12,2)" json:"price_override,omitempty"`                         // overrides the product price when set
	CreatedAt     time.Time      `json:"created_at"`                                                                 // created time
	UpdatedAt     time.Time      `json:"updated_at"`                                                                 // updated time
	DeletedAt     gorm.DeletedAt `json:"-"`                                                                          // soft delete
}

// TableName sets the table name.
func (ProductVariant) TableName() string {
	return "product_variants"
}

// Matches reports whether the variant is the full combination for the
// requested axes.
func (v *ProductVariant) Matches(color, size string) bool {
	return v.Color == color && v.Size == size
}
