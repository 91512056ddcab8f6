package models

import (
	"time"

	"gorm.io/gorm"
)

// Product catalog row. AverageRating and ReviewCount are derived columns
// recomputed whenever a review is created.
type Product struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                      // primary key
	Name           string         `gorm:"not null;index" json:"name"`                                // display name
	Description    string         `gorm:"type:text" json:"description"`                              // long description
	Price          Money          `gorm:"type:decimal(12,2);not null;default:0" json:"price"`        // base price
	SalePrice      *Money         `gorm:"type:decimal(12,2)" json:"sale_price,omitempty"`            // discounted price, below Price when set
	Category       string         `gorm:"type:varchar(40);not null;index" json:"category"`           // suit category enum
	Collection     string         `gorm:"type:varchar(40);index" json:"collection,omitempty"`        // seasonal collection enum, optional
	InStock        bool           `gorm:"default:true;index" json:"in_stock"`                        // purchasable flag
	StockQuantity  int            `gorm:"not null;default:0" json:"stock_quantity"`                  // units on hand
	SKU            string         `gorm:"uniqueIndex;not null" json:"sku"`                           // unique stock keeping unit
	ThumbnailImage string         `gorm:"type:text" json:"thumbnail_image"`                          // list-view image URL
	Featured       bool           `gorm:"default:false;index" json:"featured"`                       // featured flag
	BestSeller     bool           `gorm:"default:false;index" json:"best_seller"`                    // best seller flag
	NewArrival     bool           `gorm:"default:false;index" json:"new_arrival"`                    // new arrival flag
	AverageRating  float64        `gorm:"not null;default:0" json:"average_rating"`                  // derived from reviews
	ReviewCount    int            `gorm:"not null;default:0" json:"review_count"`                    // derived from reviews
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                   // created time
	UpdatedAt      time.Time      `json:"updated_at"`                                                // updated time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                            // soft delete

	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`   // gallery
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"` // color/size combinations
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// EffectivePrice returns the sale price when set, otherwise the base price.
func (p *Product) EffectivePrice() Money {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
