package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductImage gallery row.
type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`           // primary key
	ProductID uint           `gorm:"not null;index" json:"product_id"` // owning product
	ImageURL  string         `gorm:"type:text;not null" json:"image_url"` // image URL
	IsPrimary bool           `gorm:"default:false" json:"is_primary"` // primary gallery image
	CreatedAt time.Time      `json:"created_at"`                     // created time
	UpdatedAt time.Time      `json:"updated_at"`                     // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                 // soft delete
}

// TableName sets the table name.
func (ProductImage) TableName() string {
	return "product_images"
}
