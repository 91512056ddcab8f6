package models

import (
	"time"

	"gorm.io/gorm"
)

// Review row. Creating one recomputes the product's derived rating columns
// in the same transaction.
type Review struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // primary key
	UserID    uint           `gorm:"index;not null" json:"user_id"`    // author
	ProductID uint           `gorm:"index;not null" json:"product_id"` // reviewed product
	Rating    int            `gorm:"not null" json:"rating"`           // 1..5
	Comment   string         `gorm:"type:text" json:"comment"`         // optional free text
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // created time
	UpdatedAt time.Time      `json:"updated_at"`                       // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // soft delete
}

// TableName sets the table name.
func (Review) TableName() string {
	return "reviews"
}
