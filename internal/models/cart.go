package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart header row. Exactly one cart exists per session id; UserID is nil
// for guest carts and set once when the session authenticates.
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`                       // primary key
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`             // owner, nil for guests
	SessionID string         `gorm:"uniqueIndex;not null" json:"session_id"`     // browser session identifier
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                    // created time
	UpdatedAt time.Time      `json:"updated_at"`                                 // updated time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                             // soft delete

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // line items
}

// TableName sets the table name.
func (Cart) TableName() string {
	return "carts"
}
