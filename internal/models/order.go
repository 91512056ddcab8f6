package models

import (
	"time"

	"gorm.io/gorm"
)

// Order header row. Total is fixed at creation and never recomputed.
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                // primary key
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                // public order number
	UserID          *uint          `gorm:"index" json:"user_id,omitempty"`                      // owner, nil for guest orders
	SessionID       string         `gorm:"index;not null" json:"session_id"`                    // session that placed the order
	Status          string         `gorm:"index;not null" json:"status"`                        // pending/processing/shipped/delivered/cancelled
	Total           Money          `gorm:"type:decimal(12,2);not null;default:0" json:"total"`  // sum of line extensions at creation
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`          // free-text shipping address
	BillingAddress  string         `gorm:"type:text;not null" json:"billing_address"`           // free-text billing address
	PaymentMethod   string         `gorm:"type:varchar(40);not null" json:"payment_method"`     // label only, nothing is charged
	CancelledAt     *time.Time     `gorm:"index" json:"cancelled_at,omitempty"`                 // cancellation time
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                             // created time
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                             // updated time
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                      // soft delete

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // line snapshots
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
