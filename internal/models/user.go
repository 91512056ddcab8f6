package models

import (
	"time"

	"gorm.io/gorm"
)

// User account row.
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                 // primary key
	Username           string         `gorm:"uniqueIndex;not null" json:"username"` // login name
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`    // email
	PasswordHash       string         `gorm:"not null" json:"-"`                    // bcrypt hash, never serialized
	FullName           string         `gorm:"default:''" json:"full_name"`          // display name
	Address            string         `gorm:"type:text" json:"address"`             // default shipping address
	Phone              string         `gorm:"default:''" json:"phone"`              // contact phone
	Role               string         `gorm:"default:'customer';index" json:"role"` // customer / admin
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`          // bumped to revoke all tokens
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                       // tokens issued before this are rejected
	LastLoginAt        *time.Time     `json:"last_login_at"`                        // last successful login
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`              // created time
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`              // updated time
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                       // soft delete
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
