package models

import (
	"github.com/libas-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin seeds the default admin account on first boot.
func InitDefaultAdmin(username, email, password string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if email == "" {
		email = "admin@localhost"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}
