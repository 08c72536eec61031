package models

import (
	"strings"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"

	"github.com/matthewhartstonge/argon2"
)

const defaultAdminPassword = "admin123"

// InitDefaultAdmin 初始化默认管理员账号（仅在没有任何管理员时创建）
func InitDefaultAdmin(email, password string) (*Profile, error) {
	var count int64
	if err := DB.Model(&Profile{}).Where("role = ?", constants.RoleAdmin).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = defaultAdminPassword
	}
	argon := argon2.DefaultConfig()
	hash, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return nil, err
	}

	profile := Profile{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         constants.RoleAdmin,
	}
	if err := DB.Create(&profile).Error; err != nil {
		return nil, err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email, "password", password)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return &profile, nil
}
