package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile 员工/管理员账号
type Profile struct {
	ID           string     `gorm:"primaryKey;type:varchar(36)" json:"id"`       // 主键
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`  // 登录邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                           // 密码哈希（不返回给前端）
	FullName     string     `gorm:"size:120" json:"full_name"`                   // 姓名
	Role         string     `gorm:"type:varchar(20);not null;index" json:"role"` // 角色 admin/staff
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                 // Token 版本（用于全量失效）
	LastLoginAt  *time.Time `json:"last_login_at"`                               // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                     // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                  // 更新时间
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate 补齐主键
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
