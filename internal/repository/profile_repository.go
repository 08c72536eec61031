package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository 员工账号数据访问接口
type ProfileRepository interface {
	GetByID(id string) (*models.Profile, error)
	GetByEmail(email string) (*models.Profile, error)
	List() ([]models.Profile, error)
	Create(profile *models.Profile) error
	Delete(id string) error
	UpdateLastLogin(id string, at time.Time) error
	WithTx(tx *gorm.DB) *GormProfileRepository
}

// GormProfileRepository GORM 实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建员工账号仓库
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProfileRepository) WithTx(tx *gorm.DB) *GormProfileRepository {
	if tx == nil {
		return r
	}
	return &GormProfileRepository{db: tx}
}

// GetByID 根据 ID 获取账号
func (r *GormProfileRepository) GetByID(id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByEmail 根据邮箱获取账号（忽略大小写）
func (r *GormProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	var profile models.Profile
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := r.db.Where("LOWER(email) = ?", normalized).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// List 账号列表，按创建时间倒序
func (r *GormProfileRepository) List() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.Order("created_at desc").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Create 创建账号
func (r *GormProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Delete 删除账号
func (r *GormProfileRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Profile{}).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *GormProfileRepository) UpdateLastLogin(id string, at time.Time) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Update("last_login_at", at).Error
}
