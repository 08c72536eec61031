package repository

import (
	"errors"

	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/gorm"
)

// TableRepository 餐桌数据访问接口
type TableRepository interface {
	GetByID(id string) (*models.DiningTable, error)
	List() ([]models.DiningTable, error)
	Create(table *models.DiningTable) error
	WithTx(tx *gorm.DB) *GormTableRepository
}

// GormTableRepository GORM 实现
type GormTableRepository struct {
	db *gorm.DB
}

// NewTableRepository 创建餐桌仓库
func NewTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTableRepository) WithTx(tx *gorm.DB) *GormTableRepository {
	if tx == nil {
		return r
	}
	return &GormTableRepository{db: tx}
}

// GetByID 根据 ID 获取餐桌
func (r *GormTableRepository) GetByID(id string) (*models.DiningTable, error) {
	var table models.DiningTable
	if err := r.db.Where("id = ?", id).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

// List 按桌号升序列出全部餐桌
func (r *GormTableRepository) List() ([]models.DiningTable, error) {
	var tables []models.DiningTable
	if err := r.db.Order("table_number asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// Create 创建餐桌
func (r *GormTableRepository) Create(table *models.DiningTable) error {
	return r.db.Create(table).Error
}
