package repository

import (
	"errors"

	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/gorm"
)

// MenuRepository 菜品数据访问接口
type MenuRepository interface {
	ListAvailable() ([]models.MenuItem, error)
	GetByID(id string) (*models.MenuItem, error)
	Create(item *models.MenuItem) error
	WithTx(tx *gorm.DB) *GormMenuRepository
}

// GormMenuRepository GORM 实现
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository 创建菜品仓库
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMenuRepository) WithTx(tx *gorm.DB) *GormMenuRepository {
	if tx == nil {
		return r
	}
	return &GormMenuRepository{db: tx}
}

// ListAvailable 获取可点菜品，按分类、子分类（空值最后）、名称排序
func (r *GormMenuRepository) ListAvailable() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.Where("available = ?", true).
		Order("category asc").
		Order(nullsLastOrderByDialect(dbDialectName(r.db), "subcategory")).
		Order("name asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取菜品
func (r *GormMenuRepository) GetByID(id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Create 创建菜品
func (r *GormMenuRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}
