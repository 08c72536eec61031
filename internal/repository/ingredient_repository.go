package repository

import (
	"errors"

	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository 原料数据访问接口
type IngredientRepository interface {
	List() ([]models.MasterIngredient, error)
	GetByID(id string) (*models.MasterIngredient, error)
	ListByIDs(ids []string) ([]models.MasterIngredient, error)
	Create(ingredient *models.MasterIngredient) error
	Update(ingredient *models.MasterIngredient) error
	Delete(id string) error
	CountRecipeUsage(id string) (int64, error)
	WithTx(tx *gorm.DB) *GormIngredientRepository
}

// GormIngredientRepository GORM 实现
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建原料仓库
func NewIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// WithTx 绑定事务
func (r *GormIngredientRepository) WithTx(tx *gorm.DB) *GormIngredientRepository {
	if tx == nil {
		return r
	}
	return &GormIngredientRepository{db: tx}
}

// List 按名称升序列出原料（含供应商）
func (r *GormIngredientRepository) List() ([]models.MasterIngredient, error) {
	var ingredients []models.MasterIngredient
	if err := r.db.Preload("Supplier").Order("ingredient_name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetByID 根据 ID 获取原料
func (r *GormIngredientRepository) GetByID(id string) (*models.MasterIngredient, error) {
	var ingredient models.MasterIngredient
	if err := r.db.Preload("Supplier").Where("id = ?", id).First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ingredient, nil
}

// ListByIDs 批量获取原料
func (r *GormIngredientRepository) ListByIDs(ids []string) ([]models.MasterIngredient, error) {
	if len(ids) == 0 {
		return []models.MasterIngredient{}, nil
	}
	var ingredients []models.MasterIngredient
	if err := r.db.Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Create 创建原料
func (r *GormIngredientRepository) Create(ingredient *models.MasterIngredient) error {
	return r.db.Omit("Supplier").Create(ingredient).Error
}

// Update 更新原料
func (r *GormIngredientRepository) Update(ingredient *models.MasterIngredient) error {
	return r.db.Omit("Supplier").Save(ingredient).Error
}

// Delete 删除原料
func (r *GormIngredientRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.MasterIngredient{}).Error
}

// CountRecipeUsage 统计引用该原料的成本配方行数
func (r *GormIngredientRepository) CountRecipeUsage(id string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CostingRecipeIngredient{}).Where("ingredient_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
