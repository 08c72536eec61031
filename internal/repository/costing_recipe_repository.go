package repository

import (
	"errors"

	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/gorm"
)

// CostingRecipeRepository 成本配方数据访问接口
type CostingRecipeRepository interface {
	List() ([]models.CostingRecipe, error)
	GetByID(id string) (*models.CostingRecipe, error)
	Create(recipe *models.CostingRecipe, ingredients []models.CostingRecipeIngredient) error
	Update(recipe *models.CostingRecipe) error
	ReplaceIngredients(recipeID string, ingredients []models.CostingRecipeIngredient) error
	Delete(id string) error
	WithTx(tx *gorm.DB) *GormCostingRecipeRepository
}

// GormCostingRecipeRepository GORM 实现
type GormCostingRecipeRepository struct {
	db *gorm.DB
}

// NewCostingRecipeRepository 创建成本配方仓库
func NewCostingRecipeRepository(db *gorm.DB) *GormCostingRecipeRepository {
	return &GormCostingRecipeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCostingRecipeRepository) WithTx(tx *gorm.DB) *GormCostingRecipeRepository {
	if tx == nil {
		return r
	}
	return &GormCostingRecipeRepository{db: tx}
}

func (r *GormCostingRecipeRepository) withIngredients(query *gorm.DB) *gorm.DB {
	return query.Preload("Ingredients").Preload("Ingredients.Ingredient")
}

// List 按名称升序列出成本配方
func (r *GormCostingRecipeRepository) List() ([]models.CostingRecipe, error) {
	var recipes []models.CostingRecipe
	if err := r.withIngredients(r.db).Order("recipe_name asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetByID 根据 ID 获取成本配方
func (r *GormCostingRecipeRepository) GetByID(id string) (*models.CostingRecipe, error) {
	var recipe models.CostingRecipe
	if err := r.withIngredients(r.db).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// Create 创建配方与原料行
func (r *GormCostingRecipeRepository) Create(recipe *models.CostingRecipe, ingredients []models.CostingRecipeIngredient) error {
	if err := r.db.Omit("Ingredients").Create(recipe).Error; err != nil {
		return err
	}
	return r.insertIngredients(recipe.ID, ingredients)
}

// Update 更新配方头
func (r *GormCostingRecipeRepository) Update(recipe *models.CostingRecipe) error {
	return r.db.Omit("Ingredients").Save(recipe).Error
}

// ReplaceIngredients 删除并重新写入原料行
func (r *GormCostingRecipeRepository) ReplaceIngredients(recipeID string, ingredients []models.CostingRecipeIngredient) error {
	if err := r.db.Where("recipe_id = ?", recipeID).Delete(&models.CostingRecipeIngredient{}).Error; err != nil {
		return err
	}
	return r.insertIngredients(recipeID, ingredients)
}

func (r *GormCostingRecipeRepository) insertIngredients(recipeID string, ingredients []models.CostingRecipeIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	for i := range ingredients {
		ingredients[i].ID = ""
		ingredients[i].RecipeID = recipeID
	}
	return r.db.Omit("Ingredient").Create(&ingredients).Error
}

// Delete 删除配方及其原料行
func (r *GormCostingRecipeRepository) Delete(id string) error {
	if err := r.db.Where("recipe_id = ?", id).Delete(&models.CostingRecipeIngredient{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.CostingRecipe{}).Error
}
