package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/gorm"
)

// RecipeRepository 食谱数据访问接口
type RecipeRepository interface {
	List(filter RecipeListFilter) ([]models.Recipe, int64, error)
	GetByID(id string) (*models.Recipe, error)
	Create(recipe *models.Recipe, ingredients []models.RecipeIngredient) error
	Update(recipe *models.Recipe) error
	ReplaceIngredients(recipeID string, ingredients []models.RecipeIngredient) error
	Delete(id string) error
	WithTx(tx *gorm.DB) *GormRecipeRepository
}

// GormRecipeRepository GORM 实现
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 创建食谱仓库
func NewRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRecipeRepository) WithTx(tx *gorm.DB) *GormRecipeRepository {
	if tx == nil {
		return r
	}
	return &GormRecipeRepository{db: tx}
}

func orderedIngredients(db *gorm.DB) *gorm.DB {
	return db.Order("order_index asc")
}

// List 食谱列表，按创建时间倒序，可按名称搜索
func (r *GormRecipeRepository) List(filter RecipeListFilter) ([]models.Recipe, int64, error) {
	query := r.db.Model(&models.Recipe{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition := fmt.Sprintf(`name %s ? ESCAPE '\'`, likeOperatorByDialect(dbDialectName(r.db)))
		query = query.Where(condition, escapeLike(search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var recipes []models.Recipe
	if err := query.Preload("Ingredients", orderedIngredients).Order("created_at desc").Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// GetByID 根据 ID 获取食谱，原料按 order_index 排序
func (r *GormRecipeRepository) GetByID(id string) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.Preload("Ingredients", orderedIngredients).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// Create 创建食谱与原料行
func (r *GormRecipeRepository) Create(recipe *models.Recipe, ingredients []models.RecipeIngredient) error {
	if err := r.db.Omit("Ingredients").Create(recipe).Error; err != nil {
		return err
	}
	return r.insertIngredients(recipe.ID, ingredients)
}

// Update 更新食谱头
func (r *GormRecipeRepository) Update(recipe *models.Recipe) error {
	return r.db.Omit("Ingredients").Save(recipe).Error
}

// ReplaceIngredients 删除并重新写入原料行
func (r *GormRecipeRepository) ReplaceIngredients(recipeID string, ingredients []models.RecipeIngredient) error {
	if err := r.db.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	return r.insertIngredients(recipeID, ingredients)
}

func (r *GormRecipeRepository) insertIngredients(recipeID string, ingredients []models.RecipeIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	for i := range ingredients {
		ingredients[i].ID = ""
		ingredients[i].RecipeID = recipeID
	}
	return r.db.Create(&ingredients).Error
}

// Delete 删除食谱及其原料行
func (r *GormRecipeRepository) Delete(id string) error {
	if err := r.db.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.Recipe{}).Error
}
