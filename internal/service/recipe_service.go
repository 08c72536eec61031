package service

import (
	"strings"

	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"

	"gorm.io/gorm"
)

// RecipeIngredientInput 食谱原料行
type RecipeIngredientInput struct {
	IngredientName string
	Weight         string
}

// RecipeInput 食谱写入参数
type RecipeInput struct {
	Name         string
	Instructions string
	Ingredients  []RecipeIngredientInput
}

// RecipeService 后厨食谱
type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

// NewRecipeService 创建食谱服务
func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

// List 食谱列表
func (s *RecipeService) List(filter repository.RecipeListFilter) ([]models.Recipe, int64, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.recipeRepo.List(filter)
}

// Get 食谱详情
func (s *RecipeService) Get(id string) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}
	return recipe, nil
}

// Create 创建食谱
func (s *RecipeService) Create(input RecipeInput) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	lines, err := buildRecipe(recipe, input)
	if err != nil {
		return nil, err
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.recipeRepo.WithTx(tx).Create(recipe, lines)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipe.ID)
}

// Update 更新食谱（原料行整体替换）
func (s *RecipeService) Update(id string, input RecipeInput) (*models.Recipe, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients = nil
	lines, err := buildRecipe(recipe, input)
	if err != nil {
		return nil, err
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.recipeRepo.WithTx(tx)
		if err := repo.Update(recipe); err != nil {
			return err
		}
		return repo.ReplaceIngredients(recipe.ID, lines)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(recipe.ID)
}

// Delete 删除食谱
func (s *RecipeService) Delete(id string) error {
	recipe, err := s.Get(id)
	if err != nil {
		return err
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		return s.recipeRepo.WithTx(tx).Delete(recipe.ID)
	})
}

func buildRecipe(recipe *models.Recipe, input RecipeInput) ([]models.RecipeIngredient, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrRecipeInvalid
	}
	lines := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		ingredientName := strings.TrimSpace(item.IngredientName)
		if ingredientName == "" {
			continue
		}
		lines = append(lines, models.RecipeIngredient{
			IngredientName: ingredientName,
			Weight:         strings.TrimSpace(item.Weight),
			OrderIndex:     len(lines),
		})
	}
	recipe.Name = name
	recipe.Instructions = strings.TrimSpace(input.Instructions)
	return lines, nil
}
