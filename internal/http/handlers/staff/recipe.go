package staff

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/repository"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
)

var recipeErrorRules = []handlershared.MappedError{
	{Target: service.ErrRecipeInvalid, Code: response.CodeBadRequest, Key: "error.recipe_invalid"},
	{Target: service.ErrRecipeNotFound, Code: response.CodeNotFound, Key: "error.recipe_not_found"},
}

// RecipeIngredientRequest 食谱原料行请求
type RecipeIngredientRequest struct {
	IngredientName string `json:"ingredient_name"`
	Weight         string `json:"weight"`
}

// RecipeRequest 食谱写入请求
type RecipeRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Instructions string                    `json:"instructions"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	input := service.RecipeInput{
		Name:         r.Name,
		Instructions: r.Instructions,
		Ingredients:  make([]service.RecipeIngredientInput, 0, len(r.Ingredients)),
	}
	for _, line := range r.Ingredients {
		input.Ingredients = append(input.Ingredients, service.RecipeIngredientInput{
			IngredientName: line.IngredientName,
			Weight:         line.Weight,
		})
	}
	return input
}

// ListRecipes 食谱列表
func (h *Handler) ListRecipes(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	recipes, total, err := h.RecipeService.List(repository.RecipeListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.recipe_failed", err)
		return
	}
	response.SuccessWithPage(c, recipes, handlershared.BuildPagination(page, pageSize, total))
}

// GetRecipe 食谱详情
func (h *Handler) GetRecipe(c *gin.Context) {
	recipe, err := h.RecipeService.Get(c.Param("id"))
	if err != nil {
		handlershared.RespondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.recipe_failed")
		return
	}
	response.Success(c, recipe)
}

// CreateRecipe 创建食谱
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.recipe_invalid", nil)
		return
	}
	recipe, err := h.RecipeService.Create(req.toInput())
	if err != nil {
		handlershared.RespondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.recipe_failed")
		return
	}
	response.Success(c, recipe)
}

// UpdateRecipe 更新食谱（配料整体替换）
func (h *Handler) UpdateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.recipe_invalid", nil)
		return
	}
	recipe, err := h.RecipeService.Update(c.Param("id"), req.toInput())
	if err != nil {
		handlershared.RespondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.recipe_failed")
		return
	}
	response.Success(c, recipe)
}

// DeleteRecipe 删除食谱
func (h *Handler) DeleteRecipe(c *gin.Context) {
	if err := h.RecipeService.Delete(c.Param("id")); err != nil {
		handlershared.RespondWithMappedError(c, err, recipeErrorRules, response.CodeInternal, "error.recipe_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
