package admin

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var costingErrorRules = []handlershared.MappedError{
	{Target: service.ErrSupplierInvalid, Code: response.CodeBadRequest, Key: "error.supplier_invalid"},
	{Target: service.ErrIngredientInvalid, Code: response.CodeBadRequest, Key: "error.ingredient_invalid"},
	{Target: service.ErrIngredientNotFound, Code: response.CodeNotFound, Key: "error.ingredient_not_found"},
	{Target: service.ErrIngredientInUse, Code: response.CodeBadRequest, Key: "error.ingredient_in_use"},
	{Target: service.ErrCostingRecipeInvalid, Code: response.CodeBadRequest, Key: "error.costing_recipe_invalid"},
	{Target: service.ErrCostingRecipeNotFound, Code: response.CodeNotFound, Key: "error.costing_recipe_not_found"},
}

func respondCostingError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, costingErrorRules, response.CodeInternal, "error.costing_failed")
}

// SupplierRequest 供应商写入请求
type SupplierRequest struct {
	SupplierName string `json:"supplier_name"`
}

// IngredientRequest 原料写入请求
type IngredientRequest struct {
	IngredientName string          `json:"ingredient_name"`
	Weight         decimal.Decimal `json:"weight"`
	Unit           string          `json:"unit"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SupplierID     *string         `json:"supplier_id"`
	Notes          string          `json:"notes"`
}

func (r IngredientRequest) toInput() service.IngredientInput {
	return service.IngredientInput{
		IngredientName: r.IngredientName,
		Weight:         r.Weight,
		Unit:           r.Unit,
		PurchasePrice:  r.PurchasePrice,
		SupplierID:     r.SupplierID,
		Notes:          r.Notes,
	}
}

// CostingRecipeLineRequest 成本配方原料行请求
type CostingRecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// CostingRecipeRequest 成本配方写入请求
type CostingRecipeRequest struct {
	RecipeName  string                     `json:"recipe_name"`
	Servings    int                        `json:"servings"`
	SellPrice   *decimal.Decimal           `json:"sell_price"`
	Ingredients []CostingRecipeLineRequest `json:"ingredients"`
}

func (r CostingRecipeRequest) toInput() service.CostingRecipeInput {
	input := service.CostingRecipeInput{
		RecipeName:  r.RecipeName,
		Servings:    r.Servings,
		SellPrice:   r.SellPrice,
		Ingredients: make([]service.CostingRecipeLineInput, 0, len(r.Ingredients)),
	}
	for _, line := range r.Ingredients {
		input.Ingredients = append(input.Ingredients, service.CostingRecipeLineInput{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
		})
	}
	return input
}

// ListSuppliers 供应商列表
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.CostingService.ListSuppliers()
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, suppliers)
}

// CreateSupplier 创建供应商
func (h *Handler) CreateSupplier(c *gin.Context) {
	var req SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.supplier_invalid", nil)
		return
	}
	supplier, err := h.CostingService.CreateSupplier(req.SupplierName)
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, supplier)
}

// ListIngredients 原料列表
func (h *Handler) ListIngredients(c *gin.Context) {
	ingredients, err := h.CostingService.ListIngredients()
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, ingredients)
}

// CreateIngredient 创建原料
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.ingredient_invalid", nil)
		return
	}
	ingredient, err := h.CostingService.CreateIngredient(req.toInput())
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, ingredient)
}

// UpdateIngredient 更新原料
func (h *Handler) UpdateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.ingredient_invalid", nil)
		return
	}
	ingredient, err := h.CostingService.UpdateIngredient(c.Param("id"), req.toInput())
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, ingredient)
}

// DeleteIngredient 删除原料
func (h *Handler) DeleteIngredient(c *gin.Context) {
	if err := h.CostingService.DeleteIngredient(c.Param("id")); err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListCostingRecipes 成本配方列表
func (h *Handler) ListCostingRecipes(c *gin.Context) {
	recipes, err := h.CostingService.ListRecipes()
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, recipes)
}

// GetCostingRecipe 成本配方详情
func (h *Handler) GetCostingRecipe(c *gin.Context) {
	recipe, err := h.CostingService.GetRecipe(c.Param("id"))
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, recipe)
}

// CreateCostingRecipe 创建成本配方
func (h *Handler) CreateCostingRecipe(c *gin.Context) {
	var req CostingRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.costing_recipe_invalid", nil)
		return
	}
	recipe, err := h.CostingService.CreateRecipe(req.toInput())
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, recipe)
}

// UpdateCostingRecipe 更新成本配方（重新计算成本）
func (h *Handler) UpdateCostingRecipe(c *gin.Context) {
	var req CostingRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.costing_recipe_invalid", nil)
		return
	}
	recipe, err := h.CostingService.UpdateRecipe(c.Param("id"), req.toInput())
	if err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, recipe)
}

// DeleteCostingRecipe 删除成本配方
func (h *Handler) DeleteCostingRecipe(c *gin.Context) {
	if err := h.CostingService.DeleteRecipe(c.Param("id")); err != nil {
		respondCostingError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
