package service

import (
	"strings"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// IngredientInput 原料写入参数
type IngredientInput struct {
	IngredientName string
	Weight         decimal.Decimal
	Unit           string
	PurchasePrice  decimal.Decimal
	SupplierID     *string
	Notes          string
}

// CostingRecipeLineInput 成本配方原料行
type CostingRecipeLineInput struct {
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
}

// CostingRecipeInput 成本配方写入参数
type CostingRecipeInput struct {
	RecipeName  string
	Servings    int
	SellPrice   *decimal.Decimal
	Ingredients []CostingRecipeLineInput
}

// CostingRecipeView 成本配方展示（含毛利指标）
type CostingRecipeView struct {
	models.CostingRecipe
	CostPercentage *decimal.Decimal `json:"cost_percentage"`
	Profit         *decimal.Decimal `json:"profit"`
}

// CostingService 供应商、原料与成本配方
type CostingService struct {
	supplierRepo   repository.SupplierRepository
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.CostingRecipeRepository
}

// NewCostingService 创建成本核算服务
func NewCostingService(
	supplierRepo repository.SupplierRepository,
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.CostingRecipeRepository,
) *CostingService {
	return &CostingService{
		supplierRepo:   supplierRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
	}
}

// ListSuppliers 供应商列表
func (s *CostingService) ListSuppliers() ([]models.Supplier, error) {
	return s.supplierRepo.List()
}

// CreateSupplier 创建供应商
func (s *CostingService) CreateSupplier(name string) (*models.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSupplierInvalid
	}
	supplier := &models.Supplier{SupplierName: name}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// ListIngredients 原料列表
func (s *CostingService) ListIngredients() ([]models.MasterIngredient, error) {
	return s.ingredientRepo.List()
}

// CreateIngredient 创建原料
func (s *CostingService) CreateIngredient(input IngredientInput) (*models.MasterIngredient, error) {
	ingredient := &models.MasterIngredient{}
	if err := s.applyIngredientInput(ingredient, input); err != nil {
		return nil, err
	}
	if err := s.ingredientRepo.Create(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// UpdateIngredient 更新原料（不回写已有配方的价格快照）
func (s *CostingService) UpdateIngredient(id string, input IngredientInput) (*models.MasterIngredient, error) {
	ingredient, err := s.ingredientRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, ErrIngredientNotFound
	}
	if err := s.applyIngredientInput(ingredient, input); err != nil {
		return nil, err
	}
	ingredient.Supplier = nil
	if err := s.ingredientRepo.Update(ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// DeleteIngredient 删除原料，被配方引用时拒绝
func (s *CostingService) DeleteIngredient(id string) error {
	id = strings.TrimSpace(id)
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return ErrIngredientNotFound
	}
	usage, err := s.ingredientRepo.CountRecipeUsage(id)
	if err != nil {
		return err
	}
	if usage > 0 {
		return ErrIngredientInUse
	}
	return s.ingredientRepo.Delete(id)
}

func (s *CostingService) applyIngredientInput(ingredient *models.MasterIngredient, input IngredientInput) error {
	name := strings.TrimSpace(input.IngredientName)
	if name == "" || !input.Weight.IsPositive() || input.PurchasePrice.IsNegative() || !isValidUnit(input.Unit) {
		return ErrIngredientInvalid
	}
	var supplierID *string
	if input.SupplierID != nil && strings.TrimSpace(*input.SupplierID) != "" {
		trimmed := strings.TrimSpace(*input.SupplierID)
		supplier, err := s.supplierRepo.GetByID(trimmed)
		if err != nil {
			return err
		}
		if supplier == nil {
			return ErrSupplierInvalid
		}
		supplierID = &trimmed
	}
	ingredient.IngredientName = name
	ingredient.Weight = input.Weight
	ingredient.Unit = input.Unit
	ingredient.PurchasePrice = input.PurchasePrice
	ingredient.PricePerUnit = PricePerUnit(input.PurchasePrice, input.Weight)
	ingredient.SupplierID = supplierID
	ingredient.Notes = strings.TrimSpace(input.Notes)
	return nil
}

// PricePerUnit 单位价格 = 采购价 / 规格数量（4 位小数）
func PricePerUnit(purchasePrice, weight decimal.Decimal) decimal.Decimal {
	if !weight.IsPositive() {
		return decimal.Zero
	}
	return purchasePrice.DivRound(weight, 4)
}

func isValidUnit(unit string) bool {
	switch unit {
	case constants.UnitGram, constants.UnitMilliliter, constants.UnitEach:
		return true
	default:
		return false
	}
}

// ListRecipes 成本配方列表
func (s *CostingService) ListRecipes() ([]CostingRecipeView, error) {
	recipes, err := s.recipeRepo.List()
	if err != nil {
		return nil, err
	}
	views := make([]CostingRecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		views = append(views, NewCostingRecipeView(recipe))
	}
	return views, nil
}

// GetRecipe 成本配方详情
func (s *CostingService) GetRecipe(id string) (*CostingRecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrCostingRecipeNotFound
	}
	view := NewCostingRecipeView(*recipe)
	return &view, nil
}

// CreateRecipe 创建成本配方并快照原料单价
func (s *CostingService) CreateRecipe(input CostingRecipeInput) (*CostingRecipeView, error) {
	recipe := &models.CostingRecipe{}
	lines, err := s.buildRecipe(recipe, input)
	if err != nil {
		return nil, err
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.recipeRepo.WithTx(tx).Create(recipe, lines)
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecipe(recipe.ID)
}

// UpdateRecipe 更新成本配方（原料行整体替换）
func (s *CostingService) UpdateRecipe(id string, input CostingRecipeInput) (*CostingRecipeView, error) {
	recipe, err := s.recipeRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrCostingRecipeNotFound
	}
	recipe.Ingredients = nil
	lines, err := s.buildRecipe(recipe, input)
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
	return s.GetRecipe(recipe.ID)
}

// DeleteRecipe 删除成本配方
func (s *CostingService) DeleteRecipe(id string) error {
	recipe, err := s.recipeRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if recipe == nil {
		return ErrCostingRecipeNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		return s.recipeRepo.WithTx(tx).Delete(recipe.ID)
	})
}

func (s *CostingService) buildRecipe(recipe *models.CostingRecipe, input CostingRecipeInput) ([]models.CostingRecipeIngredient, error) {
	name := strings.TrimSpace(input.RecipeName)
	if name == "" || input.Servings <= 0 {
		return nil, ErrCostingRecipeInvalid
	}
	if input.SellPrice != nil && input.SellPrice.IsNegative() {
		return nil, ErrCostingRecipeInvalid
	}

	ids := make([]string, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		if strings.TrimSpace(line.IngredientID) == "" || !line.Quantity.IsPositive() {
			return nil, ErrCostingRecipeInvalid
		}
		ids = append(ids, strings.TrimSpace(line.IngredientID))
	}
	masters, err := s.ingredientRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.MasterIngredient, len(masters))
	for _, master := range masters {
		byID[master.ID] = master
	}

	total := decimal.Zero
	lines := make([]models.CostingRecipeIngredient, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		master, ok := byID[strings.TrimSpace(line.IngredientID)]
		if !ok {
			return nil, ErrIngredientNotFound
		}
		unit := line.Unit
		if unit == "" {
			unit = master.Unit
		}
		cost := line.Quantity.Mul(master.PricePerUnit).Round(4)
		total = total.Add(cost)
		lines = append(lines, models.CostingRecipeIngredient{
			IngredientID:         master.ID,
			Quantity:             line.Quantity,
			Unit:                 unit,
			PricePerUnitSnapshot: master.PricePerUnit,
			Cost:                 cost,
		})
	}

	recipe.RecipeName = name
	recipe.Servings = input.Servings
	recipe.SellPrice = input.SellPrice
	recipe.TotalCost = total.Round(4)
	recipe.CostPerServing = total.DivRound(decimal.NewFromInt(int64(input.Servings)), 4)
	return lines, nil
}

// NewCostingRecipeView 计算成本占比与毛利（售价大于 0 时）
func NewCostingRecipeView(recipe models.CostingRecipe) CostingRecipeView {
	view := CostingRecipeView{CostingRecipe: recipe}
	if recipe.SellPrice == nil || !recipe.SellPrice.IsPositive() {
		return view
	}
	percentage := recipe.CostPerServing.Div(*recipe.SellPrice).Mul(hundred).Round(2)
	profit := recipe.SellPrice.Sub(recipe.CostPerServing).Round(2)
	view.CostPercentage = &percentage
	view.Profit = &profit
	return view
}
