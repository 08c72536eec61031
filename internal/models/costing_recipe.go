package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostingRecipe 成本核算配方
type CostingRecipe struct {
	ID             string           `gorm:"primaryKey;type:varchar(36)" json:"id"`                         // 主键
	RecipeName     string           `gorm:"not null;size:200;index" json:"recipe_name"`                    // 配方名称
	Servings       int              `gorm:"not null;default:1" json:"servings"`                            // 份数
	TotalCost      decimal.Decimal  `gorm:"type:decimal(20,4);not null;default:0" json:"total_cost"`       // 总成本
	CostPerServing decimal.Decimal  `gorm:"type:decimal(20,4);not null;default:0" json:"cost_per_serving"` // 单份成本
	SellPrice      *decimal.Decimal `gorm:"type:decimal(20,2)" json:"sell_price"`                          // 售价

	Ingredients []CostingRecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"` // 配方原料
}

// TableName 指定表名
func (CostingRecipe) TableName() string {
	return "costing_recipes"
}

// BeforeCreate 补齐主键
func (r *CostingRecipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// CostingRecipeIngredient 配方原料行（保存单位价格快照）
type CostingRecipeIngredient struct {
	ID                   string          `gorm:"primaryKey;type:varchar(36)" json:"id"`                                // 主键
	RecipeID             string          `gorm:"type:varchar(36);index;not null" json:"recipe_id"`                     // 配方ID
	IngredientID         string          `gorm:"type:varchar(36);index;not null" json:"ingredient_id"`                 // 原料ID
	Quantity             decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`                          // 用量
	Unit                 string          `gorm:"type:varchar(8);not null" json:"unit"`                                 // 单位
	PricePerUnitSnapshot decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"price_per_unit_snapshot"` // 单位价格快照
	Cost                 decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"cost"`                    // 成本

	Ingredient *MasterIngredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"` // 关联原料
}

// TableName 指定表名
func (CostingRecipeIngredient) TableName() string {
	return "costing_recipe_ingredients"
}

// BeforeCreate 补齐主键
func (i *CostingRecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
