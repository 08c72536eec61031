package models

import (
	"time"

	"gorm.io/gorm"
)

// Recipe 后厨食谱
type Recipe struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"` // 主键
	Name         string    `gorm:"not null;size:200;index" json:"name"`   // 名称
	Instructions string    `gorm:"type:text" json:"instructions"`         // 做法
	CreatedAt    time.Time `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                            // 更新时间

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"` // 原料列表
}

// TableName 指定表名
func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate 补齐主键
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// RecipeIngredient 食谱原料行
type RecipeIngredient struct {
	ID             string `gorm:"primaryKey;type:varchar(36)" json:"id"`            // 主键
	RecipeID       string `gorm:"type:varchar(36);index;not null" json:"recipe_id"` // 食谱ID
	IngredientName string `gorm:"not null;size:200" json:"ingredient_name"`         // 原料名称
	Weight         string `gorm:"size:64" json:"weight"`                            // 用量描述
	OrderIndex     int    `gorm:"not null;default:0" json:"order_index"`            // 排序
}

// TableName 指定表名
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// BeforeCreate 补齐主键
func (i *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
