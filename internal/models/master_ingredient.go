package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MasterIngredient 原料（采购规格与单位成本）
type MasterIngredient struct {
	ID             string          `gorm:"primaryKey;type:varchar(36)" json:"id"`                       // 主键
	IngredientName string          `gorm:"not null;size:200;index" json:"ingredient_name"`              // 原料名称
	Weight         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"weight"`                   // 采购规格数量
	Unit           string          `gorm:"type:varchar(8);not null" json:"unit"`                        // 单位 g/mL/ea
	PurchasePrice  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"purchase_price"`           // 采购价
	PricePerUnit   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"price_per_unit"` // 单位价格（4 位小数）
	SupplierID     *string         `gorm:"type:varchar(36);index" json:"supplier_id"`                   // 供应商ID
	Notes          string          `gorm:"type:text" json:"notes"`                                      // 备注

	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"` // 关联供应商
}

// TableName 指定表名
func (MasterIngredient) TableName() string {
	return "master_ingredients"
}

// BeforeCreate 补齐主键
func (m *MasterIngredient) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
