package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项（创建后不可变）
type OrderItem struct {
	ID                  string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                       // 主键
	OrderID             string    `gorm:"type:varchar(36);index;not null" json:"order_id"`             // 订单ID
	MenuItemID          string    `gorm:"type:varchar(36);index;not null" json:"menu_item_id"`         // 菜品ID
	Quantity            int       `gorm:"not null" json:"quantity"`                                    // 数量
	PriceAtOrder        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_at_order"` // 下单时价格快照
	SpecialInstructions *string   `gorm:"type:text" json:"special_instructions"`                       // 备注
	CreatedAt           time.Time `json:"created_at"`                                                  // 创建时间

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"` // 关联菜品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate 补齐主键
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
