package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                     // 主键
	TableID     string    `gorm:"type:varchar(36);index;not null" json:"table_id"`           // 餐桌ID
	Status      string    `gorm:"type:varchar(20);index;not null" json:"status"`             // 订单状态
	TotalAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 提交时的合计金额
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`                                   // 更新时间

	Table *DiningTable `gorm:"foreignKey:TableID" json:"table,omitempty"` // 关联餐桌
	Items []OrderItem  `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 补齐主键
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
