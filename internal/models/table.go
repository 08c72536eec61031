package models

import (
	"time"

	"gorm.io/gorm"
)

// DiningTable 餐桌（二维码中携带其 ID）
type DiningTable struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`            // 主键
	TableNumber string    `gorm:"uniqueIndex;not null;size:32" json:"table_number"` // 桌号（展示用）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                          // 创建时间
}

// TableName 指定表名
func (DiningTable) TableName() string {
	return "tables"
}

// BeforeCreate 补齐主键
func (t *DiningTable) BeforeCreate(tx *gorm.DB) error {
	ensureID(&t.ID)
	return nil
}
