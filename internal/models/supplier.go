package models

import "gorm.io/gorm"

// Supplier 供应商
type Supplier struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`  // 主键
	SupplierName string `gorm:"not null;size:200" json:"supplier_name"` // 名称
}

// TableName 指定表名
func (Supplier) TableName() string {
	return "suppliers"
}

// BeforeCreate 补齐主键
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
