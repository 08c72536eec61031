package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜品
type MenuItem struct {
	ID             string      `gorm:"primaryKey;type:varchar(36)" json:"id"`              // 主键
	Name           string      `gorm:"not null;index" json:"name"`                         // 名称
	Description    string      `gorm:"type:text" json:"description"`                       // 描述
	Price          Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 价格
	Category       string      `gorm:"type:varchar(20);not null;index" json:"category"`    // 分类 food/beverage
	Subcategory    *string     `gorm:"type:varchar(64)" json:"subcategory"`                // 子分类
	ImageURL       string      `gorm:"type:varchar(512)" json:"image_url"`                 // 图片（绝对地址或存储 key）
	Ingredients    StringArray `gorm:"type:text" json:"ingredients"`                       // 配料（有序）
	Allergies      StringArray `gorm:"type:text" json:"allergies"`                         // 过敏原/饮食标签
	DietaryOptions StringArray `gorm:"type:text" json:"dietary_options"`                   // 启用的饮食选项
	Available      bool        `gorm:"not null;default:true;index" json:"available"`       // 是否可点
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt      time.Time   `json:"updated_at"`                                         // 更新时间
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}

// BeforeCreate 补齐主键
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
