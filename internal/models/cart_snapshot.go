package models

import "time"

// CartSnapshot 会话购物车/下单上下文的持久化快照
type CartSnapshot struct {
	SessionKey string    `gorm:"primaryKey;size:191" json:"session_key"` // 持久化 key
	Payload    string    `gorm:"type:text;not null" json:"payload"`      // JSON 内容
	UpdatedAt  time.Time `json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
