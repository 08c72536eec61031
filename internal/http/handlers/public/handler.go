package public

import "github.com/dujiao-next/tableorder/internal/provider"

// Handler 顾客点餐接口处理器入口
// 说明：该处理器仅用于扫码点餐侧 API，不需要登录。
type Handler struct {
	*provider.Container
}

// New 创建点餐处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
