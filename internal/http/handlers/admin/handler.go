package admin

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于管理员 API（员工账号与成本核算）。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
