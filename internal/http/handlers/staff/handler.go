package staff

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 员工端接口处理器入口
// 说明：登录、订单看板、打印与食谱接口，需员工或管理员身份。
type Handler struct {
	*provider.Container
}

// New 创建员工端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
