package public

import (
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
)

// GetMenu 获取可点菜单，按菜品与饮品分组
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.MenuService.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.menu_fetch_failed", err)
		return
	}
	food, beverage := service.Partition(items)
	response.Success(c, gin.H{
		"food":     food,
		"beverage": beverage,
	})
}
