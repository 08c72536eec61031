package admin

import (
	"github.com/dujiao-next/tableorder/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListTables 餐桌列表（用于生成二维码）
func (h *Handler) ListTables(c *gin.Context) {
	tables, err := h.TableService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.table_fetch_failed", err)
		return
	}
	response.Success(c, tables)
}
