package public

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ResolveTable 解析二维码中的餐桌 ID，并写入当前会话
func (h *Handler) ResolveTable(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	oc, err := h.TableService.Resolve(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		handlershared.RespondWithMappedError(c, err,
			handlershared.ConcatMappedErrors(tableErrorRules, sessionErrorRules),
			response.CodeInternal, "error.table_fetch_failed")
		return
	}
	response.Success(c, gin.H{
		"table_id":     oc.TableID,
		"table_number": oc.TableNumber,
	})
}

// GetSession 获取当前会话的下单上下文
func (h *Handler) GetSession(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	oc, err := h.TableService.Context(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, oc)
}
