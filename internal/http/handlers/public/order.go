package public

import (
	"errors"

	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitOrder 将当前购物车提交为订单；订单已写入但购物车未能清空时返回 cart_stale=true，
// 前端应提示顾客不要重复提交
func (h *Handler) SubmitOrder(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	orderID, err := h.SubmissionService.Submit(c.Request.Context(), sessionID)
	if errors.Is(err, service.ErrCartClearFailed) && orderID != "" {
		handlershared.RequestLog(c).Warnw("order_submit_cart_stale", "order_id", orderID)
		response.Success(c, gin.H{"order_id": orderID, "cart_stale": true})
		return
	}
	if err != nil {
		handlershared.RespondWithMappedError(c, err,
			handlershared.ConcatMappedErrors(submitErrorRules, sessionErrorRules),
			response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Success(c, gin.H{"order_id": orderID})
}
