package staff

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
)

var printErrorRules = []handlershared.MappedError{
	{Target: service.ErrPrintOrderRequired, Code: response.CodeBadRequest, Key: "error.print_order_required"},
	{Target: service.ErrPrinterTypeInvalid, Code: response.CodeBadRequest, Key: "error.print_printer_invalid"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrQueueUnavailable, Code: response.CodeInternal, Key: "error.queue_unavailable"},
}

// PrintRequest 打印请求
type PrintRequest struct {
	OrderID     string `json:"orderId"`
	PrinterType string `json:"printerType"`
}

// PrintOrder 受理订单打印
func (h *Handler) PrintOrder(c *gin.Context) {
	var req PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	queued, err := h.PrintService.Request(c.Request.Context(), req.OrderID, req.PrinterType)
	if err != nil {
		handlershared.RespondWithMappedError(c, err, printErrorRules, response.CodeInternal, "error.print_failed")
		return
	}
	response.Success(c, gin.H{
		"success": true,
		"queued":  queued,
	})
}
