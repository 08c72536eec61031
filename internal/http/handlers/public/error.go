package public

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

var sessionErrorRules = []handlershared.MappedError{
	{Target: service.ErrCartSessionRequired, Code: response.CodeBadRequest, Key: "error.cart_session_invalid"},
	{Target: service.ErrCartSessionBusy, Code: response.CodeTooManyRequests, Key: "error.cart_session_busy"},
}

var tableErrorRules = []handlershared.MappedError{
	{Target: service.ErrTableIDRequired, Code: response.CodeBadRequest, Key: "error.table_id_required"},
	{Target: service.ErrTableNotFound, Code: response.CodeNotFound, Key: "error.table_not_found"},
}

var cartErrorRules = []handlershared.MappedError{
	{Target: service.ErrCartItemInvalid, Code: response.CodeBadRequest, Key: "error.cart_item_invalid"},
	{Target: service.ErrMenuItemNotFound, Code: response.CodeNotFound, Key: "error.menu_item_not_found"},
}

var submitErrorRules = []handlershared.MappedError{
	{Target: service.ErrMissingTable, Code: response.CodeBadRequest, Key: "error.order_table_missing"},
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.order_cart_empty"},
	{Target: service.ErrSubmissionInProgress, Code: response.CodeTooManyRequests, Key: "error.order_submitting"},
}
