package public

import (
	"github.com/dujiao-next/tableorder/internal/cart"
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/models"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	MenuItemID          string `json:"menu_item_id" binding:"required"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

// UpdateCartItemRequest 修改购物车行请求
type UpdateCartItemRequest struct {
	Quantity            *int    `json:"quantity"`
	SpecialInstructions *string `json:"special_instructions"`
}

// CartResponse 购物车输出
type CartResponse struct {
	Items       []cart.Item  `json:"items"`
	TotalAmount models.Money `json:"total_amount"`
	ItemCount   int          `json:"item_count"`
}

func buildCartResponse(container *cart.Container) CartResponse {
	snapshot := container.Snapshot()
	items := snapshot.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponse{
		Items:       items,
		TotalAmount: container.TotalAmount(),
		ItemCount:   container.ItemCount(),
	}
}

func (h *Handler) respondCartError(c *gin.Context, err error, fallbackKey string) {
	handlershared.RespondWithMappedError(c, err,
		handlershared.ConcatMappedErrors(cartErrorRules, sessionErrorRules),
		response.CodeInternal, fallbackKey)
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	container, err := h.CartService.Open(c.Request.Context(), sessionID)
	if err != nil {
		h.respondCartError(c, err, "error.cart_fetch_failed")
		return
	}
	response.Success(c, buildCartResponse(container))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	container, err := h.CartService.Clear(c.Request.Context(), sessionID)
	if err != nil {
		h.respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildCartResponse(container))
}

// AddCartItem 加入菜品
func (h *Handler) AddCartItem(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	container, err := h.CartService.AddItem(c.Request.Context(), sessionID, req.MenuItemID, req.Quantity, req.SpecialInstructions)
	if err != nil {
		h.respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildCartResponse(container))
}

// UpdateCartItem 修改数量或备注；数量小于 1 时按 1 处理
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if req.Quantity != nil && *req.Quantity < 1 {
		minimum := 1
		req.Quantity = &minimum
	}
	container, err := h.CartService.UpdateItem(c.Request.Context(), sessionID, c.Param("menu_item_id"), req.Quantity, req.SpecialInstructions)
	if err != nil {
		h.respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildCartResponse(container))
}

// RemoveCartItem 删除菜品行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	sessionID, ok := handlershared.GetCartSessionID(c)
	if !ok {
		return
	}
	container, err := h.CartService.RemoveItem(c.Request.Context(), sessionID, c.Param("menu_item_id"))
	if err != nil {
		h.respondCartError(c, err, "error.cart_update_failed")
		return
	}
	response.Success(c, buildCartResponse(container))
}
