package service

import (
	"errors"

	"github.com/dujiao-next/tableorder/internal/cart"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrCaptchaDisabled    = errors.New("captcha disabled")
	ErrQueueUnavailable   = errors.New("queue unavailable")
)

// 餐桌与菜单
var (
	ErrTableIDRequired  = errors.New("table id is required")
	ErrTableNotFound    = errors.New("table not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// 购物车与下单
var (
	ErrCartSessionRequired  = cart.ErrSessionRequired
	ErrCartSessionBusy      = cart.ErrSessionBusy
	ErrCartItemInvalid      = errors.New("cart item is invalid")
	ErrMissingTable         = errors.New("table information is missing")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrSubmissionInProgress = errors.New("order submission in progress")
	ErrCartClearFailed      = errors.New("order created but cart was not cleared")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStatusInvalid   = errors.New("order status transition not allowed")
	ErrPrintOrderRequired   = errors.New("print order id is required")
	ErrPrinterTypeInvalid   = errors.New("printer type is invalid")
)

// 员工账号
var (
	ErrEmailInvalid     = errors.New("email is invalid")
	ErrRoleInvalid      = errors.New("role is invalid")
	ErrWeakPassword     = errors.New("password too weak")
	ErrEmailExists      = errors.New("email already exists")
	ErrCannotDeleteSelf = errors.New("cannot delete own account")
	ErrUserNotFound     = errors.New("user not found")
)

// 成本核算与食谱
var (
	ErrSupplierInvalid       = errors.New("supplier is invalid")
	ErrIngredientInvalid     = errors.New("ingredient is invalid")
	ErrIngredientNotFound    = errors.New("ingredient not found")
	ErrIngredientInUse       = errors.New("ingredient is used in recipes")
	ErrCostingRecipeInvalid  = errors.New("costing recipe is invalid")
	ErrCostingRecipeNotFound = errors.New("costing recipe not found")
	ErrRecipeInvalid         = errors.New("recipe is invalid")
	ErrRecipeNotFound        = errors.New("recipe not found")
)
