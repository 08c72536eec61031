package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.unauthorized":           "Unauthorized",
		"error.forbidden":              "You do not have access to this resource",
		"error.internal":               "Internal server error",
		"error.jwt_secret_missing":     "Authentication is not configured",
		"error.auth_header_missing":    "Authorization header is missing",
		"error.auth_header_invalid":    "Authorization header is invalid",
		"error.token_invalid":          "Session is invalid, please sign in again",
		"error.token_revoked":          "Session has expired, please sign in again",
		"error.rate_limit_unavailable": "Rate limiter is unavailable",
		"error.rate_limited":           "Too many requests, retry in %d seconds",
		"error.login_too_many":         "Too many sign-in attempts, retry in %d seconds",
		"error.login_invalid":          "Invalid email or password",
		"error.captcha_required":       "Captcha is required",
		"error.captcha_invalid":        "Captcha is incorrect",
		"error.captcha_disabled":       "Captcha is not enabled",

		"error.table_id_required":  "Invalid QR code: table is missing",
		"error.table_not_found":    "Invalid or expired QR code",
		"error.table_fetch_failed": "Failed to load table information",

		"error.menu_fetch_failed":   "Failed to load menu",
		"error.menu_item_not_found": "Menu item not found",

		"error.cart_session_invalid": "Cart session is invalid",
		"error.cart_fetch_failed":    "Failed to load cart",
		"error.cart_update_failed":   "Failed to update cart",
		"error.cart_item_invalid":    "Cart item is invalid",
		"error.cart_session_busy":    "Cart is being updated, please retry",

		"error.order_table_missing":  "Table information is missing",
		"error.order_cart_empty":     "Cart is empty",
		"error.order_submitting":     "An order is already being submitted",
		"error.order_create_failed":  "Failed to submit order",
		"error.order_not_found":      "Order not found",
		"error.order_fetch_failed":   "Failed to load orders",
		"error.order_status_invalid": "Order status change is not allowed",
		"error.order_update_failed":  "Failed to update order",

		"error.print_order_required":  "Order ID is required",
		"error.print_printer_invalid": "Printer type must be kitchen, counter or both",
		"error.print_failed":          "Failed to process print request",
		"error.queue_unavailable":     "Task queue is unavailable",

		"error.user_email_invalid":      "Email address is invalid",
		"error.user_role_invalid":       "Role must be admin or staff",
		"error.user_password_too_short": "Password must be at least %d characters",
		"error.user_email_exists":       "A user with this email already exists",
		"error.user_create_failed":      "Failed to create user",
		"error.user_delete_self":        "You cannot delete your own account",
		"error.user_not_found":          "User not found",
		"error.user_fetch_failed":       "Failed to load users",
		"error.user_delete_failed":      "Failed to delete user",

		"error.supplier_invalid":          "Supplier name is required",
		"error.ingredient_invalid":        "Ingredient is invalid",
		"error.ingredient_not_found":      "Ingredient not found",
		"error.ingredient_in_use":         "Cannot delete ingredient: it is used in recipes",
		"error.costing_recipe_invalid":    "Costing recipe is invalid",
		"error.costing_recipe_not_found":  "Costing recipe not found",
		"error.costing_failed":            "Failed to process costing request",
		"error.recipe_invalid":            "Recipe is invalid",
		"error.recipe_not_found":          "Recipe not found",
		"error.recipe_failed":             "Failed to process recipe request",
		"error.realtime_unavailable":      "Realtime feed is unavailable",
		"error.realtime_upgrade_required": "Websocket upgrade required",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.unauthorized":           "未登录或登录已失效",
		"error.forbidden":              "无权访问该资源",
		"error.internal":               "服务器内部错误",
		"error.jwt_secret_missing":     "未配置鉴权密钥",
		"error.auth_header_missing":    "缺少 Authorization 请求头",
		"error.auth_header_invalid":    "Authorization 请求头格式错误",
		"error.token_invalid":          "登录状态无效，请重新登录",
		"error.token_revoked":          "登录状态已失效，请重新登录",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.login_too_many":         "登录尝试过多，请 %d 秒后重试",
		"error.login_invalid":          "邮箱或密码错误",
		"error.captcha_required":       "请输入验证码",
		"error.captcha_invalid":        "验证码错误",
		"error.captcha_disabled":       "验证码未启用",

		"error.table_id_required":  "二维码无效：缺少桌号",
		"error.table_not_found":    "二维码无效或已过期",
		"error.table_fetch_failed": "获取餐桌信息失败",

		"error.menu_fetch_failed":   "获取菜单失败",
		"error.menu_item_not_found": "菜品不存在",

		"error.cart_session_invalid": "购物车会话无效",
		"error.cart_fetch_failed":    "获取购物车失败",
		"error.cart_update_failed":   "更新购物车失败",
		"error.cart_item_invalid":    "购物车项无效",
		"error.cart_session_busy":    "购物车正在更新，请稍后重试",

		"error.order_table_missing":  "缺少餐桌信息",
		"error.order_cart_empty":     "购物车为空",
		"error.order_submitting":     "订单正在提交中",
		"error.order_create_failed":  "提交订单失败",
		"error.order_not_found":      "订单不存在",
		"error.order_fetch_failed":   "获取订单失败",
		"error.order_status_invalid": "订单状态不允许变更",
		"error.order_update_failed":  "更新订单失败",

		"error.print_order_required":  "缺少订单 ID",
		"error.print_printer_invalid": "打印机类型必须为 kitchen、counter 或 both",
		"error.print_failed":          "打印请求处理失败",
		"error.queue_unavailable":     "任务队列不可用",

		"error.user_email_invalid":      "邮箱格式错误",
		"error.user_role_invalid":       "角色必须为 admin 或 staff",
		"error.user_password_too_short": "密码长度不能少于 %d 位",
		"error.user_email_exists":       "该邮箱已存在",
		"error.user_create_failed":      "创建用户失败",
		"error.user_delete_self":        "不能删除自己的账号",
		"error.user_not_found":          "用户不存在",
		"error.user_fetch_failed":       "获取用户列表失败",
		"error.user_delete_failed":      "删除用户失败",

		"error.supplier_invalid":          "供应商名称不能为空",
		"error.ingredient_invalid":        "原料参数错误",
		"error.ingredient_not_found":      "原料不存在",
		"error.ingredient_in_use":         "原料已被配方使用，无法删除",
		"error.costing_recipe_invalid":    "成本配方参数错误",
		"error.costing_recipe_not_found":  "成本配方不存在",
		"error.costing_failed":            "成本核算请求处理失败",
		"error.recipe_invalid":            "食谱参数错误",
		"error.recipe_not_found":          "食谱不存在",
		"error.recipe_failed":             "食谱请求处理失败",
		"error.realtime_unavailable":      "实时推送不可用",
		"error.realtime_upgrade_required": "需要 WebSocket 连接",
	},
}
