package shared

import (
	"strings"

	"github.com/dujiao-next/tableorder/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入的上下文 key
const (
	ContextKeyProfileID = "profile_id"
	ContextKeyEmail     = "profile_email"
	ContextKeyRole      = "user_role"
)

// GetContextString 从上下文读取字符串值，缺失时返回 401。
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	str, ok := value.(string)
	if !ok || strings.TrimSpace(str) == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", false
	}
	return str, true
}

// GetProfileID 当前登录账号 ID。
func GetProfileID(c *gin.Context) (string, bool) {
	return GetContextString(c, ContextKeyProfileID)
}

// ContextKeyCartSession 点餐会话标识（由会话中间件写入）
const ContextKeyCartSession = "cart_session_id"

// GetCartSessionID 当前点餐会话 ID，缺失时返回 400。
func GetCartSessionID(c *gin.Context) (string, bool) {
	value, _ := c.Get(ContextKeyCartSession)
	sessionID, _ := value.(string)
	if strings.TrimSpace(sessionID) == "" {
		RespondError(c, response.CodeBadRequest, "error.cart_session_invalid", nil)
		return "", false
	}
	return sessionID, true
}
