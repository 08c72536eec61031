package public

import (
	"github.com/dujiao-next/tableorder/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetConfig 获取点餐端公开配置
func (h *Handler) GetConfig(c *gin.Context) {
	captchaEnabled := h.CaptchaService != nil && h.CaptchaService.Enabled()
	response.Success(c, gin.H{
		"display_name":    h.Config.App.DisplayName,
		"base_url":        h.Config.App.BaseURL,
		"session_header":  h.Config.Cart.SessionHeader,
		"captcha_enabled": captchaEnabled,
	})
}
