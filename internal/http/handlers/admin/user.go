package admin

import (
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
)

var userErrorRules = []handlershared.MappedError{
	{Target: service.ErrEmailInvalid, Code: response.CodeBadRequest, Key: "error.user_email_invalid"},
	{Target: service.ErrRoleInvalid, Code: response.CodeBadRequest, Key: "error.user_role_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.user_password_too_short"},
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.user_email_exists"},
	{Target: service.ErrCannotDeleteSelf, Code: response.CodeBadRequest, Key: "error.user_delete_self"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

// CreateUserRequest 创建员工账号请求
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Role     string `json:"role" binding:"required"`
}

// ListUsers 员工账号列表
func (h *Handler) ListUsers(c *gin.Context) {
	profiles, err := h.UserAdminService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.Success(c, profiles)
}

// CreateUser 创建员工账号
func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	profile, err := h.UserAdminService.Create(service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		handlershared.RespondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.user_create_failed")
		return
	}
	response.Success(c, profile)
}

// DeleteUser 删除员工账号
func (h *Handler) DeleteUser(c *gin.Context) {
	operatorID, ok := handlershared.GetProfileID(c)
	if !ok {
		return
	}
	if err := h.UserAdminService.Delete(c.Request.Context(), operatorID, c.Param("id")); err != nil {
		handlershared.RespondWithMappedError(c, err, userErrorRules, response.CodeInternal, "error.user_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
