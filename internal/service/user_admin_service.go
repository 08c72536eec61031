package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RoleGranter 角色授予接口（由 authz.Service 实现）
type RoleGranter interface {
	GrantRole(profileID, role string) error
	RevokeRoles(profileID string) error
}

// CreateUserInput 创建员工账号输入
type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// UserAdminService 员工账号管理
type UserAdminService struct {
	profileRepo repository.ProfileRepository
	authService *AuthService
	roles       RoleGranter
}

// NewUserAdminService 创建员工账号管理服务
func NewUserAdminService(profileRepo repository.ProfileRepository, authService *AuthService, roles RoleGranter) *UserAdminService {
	return &UserAdminService{
		profileRepo: profileRepo,
		authService: authService,
		roles:       roles,
	}
}

// List 员工列表（按创建时间倒序）
func (s *UserAdminService) List() ([]models.Profile, error) {
	return s.profileRepo.List()
}

// Create 创建员工账号；角色授予失败时回滚账号
func (s *UserAdminService) Create(input CreateUserInput) (*models.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role != constants.RoleAdmin && role != constants.RoleStaff {
		return nil, ErrRoleInvalid
	}
	if err := s.authService.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.profileRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}

	if s.roles != nil {
		if err := s.roles.GrantRole(profile.ID, role); err != nil {
			if delErr := s.profileRepo.Delete(profile.ID); delErr != nil {
				logger.Errorw("user_create_compensate_failed", "profile_id", profile.ID, "error", delErr)
			}
			return nil, err
		}
	}
	return profile, nil
}

// Delete 删除员工账号（不能删除自己）
func (s *UserAdminService) Delete(ctx context.Context, operatorID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrUserNotFound
	}
	if id == strings.TrimSpace(operatorID) {
		return ErrCannotDeleteSelf
	}
	profile, err := s.profileRepo.GetByID(id)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrUserNotFound
	}
	if err := s.profileRepo.Delete(id); err != nil {
		return err
	}
	if s.roles != nil {
		if err := s.roles.RevokeRoles(id); err != nil {
			logger.Warnw("user_delete_revoke_roles_failed", "profile_id", id, "error", err)
		}
	}
	if err := cache.DelProfileAuthState(ctx, id); err != nil {
		logger.Warnw("user_delete_auth_state_clear_failed", "profile_id", id, "error", err)
	}
	return nil
}
