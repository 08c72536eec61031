package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 员工认证服务
type AuthService struct {
	cfg         *config.Config
	profileRepo repository.ProfileRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, profileRepo repository.ProfileRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		profileRepo: profileRepo,
	}
}

// HashPassword 使用 argon2id 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()
	hash, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码，兼容历史 bcrypt 哈希
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	if strings.HasPrefix(hashedPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	}
	ok, err := argon2.VerifyEncoded([]byte(password), []byte(hashedPassword))
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}
	return nil
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return validatePassword(config.PasswordPolicyConfig{}, password)
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	Email        string `json:"email"`
	UserRole     string `json:"user_role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(profile *models.Profile) (string, time.Time, error) {
	expireHours := s.cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 12
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)

	claims := JWTClaims{
		Email:        profile.Email,
		UserRole:     profile.Role,
		TokenVersion: profile.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ExtractRole 从 Token 中提取角色，无效或未知角色返回空字符串
func (s *AuthService) ExtractRole(tokenString string) string {
	claims, err := s.ParseJWT(strings.TrimSpace(tokenString))
	if err != nil {
		return ""
	}
	switch claims.UserRole {
	case constants.RoleAdmin, constants.RoleStaff:
		return claims.UserRole
	default:
		return ""
	}
}

// Login 员工登录
func (s *AuthService) Login(email, password string) (*models.Profile, string, time.Time, error) {
	profile, err := s.profileRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if profile == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(profile.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(profile)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	profile.LastLoginAt = &now
	if err := s.profileRepo.UpdateLastLogin(profile.ID, now); err != nil {
		logger.Warnw("auth_update_last_login_failed", "profile_id", profile.ID, "error", err)
	}
	_ = cache.SetProfileAuthState(context.Background(), cache.BuildProfileAuthState(profile))
	return profile, token, expiresAt, nil
}

// ResolveAuthState 获取鉴权快照（缓存未命中时回源数据库）
func (s *AuthService) ResolveAuthState(ctx context.Context, profileID string) (*cache.ProfileAuthState, error) {
	state, hit, err := cache.GetProfileAuthState(ctx, profileID)
	if err != nil {
		logger.Warnw("auth_state_cache_get_failed", "profile_id", profileID, "error", err)
	}
	if hit && state != nil {
		return state, nil
	}
	profile, err := s.profileRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrTokenRevoked
	}
	state = cache.BuildProfileAuthState(profile)
	_ = cache.SetProfileAuthState(ctx, state)
	return state, nil
}

// GetProfile 获取当前账号
func (s *AuthService) GetProfile(profileID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrUserNotFound
	}
	return profile, nil
}
