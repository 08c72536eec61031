package service

import (
	"errors"
	"testing"

	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, *repository.GormProfileRepository) {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
	}
	repo := repository.NewProfileRepository(db)
	return NewAuthService(cfg, repo), repo
}

func TestPasswordHashing(t *testing.T) {
	svc, _ := newTestAuthService(t)
	hash, err := svc.HashPassword("secret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := svc.VerifyPassword(hash, "secret-pass"); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong-pass"); err == nil {
		t.Fatalf("wrong password should fail")
	}

	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	if err := svc.VerifyPassword(string(legacy), "legacy-pass"); err != nil {
		t.Fatalf("legacy bcrypt hash should verify: %v", err)
	}
}

func TestJWTRoundTripAndExtractRole(t *testing.T) {
	svc, _ := newTestAuthService(t)
	profile := &models.Profile{ID: "p1", Email: "staff@example.com", Role: constants.RoleStaff, TokenVersion: 3}
	token, _, err := svc.GenerateJWT(profile)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.Subject != "p1" || claims.UserRole != constants.RoleStaff || claims.TokenVersion != 3 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if role := svc.ExtractRole(token); role != constants.RoleStaff {
		t.Fatalf("expected staff role, got %q", role)
	}
	if role := svc.ExtractRole("garbage"); role != "" {
		t.Fatalf("invalid token should have no role, got %q", role)
	}

	profile.Role = "guest"
	guestToken, _, _ := svc.GenerateJWT(profile)
	if role := svc.ExtractRole(guestToken); role != "" {
		t.Fatalf("unknown role should be dropped, got %q", role)
	}
}

func TestLogin(t *testing.T) {
	svc, repo := newTestAuthService(t)
	hash, _ := svc.HashPassword("admin123")
	if err := repo.Create(&models.Profile{Email: "admin@example.com", PasswordHash: hash, Role: constants.RoleAdmin}); err != nil {
		t.Fatalf("create profile failed: %v", err)
	}

	profile, token, _, err := svc.Login("ADMIN@example.com", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" || profile.LastLoginAt == nil {
		t.Fatalf("login should issue token and record last login")
	}
	if _, _, _, err := svc.Login("admin@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	err := validatePassword(config.PasswordPolicyConfig{}, "12345")
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	var policyErr passwordPolicyError
	if !errors.As(err, &policyErr) || policyErr.Key() != "error.user_password_too_short" || policyErr.Args()[0] != 6 {
		t.Fatalf("unexpected policy error: %+v", err)
	}
	if err := validatePassword(config.PasswordPolicyConfig{MinLength: 8}, "12345678"); err != nil {
		t.Fatalf("password should pass: %v", err)
	}
}

func TestCaptchaService(t *testing.T) {
	disabled := NewCaptchaService(config.CaptchaConfig{})
	if err := disabled.Verify("", ""); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}
	if _, err := disabled.Generate(); !errors.Is(err, ErrCaptchaDisabled) {
		t.Fatalf("expected ErrCaptchaDisabled, got %v", err)
	}

	enabled := NewCaptchaService(config.CaptchaConfig{Enabled: true})
	challenge, err := enabled.Generate()
	if err != nil {
		t.Fatalf("generate captcha failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}
	if err := enabled.Verify(challenge.CaptchaID, ""); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got %v", err)
	}
	if err := enabled.Verify(challenge.CaptchaID, "0000000"); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got %v", err)
	}
}
