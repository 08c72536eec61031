package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/tableorder/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// ProfileAuthState 员工鉴权快照（仅用于服务端 Redis 缓存）
type ProfileAuthState struct {
	ProfileID    string `json:"profile_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	UpdatedAt    int64  `json:"updated_at"`
}

func profileAuthStateKey(profileID string) string {
	return fmt.Sprintf("auth:profile:%s", strings.TrimSpace(profileID))
}

// BuildProfileAuthState 从账号模型构建鉴权快照
func BuildProfileAuthState(profile *models.Profile) *ProfileAuthState {
	if profile == nil {
		return nil
	}
	return &ProfileAuthState{
		ProfileID:    profile.ID,
		Email:        profile.Email,
		Role:         profile.Role,
		TokenVersion: profile.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
}

// GetProfileAuthState 获取员工鉴权快照
func GetProfileAuthState(ctx context.Context, profileID string) (*ProfileAuthState, bool, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, false, nil
	}
	var state ProfileAuthState
	hit, err := GetJSON(ctx, profileAuthStateKey(profileID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetProfileAuthState 写入员工鉴权快照
func SetProfileAuthState(ctx context.Context, state *ProfileAuthState) error {
	if state == nil || strings.TrimSpace(state.ProfileID) == "" {
		return nil
	}
	return SetJSON(ctx, profileAuthStateKey(state.ProfileID), state, authStateCacheTTL)
}

// DelProfileAuthState 删除员工鉴权快照
func DelProfileAuthState(ctx context.Context, profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return nil
	}
	return Del(ctx, profileAuthStateKey(profileID))
}
