package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/dujiao-next/tableorder/internal/cache"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/repository"
)

// Persistence 会话状态持久化适配器
type Persistence interface {
	Load(ctx context.Context, key string, dest interface{}) (bool, error)
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// CartKey 购物车持久化 key
func CartKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", constants.CartStorageKey, strings.TrimSpace(sessionID))
}

// OrderContextKey 下单上下文持久化 key
func OrderContextKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", constants.OrderContextStorageKey, strings.TrimSpace(sessionID))
}

// NewPersistence 按配置创建持久化适配器；redis 未启用时退回内存
func NewPersistence(mode string, snapshots repository.CartSnapshotRepository) Persistence {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case constants.CartPersistenceDatabase:
		if snapshots != nil {
			return NewDatabasePersistence(snapshots)
		}
		logger.Warnw("cart_persistence_fallback_memory", "mode", mode, "reason", "snapshot_repository_missing")
	case constants.CartPersistenceRedis:
		if cache.Enabled() {
			return NewRedisPersistence()
		}
		logger.Warnw("cart_persistence_fallback_memory", "mode", mode, "reason", "redis_disabled")
	}
	return NewMemoryPersistence()
}

// MemoryPersistence 进程内持久化（存储 JSON，读取时得到独立副本）
type MemoryPersistence struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryPersistence 创建内存持久化
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{items: make(map[string][]byte)}
}

// Load 读取
func (p *MemoryPersistence) Load(_ context.Context, key string, dest interface{}) (bool, error) {
	p.mu.RLock()
	raw, ok := p.items[key]
	p.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Save 写入
func (p *MemoryPersistence) Save(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.items[key] = raw
	p.mu.Unlock()
	return nil
}

// Delete 删除
func (p *MemoryPersistence) Delete(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.items, key)
	p.mu.Unlock()
	return nil
}

// RedisPersistence Redis 持久化（不设置过期时间）
type RedisPersistence struct{}

// NewRedisPersistence 创建 Redis 持久化
func NewRedisPersistence() *RedisPersistence {
	return &RedisPersistence{}
}

// Load 读取
func (p *RedisPersistence) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	return cache.GetJSON(ctx, key, dest)
}

// Save 写入
func (p *RedisPersistence) Save(ctx context.Context, key string, value interface{}) error {
	return cache.SetJSON(ctx, key, value, 0)
}

// Delete 删除
func (p *RedisPersistence) Delete(ctx context.Context, key string) error {
	return cache.Del(ctx, key)
}

// DatabasePersistence 数据库持久化（cart_snapshots 表）
type DatabasePersistence struct {
	repo repository.CartSnapshotRepository
}

// NewDatabasePersistence 创建数据库持久化
func NewDatabasePersistence(repo repository.CartSnapshotRepository) *DatabasePersistence {
	return &DatabasePersistence{repo: repo}
}

// Load 读取
func (p *DatabasePersistence) Load(_ context.Context, key string, dest interface{}) (bool, error) {
	snapshot, err := p.repo.Get(key)
	if err != nil || snapshot == nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(snapshot.Payload), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Save 写入
func (p *DatabasePersistence) Save(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.repo.Upsert(key, string(raw))
}

// Delete 删除
func (p *DatabasePersistence) Delete(_ context.Context, key string) error {
	return p.repo.Delete(key)
}
