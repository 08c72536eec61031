package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dujiao-next/tableorder/internal/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SubmitGuard 同一会话的提交防重入锁
type SubmitGuard interface {
	// Acquire 获取锁；ok 为 false 表示已有提交在进行中
	Acquire(ctx context.Context, sessionID string) (release func(), ok bool, err error)
}

// NewSubmitGuard redis 可用时使用 SETNX 锁，否则使用进程内锁
func NewSubmitGuard(ttl time.Duration) SubmitGuard {
	if cache.Enabled() {
		return NewRedisGuard(ttl)
	}
	return NewMemoryGuard()
}

// MemoryGuard 进程内防重入锁
type MemoryGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewMemoryGuard 创建进程内锁
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{inflight: make(map[string]struct{})}
}

// Acquire 获取锁
func (g *MemoryGuard) Acquire(_ context.Context, sessionID string) (func(), bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inflight[sessionID]; busy {
		return nil, false, nil
	}
	g.inflight[sessionID] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inflight, sessionID)
			g.mu.Unlock()
		})
	}, true, nil
}

// 仅删除自己持有的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard 基于 SETNX 的跨实例锁，TTL 到期自动释放
type RedisGuard struct {
	ttl time.Duration
}

// NewRedisGuard 创建 Redis 锁
func NewRedisGuard(ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisGuard{ttl: ttl}
}

func submitLockKey(sessionID string) string {
	return fmt.Sprintf("lock:submit:%s", strings.TrimSpace(sessionID))
}

// Acquire 获取锁
func (g *RedisGuard) Acquire(ctx context.Context, sessionID string) (func(), bool, error) {
	token := uuid.NewString()
	key := submitLockKey(sessionID)
	ok, err := cache.SetNX(ctx, key, token, g.ttl)
	if err != nil || !ok {
		return nil, false, err
	}
	return releaseFunc(key, token), true, nil
}

// releaseFunc 释放 token 持有的 Redis 锁，多次调用只生效一次
func releaseFunc(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			client := cache.Client()
			if client == nil {
				return
			}
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, client, []string{cache.Key(key)}, token).Err()
		})
	}
}
