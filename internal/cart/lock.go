package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dujiao-next/tableorder/internal/cache"

	"github.com/google/uuid"
)

// ErrSessionBusy 等待会话锁超时
var ErrSessionBusy = errors.New("cart session is busy")

const (
	defaultSessionLockTTL  = 10 * time.Second
	defaultSessionLockWait = 5 * time.Second
	sessionLockRetryDelay  = 20 * time.Millisecond
)

// SessionLocker 会话级互斥锁：加载、修改、保存购物车必须在同一把锁内完成
type SessionLocker interface {
	// Lock 阻塞直到获得锁或 ctx 结束
	Lock(ctx context.Context, sessionID string) (unlock func(), err error)
}

// NewSessionLocker redis 可用时使用 SETNX 锁，否则使用进程内锁
func NewSessionLocker(ttl time.Duration) SessionLocker {
	if cache.Enabled() {
		return NewRedisLocker(ttl, defaultSessionLockWait)
	}
	return NewMemoryLocker()
}

type sessionLock struct {
	ch   chan struct{}
	refs int
}

// MemoryLocker 进程内会话锁，无人等待的锁会被回收
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

// NewMemoryLocker 创建进程内会话锁
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*sessionLock)}
}

// Lock 获取会话锁
func (l *MemoryLocker) Lock(ctx context.Context, sessionID string) (func(), error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	l.mu.Lock()
	lock, ok := l.locks[sessionID]
	if !ok {
		lock = &sessionLock{ch: make(chan struct{}, 1)}
		l.locks[sessionID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(sessionID, lock)
		return nil, ctx.Err()
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.ch
			l.release(sessionID, lock)
		})
	}, nil
}

func (l *MemoryLocker) release(sessionID string, lock *sessionLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, sessionID)
	}
}

// RedisLocker 基于 SETNX 的跨实例会话锁，持有者异常退出时由 TTL 兜底释放
type RedisLocker struct {
	ttl  time.Duration
	wait time.Duration
}

// NewRedisLocker 创建 Redis 会话锁
func NewRedisLocker(ttl, wait time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultSessionLockTTL
	}
	if wait <= 0 {
		wait = defaultSessionLockWait
	}
	return &RedisLocker{ttl: ttl, wait: wait}
}

func sessionLockKey(sessionID string) string {
	return fmt.Sprintf("lock:cart:%s", strings.TrimSpace(sessionID))
}

// Lock 轮询 SETNX 直到获得锁，超过等待时间返回 ErrSessionBusy
func (l *RedisLocker) Lock(ctx context.Context, sessionID string) (func(), error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	token := uuid.NewString()
	key := sessionLockKey(sessionID)
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := cache.SetNX(ctx, key, token, l.ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return releaseFunc(key, token), nil
		}
		if time.Now().After(deadline) {
			return nil, ErrSessionBusy
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sessionLockRetryDelay):
		}
	}
}
