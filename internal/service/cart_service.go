package service

import (
	"context"
	"strings"

	"github.com/dujiao-next/tableorder/internal/cart"
)

// CartService 会话购物车服务；所有写操作都在会话锁内完成加载、修改与保存
type CartService struct {
	store       cart.Persistence
	locker      cart.SessionLocker
	menuService *MenuService
}

// NewCartService 创建购物车服务
func NewCartService(store cart.Persistence, locker cart.SessionLocker, menuService *MenuService) *CartService {
	if locker == nil {
		locker = cart.NewMemoryLocker()
	}
	return &CartService{store: store, locker: locker, menuService: menuService}
}

// Open 打开会话购物车（只读快照）
func (s *CartService) Open(ctx context.Context, sessionID string) (*cart.Container, error) {
	return cart.Open(ctx, s.store, sessionID)
}

// WithSession 持有会话锁执行 fn，fn 拿到的是锁内最新加载的购物车
func (s *CartService) WithSession(ctx context.Context, sessionID string, fn func(*cart.Container) error) (*cart.Container, error) {
	unlock, err := s.locker.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()
	container, err := s.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(container); err != nil {
		return nil, err
	}
	return container, nil
}

// AddItem 加入菜品；数量为 0 时按 1 处理，价格取当前菜单
func (s *CartService) AddItem(ctx context.Context, sessionID, menuItemID string, quantity int, instructions string) (*cart.Container, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrCartItemInvalid
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, cart.ErrSessionRequired
	}
	item, err := s.menuService.GetAvailable(menuItemID)
	if err != nil {
		return nil, err
	}
	return s.WithSession(ctx, sessionID, func(container *cart.Container) error {
		return container.AddItem(ctx, *item, quantity, strings.TrimSpace(instructions))
	})
}

// UpdateItem 修改数量和/或备注；数量下限由调用方负责
func (s *CartService) UpdateItem(ctx context.Context, sessionID, menuItemID string, quantity *int, instructions *string) (*cart.Container, error) {
	return s.WithSession(ctx, sessionID, func(container *cart.Container) error {
		if quantity != nil {
			if err := container.UpdateQuantity(ctx, menuItemID, *quantity); err != nil {
				return err
			}
		}
		if instructions != nil {
			return container.UpdateInstructions(ctx, menuItemID, *instructions)
		}
		return nil
	})
}

// RemoveItem 删除菜品行
func (s *CartService) RemoveItem(ctx context.Context, sessionID, menuItemID string) (*cart.Container, error) {
	return s.WithSession(ctx, sessionID, func(container *cart.Container) error {
		return container.RemoveItem(ctx, menuItemID)
	})
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) (*cart.Container, error) {
	return s.WithSession(ctx, sessionID, func(container *cart.Container) error {
		return container.Clear(ctx)
	})
}
