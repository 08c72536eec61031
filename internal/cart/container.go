package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dujiao-next/tableorder/internal/models"
)

// ErrSessionRequired 缺少会话标识
var ErrSessionRequired = errors.New("cart session is required")

// Container 单个会话的购物车状态容器，每次变更都会完整持久化
type Container struct {
	mu        sync.Mutex
	sessionID string
	store     Persistence
	cart      Cart
}

// Open 加载会话购物车；没有持久化记录时返回空购物车
func Open(ctx context.Context, store Persistence, sessionID string) (*Container, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	c := &Container{sessionID: sessionID, store: store, cart: Cart{Items: []Item{}}}
	if _, err := store.Load(ctx, CartKey(sessionID), &c.cart); err != nil {
		return nil, err
	}
	if c.cart.Items == nil {
		c.cart.Items = []Item{}
	}
	return c, nil
}

// SessionID 会话标识
func (c *Container) SessionID() string {
	return c.sessionID
}

func (c *Container) mutate(ctx context.Context, fn func(*Cart)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.cart)
	return c.store.Save(ctx, CartKey(c.sessionID), c.cart)
}

// AddItem 加入菜品
func (c *Container) AddItem(ctx context.Context, menuItem models.MenuItem, quantity int, instructions string) error {
	return c.mutate(ctx, func(cart *Cart) { cart.AddItem(menuItem, quantity, instructions) })
}

// UpdateQuantity 设置数量
func (c *Container) UpdateQuantity(ctx context.Context, menuItemID string, quantity int) error {
	return c.mutate(ctx, func(cart *Cart) { cart.UpdateQuantity(menuItemID, quantity) })
}

// RemoveItem 删除菜品行
func (c *Container) RemoveItem(ctx context.Context, menuItemID string) error {
	return c.mutate(ctx, func(cart *Cart) { cart.RemoveItem(menuItemID) })
}

// UpdateInstructions 覆盖备注
func (c *Container) UpdateInstructions(ctx context.Context, menuItemID, instructions string) error {
	return c.mutate(ctx, func(cart *Cart) { cart.UpdateInstructions(menuItemID, instructions) })
}

// Clear 清空
func (c *Container) Clear(ctx context.Context) error {
	return c.mutate(ctx, func(cart *Cart) { cart.Clear() })
}

// Snapshot 当前购物车副本
func (c *Container) Snapshot() Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.Clone()
}

// TotalAmount 合计金额
func (c *Container) TotalAmount() models.Money {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.TotalAmount()
}

// ItemCount 总份数
func (c *Container) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart.ItemCount()
}
