package cart

import (
	"context"
	"strings"
)

// OrderContext 会话下单上下文（餐桌信息与最近一次提交的订单）
type OrderContext struct {
	TableID        string `json:"table_id"`
	TableNumber    string `json:"table_number"`
	CurrentOrderID string `json:"current_order_id"`
	IsSubmitting   bool   `json:"is_submitting"`
}

// HasTable 是否已解析餐桌
func (o OrderContext) HasTable() bool {
	return strings.TrimSpace(o.TableID) != ""
}

// SetTableInfo 写入餐桌信息
func (o *OrderContext) SetTableInfo(tableID, tableNumber string) {
	o.TableID = tableID
	o.TableNumber = tableNumber
}

// SetCurrentOrderID 记录最近提交的订单
func (o *OrderContext) SetCurrentOrderID(orderID string) {
	o.CurrentOrderID = orderID
}

// Reset 清空上下文
func (o *OrderContext) Reset() {
	*o = OrderContext{}
}

// ContextStore 下单上下文存取
type ContextStore struct {
	store Persistence
}

// NewContextStore 创建下单上下文存取
func NewContextStore(store Persistence) *ContextStore {
	return &ContextStore{store: store}
}

// Load 读取会话上下文，不存在时返回零值
func (s *ContextStore) Load(ctx context.Context, sessionID string) (OrderContext, error) {
	var oc OrderContext
	if strings.TrimSpace(sessionID) == "" {
		return oc, ErrSessionRequired
	}
	if _, err := s.store.Load(ctx, OrderContextKey(sessionID), &oc); err != nil {
		return OrderContext{}, err
	}
	return oc, nil
}

// Save 保存会话上下文
func (s *ContextStore) Save(ctx context.Context, sessionID string, oc OrderContext) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrSessionRequired
	}
	return s.store.Save(ctx, OrderContextKey(sessionID), oc)
}

// Update 读取、修改并保存会话上下文
func (s *ContextStore) Update(ctx context.Context, sessionID string, fn func(*OrderContext)) (OrderContext, error) {
	oc, err := s.Load(ctx, sessionID)
	if err != nil {
		return OrderContext{}, err
	}
	fn(&oc)
	if err := s.Save(ctx, sessionID, oc); err != nil {
		return OrderContext{}, err
	}
	return oc, nil
}
