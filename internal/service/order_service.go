package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/realtime"
	"github.com/dujiao-next/tableorder/internal/repository"
)

var errOrderShapeInvalid = errors.New("order row is missing required fields")

// OrderItemView 订单项输出
type OrderItemView struct {
	ID                  string       `json:"id"`
	MenuItemID          string       `json:"menu_item_id"`
	MenuItemName        string       `json:"menu_item_name"`
	Quantity            int          `json:"quantity"`
	PriceAtOrder        models.Money `json:"price_at_order"`
	Subtotal            models.Money `json:"subtotal"`
	SpecialInstructions *string      `json:"special_instructions"`
}

// OrderView 订单输出（含桌号与订单项）
type OrderView struct {
	ID          string          `json:"id"`
	TableID     string          `json:"table_id"`
	TableNumber string          `json:"table_number"`
	Status      string          `json:"status"`
	TotalAmount models.Money    `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Items       []OrderItemView `json:"items"`
}

// OrderListInput 订单列表参数
type OrderListInput struct {
	Status   string
	Page     int
	PageSize int
}

// OrderService 员工端订单查询与状态流转
type OrderService struct {
	orderRepo repository.OrderRepository
	broker    realtime.Broker
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, broker realtime.Broker) *OrderService {
	return &OrderService{orderRepo: orderRepo, broker: broker}
}

// IsValidOrderStatus 是否为已知订单状态
func IsValidOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending, constants.OrderStatusPreparing, constants.OrderStatusCompleted, constants.OrderStatusCancelled:
		return true
	}
	return false
}

var orderTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusPreparing, constants.OrderStatusCancelled},
	constants.OrderStatusPreparing: {constants.OrderStatusCompleted, constants.OrderStatusCancelled},
}

// CanTransition 判断状态是否可流转
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// List 订单列表，按创建时间倒序
func (s *OrderService) List(input OrderListInput) ([]OrderView, int64, error) {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status != "" && status != "all" && !IsValidOrderStatus(status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	if status == "all" {
		status = ""
	}
	orders, total, err := s.orderRepo.List(repository.OrderListFilter{
		Status:   status,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		view, err := toOrderView(&orders[i])
		if err != nil {
			logger.Warnw("order_row_shape_invalid", "order_id", orders[i].ID, "error", err)
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// Get 订单详情
func (s *OrderService) Get(id string) (*OrderView, error) {
	order, err := s.orderRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	view, err := toOrderView(order)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// UpdateStatus 更新订单状态并广播变更
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*OrderView, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !CanTransition(order.Status, status) {
		return nil, ErrOrderStatusInvalid
	}
	now := time.Now()
	if err := s.orderRepo.UpdateStatus(order.ID, status, now); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = now

	if s.broker != nil {
		event := realtime.Event{
			Table:    constants.RealtimeTableOrders,
			Type:     constants.RealtimeEventUpdate,
			RecordID: order.ID,
			Status:   status,
		}
		if err := s.broker.Publish(ctx, event); err != nil {
			logger.Warnw("order_realtime_publish_failed", "order_id", order.ID, "error", err)
		}
	}

	view, err := toOrderView(order)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func toOrderView(order *models.Order) (OrderView, error) {
	if order == nil || strings.TrimSpace(order.ID) == "" || strings.TrimSpace(order.Status) == "" {
		return OrderView{}, errOrderShapeInvalid
	}
	view := OrderView{
		ID:          order.ID,
		TableID:     order.TableID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		Items:       make([]OrderItemView, 0, len(order.Items)),
	}
	if order.Table != nil {
		view.TableNumber = order.Table.TableNumber
	}
	for _, item := range order.Items {
		name := constants.UnknownMenuItemName
		if item.MenuItem != nil && strings.TrimSpace(item.MenuItem.Name) != "" {
			name = item.MenuItem.Name
		}
		view.Items = append(view.Items, OrderItemView{
			ID:                  item.ID,
			MenuItemID:          item.MenuItemID,
			MenuItemName:        name,
			Quantity:            item.Quantity,
			PriceAtOrder:        item.PriceAtOrder,
			Subtotal:            item.PriceAtOrder.Times(item.Quantity),
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return view, nil
}
