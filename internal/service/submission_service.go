package service

import (
	"context"
	"strings"
	"time"

	"github.com/dujiao-next/tableorder/internal/cart"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/queue"
	"github.com/dujiao-next/tableorder/internal/realtime"
	"github.com/dujiao-next/tableorder/internal/repository"

	"gorm.io/gorm"
)

const cartClearAttempts = 3

// SubmissionService 将会话购物车与餐桌上下文转换为订单
type SubmissionService struct {
	cartService *CartService
	contexts    *cart.ContextStore
	guard       cart.SubmitGuard
	orderRepo   repository.OrderRepository
	broker      realtime.Broker
	queueClient *queue.Client
}

// NewSubmissionService 创建下单服务
func NewSubmissionService(
	cartService *CartService,
	contexts *cart.ContextStore,
	guard cart.SubmitGuard,
	orderRepo repository.OrderRepository,
	broker realtime.Broker,
	queueClient *queue.Client,
) *SubmissionService {
	return &SubmissionService{
		cartService: cartService,
		contexts:    contexts,
		guard:       guard,
		orderRepo:   orderRepo,
		broker:      broker,
		queueClient: queueClient,
	}
}

// Submit 提交订单，返回新订单 ID。订单头与订单项在同一事务中写入；
// 失败时购物车保持不变。重复调用会生成多笔订单。
// 从读取购物车快照到清空购物车全程持有会话锁，期间的加购请求会等待提交完成。
// 订单已写入但购物车清空失败时返回订单 ID 与 ErrCartClearFailed。
func (s *SubmissionService) Submit(ctx context.Context, sessionID string) (string, error) {
	oc, err := s.contexts.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !oc.HasTable() {
		return "", ErrMissingTable
	}
	precheck, err := s.cartService.Open(ctx, sessionID)
	if err != nil {
		return "", err
	}
	snapshot := precheck.Snapshot()
	if snapshot.IsEmpty() {
		return "", ErrEmptyCart
	}

	release, ok, err := s.guard.Acquire(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSubmissionInProgress
	}
	defer release()

	var (
		order    *models.Order
		items    []models.OrderItem
		clearErr error
	)
	_, err = s.cartService.WithSession(ctx, sessionID, func(container *cart.Container) error {
		snapshot := container.Snapshot()
		if snapshot.IsEmpty() {
			return ErrEmptyCart
		}
		s.markSubmitting(ctx, sessionID, true)

		pending, lines := buildOrder(oc.TableID, snapshot)
		if err := models.DB.Transaction(func(tx *gorm.DB) error {
			return s.orderRepo.WithTx(tx).Create(pending, lines)
		}); err != nil {
			s.markSubmitting(ctx, sessionID, false)
			logger.Errorw("order_submit_failed",
				"session_id", sessionID,
				"table_id", oc.TableID,
				"item_count", snapshot.ItemCount(),
				"error", err,
			)
			return err
		}
		order, items = pending, lines

		if _, err := s.contexts.Update(ctx, sessionID, func(o *cart.OrderContext) {
			o.SetCurrentOrderID(order.ID)
			o.IsSubmitting = false
		}); err != nil {
			logger.Warnw("order_submit_context_save_failed", "session_id", sessionID, "order_id", order.ID, "error", err)
		}
		clearErr = clearWithRetry(ctx, container)
		return nil
	})
	if err != nil {
		return "", err
	}

	s.afterCreate(ctx, order)
	logger.Infow("order_submitted",
		"order_id", order.ID,
		"table_id", order.TableID,
		"total_amount", order.TotalAmount.String(),
		"item_count", len(items),
	)
	if clearErr != nil {
		logger.Errorw("order_submit_cart_clear_failed", "session_id", sessionID, "order_id", order.ID, "error", clearErr)
		return order.ID, ErrCartClearFailed
	}
	return order.ID, nil
}

func clearWithRetry(ctx context.Context, container *cart.Container) error {
	var err error
	for attempt := 0; attempt < cartClearAttempts; attempt++ {
		if err = container.Clear(ctx); err == nil {
			return nil
		}
	}
	return err
}

func (s *SubmissionService) markSubmitting(ctx context.Context, sessionID string, submitting bool) {
	if _, err := s.contexts.Update(ctx, sessionID, func(o *cart.OrderContext) {
		o.IsSubmitting = submitting
	}); err != nil {
		logger.Warnw("order_submit_flag_save_failed", "session_id", sessionID, "submitting", submitting, "error", err)
	}
}

func (s *SubmissionService) afterCreate(ctx context.Context, order *models.Order) {
	if s.broker != nil {
		event := realtime.Event{
			Table:    constants.RealtimeTableOrders,
			Type:     constants.RealtimeEventInsert,
			RecordID: order.ID,
			Status:   order.Status,
		}
		if err := s.broker.Publish(ctx, event); err != nil {
			logger.Warnw("order_realtime_publish_failed", "order_id", order.ID, "error", err)
		}
	}
	if err := s.queueClient.EnqueueOrderCreatedNotify(queue.OrderCreatedNotifyPayload{OrderID: order.ID}); err != nil {
		logger.Warnw("order_notify_enqueue_failed", "order_id", order.ID, "error", err)
	}
}

// buildOrder 订单项价格取购物车中的菜品快照，不重新查询菜单
func buildOrder(tableID string, snapshot cart.Cart) (*models.Order, []models.OrderItem) {
	now := time.Now()
	order := &models.Order{
		TableID:     tableID,
		Status:      constants.OrderStatusPending,
		TotalAmount: snapshot.TotalAmount(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items := make([]models.OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		item := models.OrderItem{
			MenuItemID:   line.MenuItem.ID,
			Quantity:     line.Quantity,
			PriceAtOrder: line.MenuItem.Price,
			CreatedAt:    now,
		}
		if instructions := strings.TrimSpace(line.SpecialInstructions); instructions != "" {
			item.SpecialInstructions = &instructions
		}
		items = append(items, item)
	}
	return order, items
}
