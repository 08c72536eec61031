package service

import (
	"context"

	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/notify"
	"github.com/dujiao-next/tableorder/internal/repository"
)

// KitchenNotifyService 新订单后厨通知
type KitchenNotifyService struct {
	orderRepo repository.OrderRepository
	notifier  notify.Notifier
}

// NewKitchenNotifyService 创建后厨通知服务
func NewKitchenNotifyService(orderRepo repository.OrderRepository, notifier notify.Notifier) *KitchenNotifyService {
	return &KitchenNotifyService{orderRepo: orderRepo, notifier: notifier}
}

// NotifyOrderCreated 发送新订单消息；未启用通知时只记录日志
func (s *KitchenNotifyService) NotifyOrderCreated(ctx context.Context, orderID string) error {
	if s.notifier == nil || !s.notifier.Enabled() {
		logger.Debugw("kitchen_notify_skip_disabled", "order_id", orderID)
		return nil
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("kitchen_notify_order_missing", "order_id", orderID)
		return nil
	}
	return s.notifier.Send(ctx, notify.FormatTicket("NEW ORDER", order))
}
