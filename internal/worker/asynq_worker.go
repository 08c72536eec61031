package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/provider"
	"github.com/dujiao-next/tableorder/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPrint, c.handleOrderPrint)
	mux.HandleFunc(queue.TaskOrderCreatedNotify, c.handleOrderCreatedNotify)
}

func (c *Consumer) handleOrderPrint(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_print_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPrintPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_print_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_print_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.PrintService == nil {
		logger.Warnw("worker_order_print_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.PrintService.Process(ctx, payload); err != nil {
		logger.Warnw("worker_order_print_failed",
			"order_id", payload.OrderID,
			"printer_type", payload.PrinterType,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderCreatedNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderCreatedNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_notify_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.OrderID) == "" {
		logger.Debugw("worker_order_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.KitchenNotifyService == nil {
		logger.Warnw("worker_order_notify_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.KitchenNotifyService.NotifyOrderCreated(ctx, payload.OrderID); err != nil {
		logger.Warnw("worker_order_notify_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
