package queue

import (
	"encoding/json"
	"time"

	"github.com/dujiao-next/tableorder/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPrint 打印任务
	TaskOrderPrint = constants.TaskOrderPrint
	// TaskOrderCreatedNotify 新订单后厨通知任务
	TaskOrderCreatedNotify = constants.TaskOrderCreatedNotify
)

// OrderPrintPayload 打印任务载荷
type OrderPrintPayload struct {
	OrderID     string `json:"order_id"`
	PrinterType string `json:"printer_type"`
}

// OrderCreatedNotifyPayload 新订单通知任务载荷
type OrderCreatedNotifyPayload struct {
	OrderID string        `json:"order_id"`
	Delay   time.Duration `json:"-"`
}

// NewOrderPrintTask 创建打印任务
func NewOrderPrintTask(payload OrderPrintPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPrint, body), nil
}

// NewOrderCreatedNotifyTask 创建新订单通知任务
func NewOrderCreatedNotifyTask(payload OrderCreatedNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCreatedNotify, body), nil
}
