package service

import (
	"context"
	"strings"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/notify"
	"github.com/dujiao-next/tableorder/internal/queue"
	"github.com/dujiao-next/tableorder/internal/repository"
)

// PrintService 打印请求（占位实现：格式化小票并写日志）
type PrintService struct {
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewPrintService 创建打印服务
func NewPrintService(orderRepo repository.OrderRepository, queueClient *queue.Client) *PrintService {
	return &PrintService{orderRepo: orderRepo, queueClient: queueClient}
}

// NormalizePrinterType 规范打印机类型，空值默认 both
func NormalizePrinterType(printerType string) (string, error) {
	switch normalized := strings.ToLower(strings.TrimSpace(printerType)); normalized {
	case "":
		return constants.PrinterBoth, nil
	case constants.PrinterKitchen, constants.PrinterCounter, constants.PrinterBoth:
		return normalized, nil
	default:
		return "", ErrPrinterTypeInvalid
	}
}

// Request 受理打印请求；队列可用时异步处理，否则直接处理。返回是否进入队列
func (s *PrintService) Request(ctx context.Context, orderID, printerType string) (bool, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return false, ErrPrintOrderRequired
	}
	normalized, err := NormalizePrinterType(printerType)
	if err != nil {
		return false, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, ErrOrderNotFound
	}

	payload := queue.OrderPrintPayload{OrderID: orderID, PrinterType: normalized}
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueOrderPrint(payload); err != nil {
			logger.Warnw("print_enqueue_failed", "order_id", orderID, "error", err)
			return false, ErrQueueUnavailable
		}
		return true, nil
	}
	return false, s.Process(ctx, payload)
}

// Process 处理打印任务
func (s *PrintService) Process(_ context.Context, payload queue.OrderPrintPayload) error {
	order, err := s.orderRepo.GetByID(payload.OrderID)
	if err != nil {
		return err
	}
	if order == nil {
		logger.Warnw("print_order_missing", "order_id", payload.OrderID)
		return nil
	}
	targets := []string{payload.PrinterType}
	if payload.PrinterType == constants.PrinterBoth || payload.PrinterType == "" {
		targets = []string{constants.PrinterKitchen, constants.PrinterCounter}
	}
	for _, target := range targets {
		ticket := notify.FormatTicket(strings.ToUpper(target), order)
		logger.Infow("print_ticket_placeholder",
			"order_id", order.ID,
			"printer", target,
			"ticket", ticket,
		)
	}
	return nil
}
