package queue

import (
	"encoding/json"
	"testing"

	"github.com/dujiao-next/tableorder/internal/config"
)

func TestDisabledClientEnqueueIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderPrint(OrderPrintPayload{OrderID: "o1", PrinterType: "both"}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestNewOrderPrintTaskPayload(t *testing.T) {
	task, err := NewOrderPrintTask(OrderPrintPayload{OrderID: "o1", PrinterType: "kitchen"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderPrint {
		t.Fatalf("unexpected task type %s", task.Type())
	}
	var payload OrderPrintPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.OrderID != "o1" || payload.PrinterType != "kitchen" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("unexpected addr %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("unexpected concurrency %d", cfg.Concurrency)
	}
	if _, ok := cfg.Queues[CriticalQueue]; !ok {
		t.Fatalf("critical queue should be configured")
	}
}
