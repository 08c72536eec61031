package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"
)

func seedOrder(t *testing.T, f *orderingFixture, tableID string, item *models.MenuItem, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		TableID:     tableID,
		Status:      constants.OrderStatusPending,
		TotalAmount: item.Price.Times(2),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	items := []models.OrderItem{{MenuItemID: item.ID, Quantity: 2, PriceAtOrder: item.Price, CreatedAt: createdAt}}
	if err := f.orderRepo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderListJoinsTableAndItemNames(t *testing.T) {
	f := newOrderingFixture(t)
	table := createTestTable(t, f.db, "9")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "5.00")
	ghost := createTestMenuItem(t, f.db, "Ghost", constants.MenuCategoryFood, "1.00")
	now := time.Now()
	older := seedOrder(t, f, table.ID, burger, now.Add(-time.Hour))
	newer := seedOrder(t, f, table.ID, ghost, now)
	if err := f.db.Delete(&models.MenuItem{}, "id = ?", ghost.ID).Error; err != nil {
		t.Fatalf("delete menu item failed: %v", err)
	}

	views, total, err := f.orders.List(OrderListInput{Status: "all"})
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 2 || len(views) != 2 {
		t.Fatalf("expected 2 orders, got %d/%d", total, len(views))
	}
	if views[0].ID != newer.ID || views[1].ID != older.ID {
		t.Fatalf("orders should be newest first")
	}
	if views[0].TableNumber != "9" {
		t.Fatalf("unexpected table number: %s", views[0].TableNumber)
	}
	if views[0].Items[0].MenuItemName != constants.UnknownMenuItemName {
		t.Fatalf("missing menu item should be Unknown, got %s", views[0].Items[0].MenuItemName)
	}
	if views[1].Items[0].MenuItemName != "Burger" || views[1].Items[0].Subtotal.String() != "10.00" {
		t.Fatalf("unexpected item view: %+v", views[1].Items[0])
	}

	if _, _, err := f.orders.List(OrderListInput{Status: "unknown"}); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestOrderUpdateStatusTransitions(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "1")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "5.00")
	order := seedOrder(t, f, table.ID, burger, time.Now())
	sub := f.broker.Subscribe(constants.RealtimeTableOrders, constants.RealtimeEventUpdate)
	defer sub.Unsubscribe()

	if _, err := f.orders.UpdateStatus(ctx, order.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pending -> completed should be rejected, got %v", err)
	}
	view, err := f.orders.UpdateStatus(ctx, order.ID, constants.OrderStatusPreparing)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if view.Status != constants.OrderStatusPreparing {
		t.Fatalf("unexpected status: %s", view.Status)
	}
	select {
	case event := <-sub.C:
		if event.RecordID != order.ID || event.Status != constants.OrderStatusPreparing {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected update event")
	}

	if _, err := f.orders.UpdateStatus(ctx, "missing", constants.OrderStatusCancelled); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if !CanTransition(constants.OrderStatusPreparing, constants.OrderStatusCancelled) {
		t.Fatalf("preparing -> cancelled should be allowed")
	}
	if CanTransition(constants.OrderStatusCompleted, constants.OrderStatusPending) {
		t.Fatalf("completed is terminal")
	}
}

func TestPrintRequest(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "2")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "5.00")
	order := seedOrder(t, f, table.ID, burger, time.Now())
	svc := NewPrintService(f.orderRepo, nil)

	if _, err := svc.Request(ctx, "", ""); !errors.Is(err, ErrPrintOrderRequired) {
		t.Fatalf("expected ErrPrintOrderRequired, got %v", err)
	}
	if _, err := svc.Request(ctx, order.ID, "fax"); !errors.Is(err, ErrPrinterTypeInvalid) {
		t.Fatalf("expected ErrPrinterTypeInvalid, got %v", err)
	}
	if _, err := svc.Request(ctx, "missing", ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	queued, err := svc.Request(ctx, order.ID, "")
	if err != nil {
		t.Fatalf("print request failed: %v", err)
	}
	if queued {
		t.Fatalf("disabled queue should process inline")
	}
	if printer, _ := NormalizePrinterType(""); printer != constants.PrinterBoth {
		t.Fatalf("empty printer type should default to both, got %s", printer)
	}
}
