package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dujiao-next/tableorder/internal/cart"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"
)

func countOrders(t *testing.T, f *orderingFixture) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	return count
}

func TestSubmitRequiresTableBeforeAnyWrite(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "12.50")
	if _, err := f.carts.AddItem(ctx, "s1", burger.ID, 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if _, err := f.submission.Submit(ctx, "s1"); !errors.Is(err, ErrMissingTable) {
		t.Fatalf("expected ErrMissingTable, got %v", err)
	}
	if got := countOrders(t, f); got != 0 {
		t.Fatalf("no order should be written, got %d", got)
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "7")
	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}

	if _, err := f.submission.Submit(ctx, "s1"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if got := countOrders(t, f); got != 0 {
		t.Fatalf("no order should be written, got %d", got)
	}
}

func TestSubmitWritesOrderAndClearsCart(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "7")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "12.50")
	soda := createTestMenuItem(t, f.db, "Soda", constants.MenuCategoryBeverage, "3.00")

	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}
	if _, err := f.carts.AddItem(ctx, "s1", burger.ID, 2, "no onions"); err != nil {
		t.Fatalf("add burger failed: %v", err)
	}
	if _, err := f.carts.AddItem(ctx, "s1", soda.ID, 1, ""); err != nil {
		t.Fatalf("add soda failed: %v", err)
	}
	sub := f.broker.Subscribe(constants.RealtimeTableOrders, constants.RealtimeEventInsert)
	defer sub.Unsubscribe()

	orderID, err := f.submission.Submit(ctx, "s1")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if orderID == "" {
		t.Fatalf("expected order id")
	}

	order, err := f.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		t.Fatalf("load order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending || order.TableID != table.ID {
		t.Fatalf("unexpected order header: %+v", order)
	}
	if order.TotalAmount.String() != "28.00" {
		t.Fatalf("expected total 28.00, got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.MenuItemID == burger.ID {
			if item.Quantity != 2 || item.PriceAtOrder.String() != "12.50" {
				t.Fatalf("unexpected burger line: %+v", item)
			}
			if item.SpecialInstructions == nil || *item.SpecialInstructions != "no onions" {
				t.Fatalf("instructions should be kept")
			}
		}
		if item.MenuItemID == soda.ID && item.SpecialInstructions != nil {
			t.Fatalf("empty instructions should be stored as null")
		}
	}

	container, err := f.carts.Open(ctx, "s1")
	if err != nil {
		t.Fatalf("open cart failed: %v", err)
	}
	if container.ItemCount() != 0 {
		t.Fatalf("cart should be cleared after submit")
	}
	oc, _ := f.contexts.Load(ctx, "s1")
	if oc.CurrentOrderID != orderID || oc.IsSubmitting {
		t.Fatalf("unexpected order context: %+v", oc)
	}

	select {
	case event := <-sub.C:
		if event.RecordID != orderID || event.Type != constants.RealtimeEventInsert {
			t.Fatalf("unexpected realtime event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected insert event")
	}
}

func TestSubmitUsesCartPriceSnapshot(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "3")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "10.00")
	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}
	if _, err := f.carts.AddItem(ctx, "s1", burger.ID, 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := f.db.Model(&models.MenuItem{}).Where("id = ?", burger.ID).Update("price", models.MustMoney("99.00")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}

	orderID, err := f.submission.Submit(ctx, "s1")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	order, _ := f.orderRepo.GetByID(orderID)
	if order.TotalAmount.String() != "10.00" || order.Items[0].PriceAtOrder.String() != "10.00" {
		t.Fatalf("order should use price captured in cart, got %s", order.TotalAmount.String())
	}
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "4")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "10.00")
	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}
	if _, err := f.carts.AddItem(ctx, "s1", burger.ID, 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	release, ok, err := f.guard.Acquire(ctx, "s1")
	if err != nil || !ok {
		t.Fatalf("acquire guard failed: %v", err)
	}
	if _, err := f.submission.Submit(ctx, "s1"); !errors.Is(err, ErrSubmissionInProgress) {
		t.Fatalf("expected ErrSubmissionInProgress, got %v", err)
	}
	release()

	if _, err := f.submission.Submit(ctx, "s1"); err != nil {
		t.Fatalf("submit after release failed: %v", err)
	}
}

func TestSubmitFailureLeavesCartAndWritesNothing(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "5")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "10.00")
	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}
	if _, err := f.carts.AddItem(ctx, "s1", burger.ID, 3, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := f.db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatalf("drop order_items failed: %v", err)
	}

	orderID, err := f.submission.Submit(ctx, "s1")
	if err == nil || orderID != "" {
		t.Fatalf("expected failure without id, got id=%q err=%v", orderID, err)
	}
	if got := countOrders(t, f); got != 0 {
		t.Fatalf("order header should be rolled back, got %d orders", got)
	}
	container, _ := f.carts.Open(ctx, "s1")
	if container.ItemCount() != 3 {
		t.Fatalf("cart should be untouched, got %d items", container.ItemCount())
	}
	oc, _ := f.contexts.Load(ctx, "s1")
	if oc.IsSubmitting || oc.CurrentOrderID != "" {
		t.Fatalf("unexpected context after failure: %+v", oc)
	}
}

func TestSubmitTwiceCreatesTwoOrders(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "6")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "10.00")
	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := f.carts.AddItem(ctx, "s1", burger.ID, 1, ""); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
		if _, err := f.submission.Submit(ctx, "s1"); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}
	if got := countOrders(t, f); got != 2 {
		t.Fatalf("expected 2 orders, got %d", got)
	}
}

func TestSubmitHoldsCartLockAgainstConcurrentAdd(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "8")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "10.00")
	cola := createTestMenuItem(t, f.db, "Cola", constants.MenuCategoryBeverage, "3.00")
	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}
	if _, err := f.carts.AddItem(ctx, "s1", burger.ID, 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	unlock, err := f.locker.Lock(ctx, "s1")
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	addErr := make(chan error, 1)
	go func() {
		_, err := f.carts.AddItem(ctx, "s1", cola.ID, 2, "")
		addErr <- err
	}()
	// 让加购请求先完成菜单查询并阻塞在会话锁上
	time.Sleep(50 * time.Millisecond)

	type submitResult struct {
		id  string
		err error
	}
	submitted := make(chan submitResult, 1)
	go func() {
		id, err := f.submission.Submit(ctx, "s1")
		submitted <- submitResult{id: id, err: err}
	}()
	time.Sleep(20 * time.Millisecond)
	unlock()

	if err := <-addErr; err != nil {
		t.Fatalf("concurrent add failed: %v", err)
	}
	result := <-submitted
	if result.err != nil {
		t.Fatalf("submit failed: %v", result.err)
	}

	order, err := f.orderRepo.GetByID(result.id)
	if err != nil || order == nil {
		t.Fatalf("load order failed: %v", err)
	}
	ordered := 0
	for _, item := range order.Items {
		ordered += item.Quantity
	}
	container, err := f.carts.Open(ctx, "s1")
	if err != nil {
		t.Fatalf("open cart failed: %v", err)
	}
	if ordered+container.ItemCount() != 3 {
		t.Fatalf("lost quantity: ordered=%d cart=%d", ordered, container.ItemCount())
	}
}

// clearFailingPersistence 购物车被清空时写入失败，其余操作透传
type clearFailingPersistence struct {
	cart.Persistence
}

func (p clearFailingPersistence) Save(ctx context.Context, key string, value interface{}) error {
	if snapshot, ok := value.(cart.Cart); ok && snapshot.IsEmpty() && strings.HasPrefix(key, constants.CartStorageKey) {
		return errors.New("cart store unavailable")
	}
	return p.Persistence.Save(ctx, key, value)
}

func TestSubmitReportsCartClearFailure(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	table := createTestTable(t, f.db, "9")
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "10.00")
	if _, err := f.tables.Resolve(ctx, "s1", table.ID); err != nil {
		t.Fatalf("resolve table failed: %v", err)
	}

	carts := NewCartService(clearFailingPersistence{Persistence: f.store}, f.locker, f.menu)
	submission := NewSubmissionService(carts, f.contexts, f.guard, f.orderRepo, f.broker, f.submission.queueClient)
	if _, err := carts.AddItem(ctx, "s1", burger.ID, 2, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	orderID, err := submission.Submit(ctx, "s1")
	if !errors.Is(err, ErrCartClearFailed) {
		t.Fatalf("expected ErrCartClearFailed, got %v", err)
	}
	if orderID == "" {
		t.Fatalf("order id should be returned when only the cart clear failed")
	}
	if got := countOrders(t, f); got != 1 {
		t.Fatalf("expected the order to be kept, got %d", got)
	}
	oc, _ := f.contexts.Load(ctx, "s1")
	if oc.CurrentOrderID != orderID || oc.IsSubmitting {
		t.Fatalf("unexpected order context: %+v", oc)
	}
}
