package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/dujiao-next/tableorder/internal/cart"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/queue"
	"github.com/dujiao-next/tableorder/internal/realtime"
	"github.com/dujiao-next/tableorder/internal/repository"
	"github.com/dujiao-next/tableorder/internal/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	models.DB = db
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func createTestTable(t *testing.T, db *gorm.DB, number string) *models.DiningTable {
	t.Helper()
	table := &models.DiningTable{TableNumber: number}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	return table
}

func createTestMenuItem(t *testing.T, db *gorm.DB, name, category, price string) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:     name,
		Category: category,
		Price:    models.MustMoney(price),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create menu item failed: %v", err)
	}
	return item
}

type orderingFixture struct {
	db         *gorm.DB
	store      cart.Persistence
	contexts   *cart.ContextStore
	guard      *cart.MemoryGuard
	locker     *cart.MemoryLocker
	broker     *realtime.MemoryBroker
	tables     *TableService
	menu       *MenuService
	carts      *CartService
	submission *SubmissionService
	orders     *OrderService
	orderRepo  *repository.GormOrderRepository
}

func newOrderingFixture(t *testing.T) *orderingFixture {
	t.Helper()
	db := openServiceTestDB(t)
	store := cart.NewMemoryPersistence()
	contexts := cart.NewContextStore(store)
	guard := cart.NewMemoryGuard()
	locker := cart.NewMemoryLocker()
	broker := realtime.NewMemoryBroker()
	t.Cleanup(func() { _ = broker.Close() })
	queueClient, _ := queue.NewClient(nil)

	orderRepo := repository.NewOrderRepository(db)
	menu := NewMenuService(repository.NewMenuRepository(db), storage.NewBaseURLResolver("https://cdn.example.com", "menu-images"))
	carts := NewCartService(store, locker, menu)
	return &orderingFixture{
		db:         db,
		store:      store,
		contexts:   contexts,
		guard:      guard,
		locker:     locker,
		broker:     broker,
		tables:     NewTableService(repository.NewTableRepository(db), contexts),
		menu:       menu,
		carts:      carts,
		submission: NewSubmissionService(carts, contexts, guard, orderRepo, broker, queueClient),
		orders:     NewOrderService(orderRepo, broker),
		orderRepo:  orderRepo,
	}
}
