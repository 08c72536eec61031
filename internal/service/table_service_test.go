package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dujiao-next/tableorder/internal/cart"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"

	"gorm.io/gorm"
)

type countingTableRepo struct {
	tables map[string]models.DiningTable
	calls  int
}

func (r *countingTableRepo) GetByID(id string) (*models.DiningTable, error) {
	r.calls++
	table, ok := r.tables[id]
	if !ok {
		return nil, nil
	}
	return &table, nil
}

func (r *countingTableRepo) List() ([]models.DiningTable, error) {
	return nil, nil
}

func (r *countingTableRepo) Create(table *models.DiningTable) error {
	return nil
}

func (r *countingTableRepo) WithTx(tx *gorm.DB) *repository.GormTableRepository {
	return nil
}

func TestResolveTable(t *testing.T) {
	ctx := context.Background()
	repo := &countingTableRepo{tables: map[string]models.DiningTable{
		"t1": {ID: "t1", TableNumber: "12"},
	}}
	svc := NewTableService(repo, cart.NewContextStore(cart.NewMemoryPersistence()))

	if _, err := svc.Resolve(ctx, "s1", "  "); !errors.Is(err, ErrTableIDRequired) {
		t.Fatalf("expected ErrTableIDRequired, got %v", err)
	}
	if _, err := svc.Resolve(ctx, "s1", "missing"); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}

	oc, err := svc.Resolve(ctx, "s1", "t1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if oc.TableID != "t1" || oc.TableNumber != "12" {
		t.Fatalf("unexpected context: %+v", oc)
	}
	calls := repo.calls

	if _, err := svc.Resolve(ctx, "s1", "t1"); err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if repo.calls != calls {
		t.Fatalf("same table id should not be looked up again")
	}

	stored, err := svc.Context(ctx, "s1")
	if err != nil {
		t.Fatalf("load context failed: %v", err)
	}
	if stored.TableNumber != "12" {
		t.Fatalf("context should be persisted, got %+v", stored)
	}
}
