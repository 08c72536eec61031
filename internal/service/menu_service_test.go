package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"
)

func TestMenuListAvailableResolvesImages(t *testing.T) {
	f := newOrderingFixture(t)
	ctx := context.Background()
	burger := createTestMenuItem(t, f.db, "Burger", constants.MenuCategoryFood, "12.00")
	soda := createTestMenuItem(t, f.db, "Soda", constants.MenuCategoryBeverage, "3.00")
	hidden := createTestMenuItem(t, f.db, "Hidden", constants.MenuCategoryFood, "1.00")
	f.db.Model(&models.MenuItem{}).Where("id = ?", burger.ID).Update("image_url", "burger.png")
	f.db.Model(&models.MenuItem{}).Where("id = ?", soda.ID).Update("image_url", "https://img.example.com/soda.png")
	f.db.Model(&models.MenuItem{}).Where("id = ?", hidden.ID).Update("available", false)

	items, err := f.menu.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("list menu failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 available items, got %d", len(items))
	}
	food, beverage := Partition(items)
	if len(food) != 1 || len(beverage) != 1 {
		t.Fatalf("unexpected partition: food=%d beverage=%d", len(food), len(beverage))
	}
	if food[0].ImageURL != "https://cdn.example.com/storage/v1/object/public/menu-images/burger.png" {
		t.Fatalf("unexpected resolved url: %s", food[0].ImageURL)
	}
	if beverage[0].ImageURL != "https://img.example.com/soda.png" {
		t.Fatalf("absolute url should be kept, got %s", beverage[0].ImageURL)
	}

	if _, err := f.menu.GetAvailable(hidden.ID); !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("unavailable item should not be orderable, got %v", err)
	}
}
