package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/dujiao-next/tableorder/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repository_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.DiningTable{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Profile{},
		&models.Supplier{},
		&models.MasterIngredient{},
		&models.CostingRecipe{},
		&models.CostingRecipeIngredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.CartSnapshot{},
	); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func strPtr(v string) *string {
	return &v
}
