//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.MenuItem{},
		&models.DiningTable{},
		&models.Recipe{},
		&models.RecipeIngredient{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(cleanupModels...); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresMenuNullsLast(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewMenuRepository(db)

	for _, item := range []models.MenuItem{
		{Name: "Plain", Category: constants.MenuCategoryFood, Available: true},
		{Name: "Steak", Category: constants.MenuCategoryFood, Subcategory: strPtr("mains"), Available: true},
	} {
		item := item
		if err := repo.Create(&item); err != nil {
			t.Fatalf("create menu item failed: %v", err)
		}
	}

	items, err := repo.ListAvailable()
	if err != nil {
		t.Fatalf("list available failed: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Steak" || items[1].Name != "Plain" {
		t.Fatalf("subcategory nulls should sort last")
	}
}

func TestPostgresRecipeSearchCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewRecipeRepository(db)
	if err := repo.Create(&models.Recipe{Name: "Green Curry"}, nil); err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	list, total, err := repo.List(RecipeListFilter{Search: "CURRY"})
	if err != nil {
		t.Fatalf("list recipes failed: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("ILIKE search should match, got %d", total)
	}
}
