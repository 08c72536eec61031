package main

import (
	"fmt"
	"os"

	"github.com/dujiao-next/tableorder/internal/app"
	"github.com/dujiao-next/tableorder/internal/config"
	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/logger"
	"github.com/dujiao-next/tableorder/internal/models"
	"github.com/dujiao-next/tableorder/internal/repository"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := app.InitDatabase(cfg); err != nil {
		stdLog.Fatalf("Failed to init database: %v", err)
	}

	// 默认管理员
	if _, err := models.InitDefaultAdmin(os.Getenv("TO_DEFAULT_ADMIN_EMAIL"), os.Getenv("TO_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Fatalf("Failed to init default admin: %v", err)
	}

	var count int64
	if err := models.DB.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		stdLog.Fatalf("Failed to count menu items: %v", err)
	}
	if count > 0 {
		fmt.Println("Menu already seeded, skipping")
		return
	}

	// 添加餐桌
	tableRepo := repository.NewTableRepository(models.DB)
	for i := 1; i <= 12; i++ {
		table := &models.DiningTable{TableNumber: fmt.Sprintf("%d", i)}
		if err := tableRepo.Create(table); err != nil {
			stdLog.Fatalf("Failed to create table %d: %v", i, err)
		}
	}

	// 添加菜品
	menuRepo := repository.NewMenuRepository(models.DB)
	items := []models.MenuItem{
		{
			Name:        "Classic Burger",
			Description: "Beef patty, cheddar, pickles and house sauce on a brioche bun",
			Price:       models.MustMoney("12.50"),
			Category:    constants.MenuCategoryFood,
			Subcategory: strPtr("Mains"),
			Ingredients: models.StringArray{"Beef patty", "Cheddar", "Pickles", "Brioche bun"},
			Allergies:   models.StringArray{"Gluten", "Dairy"},
			Available:   true,
		},
		{
			Name:           "Garden Salad",
			Description:    "Mixed leaves, cherry tomato and lemon dressing",
			Price:          models.MustMoney("9.00"),
			Category:       constants.MenuCategoryFood,
			Subcategory:    strPtr("Starters"),
			Ingredients:    models.StringArray{"Mixed leaves", "Cherry tomato", "Cucumber"},
			Allergies:      models.StringArray{"Vegan", "Gluten free"},
			DietaryOptions: models.StringArray{"No dressing"},
			Available:      true,
		},
		{
			Name:        "Fish and Chips",
			Description: "Beer battered fish with chips and tartare",
			Price:       models.MustMoney("16.00"),
			Category:    constants.MenuCategoryFood,
			Subcategory: strPtr("Mains"),
			Ingredients: models.StringArray{"Fish", "Potato", "Tartare"},
			Allergies:   models.StringArray{"Fish", "Gluten", "Egg"},
			Available:   true,
		},
		{
			Name:        "Flat White",
			Description: "Double shot with steamed milk",
			Price:       models.MustMoney("4.50"),
			Category:    constants.MenuCategoryBeverage,
			Subcategory: strPtr("Coffee"),
			Allergies:   models.StringArray{"Dairy"},
			Available:   true,
		},
		{
			Name:        "Lemonade",
			Description: "House made",
			Price:       models.MustMoney("3.00"),
			Category:    constants.MenuCategoryBeverage,
			Subcategory: strPtr("Cold drinks"),
			Available:   true,
		},
	}
	for i := range items {
		if err := menuRepo.Create(&items[i]); err != nil {
			stdLog.Fatalf("Failed to create menu item %s: %v", items[i].Name, err)
		}
	}

	// 成本核算数据
	costing := service.NewCostingService(
		repository.NewSupplierRepository(models.DB),
		repository.NewIngredientRepository(models.DB),
		repository.NewCostingRecipeRepository(models.DB),
	)
	supplier, err := costing.CreateSupplier("Local Wholesale")
	if err != nil {
		stdLog.Fatalf("Failed to create supplier: %v", err)
	}
	beef, err := costing.CreateIngredient(service.IngredientInput{
		IngredientName: "Beef mince",
		Weight:         decimal.NewFromInt(1000),
		Unit:           constants.UnitGram,
		PurchasePrice:  decimal.RequireFromString("18.00"),
		SupplierID:     &supplier.ID,
	})
	if err != nil {
		stdLog.Fatalf("Failed to create ingredient: %v", err)
	}
	buns, err := costing.CreateIngredient(service.IngredientInput{
		IngredientName: "Brioche bun",
		Weight:         decimal.NewFromInt(6),
		Unit:           constants.UnitEach,
		PurchasePrice:  decimal.RequireFromString("4.80"),
		SupplierID:     &supplier.ID,
	})
	if err != nil {
		stdLog.Fatalf("Failed to create ingredient: %v", err)
	}
	sellPrice := decimal.RequireFromString("12.50")
	if _, err := costing.CreateRecipe(service.CostingRecipeInput{
		RecipeName: "Classic Burger",
		Servings:   1,
		SellPrice:  &sellPrice,
		Ingredients: []service.CostingRecipeLineInput{
			{IngredientID: beef.ID, Quantity: decimal.NewFromInt(150), Unit: constants.UnitGram},
			{IngredientID: buns.ID, Quantity: decimal.NewFromInt(1), Unit: constants.UnitEach},
		},
	}); err != nil {
		stdLog.Fatalf("Failed to create costing recipe: %v", err)
	}

	// 后厨食谱
	recipes := service.NewRecipeService(repository.NewRecipeRepository(models.DB))
	if _, err := recipes.Create(service.RecipeInput{
		Name:         "House Sauce",
		Instructions: "Whisk everything together and rest for 1 hour before service.",
		Ingredients: []service.RecipeIngredientInput{
			{IngredientName: "Mayonnaise", Weight: "200g"},
			{IngredientName: "Ketchup", Weight: "80g"},
			{IngredientName: "Pickle brine", Weight: "20mL"},
		},
	}); err != nil {
		stdLog.Fatalf("Failed to create recipe: %v", err)
	}

	fmt.Println("Seed data created")
}
