package service

import (
	"errors"
	"testing"

	"github.com/dujiao-next/tableorder/internal/constants"
	"github.com/dujiao-next/tableorder/internal/repository"

	"github.com/shopspring/decimal"
)

func newTestCostingService(t *testing.T) *CostingService {
	t.Helper()
	db := openServiceTestDB(t)
	return NewCostingService(
		repository.NewSupplierRepository(db),
		repository.NewIngredientRepository(db),
		repository.NewCostingRecipeRepository(db),
	)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPricePerUnit(t *testing.T) {
	if got := PricePerUnit(dec("10"), dec("3")); !got.Equal(dec("3.3333")) {
		t.Fatalf("expected 3.3333, got %s", got)
	}
	if got := PricePerUnit(dec("10"), decimal.Zero); !got.IsZero() {
		t.Fatalf("zero weight should give zero, got %s", got)
	}
}

func TestCostingIngredientLifecycle(t *testing.T) {
	svc := newTestCostingService(t)
	supplier, err := svc.CreateSupplier(" Fresh Farms ")
	if err != nil {
		t.Fatalf("create supplier failed: %v", err)
	}
	if _, err := svc.CreateSupplier(" "); !errors.Is(err, ErrSupplierInvalid) {
		t.Fatalf("expected ErrSupplierInvalid, got %v", err)
	}

	if _, err := svc.CreateIngredient(IngredientInput{IngredientName: "Flour", Weight: decimal.Zero, Unit: constants.UnitGram, PurchasePrice: dec("5")}); !errors.Is(err, ErrIngredientInvalid) {
		t.Fatalf("zero weight should be rejected, got %v", err)
	}
	flour, err := svc.CreateIngredient(IngredientInput{
		IngredientName: "Flour",
		Weight:         dec("1000"),
		Unit:           constants.UnitGram,
		PurchasePrice:  dec("2.50"),
		SupplierID:     &supplier.ID,
	})
	if err != nil {
		t.Fatalf("create ingredient failed: %v", err)
	}
	if !flour.PricePerUnit.Equal(dec("0.0025")) {
		t.Fatalf("unexpected price per unit: %s", flour.PricePerUnit)
	}

	updated, err := svc.UpdateIngredient(flour.ID, IngredientInput{
		IngredientName: "Flour",
		Weight:         dec("500"),
		Unit:           constants.UnitGram,
		PurchasePrice:  dec("2.50"),
	})
	if err != nil {
		t.Fatalf("update ingredient failed: %v", err)
	}
	if !updated.PricePerUnit.Equal(dec("0.005")) || updated.SupplierID != nil {
		t.Fatalf("unexpected updated ingredient: %+v", updated)
	}

	list, err := svc.ListIngredients()
	if err != nil || len(list) != 1 {
		t.Fatalf("list ingredients failed: %v (%d)", err, len(list))
	}
	if err := svc.DeleteIngredient(flour.ID); err != nil {
		t.Fatalf("delete ingredient failed: %v", err)
	}
	if err := svc.DeleteIngredient(flour.ID); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}
}

func TestCostingRecipeSnapshotsAndTotals(t *testing.T) {
	svc := newTestCostingService(t)
	beef, err := svc.CreateIngredient(IngredientInput{IngredientName: "Beef", Weight: dec("1000"), Unit: constants.UnitGram, PurchasePrice: dec("20")})
	if err != nil {
		t.Fatalf("create beef failed: %v", err)
	}
	bun, err := svc.CreateIngredient(IngredientInput{IngredientName: "Bun", Weight: dec("12"), Unit: constants.UnitEach, PurchasePrice: dec("6")})
	if err != nil {
		t.Fatalf("create bun failed: %v", err)
	}

	sell := dec("10")
	view, err := svc.CreateRecipe(CostingRecipeInput{
		RecipeName: "Burger",
		Servings:   2,
		SellPrice:  &sell,
		Ingredients: []CostingRecipeLineInput{
			{IngredientID: beef.ID, Quantity: dec("300")},
			{IngredientID: bun.ID, Quantity: dec("2")},
		},
	})
	if err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	// 300g * 0.02 + 2 * 0.5 = 7.00
	if !view.TotalCost.Equal(dec("7")) || !view.CostPerServing.Equal(dec("3.5")) {
		t.Fatalf("unexpected totals: total=%s per=%s", view.TotalCost, view.CostPerServing)
	}
	if view.CostPercentage == nil || !view.CostPercentage.Equal(dec("35")) {
		t.Fatalf("unexpected cost percentage: %v", view.CostPercentage)
	}
	if view.Profit == nil || !view.Profit.Equal(dec("6.5")) {
		t.Fatalf("unexpected profit: %v", view.Profit)
	}
	if len(view.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredient lines, got %d", len(view.Ingredients))
	}

	if err := svc.DeleteIngredient(beef.ID); !errors.Is(err, ErrIngredientInUse) {
		t.Fatalf("expected ErrIngredientInUse, got %v", err)
	}

	if _, err := svc.UpdateIngredient(beef.ID, IngredientInput{IngredientName: "Beef", Weight: dec("1000"), Unit: constants.UnitGram, PurchasePrice: dec("40")}); err != nil {
		t.Fatalf("update beef failed: %v", err)
	}
	stale, _ := svc.GetRecipe(view.ID)
	if !stale.TotalCost.Equal(dec("7")) {
		t.Fatalf("existing snapshot should not change, got %s", stale.TotalCost)
	}

	updated, err := svc.UpdateRecipe(view.ID, CostingRecipeInput{
		RecipeName:  "Burger",
		Servings:    1,
		Ingredients: []CostingRecipeLineInput{{IngredientID: beef.ID, Quantity: dec("100")}},
	})
	if err != nil {
		t.Fatalf("update recipe failed: %v", err)
	}
	if !updated.TotalCost.Equal(dec("4")) || len(updated.Ingredients) != 1 || updated.CostPercentage != nil {
		t.Fatalf("unexpected updated recipe: %+v", updated)
	}

	if _, err := svc.CreateRecipe(CostingRecipeInput{RecipeName: "Bad", Servings: 0}); !errors.Is(err, ErrCostingRecipeInvalid) {
		t.Fatalf("expected ErrCostingRecipeInvalid, got %v", err)
	}
	if _, err := svc.CreateRecipe(CostingRecipeInput{RecipeName: "Bad", Servings: 1, Ingredients: []CostingRecipeLineInput{{IngredientID: "missing", Quantity: dec("1")}}}); !errors.Is(err, ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}

	if err := svc.DeleteRecipe(view.ID); err != nil {
		t.Fatalf("delete recipe failed: %v", err)
	}
	if _, err := svc.GetRecipe(view.ID); !errors.Is(err, ErrCostingRecipeNotFound) {
		t.Fatalf("expected ErrCostingRecipeNotFound, got %v", err)
	}
	if err := svc.DeleteIngredient(beef.ID); err != nil {
		t.Fatalf("ingredient should be deletable once unused: %v", err)
	}
}
