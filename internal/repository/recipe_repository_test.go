package repository

import (
	"testing"

	"github.com/dujiao-next/tableorder/internal/models"
)

func TestRecipeCreateOrderedIngredientsAndSearch(t *testing.T) {
	repo := NewRecipeRepository(openRepositoryTestDB(t))
	recipe := &models.Recipe{Name: "Tomato Soup", Instructions: "Simmer"}
	ingredients := []models.RecipeIngredient{
		{IngredientName: "Salt", Weight: "5g", OrderIndex: 2},
		{IngredientName: "Tomato", Weight: "500g", OrderIndex: 0},
		{IngredientName: "Onion", Weight: "100g", OrderIndex: 1},
	}
	if err := repo.Create(recipe, ingredients); err != nil {
		t.Fatalf("create recipe failed: %v", err)
	}
	if err := repo.Create(&models.Recipe{Name: "Pancakes"}, nil); err != nil {
		t.Fatalf("create second recipe failed: %v", err)
	}

	got, err := repo.GetByID(recipe.ID)
	if err != nil || got == nil {
		t.Fatalf("get recipe failed: %v", err)
	}
	wantOrder := []string{"Tomato", "Onion", "Salt"}
	for i, name := range wantOrder {
		if got.Ingredients[i].IngredientName != name {
			t.Fatalf("ingredient %d want %s got %s", i, name, got.Ingredients[i].IngredientName)
		}
	}

	list, total, err := repo.List(RecipeListFilter{Search: "tomato"})
	if err != nil {
		t.Fatalf("list recipes failed: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Name != "Tomato Soup" {
		t.Fatalf("search should match only Tomato Soup, got total=%d", total)
	}

	if err := repo.ReplaceIngredients(recipe.ID, []models.RecipeIngredient{{IngredientName: "Basil", OrderIndex: 0}}); err != nil {
		t.Fatalf("replace ingredients failed: %v", err)
	}
	got, _ = repo.GetByID(recipe.ID)
	if len(got.Ingredients) != 1 || got.Ingredients[0].IngredientName != "Basil" {
		t.Fatalf("ingredients should be replaced")
	}

	if err := repo.Delete(recipe.ID); err != nil {
		t.Fatalf("delete recipe failed: %v", err)
	}
	got, err = repo.GetByID(recipe.ID)
	if err != nil || got != nil {
		t.Fatalf("deleted recipe should be nil, err=%v", err)
	}
}
