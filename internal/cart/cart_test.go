package cart

import (
	"context"
	"testing"

	"github.com/dujiao-next/tableorder/internal/models"
)

func menuItem(id, name, price string) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, Price: models.MustMoney(price), Available: true}
}

func TestAddItemMergesSameMenuItem(t *testing.T) {
	var c Cart
	burger := menuItem("m1", "Burger", "12.00")
	c.AddItem(burger, 1, "")
	c.AddItem(burger, 2, "")

	if len(c.Items) != 1 {
		t.Fatalf("want single entry, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("want quantity 3, got %d", c.Items[0].Quantity)
	}
}

func TestAddItemKeepsFirstInstructions(t *testing.T) {
	var c Cart
	burger := menuItem("m1", "Burger", "12.00")
	c.AddItem(burger, 1, "no onions")
	c.AddItem(burger, 1, "extra cheese")
	if got := c.Items[0].SpecialInstructions; got != "no onions" {
		t.Fatalf("first add instructions should persist, got %q", got)
	}
	c.UpdateInstructions("m1", "extra cheese")
	if got := c.Items[0].SpecialInstructions; got != "extra cheese" {
		t.Fatalf("explicit edit should overwrite, got %q", got)
	}
}

func TestTotalsScenario(t *testing.T) {
	var c Cart
	c.AddItem(menuItem("m1", "Burger", "12.00"), 2, "")
	c.AddItem(menuItem("m2", "Soda", "3.00"), 1, "")

	if got := c.TotalAmount().String(); got != "27.00" {
		t.Fatalf("total want 27.00 got %s", got)
	}
	if got := c.ItemCount(); got != 3 {
		t.Fatalf("item count want 3 got %d", got)
	}
}

func TestTotalTracksEveryMutation(t *testing.T) {
	var c Cart
	c.AddItem(menuItem("m1", "Burger", "12.00"), 1, "")
	c.AddItem(menuItem("m2", "Soda", "3.00"), 4, "")
	c.UpdateQuantity("m1", 3)
	if got := c.TotalAmount().String(); got != "48.00" {
		t.Fatalf("total after update want 48.00 got %s", got)
	}
	c.RemoveItem("m2")
	if got := c.TotalAmount().String(); got != "36.00" {
		t.Fatalf("total after remove want 36.00 got %s", got)
	}
	c.Items[0].MenuItem.Price = models.MustMoney("10.00")
	if got := c.TotalAmount().String(); got != "30.00" {
		t.Fatalf("total should reflect current entries, got %s", got)
	}
}

func TestUpdateQuantityDoesNotClamp(t *testing.T) {
	var c Cart
	c.AddItem(menuItem("m1", "Burger", "12.00"), 2, "")
	c.UpdateQuantity("m1", 0)
	if c.Items[0].Quantity != 0 {
		t.Fatalf("store should accept 0, got %d", c.Items[0].Quantity)
	}
	c.UpdateQuantity("m1", -2)
	if c.Items[0].Quantity != -2 {
		t.Fatalf("store should accept negative values, got %d", c.Items[0].Quantity)
	}
	c.UpdateQuantity("missing", 5)
	if len(c.Items) != 1 {
		t.Fatalf("unknown id should be a no-op")
	}
}

func TestRemoveAndClear(t *testing.T) {
	var c Cart
	c.AddItem(menuItem("m1", "Burger", "12.00"), 1, "")
	c.RemoveItem("missing")
	if len(c.Items) != 1 {
		t.Fatalf("removing unknown id should be a no-op")
	}
	c.AddItem(menuItem("m2", "Soda", "3.00"), 1, "")
	c.Clear()
	if !c.IsEmpty() || c.ItemCount() != 0 {
		t.Fatalf("cart should be empty after clear")
	}
}

func TestContainerPersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPersistence()

	container, err := Open(ctx, store, "session-1")
	if err != nil {
		t.Fatalf("open container failed: %v", err)
	}
	if err := container.AddItem(ctx, menuItem("m1", "Burger", "12.00"), 2, "well done"); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if err := container.AddItem(ctx, menuItem("m2", "Soda", "3.00"), 1, ""); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	reloaded, err := Open(ctx, store, "session-1")
	if err != nil {
		t.Fatalf("reopen container failed: %v", err)
	}
	snapshot := reloaded.Snapshot()
	if len(snapshot.Items) != 2 || snapshot.Items[0].SpecialInstructions != "well done" {
		t.Fatalf("reload should restore identical state, got %+v", snapshot.Items)
	}
	if reloaded.TotalAmount().String() != "27.00" {
		t.Fatalf("reloaded total mismatch: %s", reloaded.TotalAmount())
	}

	other, err := Open(ctx, store, "session-2")
	if err != nil {
		t.Fatalf("open other session failed: %v", err)
	}
	if other.ItemCount() != 0 {
		t.Fatalf("sessions must not share carts")
	}

	if err := reloaded.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	again, _ := Open(ctx, store, "session-1")
	if again.ItemCount() != 0 {
		t.Fatalf("clear should be persisted")
	}
}

func TestOpenRequiresSession(t *testing.T) {
	if _, err := Open(context.Background(), NewMemoryPersistence(), "  "); err != ErrSessionRequired {
		t.Fatalf("want ErrSessionRequired, got %v", err)
	}
}

func TestCartKey(t *testing.T) {
	if got := CartKey("abc"); got != "restaurant-cart-storage:abc" {
		t.Fatalf("unexpected cart key %s", got)
	}
	if got := OrderContextKey("abc"); got != "restaurant-order-context:abc" {
		t.Fatalf("unexpected context key %s", got)
	}
}
