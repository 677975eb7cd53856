package cart

import (
	"testing"

	"farm2home/models"
)

func item(produceID string, qty int, price float64) models.CartItem {
	return models.CartItem{
		CartID:    "c" + produceID,
		ProduceID: produceID,
		Quantity:  qty,
		Produce:   &models.Produce{ProduceID: produceID, Price: price},
	}
}

func TestCartCountSumsQuantities(t *testing.T) {
	items := []models.CartItem{
		item("p1", 3, 2.50),
		item("p2", 1, 4.00),
	}
	if got := CartCount(items); got != 4 {
		t.Fatalf("expected count 4, got %d", got)
	}
}

func TestTotalPrice(t *testing.T) {
	items := []models.CartItem{item("p1", 3, 2.50)}
	if got := TotalPrice(items); got != 7.50 {
		t.Fatalf("expected 7.50, got %v", got)
	}

	// incrementing the same entry reprices the whole line
	items[0].Quantity += 2
	if got := TotalPrice(items); got != 12.50 {
		t.Fatalf("expected 12.50 after increment, got %v", got)
	}
}

func TestTotalPriceMissingJoinCountsZero(t *testing.T) {
	items := []models.CartItem{
		item("p1", 2, 3.00),
		{CartID: "corphan", ProduceID: "gone", Quantity: 5},
	}
	if got := TotalPrice(items); got != 6.00 {
		t.Fatalf("expected orphan row to price at zero, got %v", got)
	}
}

func TestEmptyCart(t *testing.T) {
	if got := CartCount(nil); got != 0 {
		t.Fatalf("expected count 0, got %d", got)
	}
	if got := TotalPrice(nil); got != 0 {
		t.Fatalf("expected total 0, got %v", got)
	}
}
