package cart

import (
	"testing"

	"farm2home/models"
)

func TestBuildOrdersOnePerLine(t *testing.T) {
	items := []models.CartItem{
		{ProduceID: "p1", Quantity: 3, Produce: &models.Produce{
			ProduceID: "p1", FarmerID: "f1", Name: "Carrots", Price: 2.50,
		}},
		{ProduceID: "p2", Quantity: 1, Produce: &models.Produce{
			ProduceID: "p2", FarmerID: "f2", Name: "Tomatoes", Price: 4.00,
		}},
	}

	orders := BuildOrders("u1", items)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	first := orders[0]
	if first.ConsumerID != "u1" || first.FarmerID != "f1" {
		t.Fatalf("wrong parties: %+v", first)
	}
	if first.ProduceName != "Carrots" || first.Quantity != 3 {
		t.Fatalf("wrong line detail: %+v", first)
	}
	if first.TotalPrice != 7.50 {
		t.Fatalf("expected frozen total 7.50, got %v", first.TotalPrice)
	}
	if first.Status != models.OrderPending {
		t.Fatalf("expected pending status, got %s", first.Status)
	}
	if first.OrderID == "" || first.OrderID == orders[1].OrderID {
		t.Fatalf("order ids must be distinct and non-empty")
	}
}

func TestBuildOrdersFrozenTotalIgnoresLaterPriceEdits(t *testing.T) {
	prod := &models.Produce{ProduceID: "p1", FarmerID: "f1", Name: "Spinach", Price: 3.00}
	orders := BuildOrders("u1", []models.CartItem{{ProduceID: "p1", Quantity: 2, Produce: prod}})

	prod.Price = 99.0
	if orders[0].TotalPrice != 6.00 {
		t.Fatalf("total must stay at order-time price, got %v", orders[0].TotalPrice)
	}
}

func TestBuildOrdersEmptyCart(t *testing.T) {
	if orders := BuildOrders("u1", nil); len(orders) != 0 {
		t.Fatalf("expected no orders for empty cart, got %d", len(orders))
	}
}
