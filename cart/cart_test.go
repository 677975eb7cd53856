package cart

import (
	"reflect"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAddToCartQueryKeepsOneRowPerListing(t *testing.T) {
	now := time.Now()
	firstFilter, firstUpdate := addToCartQuery("u1", "p1", 3, now)
	secondFilter, secondUpdate := addToCartQuery("u1", "p1", 2, now)

	// identical filters mean both writes target the same row
	if !reflect.DeepEqual(firstFilter, secondFilter) {
		t.Fatalf("filters differ: %v vs %v", firstFilter, secondFilter)
	}
	if firstFilter["consumerid"] != "u1" || firstFilter["produceid"] != "p1" {
		t.Fatalf("filter must pin the consumer+produce pair, got %v", firstFilter)
	}

	// quantity flows only through $inc, so 3 then 2 leaves one row at 5
	if got := firstUpdate["$inc"].(bson.M)["quantity"]; got != 3 {
		t.Fatalf("expected $inc quantity 3, got %v", got)
	}
	if got := secondUpdate["$inc"].(bson.M)["quantity"]; got != 2 {
		t.Fatalf("expected $inc quantity 2, got %v", got)
	}

	setOnInsert := firstUpdate["$setOnInsert"].(bson.M)
	if _, ok := setOnInsert["quantity"]; ok {
		t.Fatal("quantity in $setOnInsert would reset instead of accumulate")
	}
	if setOnInsert["consumerid"] != "u1" || setOnInsert["produceid"] != "p1" {
		t.Fatalf("insert must carry the row identity, got %v", setOnInsert)
	}
	if setOnInsert["cartid"] == "" {
		t.Fatal("insert must assign a cart id")
	}
}

func TestAddToCartQueryDistinctListingsGetDistinctRows(t *testing.T) {
	now := time.Now()
	f1, _ := addToCartQuery("u1", "p1", 1, now)
	f2, _ := addToCartQuery("u1", "p2", 1, now)
	if reflect.DeepEqual(f1, f2) {
		t.Fatal("different listings must target different rows")
	}
}
