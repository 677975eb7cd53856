package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"farm2home/db"
	"farm2home/models"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fetchCartItems loads the consumer's rows with the produce join applied.
func fetchCartItems(ctx context.Context, consumerID string) ([]models.CartItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"consumerid": consumerID}}},
		{{Key: "$sort", Value: bson.M{"addedAt": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "produce",
			"localField":   "produceid",
			"foreignField": "produceid",
			"as":           "produce",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$produce", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := db.CartCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []models.CartItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = []models.CartItem{}
	}
	return items, nil
}

func respondWithCart(w http.ResponseWriter, items []models.CartItem) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":      items,
		"cartCount":  CartCount(items),
		"totalPrice": TotalPrice(items),
	})
}

// GetCart returns the caller's cart with derived count and total.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := fetchCartItems(ctx, userID)
	if err != nil {
		log.Println("GetCart error:", err)
		http.Error(w, "Failed to fetch cart", http.StatusInternalServerError)
		return
	}
	respondWithCart(w, items)
}

// addToCartQuery builds the upsert that keeps exactly one row per
// (consumer, produce) pair: the filter pins the pair, quantity flows only
// through $inc so repeated adds accumulate in place, and the row identity
// fields are written once on insert.
func addToCartQuery(consumerID, produceID string, quantity int, now time.Time) (bson.M, bson.M) {
	filter := bson.M{"consumerid": consumerID, "produceid": produceID}
	update := bson.M{
		"$inc": bson.M{"quantity": quantity},
		"$setOnInsert": bson.M{
			"cartid":     "c" + utils.GenerateID(12),
			"consumerid": consumerID,
			"produceid":  produceID,
			"addedAt":    now,
		},
	}
	return filter, update
}

// AddToCart adds quantity of one listing to the caller's cart. A row already
// holding that listing is incremented in place, keeping one row per listing.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ProduceID string `json:"produceid"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProduceID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	// The listing must still exist before it can be carted.
	count, err := db.ProduceCollection.CountDocuments(ctx, bson.M{"produceid": req.ProduceID})
	if err != nil {
		log.Println("AddToCart produce check error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}
	if count == 0 {
		http.Error(w, "Produce not found", http.StatusNotFound)
		return
	}

	filter, update := addToCartQuery(userID, req.ProduceID, req.Quantity, time.Now())
	if _, err := db.CartCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		log.Println("AddToCart upsert error:", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}

	items, err := fetchCartItems(ctx, userID)
	if err != nil {
		log.Println("AddToCart refetch error:", err)
		http.Error(w, "Failed to fetch cart", http.StatusInternalServerError)
		return
	}
	respondWithCart(w, items)
}

// UpdateQuantity sets the quantity on one row. Anything below one removes
// the row instead of storing a zero or negative quantity.
func UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	cartID := ps.ByName("cartid")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	filter := bson.M{"cartid": cartID, "consumerid": userID}
	if req.Quantity < 1 {
		if _, err := db.CartCollection.DeleteOne(ctx, filter); err != nil {
			log.Println("UpdateQuantity delete error:", err)
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
			return
		}
	} else {
		res, err := db.CartCollection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"quantity": req.Quantity}})
		if err != nil {
			log.Println("UpdateQuantity update error:", err)
			http.Error(w, "Failed to update cart", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Cart item not found", http.StatusNotFound)
			return
		}
	}

	items, err := fetchCartItems(ctx, userID)
	if err != nil {
		log.Println("UpdateQuantity refetch error:", err)
		http.Error(w, "Failed to fetch cart", http.StatusInternalServerError)
		return
	}
	respondWithCart(w, items)
}

// RemoveFromCart deletes one row from the caller's cart.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	cartID := ps.ByName("cartid")

	res, err := db.CartCollection.DeleteOne(ctx, bson.M{"cartid": cartID, "consumerid": userID})
	if err != nil {
		log.Println("RemoveFromCart error:", err)
		http.Error(w, "Failed to remove from cart", http.StatusInternalServerError)
		return
	}
	if res.DeletedCount == 0 {
		http.Error(w, "Cart item not found", http.StatusNotFound)
		return
	}

	items, err := fetchCartItems(ctx, userID)
	if err != nil {
		log.Println("RemoveFromCart refetch error:", err)
		http.Error(w, "Failed to fetch cart", http.StatusInternalServerError)
		return
	}
	respondWithCart(w, items)
}

// ClearCart drops every row the consumer holds. Shared with checkout, which
// clears only after all order inserts succeed.
func ClearCart(ctx context.Context, consumerID string) error {
	_, err := db.CartCollection.DeleteMany(ctx, bson.M{"consumerid": consumerID})
	return err
}

// ClearCartHandler empties the caller's cart over HTTP.
func ClearCartHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := ClearCart(ctx, userID); err != nil {
		log.Println("ClearCart error:", err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}
	respondWithCart(w, []models.CartItem{})
}
