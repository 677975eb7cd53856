package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"farm2home/db"
	"farm2home/models"
	"farm2home/mq"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fetchOrders loads orders matching filter with the produce join applied,
// newest first.
func fetchOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "produce",
			"localField":   "produceid",
			"foreignField": "produceid",
			"as":           "produce",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$produce", "preserveNullAndEmptyArrays": true}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		orders = []models.Order{}
	}
	return orders, nil
}

func fetchOrder(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetMyOrders returns the caller's order history as a consumer.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := fetchOrders(ctx, bson.M{"consumerid": userID})
	if err != nil {
		log.Println("GetMyOrders error:", err)
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// GetIncomingOrders returns orders placed against the caller's listings.
func GetIncomingOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := fetchOrders(ctx, bson.M{"farmerid": userID})
	if err != nil {
		log.Println("GetIncomingOrders error:", err)
		http.Error(w, "Failed to fetch orders", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, orders)
}

// validNextStatus encodes the order lifecycle. Delivered and canceled are
// terminal; status changes never touch quantity or total.
var validNextStatus = map[string][]string{
	models.OrderPending:    {models.OrderProcessing, models.OrderCanceled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCanceled},
	models.OrderShipped:    {models.OrderDelivered, models.OrderCanceled},
}

func isValidTransition(from, to string) bool {
	for _, s := range validNextStatus[from] {
		if s == to {
			return true
		}
	}
	return false
}

// UpdateOrderStatus advances one of the caller's incoming orders along the
// lifecycle.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	orderID := ps.ByName("orderid")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	order, err := fetchOrder(ctx, bson.M{"orderId": orderID, "farmerid": userID})
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if !isValidTransition(order.Status, req.Status) {
		utils.RespondWithError(w, http.StatusBadRequest,
			"Cannot move order from "+order.Status+" to "+req.Status)
		return
	}

	if _, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderId": orderID, "farmerid": userID},
		bson.M{"$set": bson.M{"status": req.Status}},
	); err != nil {
		log.Println("UpdateOrderStatus error:", err)
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	go mq.Emit(ctx, "order-status-changed", models.Index{
		EntityType: "order",
		EntityId:   userID,
		ItemId:     order.ProduceID,
		Method:     "PUT",
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orderId": orderID, "status": req.Status})
}
