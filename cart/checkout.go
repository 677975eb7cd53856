package cart

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"farm2home/db"
	"farm2home/models"
	"farm2home/mq"
	"farm2home/notify"
	"farm2home/utils"

	"github.com/julienschmidt/httprouter"
)

// BuildOrders maps cart rows to order lines, one per row. The line total is
// frozen from the current unit price; later price edits never reprice an
// order. Rows missing their produce join price at zero, matching TotalPrice.
func BuildOrders(consumerID string, items []models.CartItem) []models.Order {
	orders := make([]models.Order, 0, len(items))
	now := time.Now()
	for _, it := range items {
		order := models.Order{
			OrderID:    "ORD" + utils.GenerateID(10),
			ConsumerID: consumerID,
			ProduceID:  it.ProduceID,
			Quantity:   it.Quantity,
			Status:     models.OrderPending,
			CreatedAt:  now,
		}
		if it.Produce != nil {
			order.FarmerID = it.Produce.FarmerID
			order.ProduceName = it.Produce.Name
			order.TotalPrice = it.Produce.Price * float64(it.Quantity)
		}
		orders = append(orders, order)
	}
	return orders
}

// PlaceOrder turns the caller's cart into orders, one insert per line, run
// concurrently. Reporting is all-or-nothing: any failed insert fails the
// request, but lines already written are not rolled back. The cart is
// cleared only on full success.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := fetchCartItems(ctx, userID)
	if err != nil {
		log.Println("PlaceOrder fetch cart error:", err)
		http.Error(w, "Failed to fetch cart", http.StatusInternalServerError)
		return
	}
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	orders := BuildOrders(userID, items)

	var wg sync.WaitGroup
	errs := make([]error, len(orders))
	for i := range orders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = db.OrderCollection.InsertOne(ctx, orders[i])
		}(i)
	}
	wg.Wait()

	for i, insertErr := range errs {
		if insertErr != nil {
			log.Printf("PlaceOrder insert %s failed: %v", orders[i].OrderID, insertErr)
			http.Error(w, "Failed to place order", http.StatusInternalServerError)
			return
		}
	}

	if err := ClearCart(ctx, userID); err != nil {
		// Orders are already placed; a stale cart is recoverable by the user.
		log.Println("PlaceOrder clear cart error:", err)
	}

	for _, order := range orders {
		notify.OrderPlaced(order)
		go mq.Emit(ctx, "order-created", models.Index{
			EntityType: "order",
			EntityId:   userID,
			ItemId:     order.ProduceID,
			Method:     "POST",
		})
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"orders": orders,
		"count":  len(orders),
	})
}
