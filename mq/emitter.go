package mq

import (
	"context"
	"encoding/json"
	"log"

	"farm2home/models"
	"farm2home/rdx"
)

const eventsChannel = "marketplace-events"

// Emit publishes a marketplace event to Redis for the background worker.
// Callers run it with `go mq.Emit(...)` so event fan-out never blocks a
// request path.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}

// StartMarketplaceWorker consumes marketplace events and keeps the Redis
// per-listing order counters current.
func StartMarketplaceWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[MarketplaceWorker] Listening for marketplace events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[MarketplaceWorker] Failed to parse event: %v", err)
			continue
		}

		switch {
		case event.EntityType == "order" && event.Method == "POST":
			if err := rdx.Conn.Incr(ctx, "orders:count:"+event.ItemId).Err(); err != nil {
				log.Printf("[MarketplaceWorker] Counter update error: %v", err)
			}
		case event.EntityType == "produce" && event.Method == "DELETE":
			if err := rdx.Conn.Del(ctx, "orders:count:"+event.ItemId).Err(); err != nil {
				log.Printf("[MarketplaceWorker] Counter cleanup error: %v", err)
			}
		}
	}
}
