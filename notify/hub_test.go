package notify

import (
	"encoding/json"
	"testing"
	"time"

	"farm2home/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		Room:   "f1",
		UserID: "f1",
	}

	hub.register <- client

	data, _ := json.Marshal(orderEvent{Action: "order-placed", OrderID: "ORD1"})
	hub.broadcast <- broadcastMsg{Room: "f1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestUnregisterAfterBroadcastDrop(t *testing.T) {
	hub := NewHub()
	panicked := make(chan interface{}, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked <- r
			}
		}()
		hub.Run()
	}()
	defer hub.Stop()

	// unbuffered Send with no reader: the broadcast drop path closes the
	// channel and evicts the client from the room
	slow := &Client{Send: make(chan []byte), Room: "f1", UserID: "f1"}
	hub.register <- slow
	hub.broadcast <- broadcastMsg{Room: "f1", Data: []byte("x")}

	// the client's read pump still unregisters it afterwards; this must
	// not close the channel a second time
	hub.unregister <- slow

	fresh := &Client{Send: make(chan []byte, 1), Room: "f1", UserID: "f1"}
	hub.register <- fresh
	hub.broadcast <- broadcastMsg{Room: "f1", Data: []byte("y")}

	select {
	case <-fresh.Send:
	case r := <-panicked:
		t.Fatalf("hub loop panicked: %v", r)
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}
}

func TestBroadcastOnlyReachesOwnRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	farmer := &Client{Send: make(chan []byte, 10), Room: "f1", UserID: "f1"}
	other := &Client{Send: make(chan []byte, 10), Room: "f2", UserID: "f2"}
	hub.register <- farmer
	hub.register <- other

	hub.broadcast <- broadcastMsg{Room: "f1", Data: []byte("hello")}

	select {
	case <-farmer.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message in other room: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestOrderPlacedBroadcastsToFarmer(t *testing.T) {
	go DefaultHub.Run()

	farmer := &Client{Send: make(chan []byte, 10), Room: "f1", UserID: "f1"}
	DefaultHub.register <- farmer
	defer func() { DefaultHub.unregister <- farmer }()

	OrderPlaced(models.Order{
		OrderID:     "ORD1",
		FarmerID:    "f1",
		ProduceID:   "p1",
		ProduceName: "Carrots",
		Quantity:    2,
		TotalPrice:  5.0,
	})

	select {
	case raw := <-farmer.Send:
		var evt orderEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			t.Fatalf("bad event json: %v", err)
		}
		if evt.Action != "order-placed" || evt.OrderID != "ORD1" {
			t.Fatalf("unexpected event: %+v", evt)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for order event")
	}
}
