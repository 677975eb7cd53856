package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"farm2home/middleware"
	"farm2home/models"
	"farm2home/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one open websocket, subscribed to a single room. Rooms are
// keyed by user id: a farmer listens on their own room for order events.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	UserID string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			// The broadcast drop path may have already removed the client
			// and closed its channel; only close for current members.
			if conns := h.rooms[c.Room]; conns != nil {
				if _, ok := conns[c]; ok {
					delete(conns, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
					c.Conn.Close()
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop disconnects every client and terminates the Run loop.
func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast queues an event for every client in the room. Drops the event
// when the hub has already stopped.
func (h *Hub) Broadcast(room string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Room: room, Data: data}:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// DefaultHub is the shared hub main runs; order placement broadcasts here.
var DefaultHub = NewHub()

// orderEvent is the wire shape sent to listening farmers.
type orderEvent struct {
	Action      string  `json:"action"`
	OrderID     string  `json:"orderId"`
	ProduceID   string  `json:"produceid"`
	ProduceName string  `json:"produceName"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
	Timestamp   int64   `json:"timestamp"`
}

// OrderPlaced tells the order's farmer, if connected, about a new order.
func OrderPlaced(order models.Order) {
	if order.FarmerID == "" {
		return
	}
	data, err := json.Marshal(orderEvent{
		Action:      "order-placed",
		OrderID:     order.OrderID,
		ProduceID:   order.ProduceID,
		ProduceName: order.ProduceName,
		Quantity:    order.Quantity,
		TotalPrice:  order.TotalPrice,
		Timestamp:   time.Now().Unix(),
	})
	if err != nil {
		return
	}
	DefaultHub.Broadcast(order.FarmerID, data)
}

// WebSocketHandler subscribes the caller to their own room, so each user
// only hears their events. Upgrade requests carry the access token as a
// query parameter since browsers cannot set headers on websockets.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		if userID == "" {
			if token := r.URL.Query().Get("token"); token != "" {
				if claims, err := middleware.ValidateJWT("Bearer " + token); err == nil {
					userID = claims.UserID
				}
			}
		}
		if userID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   userID,
			UserID: userID,
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only drains the connection so pings and closes are noticed;
// clients never send application data on this socket.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
