package notifications

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-restaurant-pos/logger"
	"go-restaurant-pos/models"
)

// Message is the frame broadcast to every subscribed client.
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub keeps the set of connected websocket clients and broadcasts order
// events to all of them. Delivery is fire-and-forget: a client that fails a
// write is dropped.
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.Mutex
	clients  map[*websocket.Conn]bool
	log      *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]bool),
		log:     log,
	}
}

// HandleWebSocket upgrades the request and keeps the connection registered
// until the client goes away.
func (h *Hub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Error("ws_upgrade_failed", "", "websocket upgrade failed", err, nil)
			return
		}
		defer conn.Close()

		h.mu.Lock()
		h.clients[conn] = true
		h.mu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				break
			}
		}
	}
}

// NotifyNewOrder announces a freshly created order.
func (h *Hub) NotifyNewOrder(order *models.Order) {
	h.broadcast(Message{Event: "newOrder", Payload: order})
}

// NotifyOrderStatus announces an order status change.
func (h *Hub) NotifyOrderStatus(order *models.Order) {
	h.broadcast(Message{Event: "orderStatus", Payload: order})
}

func (h *Hub) broadcast(message Message) {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.log.Error("ws_marshal_failed", "", "failed to marshal message", err, nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
