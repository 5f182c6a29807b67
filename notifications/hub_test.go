package notifications

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-restaurant-pos/logger"
	"go-restaurant-pos/models"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", hub.HandleWebSocket())
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcastsNewOrder(t *testing.T) {
	hub := NewHub(logger.New("test"))
	conn := dialHub(t, hub)
	waitForClients(t, hub, 1)

	hub.NotifyNewOrder(&models.Order{ID: 42, Status: models.OrderStatusPending})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read broadcast: %v", err)
	}

	var msg struct {
		Event   string `json:"event"`
		Payload struct {
			ID int64 `json:"id"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("failed to decode broadcast: %v", err)
	}
	if msg.Event != "newOrder" {
		t.Errorf("event = %s, want newOrder", msg.Event)
	}
	if msg.Payload.ID != 42 {
		t.Errorf("payload id = %d, want 42", msg.Payload.ID)
	}
}

func TestHubDropsDeadClients(t *testing.T) {
	hub := NewHub(logger.New("test"))
	conn := dialHub(t, hub)
	waitForClients(t, hub, 1)

	conn.Close()

	// The write to a closed connection fails and the client is evicted.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 {
		hub.NotifyNewOrder(&models.Order{ID: 1})
		if time.Now().After(deadline) {
			t.Fatalf("client count = %d, want 0 after close", hub.ClientCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
