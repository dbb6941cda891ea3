package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/oguzkagan/asista/backend/internal/alarm"
	"github.com/oguzkagan/asista/backend/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The core only serves the local UI shell
		return true
	},
}

// Event types pushed to connected UI clients.
const (
	EventAlarmFired = "alarm.fired"
)

// Envelope wraps all WebSocket messages.
type Envelope struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// wsClient represents one connected UI shell.
type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of connected clients and broadcasts events to
// them. It implements alarm.Notifier, so alarm fire events reach every
// connected UI shell as they happen.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*wsClient

	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *wsClient
	done       chan struct{} // closed when Run exits
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		done:       make(chan struct{}),
	}
}

// Run dispatches registrations and broadcasts until the context ends.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, c := range h.clients {
				close(c.send)
				c.conn.Close()
			}
			h.clients = make(map[string]*wsClient)
			h.mu.Unlock()
			close(h.done)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			h.mu.Unlock()
			logging.Debug().Str("client_id", c.id).Msg("ws client connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
				c.conn.Close()
			}
			h.mu.Unlock()
			logging.Debug().Str("client_id", c.id).Msg("ws client disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client; drop the event rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Notify implements alarm.Notifier by broadcasting a fire event envelope.
func (h *Hub) Notify(event alarm.FireEvent) {
	h.Broadcast(EventAlarmFired, event)
}

// Broadcast sends an enveloped event to every connected client.
func (h *Hub) Broadcast(eventType string, data interface{}) {
	msg, err := json.Marshal(Envelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		logging.Error().Err(err).Str("type", eventType).Msg("failed to encode event")
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// handleWebSocket upgrades the connection and serves it until it closes.
func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn().Err(err).Msg("ws upgrade failed")
		return
	}

	client := &wsClient{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 64),
	}
	select {
	case h.register <- client:
	case <-h.done:
		// Hub already shut down; refuse the connection
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

// writePump forwards broadcast messages to the connection.
func (c *wsClient) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump drains the connection to detect closure.
func (c *wsClient) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
