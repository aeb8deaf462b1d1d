// internal/websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is pushed to connected carts when an operator edits a catalog. The
// client reacts by re-quoting; the pricing engine itself has no subscription
// model and is simply called again.
type Event struct {
	Type    string    `json:"type"`
	Catalog string    `json:"catalog,omitempty"`
	At      time.Time `json:"at"`
}

const EventCatalogChanged = "catalog_changed"

type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		logger:     logger,
	}
}

// CatalogChanged broadcasts a catalog-changed event to every connected
// client. Safe to call from any goroutine; drops the event when the
// broadcast buffer is full rather than blocking a catalog write.
func (h *Hub) CatalogChanged(kind string) {
	payload, err := json.Marshal(Event{
		Type:    EventCatalogChanged,
		Catalog: kind,
		At:      time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("failed to marshal catalog event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("catalog event dropped, broadcast buffer full",
			zap.String("catalog", kind))
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case payload := <-h.broadcast:
			h.broadcastPayload(payload)
		}
	}
}

// TotalClients reports the number of connected clients.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info("websocket client connected", zap.Int("total", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.Close()
		h.logger.Info("websocket client disconnected", zap.Int("total", len(h.clients)))
	}
}

func (h *Hub) broadcastPayload(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.Send(payload)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
