// file: websocket/hub.go
package websocket

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"

	"civil-quest-admin/logger"
)

type outbound struct {
	owner      string
	collection string
	data       []byte
}

// Hub tracks open connections and fans out collection messages.
type Hub struct {
	mu          sync.RWMutex
	connections map[*Connection]bool
	broadcast   chan outbound
	upgrader    websocket.Upgrader
	onCount     func(int)
}

// NewHub creates a hub that accepts upgrades from applicationURL's origin.
func NewHub(applicationURL string) *Hub {
	allowed := originOf(applicationURL)
	return &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan outbound, 256),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowed
			},
		},
	}
}

// OnConnectionCount registers a callback fired with the live count after
// every connect and disconnect.
func (h *Hub) OnConnectionCount(fn func(int)) {
	h.mu.Lock()
	h.onCount = fn
	h.mu.Unlock()
}

// Run distributes queued messages until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg outbound) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if c.owner != msg.owner || c.collection != msg.collection {
			continue
		}
		select {
		case c.send <- msg.data:
		default:
			logger.Warn.Printf("[Hub.deliver] Dropping %s message for connection %v", msg.collection, c.conn.RemoteAddr())
		}
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) register(c *Connection) {
	h.mu.Lock()
	h.connections[c] = true
	n, fn := len(h.connections), h.onCount
	h.mu.Unlock()
	if fn != nil {
		go fn(n)
	}
}

func (h *Hub) unregister(c *Connection) {
	h.mu.Lock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
	n, fn := len(h.connections), h.onCount
	h.mu.Unlock()
	if fn != nil {
		go fn(n)
	}
}

func (h *Hub) resubscribe(c *Connection, collection string) {
	h.mu.Lock()
	c.collection = collection
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
