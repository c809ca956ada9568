// Package websocket pushes list snapshot changes to the dashboard tabs of the
// session that made them.
// file: websocket/connection.go
package websocket

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"civil-quest-admin/logger"
)

// WSConn is the part of *websocket.Conn the pumps use.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	ReadMessage() (int, []byte, error)
	Close() error
	RemoteAddr() net.Addr
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(string) error)
}

// Connection is one browser tab subscribed to one collection.
type Connection struct {
	hub        *Hub
	conn       WSConn
	send       chan []byte
	owner      string
	collection string
}

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 1024
)

// pingPeriod is a var so tests can shorten it.
var pingPeriod = (pongWait * 9) / 10

// ServeWs upgrades the request and subscribes it to ?collection= for owner.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request, owner string) {
	collection := r.URL.Query().Get("collection")
	if collection == "" {
		logger.Error.Println("[ServeWs] No collection requested; rejecting WebSocket connection")
		http.Error(w, "No collection selected", http.StatusBadRequest)
		return
	}

	logger.Info.Printf("[ServeWs] Upgrading to WS: remoteAddr=%v, owner=%q, collection=%q", r.RemoteAddr, owner, collection)
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{
		hub:        h,
		conn:       wsConn,
		send:       make(chan []byte, 16),
		owner:      owner,
		collection: collection,
	}
	h.register(c)

	go c.readPump()
	go c.writePump()
}

// readPump handles inbound messages from the client.
func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn.Printf("[readPump] Read error from %v: %v", c.conn.RemoteAddr(), err)
			}
			break
		}
		if messageType != websocket.TextMessage {
			logger.Debug.Printf("[readPump] Ignoring non-text messageType=%d", messageType)
			continue
		}

		var in ClientMessage
		if err := json.Unmarshal(message, &in); err != nil {
			logger.Warn.Printf("[readPump] Invalid JSON from %v: %v", c.conn.RemoteAddr(), err)
			continue
		}
		c.handleIncoming(in)
	}
}

// writePump handles outbound messages to the client, including periodic pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				logger.Debug.Printf("[writePump] Send channel closed for %v", c.conn.RemoteAddr())
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn.Printf("[writePump] Error writing to %v: %v", c.conn.RemoteAddr(), err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn.Printf("[writePump] Ping error for %v: %v", c.conn.RemoteAddr(), err)
				return
			}
		}
	}
}

// ClientMessage is what a tab may send: a switch to another collection.
type ClientMessage struct {
	Action     string `json:"action"`
	Collection string `json:"collection"`
}

func (c *Connection) handleIncoming(in ClientMessage) {
	switch in.Action {
	case "subscribe":
		if in.Collection == "" {
			return
		}
		c.hub.resubscribe(c, in.Collection)
		logger.Debug.Printf("[handleIncoming] %v now follows %s", c.conn.RemoteAddr(), in.Collection)
	default:
		logger.Debug.Printf("[handleIncoming] Unhandled action: %s", in.Action)
	}
}
