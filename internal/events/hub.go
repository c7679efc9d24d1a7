// Package events provides best-effort delivery of application events to
// connected websocket clients. Publishing never blocks request handling:
// slow or dead connections are dropped, not waited on.
package events

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Publisher is the outbound event channel consumed by services. Failures
// are reported but callers treat publishing as fire-and-forget.
type Publisher interface {
	Publish(channel, event string, payload interface{}) error
}

// UserChannel returns the per-user notification channel name.
func UserChannel(userID uint) string {
	return fmt.Sprintf("notifications:%d", userID)
}

// Envelope is the wire format sent to websocket clients.
type Envelope struct {
	Channel string      `json:"channel"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Connection wraps a websocket connection subscribed to one channel.
type Connection struct {
	channel string
	conn    *websocket.Conn

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

// trySend queues a message without blocking. It reports false when the
// buffer is full or the connection is already closed.
func (c *Connection) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close shuts the send channel exactly once. Guarded by the same mutex as
// trySend so a concurrent Publish can never hit a closed channel.
func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.conn.Close()
}

// Hub tracks websocket subscribers per channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string][]*Connection

	register   chan *Connection
	unregister chan *Connection
}

// NewHub creates a hub and starts its bookkeeping loop.
func NewHub() *Hub {
	h := &Hub{
		subscribers: make(map[string][]*Connection),
		register:    make(chan *Connection, 16),
		unregister:  make(chan *Connection, 16),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c)
		}
	}
}

// Register subscribes a websocket connection to a channel and starts its
// read/write pumps. The connection is owned by the hub from this point on.
func (h *Hub) Register(channel string, ws *websocket.Conn) {
	c := &Connection{
		channel: channel,
		conn:    ws,
		send:    make(chan []byte, 32),
	}

	go c.readPump(h)
	go c.writePump()

	h.register <- c
}

func (h *Hub) add(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[c.channel] = append(h.subscribers[c.channel], c)
}

func (h *Hub) remove(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subscribers[c.channel]
	for i, cc := range conns {
		if cc == c {
			h.subscribers[c.channel] = append(conns[:i], conns[i+1:]...)
			c.close()
			break
		}
	}
	if len(h.subscribers[c.channel]) == 0 {
		delete(h.subscribers, c.channel)
	}
}

// Publish sends an event to every subscriber of the channel. Subscribers
// with a full send buffer are dropped.
func (h *Hub) Publish(channel, event string, payload interface{}) error {
	data, err := json.Marshal(Envelope{Channel: channel, Event: event, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	conns := append([]*Connection(nil), h.subscribers[channel]...)
	h.mu.RUnlock()

	for _, c := range conns {
		if !c.trySend(data) {
			h.unregister <- c
		}
	}
	return nil
}

// ConnectionCount reports the number of live subscriptions.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, conns := range h.subscribers {
		count += len(conns)
	}
	return count
}

// readPump drains client frames until the connection closes. Inbound
// payloads are ignored; the socket is push-only.
func (c *Connection) readPump(h *Hub) {
	defer func() {
		h.unregister <- c
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Connection) writePump() {
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
