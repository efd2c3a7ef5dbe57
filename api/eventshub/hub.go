// Package eventshub broadcasts transfer events to websocket subscribers.
// Events are informational: a slow or absent subscriber never blocks a
// transfer.
package eventshub

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/moyoez/airshare-go/types"
)

// Hub holds WebSocket connections and broadcasts transfer events to all clients.
type Hub struct {
	mu      sync.RWMutex
	conns   map[*websocket.Conn]struct{}
	limiter *rate.Limiter
}

// Default is the process-wide hub the server wires into its routes.
var Default = New()

// New creates a new events hub. Broadcasts are throttled; beyond the limit
// events are dropped rather than queued.
func New() *Hub {
	return &Hub{
		conns:   make(map[*websocket.Conn]struct{}),
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Broadcast sends the event as JSON to all registered connections.
func (h *Hub) Broadcast(event *types.TransferEvent) {
	if event == nil {
		return
	}
	if !h.limiter.Allow() {
		return
	}
	payload, err := sonic.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}

// Publish builds an event and broadcasts it on the default hub.
func Publish(kind, remote, name string, size int64) {
	Default.Broadcast(&types.TransferEvent{
		ID:     uuid.NewString(),
		Kind:   kind,
		Remote: remote,
		Name:   name,
		Size:   size,
		Time:   time.Now(),
	})
}
