package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/UFAZ-L2-CS1/DADLY/logging"
	"github.com/UFAZ-L2-CS1/DADLY/metrics"
)

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// WSClient is one open socket. gorilla allows a single concurrent writer
// per connection, so every write goes through mu.
type WSClient struct {
	UserID uint
	Conn   Conn
	mu     sync.Mutex
}

func NewWSClient(userID uint, conn Conn) *WSClient {
	return &WSClient{UserID: userID, Conn: conn}
}

func (c *WSClient) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Ping sends a websocket ping frame.
func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

// RealtimeHub fans like events out to every socket the same user has open,
// so other devices can refresh their liked collection.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeConnections.Inc()
}

// Unregister drops and closes c. Calling it twice is harmless.
func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	set := h.clients[c.UserID]
	_, ok := set[c]
	if ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	metrics.RealtimeConnections.Dec()
	_ = c.Conn.Close()
}

// Connections reports how many sockets userID has open.
func (h *RealtimeHub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Publish sends payload as JSON to every socket of userID. Write failures
// are logged; the read loop of the failing socket unregisters it.
func (h *RealtimeHub) Publish(userID uint, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("encoding realtime event")
		return
	}
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			logging.Debug().Err(err).Uint("user_id", userID).Msg("realtime write failed")
		}
	}
}
