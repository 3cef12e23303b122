package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	Username string
	Conn     *websocket.Conn
}

// RealtimeHub pushes workflow events (targets computed, plan created) to the
// user's open websocket connections.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.Username] == nil {
		h.clients[c.Username] = make(map[*WSClient]struct{})
	}
	h.clients[c.Username][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.Username]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.Username)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) Broadcast(username string, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[username] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
