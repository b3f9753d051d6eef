package ws

import (
	"encoding/json"
	"sync"

	"github.com/MRDEADPOOL12/To-do/internal/logger"

	"github.com/google/uuid"
)

// Hub fans task and group change events out to a user's open sockets.
// Events never cross user boundaries.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[*Client]struct{})}
}

type event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Publish sends an event to every socket the user currently has open.
// Slow clients are skipped, not waited on.
func (h *Hub) Publish(userID uuid.UUID, eventType string, data any) {
	h.mu.RLock()
	clients := h.subs[userID]
	if len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	msg, err := json.Marshal(event{Type: eventType, Data: data})
	if err != nil {
		h.mu.RUnlock()
		logger.Error("marshal ws event failed", "type", eventType, "error", err)
		return
	}

	for c := range clients {
		select {
		case c.send <- msg:
		default:
		}
	}
	h.mu.RUnlock()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	if h.subs[c.userID] == nil {
		h.subs[c.userID] = make(map[*Client]struct{})
	}
	h.subs[c.userID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.subs[c.userID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.subs, c.userID)
		}
	}
	h.mu.Unlock()
}
