// Package hub tracks live WebSocket connections and fans events out to
// the connections bound to a room.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/pkg/log"
)

// Hub is the broadcast fan-out. Delivery is synchronous under the hub
// lock: events pushed for one room while that room's dispatch lock is
// held land in every member's send buffer in dispatch order, which is
// what lets a late joiner see the full catch-up replay before anything
// newer.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client            // clientID -> client
	rooms   map[string]map[string]*Client // roomKey -> clientID -> client
	cfg     config.WebSocketConfig
}

func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
		cfg:     cfg,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()
	logger := log.L()
	logger.Debug().Str(log.FieldClientID, c.ID).Msg("client registered")
}

// Unregister removes the client from every room and closes its send
// queue. A client removed here never receives another room broadcast.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; ok {
		for key, members := range h.rooms {
			delete(members, c.ID)
			if len(members) == 0 {
				delete(h.rooms, key)
			}
		}
		delete(h.clients, c.ID)
		if !c.closed {
			c.closed = true
			close(c.send)
		}
	}
	h.mu.Unlock()
	logger := log.L()
	logger.Debug().Str(log.FieldClientID, c.ID).Msg("client unregistered")
}

// JoinRoom adds the client to a room's delivery set. Joining a second
// room does not remove the first; that matches how sessions bind.
func (h *Hub) JoinRoom(c *Client, roomKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomKey]; !ok {
		h.rooms[roomKey] = make(map[string]*Client)
	}
	h.rooms[roomKey][c.ID] = c
	logger := log.L()
	logger.Info().Str(log.FieldClientID, c.ID).Str(log.FieldRoomID, roomKey).Msg("client joined room")
}

// BroadcastToRoom delivers one event to every connection in the room,
// skipping excludeID when non-empty.
func (h *Hub) BroadcastToRoom(roomKey string, event any, excludeID string) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, member := range h.rooms[roomKey] {
		if id == excludeID {
			continue
		}
		h.trySend(member, data)
	}
	return nil
}

// RoomClientCount reports how many connections are bound to a room.
func (h *Hub) RoomClientCount(roomKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomKey])
}

func (h *Hub) send(c *Client, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.trySend(c, data)
}

// trySend assumes h.mu is held (read or write). A full buffer means the
// client stopped draining; drop it instead of blocking the room.
func (h *Hub) trySend(c *Client, data []byte) {
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		logger := log.L()
		logger.Warn().Str(log.FieldClientID, c.ID).Msg("send buffer full, dropping client")
		go h.Unregister(c)
	}
}
