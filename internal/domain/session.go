package domain

import (
	"sync"
	"time"
)

// Session binds one live connection to a room. A connection that joins a
// second room without disconnecting keeps receiving the first room's
// broadcasts, but the session only remembers the most recent binding;
// teardown removes the user from that room alone. This mirrors how the
// clients have always used the protocol.
type Session struct {
	ID           string
	mu           sync.RWMutex
	name         string
	roomKey      string
	CreatedAt    time.Time
	lastActiveAt time.Time
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		CreatedAt:    now,
		lastActiveAt: now,
	}
}

// Bind records the room this connection most recently joined.
func (s *Session) Bind(roomKey, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomKey = roomKey
	s.name = name
	s.lastActiveAt = time.Now()
}

// RoomKey returns the most recently joined room, or "" when unbound.
func (s *Session) RoomKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomKey
}

func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *Session) InRoom() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomKey != ""
}

func (s *Session) UpdateActivity() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActiveAt = time.Now()
}
