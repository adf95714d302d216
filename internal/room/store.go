package room

import (
	"context"
	"sync"
	"time"

	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/pkg/log"
)

// Store is the registry of live rooms. Rooms are created lazily on first
// join and, with the default zero IdleTTL, never removed — the historical
// append-only behavior. Deployments that set room.idle_ttl get a janitor
// that evicts rooms with no connections.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	cfg   config.RoomConfig
}

func NewStore(cfg config.RoomConfig) *Store {
	return &Store{
		rooms: make(map[string]*Room),
		cfg:   cfg,
	}
}

// GetOrCreate returns the room for key, creating it with empty
// collections and zeroed playback state on first access.
func (s *Store) GetOrCreate(key string) *Room {
	s.mu.RLock()
	r, ok := s.rooms[key]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[key]; ok {
		return r
	}
	r = newRoom(key, s.cfg.SeekMinInterval, s.cfg.HistoryLimit)
	s.rooms[key] = r
	logger := log.L()
	logger.Debug().Str(log.FieldRoomID, key).Msg("room created")
	return r
}

func (s *Store) Get(key string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[key]
	return r, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// StartJanitor runs the eviction loop until ctx is done. It is a no-op
// when IdleTTL is zero.
func (s *Store) StartJanitor(ctx context.Context) {
	if s.cfg.IdleTTL <= 0 {
		return
	}
	go s.janitor(ctx)
}

func (s *Store) janitor(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.IdleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle(time.Now())
		}
	}
}

func (s *Store) evictIdle(now time.Time) {
	if s.cfg.IdleTTL <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, r := range s.rooms {
		r.Lock()
		idle := r.refs == 0 && now.Sub(r.idleSince) >= s.cfg.IdleTTL
		r.Unlock()
		if idle {
			delete(s.rooms, key)
			logger := log.L()
			logger.Info().Str(log.FieldRoomID, key).Msg("idle room evicted")
		}
	}
}
