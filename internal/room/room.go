// Package room owns the live room registry: per-room collections,
// playback state, and the lifecycle janitor.
package room

import (
	"sync"
	"time"

	"github.com/watchalong/server/internal/domain"
)

// Room holds everything a group of connections shares: the participant
// list, buffered chat, the video queue, and playback state.
//
// The embedded mutex is the room's serialization lock: the dispatcher
// holds it for the full handling of one event (mutation plus resulting
// broadcasts), so two events for the same room never interleave. All
// other methods assume the lock is held.
type Room struct {
	sync.Mutex

	Key string

	users    []domain.User
	messages []domain.Message
	queue    []domain.VideoItem
	current  domain.VideoItem
	duration float64
	lastSeek time.Time

	refs      int
	idleSince time.Time

	seekMinInterval time.Duration
	historyLimit    int
}

func newRoom(key string, seekMinInterval time.Duration, historyLimit int) *Room {
	now := time.Now()
	return &Room{
		Key:             key,
		lastSeek:        now,
		idleSince:       now,
		seekMinInterval: seekMinInterval,
		historyLimit:    historyLimit,
	}
}

// Retain marks one more live connection using this room.
func (r *Room) Retain() {
	r.refs++
}

// Release drops one connection reference. The room becomes a candidate
// for eviction once the count reaches zero.
func (r *Room) Release() {
	if r.refs > 0 {
		r.refs--
	}
	if r.refs == 0 {
		r.idleSince = time.Now()
	}
}

func (r *Room) AddUser(u domain.User) {
	r.users = append(r.users, u)
}

// RemoveUser removes the user with the given connection id by linear
// search, reporting the removed record. Users joined through a connection
// that later re-bound elsewhere simply stay; only an explicit teardown for
// this id removes them.
func (r *Room) RemoveUser(connID string) (domain.User, bool) {
	for i, u := range r.users {
		if u.ID == connID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return u, true
		}
	}
	return domain.User{}, false
}

func (r *Room) Users() []domain.User {
	return r.users
}

// AppendMessage stores a chat entry, dropping the oldest when the
// configured history cap is exceeded. Length policy is the caller's job;
// stored messages are immutable.
func (r *Room) AppendMessage(m domain.Message) {
	r.messages = append(r.messages, m)
	if r.historyLimit > 0 && len(r.messages) > r.historyLimit {
		r.messages = r.messages[len(r.messages)-r.historyLimit:]
	}
}

func (r *Room) Messages() []domain.Message {
	return r.messages
}

func (r *Room) Enqueue(v domain.VideoItem) {
	r.queue = append(r.queue, v)
}

// RemoveAt removes the queue entry at index. Out-of-range indices are a
// no-op and report false.
func (r *Room) RemoveAt(index int) bool {
	if index < 0 || index >= len(r.queue) {
		return false
	}
	r.queue = append(r.queue[:index], r.queue[index+1:]...)
	return true
}

// SelectCurrent makes the queue entry at index the now-playing item,
// always resetting the playback position to zero. An out-of-range index
// selects the empty item and leaves the queue untouched.
func (r *Room) SelectCurrent(index int) domain.VideoItem {
	var v domain.VideoItem
	if index >= 0 && index < len(r.queue) {
		v = r.queue[index]
		r.queue = append(r.queue[:index], r.queue[index+1:]...)
	}
	r.current = v
	r.duration = 0
	return v
}

func (r *Room) Queue() []domain.VideoItem {
	return r.queue
}

func (r *Room) Current() domain.VideoItem {
	return r.current
}

func (r *Room) Duration() float64 {
	return r.duration
}

// Seek updates the playback position, rejecting seeks arriving within the
// throttle window of the last accepted one. Rejected seeks are dropped
// outright, not queued.
func (r *Room) Seek(seconds float64) bool {
	now := time.Now()
	if now.Sub(r.lastSeek) < r.seekMinInterval {
		return false
	}
	r.lastSeek = now
	r.duration = seconds
	return true
}
