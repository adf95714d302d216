package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/watchalong/server/internal/audit"
	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/internal/domain"
	"github.com/watchalong/server/internal/hub"
	"github.com/watchalong/server/internal/resolver"
	"github.com/watchalong/server/internal/room"
	"github.com/watchalong/server/pkg/log"
)

type roomService struct {
	store    *room.Store
	hub      *hub.Hub
	resolver resolver.Resolver
	cfg      config.RoomConfig

	resolveTimeout time.Duration
}

func NewRoomService(store *room.Store, h *hub.Hub, res resolver.Resolver, cfg config.RoomConfig, resolveTimeout time.Duration) RoomService {
	if resolveTimeout <= 0 {
		resolveTimeout = 10 * time.Second
	}
	return &roomService{
		store:          store,
		hub:            h,
		resolver:       res,
		cfg:            cfg,
		resolveTimeout: resolveTimeout,
	}
}

// HandleJoinRoom binds the connection to a room and replays the room's
// state to it: every user, every buffered message, every queued video and
// the current video (present or not), in that order, before any newer
// broadcast can reach it. The others get a new-user notice and a single
// request to report their playback position.
func (s *roomService) HandleJoinRoom(ctx context.Context, c *hub.Client, roomID any, name string) {
	roomKey := domain.RoomKey(roomID)
	user := domain.User{ID: c.ID, Name: name}

	r := s.store.GetOrCreate(roomKey)
	r.Lock()

	r.AddUser(user)
	r.Retain()
	c.Session.Bind(roomKey, name)
	s.hub.JoinRoom(c, roomKey)

	for _, u := range r.Users() {
		c.SendJSON(domain.NewUserEvent{Type: domain.EvtNewUser, ID: u.ID, Name: u.Name})
	}
	s.hub.BroadcastToRoom(roomKey, domain.GetCurrentDurationEvent{Type: domain.EvtGetCurrentDuration}, c.ID)
	for _, m := range r.Messages() {
		c.SendJSON(m.WithType(domain.EvtNewMessage))
	}
	for _, v := range r.Queue() {
		c.SendJSON(domain.NewVideoEvent{Type: domain.EvtNewVideo, VideoItem: v})
	}
	c.SendJSON(domain.CurrentVideoEvent{Type: domain.EvtCurrentVideo, Video: r.Current(), Index: nil})
	s.hub.BroadcastToRoom(roomKey, domain.NewUserEvent{Type: domain.EvtNewUser, ID: user.ID, Name: user.Name}, c.ID)

	r.Unlock()

	// A joiner mid-playback gets the position once the page's player is
	// up; the extra second covers the delay itself.
	time.AfterFunc(s.cfg.CatchupDelay, func() {
		r, ok := s.store.Get(roomKey)
		if !ok {
			return
		}
		r.Lock()
		d := r.Duration()
		r.Unlock()
		if d != 0 {
			c.SendJSON(domain.SeekedVideoEvent{Type: domain.EvtSeekedVideo, Time: d + 1})
		}
	})

	audit.Log(ctx, audit.ActionJoinRoom, c.ID, roomKey, "user joined room")
}

// HandleSendMessage buffers a chat message and forwards it, sender fields
// intact, to everyone else. Messages over the length cap are dropped
// whole, never truncated.
func (s *roomService) HandleSendMessage(ctx context.Context, c *hub.Client, msg domain.Message) {
	r, roomKey, ok := s.boundRoom(c)
	if !ok {
		return
	}

	if utf8.RuneCountInString(msg.Text()) > s.cfg.MaxMessageLen {
		logger := log.Ctx(ctx)
		logger.Debug().
			Str(log.FieldClientID, c.ID).
			Str(log.FieldRoomID, roomKey).
			Msg("oversized message dropped")
		return
	}

	r.Lock()
	r.AppendMessage(msg)
	s.hub.BroadcastToRoom(roomKey, msg.WithType(domain.EvtNewMessage), c.ID)
	r.Unlock()

	audit.Log(ctx, audit.ActionSendMessage, c.ID, roomKey, "message sent")
}

// HandleAddVideo parses the URL and resolves its metadata off the room
// lock; only a successful resolution enqueues and announces the video. A
// failed lookup is logged and the request dropped, with nothing visible
// to the clients.
func (s *roomService) HandleAddVideo(ctx context.Context, c *hub.Client, url string) {
	_, roomKey, ok := s.boundRoom(c)
	if !ok {
		return
	}

	ref := resolver.Parse(url)
	audit.Log(ctx, audit.ActionAddVideo, c.ID, roomKey, "video submitted")

	go s.resolveAndEnqueue(roomKey, url, ref)
}

func (s *roomService) resolveAndEnqueue(roomKey, url string, ref domain.VideoReference) {
	ctx, cancel := context.WithTimeout(context.Background(), s.resolveTimeout)
	defer cancel()

	meta, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		logger := log.L()
		logger.Warn().Err(err).
			Str(log.FieldProvider, ref.Provider).
			Str(log.FieldVideoID, ref.ID).
			Str(log.FieldRoomID, roomKey).
			Msg("video resolution failed, dropping add-video")
		return
	}

	item := domain.VideoItem{
		URL:      url,
		Title:    meta.Title,
		Duration: meta.Duration,
		Icon:     meta.Icon,
		Color:    meta.Color,
		VideoID:  ref.ID,
		Provider: ref.Provider,
		Kind:     ref.Kind,
	}

	// The queue is room-scoped, not connection-scoped: the video lands
	// even if the submitter disconnected while we were resolving.
	r, ok := s.store.Get(roomKey)
	if !ok {
		return
	}
	r.Lock()
	r.Enqueue(item)
	s.hub.BroadcastToRoom(roomKey, domain.NewVideoEvent{Type: domain.EvtNewVideo, VideoItem: item}, "")
	r.Unlock()
}

// HandleRemoveVideo drops the queue entry at index. An out-of-range
// index is a warned no-op with no broadcast.
func (s *roomService) HandleRemoveVideo(ctx context.Context, c *hub.Client, index int) {
	r, roomKey, ok := s.boundRoom(c)
	if !ok {
		return
	}

	r.Lock()
	removed := r.RemoveAt(index)
	if removed {
		s.hub.BroadcastToRoom(roomKey, domain.RemovedVideoEvent{Type: domain.EvtRemovedVideo, Index: index}, "")
	}
	r.Unlock()

	if !removed {
		logger := log.Ctx(ctx)
		logger.Warn().
			Int("index", index).
			Str(log.FieldRoomID, roomKey).
			Msg("remove-video index out of range")
		return
	}
	audit.Log(ctx, audit.ActionRemoveVideo, c.ID, roomKey, "video removed")
}

// HandleNextVideo promotes the queue entry at index to now playing and
// resets the position. An absent index still selects (the empty item) and
// still broadcasts.
func (s *roomService) HandleNextVideo(ctx context.Context, c *hub.Client, index int) {
	r, roomKey, ok := s.boundRoom(c)
	if !ok {
		return
	}

	r.Lock()
	video := r.SelectCurrent(index)
	idx := index
	s.hub.BroadcastToRoom(roomKey, domain.CurrentVideoEvent{Type: domain.EvtCurrentVideo, Video: video, Index: &idx}, "")
	r.Unlock()

	audit.Log(ctx, audit.ActionNextVideo, c.ID, roomKey, "current video selected")
}

// HandleSeekVideo moves the shared playback position. Seeks inside the
// throttle window — scrubbing storms — are dropped entirely.
func (s *roomService) HandleSeekVideo(ctx context.Context, c *hub.Client, seconds float64) {
	r, roomKey, ok := s.boundRoom(c)
	if !ok {
		return
	}

	r.Lock()
	accepted := r.Seek(seconds)
	if accepted {
		s.hub.BroadcastToRoom(roomKey, domain.SeekedVideoEvent{Type: domain.EvtSeekedVideo, Time: seconds}, c.ID)
	}
	r.Unlock()
}

// HandlePauseVideo relays a pause to the rest of the room. No state
// changes; the position keeps whatever the last accepted seek set.
func (s *roomService) HandlePauseVideo(ctx context.Context, c *hub.Client) {
	_, roomKey, ok := s.boundRoom(c)
	if !ok {
		return
	}
	s.hub.BroadcastToRoom(roomKey, domain.PausedVideoEvent{Type: domain.EvtPausedVideo}, c.ID)
}

// HandleDisconnect removes the connection's user from its bound room and
// tells the remaining members. Never having joined makes this a no-op.
// Safe to run while resolutions this connection triggered are still in
// flight.
func (s *roomService) HandleDisconnect(ctx context.Context, c *hub.Client) {
	r, roomKey, ok := s.boundRoom(c)
	if !ok {
		return
	}

	r.Lock()
	removed, found := r.RemoveUser(c.ID)
	r.Release()
	if found {
		s.hub.BroadcastToRoom(roomKey, domain.UserLeftEvent{Type: domain.EvtUserLeft, ID: removed.ID, Name: removed.Name}, c.ID)
	}
	r.Unlock()

	audit.Log(ctx, audit.ActionDisconnect, c.ID, roomKey, "user disconnected")
}

// boundRoom resolves the connection's bound room. Operations before a
// join, or against an evicted room, silently do nothing.
func (s *roomService) boundRoom(c *hub.Client) (*room.Room, string, bool) {
	roomKey := c.Session.RoomKey()
	if roomKey == "" {
		return nil, "", false
	}
	r, ok := s.store.Get(roomKey)
	if !ok {
		return nil, "", false
	}
	return r, roomKey, true
}
