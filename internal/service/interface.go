package service

import (
	"context"

	"github.com/watchalong/server/internal/domain"
	"github.com/watchalong/server/internal/hub"
)

// RoomService is the event dispatcher: it interprets inbound events,
// mutates the target room, and decides what reaches which connections.
// Every failure mode is absorbed and logged; a session never dies from a
// bad event, so the handlers return nothing.
type RoomService interface {
	HandleJoinRoom(ctx context.Context, c *hub.Client, roomID any, name string)
	HandleSendMessage(ctx context.Context, c *hub.Client, msg domain.Message)
	HandleAddVideo(ctx context.Context, c *hub.Client, url string)
	HandleRemoveVideo(ctx context.Context, c *hub.Client, index int)
	HandleNextVideo(ctx context.Context, c *hub.Client, index int)
	HandleSeekVideo(ctx context.Context, c *hub.Client, seconds float64)
	HandlePauseVideo(ctx context.Context, c *hub.Client)
	HandleDisconnect(ctx context.Context, c *hub.Client)
}
