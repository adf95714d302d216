package domain

import "fmt"

// WebSocket event types from client.
const (
	EvtJoinRoom    = "join-room"
	EvtSendMessage = "send-message"
	EvtAddVideo    = "add-video"
	EvtRemoveVideo = "remove-video"
	EvtNextVideo   = "next-video"
	EvtSeekVideo   = "seek-video"
	EvtPauseVideo  = "pause-video"
)

// WebSocket event types to client.
const (
	EvtNewUser            = "new-user"
	EvtGetCurrentDuration = "get-current-duration"
	EvtNewMessage         = "new-message"
	EvtNewVideo           = "new-video"
	EvtRemovedVideo       = "removed-video"
	EvtCurrentVideo       = "current-video"
	EvtSeekedVideo        = "seeked-video"
	EvtPausedVideo        = "paused-video"
	EvtUserLeft           = "user-left"
)

// Envelope is the base structure shared by all events.
type Envelope struct {
	Type string `json:"type"`
}

// Client -> Server events

type JoinRoomEvent struct {
	Type string `json:"type"`
	ID   any    `json:"id"` // string or number, client's choice
	Name string `json:"name"`
}

type AddVideoEvent struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type RemoveVideoEvent struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

type NextVideoEvent struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

type SeekVideoEvent struct {
	Type string  `json:"type"`
	Time float64 `json:"time"`
}

// Server -> Client events

type NewUserEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GetCurrentDurationEvent struct {
	Type string `json:"type"`
}

type NewVideoEvent struct {
	Type string `json:"type"`
	VideoItem
}

type RemovedVideoEvent struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// CurrentVideoEvent announces the now-playing item. Index is nil on the
// late-join replay and set for next-video selections.
type CurrentVideoEvent struct {
	Type  string    `json:"type"`
	Video VideoItem `json:"video"`
	Index *int      `json:"index"`
}

type SeekedVideoEvent struct {
	Type string  `json:"type"`
	Time float64 `json:"time"`
}

type PausedVideoEvent struct {
	Type string `json:"type"`
}

type UserLeftEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomKey derives the registry key for a client-supplied room id. The id
// may arrive as a JSON string or number.
func RoomKey(id any) string {
	if id == nil {
		return "room-"
	}
	if f, ok := id.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("room-%d", int64(f))
	}
	return fmt.Sprintf("room-%v", id)
}
