package audit

import (
	"context"

	"github.com/watchalong/server/pkg/log"
)

// Audit actions for room operations.
const (
	ActionJoinRoom    = "room.join"
	ActionSendMessage = "room.send_message"
	ActionAddVideo    = "room.add_video"
	ActionRemoveVideo = "room.remove_video"
	ActionNextVideo   = "room.next_video"
	ActionDisconnect  = "room.disconnect"
)

const fieldAction = "action"

// Log emits a structured audit entry via the context logger.
func Log(ctx context.Context, action, clientID, roomKey, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(fieldAction, action).
		Str(log.FieldClientID, clientID).
		Str(log.FieldRoomID, roomKey).
		Msg(msg)
}
