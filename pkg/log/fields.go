package log

const (
	// Connection / room
	FieldClientID = "client_id"
	FieldRoomID   = "room_id"
	FieldEvent    = "event"

	// Video resolution
	FieldProvider = "provider"
	FieldVideoID  = "video_id"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
