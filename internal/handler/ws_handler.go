package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/internal/domain"
	"github.com/watchalong/server/internal/hub"
	"github.com/watchalong/server/internal/service"
	"github.com/watchalong/server/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub     *hub.Hub
	service service.RoomService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.RoomService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger := log.L()
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)
	h.hub.Register(client)

	go client.WritePump()
	go func() {
		client.ReadPump(h.dispatch)
		h.service.HandleDisconnect(context.Background(), client)
		h.hub.Unregister(client)
	}()
}

// dispatch decodes the event envelope and routes it. Malformed or
// unknown events are dropped; this protocol carries no error frames, a
// broken event just does nothing.
func (h *WSHandler) dispatch(c *hub.Client, raw []byte) {
	var env domain.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger := log.L()
		logger.Debug().Err(err).Str(log.FieldClientID, c.ID).Msg("unparsable event dropped")
		return
	}

	ctx := context.Background()

	switch env.Type {
	case domain.EvtJoinRoom:
		var ev domain.JoinRoomEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.logBadEvent(c, env.Type, err)
			return
		}
		h.service.HandleJoinRoom(ctx, c, ev.ID, ev.Name)

	case domain.EvtSendMessage:
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			h.logBadEvent(c, env.Type, err)
			return
		}
		delete(fields, "type")
		h.service.HandleSendMessage(ctx, c, domain.Message(fields))

	case domain.EvtAddVideo:
		var ev domain.AddVideoEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.logBadEvent(c, env.Type, err)
			return
		}
		h.service.HandleAddVideo(ctx, c, ev.URL)

	case domain.EvtRemoveVideo:
		var ev domain.RemoveVideoEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.logBadEvent(c, env.Type, err)
			return
		}
		h.service.HandleRemoveVideo(ctx, c, ev.Index)

	case domain.EvtNextVideo:
		var ev domain.NextVideoEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.logBadEvent(c, env.Type, err)
			return
		}
		h.service.HandleNextVideo(ctx, c, ev.Index)

	case domain.EvtSeekVideo:
		var ev domain.SeekVideoEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.logBadEvent(c, env.Type, err)
			return
		}
		h.service.HandleSeekVideo(ctx, c, ev.Time)

	case domain.EvtPauseVideo:
		h.service.HandlePauseVideo(ctx, c)

	default:
		logger := log.L()
		logger.Debug().Str(log.FieldClientID, c.ID).Str(log.FieldEvent, env.Type).Msg("unknown event dropped")
	}
}

func (h *WSHandler) logBadEvent(c *hub.Client, eventType string, err error) {
	logger := log.L()
	logger.Debug().Err(err).
		Str(log.FieldClientID, c.ID).
		Str(log.FieldEvent, eventType).
		Msg("malformed event dropped")
}

func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}
