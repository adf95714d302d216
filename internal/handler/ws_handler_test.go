package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/internal/hub"
	"github.com/watchalong/server/internal/resolver"
	"github.com/watchalong/server/internal/room"
	"github.com/watchalong/server/internal/service"
)

func startTestServer(t *testing.T, youtubeBase string) *httptest.Server {
	t.Helper()

	wsCfg := config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 4096,
		SendBuffer:     64,
	}
	roomCfg := config.RoomConfig{
		SeekMinInterval: 50 * time.Millisecond,
		CatchupDelay:    10 * time.Millisecond,
		MaxMessageLen:   200,
	}

	h := hub.NewHub(wsCfg)
	store := room.NewStore(roomCfg)
	res := resolver.NewHTTPResolver(config.ProvidersConfig{
		YouTube: config.YouTubeConfig{BaseURL: youtubeBase, APIKey: "test-key"},
	})
	svc := service.NewRoomService(store, h, res, roomCfg, 2*time.Second)

	mux := http.NewServeMux()
	NewWSHandler(h, svc, wsCfg).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev map[string]any
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestEndToEndWatchSession(t *testing.T) {
	providers := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[{"snippet":{"title":"Song"},"contentDetails":{"duration":"PT3M30S"}}]}`)
	}))
	defer providers.Close()

	srv := startTestServer(t, providers.URL)

	a := dial(t, srv)
	require.NoError(t, a.WriteJSON(map[string]any{"type": "join-room", "id": 42, "name": "A"}))

	ev := readEvent(t, a)
	assert.Equal(t, "new-user", ev["type"])
	assert.Equal(t, "A", ev["name"])
	ev = readEvent(t, a)
	assert.Equal(t, "current-video", ev["type"])

	b := dial(t, srv)
	require.NoError(t, b.WriteJSON(map[string]any{"type": "join-room", "id": 42, "name": "B"}))

	ev = readEvent(t, b)
	assert.Equal(t, "new-user", ev["type"])
	assert.Equal(t, "A", ev["name"])
	ev = readEvent(t, b)
	assert.Equal(t, "new-user", ev["type"])
	assert.Equal(t, "B", ev["name"])
	ev = readEvent(t, b)
	assert.Equal(t, "current-video", ev["type"])

	ev = readEvent(t, a)
	assert.Equal(t, "get-current-duration", ev["type"])
	ev = readEvent(t, a)
	assert.Equal(t, "new-user", ev["type"])
	assert.Equal(t, "B", ev["name"])

	// A queues a video; everyone, A included, hears about it enriched.
	require.NoError(t, a.WriteJSON(map[string]any{"type": "add-video", "url": "https://youtu.be/abc123"}))

	for _, conn := range []*websocket.Conn{a, b} {
		ev = readEvent(t, conn)
		assert.Equal(t, "new-video", ev["type"])
		assert.Equal(t, "abc123", ev["videoId"])
		assert.Equal(t, "youtu", ev["provider"])
		assert.Equal(t, "Song", ev["title"])
		assert.Equal(t, "00:03:30", ev["duration"])
	}

	// Chat goes to the others only, sender fields intact.
	require.NoError(t, a.WriteJSON(map[string]any{"type": "send-message", "text": "nice one", "name": "A"}))
	ev = readEvent(t, b)
	assert.Equal(t, "new-message", ev["type"])
	assert.Equal(t, "nice one", ev["text"])
	assert.Equal(t, "A", ev["name"])

	// B leaving surfaces as exactly one user-left for A.
	b.Close()
	ev = readEvent(t, a)
	assert.Equal(t, "user-left", ev["type"])
	assert.Equal(t, "B", ev["name"])
}

func TestMalformedEventsAreIgnored(t *testing.T) {
	srv := startTestServer(t, "")

	a := dial(t, srv)
	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, a.WriteJSON(map[string]any{"type": "no-such-event"}))

	// The connection survives and still works.
	require.NoError(t, a.WriteJSON(map[string]any{"type": "join-room", "id": 1, "name": "A"}))
	ev := readEvent(t, a)
	assert.Equal(t, "new-user", ev["type"])
}
