package hub

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/watchalong/server/internal/config"
	"github.com/watchalong/server/internal/domain"
	"github.com/watchalong/server/pkg/log"
)

// Client is one WebSocket connection. Outbound traffic goes through the
// buffered send channel drained by WritePump; a client whose buffer stays
// full is dropped rather than allowed to stall the room.
type Client struct {
	ID      string
	Hub     *Hub
	Conn    *websocket.Conn
	Session *domain.Session

	send   chan []byte
	closed bool // guarded by Hub.mu via closeSend/enqueue
	cfg    config.WebSocketConfig
}

func NewClient(id string, h *Hub, conn *websocket.Conn, cfg config.WebSocketConfig) *Client {
	buffer := cfg.SendBuffer
	if buffer <= 0 {
		buffer = 256
	}
	return &Client{
		ID:      id,
		Hub:     h,
		Conn:    conn,
		Session: domain.NewSession(id),
		send:    make(chan []byte, buffer),
		cfg:     cfg,
	}
}

// ReadPump pulls inbound frames and hands them to handler. It returns
// once the connection is gone; the caller runs teardown after that.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer c.Conn.Close()

	c.Conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger := log.L()
				logger.Warn().Err(err).Str(log.FieldClientID, c.ID).Msg("websocket read error")
			}
			return
		}

		c.Session.UpdateActivity()
		handler(c, message)
	}
}

// WritePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON queues one event for this connection.
func (c *Client) SendJSON(event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	c.Hub.send(c, data)
	return nil
}

// Receive exposes the outbound queue; WritePump and tests consume it.
func (c *Client) Receive() <-chan []byte {
	return c.send
}
