package hub

import (
	"context"
	"sync"
	"time"

	"foodhub/internal/event"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	// tuning parameters
	writeWait         = 10 * time.Second    // time allowed to write a message to the peer
	pongWait          = 20 * time.Second    // time allowed to read the next pong message from the peer
	pingInterval      = (pongWait * 9) / 10 // send pings to peer with this period
	maxMessageSize    = 4 * 1024            // subscribers only send control frames
	sendBufSize       = 256                 // per-connection outbound buffer size
	registerTimeout   = 5 * time.Second     // timeout for client registration
	unregisterTimeout = 5 * time.Second     // timeout for client unregistration
)

type Client struct {
	ID          string
	resource    string
	connectedAt time.Time
	conn        *websocket.Conn
	manager     *Hub
	egress      chan event.ResourceEvent

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// RegisterClient wraps conn, registers it with the hub and starts its pumps.
func RegisterClient(resource string, conn *websocket.Conn, h *Hub) *Client {
	ctx, cancel := context.WithCancel(h.ctx)

	client := &Client{
		ID:          uuid.New().String(),
		resource:    resource,
		connectedAt: time.Now().UTC(),
		conn:        conn,
		manager:     h,
		egress:      make(chan event.ResourceEvent, sendBufSize),
		ctx:         ctx,
		cancel:      cancel,
	}

	if !h.enqueue(h.register, client, registerTimeout) {
		h.logger.Warn("failed to register client: timeout", zap.String("client_id", client.ID))
		client.Close()
		return nil
	}

	go client.ReadMessages()
	go client.WriteMessages()
	return client
}

// ReadMessages only services control frames; inbound payloads are ignored.
func (c *Client) ReadMessages() {
	defer func() {
		c.Close()
		if !c.manager.enqueue(c.manager.unregister, c, unregisterTimeout) {
			c.manager.logger.Warn("failed to unregister client: timeout", zap.String("client_id", c.ID))
		}
	}()

	c.conn.SetReadLimit(int64(maxMessageSize))
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.manager.logger.Info("unexpected close", zap.String("client_id", c.ID), zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) WriteMessages() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.egress:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				c.manager.logger.Debug("write failed", zap.String("client_id", c.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close is idempotent.
func (c *Client) Close() {
	c.once.Do(func() {
		c.cancel()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(writeWait))
		_ = c.conn.Close()
	})
}
