package handler

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"real-time-messenger/dto"
	"real-time-messenger/realtime"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 90 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
)

// wsClient is one websocket connection. Pushes go through a bounded queue drained by
// writePump, so a slow peer never blocks the sender.
type wsClient struct {
	id     string
	userID string
	conn   *websocket.Conn
	send   chan dto.Event
	done   chan struct{}
	once   sync.Once
}

func newWSClient(id, userID string, conn *websocket.Conn, buffer int) *wsClient {
	if buffer <= 0 {
		buffer = 256
	}
	return &wsClient{
		id:     id,
		userID: userID,
		conn:   conn,
		send:   make(chan dto.Event, buffer),
		done:   make(chan struct{}),
	}
}

func (c *wsClient) ID() string     { return c.id }
func (c *wsClient) UserID() string { return c.userID }

func (c *wsClient) Send(event dto.Event) error {
	select {
	case <-c.done:
		return realtime.ErrConnClosed
	default:
	}
	select {
	case c.send <- event:
		return nil
	default:
		return realtime.ErrSendBufferFull
	}
}

// Close stops the write pump and closes the socket, which ends the read loop.
func (c *wsClient) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				_ = c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *wsClient) prepareRead() {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
}
