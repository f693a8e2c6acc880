package viewer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one connected viewer. readLoop and writeLoop own the socket.
type Client struct {
	ID     string
	conn   *websocket.Conn
	server *Server
	out    chan []byte

	closeCh   chan struct{}
	closeOnce sync.Once

	log *zap.Logger
}

func newClient(s *Server, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:      id,
		conn:    conn,
		server:  s,
		out:     make(chan []byte, s.outSize),
		closeCh: make(chan struct{}),
		log:     s.log.With(zap.String("client", id)),
	}
}

func (c *Client) start() {
	go c.readLoop()
	go c.writeLoop()
}

// enqueue never blocks; it reports false when the queue is full.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.closeCh:
		return true
	default:
	}
	select {
	case c.out <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		c.conn.Close()
		c.server.remove(c.ID)
	})
}

func (c *Client) extendReadDeadline() {
	if c.server.readTimeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.server.readTimeout))
	}
}

func (c *Client) readLoop() {
	defer c.close()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})
	for {
		c.extendReadDeadline()
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debug("viewer read failed", zap.Error(err))
			}
			return
		}
		c.server.dispatch(c, data)
	}
}

// writeLoop also pings an otherwise silent viewer often enough that its pongs
// keep the read deadline alive.
func (c *Client) writeLoop() {
	defer c.close()

	var ping <-chan time.Time
	if c.server.readTimeout > 0 {
		t := time.NewTicker(c.server.readTimeout * 9 / 10)
		defer t.Stop()
		ping = t.C
	}

	for {
		select {
		case data := <-c.out:
			c.setWriteDeadline()
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug("viewer write failed", zap.Error(err))
				return
			}
		case <-ping:
			c.setWriteDeadline()
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closeCh:
			return
		}
	}
}

func (c *Client) setWriteDeadline() {
	if c.server.writeTimeout > 0 {
		c.conn.SetWriteDeadline(time.Now().Add(c.server.writeTimeout))
	}
}
