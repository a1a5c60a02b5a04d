package stream

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 60 * time.Second
)

// conn wraps one client connection with an outbound message queue.
type conn struct {
	wc   *websocket.Conn
	send chan []byte
}

func newConn(wc *websocket.Conn) *conn {
	return &conn{wc: wc, send: make(chan []byte, 32)}
}

func (c *conn) writeLoop() {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	defer c.wc.Close()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
				c.wc.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.wc.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-t.C:
			c.wc.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.wc.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		}
	}
}

// readLoop drains inbound frames; the client feed is one-way, so reads
// only serve close detection and ping/pong bookkeeping.
func (c *conn) readLoop() {
	for {
		if _, _, err := c.wc.ReadMessage(); err != nil {
			return
		}
	}
}
