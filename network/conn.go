package network

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 25 * time.Second
	sendBuffer   = 64
)

var (
	errConnClosed   = errors.New("connection closed")
	errSlowConsumer = errors.New("send buffer full")
)

// wsConn is the room side of a websocket. Send never blocks: frames queue in
// a small buffer drained by writeLoop, and a client that falls behind is cut
// off instead of stalling the room.
type wsConn struct {
	ws        *websocket.Conn
	msgType   int
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

func newWSConn(ws *websocket.Conn, binary bool, logger *slog.Logger) *wsConn {
	msgType := websocket.TextMessage
	if binary {
		msgType = websocket.BinaryMessage
	}
	return &wsConn{
		ws:      ws,
		msgType: msgType,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		log:     logger,
	}
}

func (c *wsConn) Send(b []byte) error {
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	select {
	case c.send <- b:
		return nil
	default:
		return errSlowConsumer
	}
}

func (c *wsConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *wsConn) writeLoop() {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case b := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(c.msgType, b); err != nil {
				c.log.Debug("write failed", "remote", c.ws.RemoteAddr().String(), "error", err)
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			c.drain()
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return
		}
	}
}

// drain writes whatever was queued before the close.
func (c *wsConn) drain() {
	for {
		select {
		case b := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(c.msgType, b); err != nil {
				return
			}
		default:
			return
		}
	}
}
