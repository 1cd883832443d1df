package realtime

import (
	"errors"
	"io"
	"log"
	"mgMessenger/internal/errs"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Conn is a live duplex channel the hub can push text frames to.
type Conn interface {
	ID() string
	Send(msg []byte) error
}

type ClientConfig struct {
	// WriteWait bounds a single frame write.
	WriteWait time.Duration
	// PongWait is how long the peer may stay silent before the connection is
	// treated as dead.
	PongWait time.Duration
	// PingPeriod must be less than PongWait.
	PingPeriod     time.Duration
	MaxMessageSize int64
	SendBufferSize int
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     54 * time.Second,
		MaxMessageSize: 64 * 1024,
		SendBufferSize: 256,
	}
}

// Client is the gorilla websocket implementation of Conn. Frames queued with
// Send are written by a single write pump, in order, each one whole.
type Client struct {
	id   string
	conn *websocket.Conn
	cfg  ClientConfig

	mu     sync.RWMutex
	closed bool
	send   chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

// NewClient takes over an upgraded connection and starts its write pump.
func NewClient(conn *websocket.Conn, cfg ClientConfig) *Client {
	def := DefaultClientConfig()
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = def.WriteWait
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = def.PongWait
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = (cfg.PongWait * 9) / 10
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = def.MaxMessageSize
	}
	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = def.SendBufferSize
	}

	c := &Client{
		id:   uuid.NewString(),
		conn: conn,
		cfg:  cfg,
		send: make(chan []byte, cfg.SendBufferSize),
		done: make(chan struct{}),
	}
	go c.writePump()
	return c
}

func (c *Client) ID() string {
	return c.id
}

// Send queues msg for delivery. A peer that lets its queue fill up is closed.
func (c *Client) Send(msg []byte) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return errs.ErrConnectionClosed
	}
	select {
	case c.send <- msg:
		c.mu.RUnlock()
		return nil
	default:
	}
	c.mu.RUnlock()

	log.Printf("Client %v send buffer full, closing", c.id)
	c.Close()
	return errs.ErrSendBufferFull
}

// Close stops the write pump, which sends a close frame and closes the socket.
// It is safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
	})
}

// Done is closed once the underlying socket is closed.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// ReadLoop reads frames until the peer goes away or stops answering pings.
// Text frames are handed to onText, everything else is dropped. It always
// returns a non-nil error.
func (c *Client) ReadLoop(onText func(msg []byte)) error {
	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait)); err != nil {
		return err
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		messageType, msg, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		if messageType == websocket.TextMessage && onText != nil {
			onText(msg)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("Client %v write failed: %v", c.id, err)
				c.Close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// IsExpectedCloseError reports whether err is an ordinary end of a connection
// rather than something worth logging loudly.
func IsExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, websocket.ErrCloseSent) {
		return true
	}
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	)
}
