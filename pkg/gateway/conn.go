package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/dmitrymomot/totpgate/pkg/logger"
)

// envelope is the wire form of every event in both directions.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Conn is one client connection. Inbound events are read and dispatched
// sequentially by the server; outbound events are queued and written by a
// dedicated goroutine so a slow peer never blocks dispatch.
type Conn struct {
	id           string
	ws           *websocket.Conn
	out          chan []byte
	done         chan struct{}
	once         sync.Once
	writeTimeout time.Duration
	logger       *slog.Logger
}

func newConn(id string, ws *websocket.Conn, cfg *config) *Conn {
	return &Conn{
		id:           id,
		ws:           ws,
		out:          make(chan []byte, cfg.outboundBuffer),
		done:         make(chan struct{}),
		writeTimeout: cfg.writeTimeout,
		logger:       cfg.logger,
	}
}

// ID returns the connection identifier.
func (c *Conn) ID() string {
	return c.id
}

// Emit queues an outbound event. It never blocks: when the queue is full the
// connection is closed and ErrSlowConsumer returned.
func (c *Conn) Emit(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return errors.Join(ErrEncode, err)
	}

	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.out <- data:
		return nil
	default:
		c.logger.WarnContext(ctx, "outbound queue full, dropping connection", logger.Event(event))
		c.close(websocket.StatusPolicyViolation, "slow consumer")
		return ErrSlowConsumer
	}
}

// Done is closed once the connection is shutting down.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

func (c *Conn) writeLoop(ctx context.Context) {
	for {
		select {
		case <-c.done:
			return
		case data := <-c.out:
			wctx, cancel := context.WithTimeout(ctx, c.writeTimeout)
			err := c.ws.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.logger.DebugContext(ctx, "websocket write failed", logger.Error(err))
				c.close(websocket.StatusInternalError, "write failed")
				return
			}
		}
	}
}

func (c *Conn) close(code websocket.StatusCode, reason string) {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close(code, reason)
	})
}
