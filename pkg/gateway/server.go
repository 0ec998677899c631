package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/dmitrymomot/totpgate/pkg/auth"
	"github.com/dmitrymomot/totpgate/pkg/logger"
)

// Dispatcher handles one inbound message and answers through emit.
// A non-nil error means the connection can no longer be used.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg auth.Message, emit auth.Emitter) error
}

// Server upgrades HTTP requests to websocket connections and feeds their
// events to a Dispatcher. Connections are independent of each other.
type Server struct {
	cfg        *config
	dispatcher Dispatcher

	mu     sync.Mutex
	conns  map[*Conn]struct{}
	closed bool
}

// New returns a configured Server.
func New(dispatcher Dispatcher, opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = newDiscardLogger()
	}
	return &Server{
		cfg:        cfg,
		dispatcher: dispatcher,
		conns:      make(map[*Conn]struct{}),
	}
}

// ServeHTTP accepts the websocket handshake and serves the connection until it closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns:     s.cfg.originPatterns,
		InsecureSkipVerify: s.cfg.skipOrigin,
	})
	if err != nil {
		s.cfg.logger.DebugContext(r.Context(), "websocket handshake failed", logger.Error(err))
		return
	}
	ws.SetReadLimit(s.cfg.readLimit)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := newConn(uuid.NewString(), ws, s.cfg)
	ctx = WithConnID(ctx, c.id)

	if !s.track(c) {
		c.close(websocket.StatusGoingAway, "server shutting down")
		return
	}
	defer s.untrack(c)

	s.cfg.logger.InfoContext(ctx, "client connected")
	go c.writeLoop(ctx)

	s.serve(ctx, c)

	if err := s.dispatcher.Dispatch(ctx, auth.Message{Event: auth.EventDisconnect}, c); err != nil {
		s.cfg.logger.DebugContext(ctx, "disconnect dispatch failed", logger.Error(err))
	}
	c.close(websocket.StatusNormalClosure, "")
	s.cfg.logger.InfoContext(ctx, "client disconnected")
}

// serve reads and dispatches messages one at a time until the connection ends.
func (s *Server) serve(ctx context.Context, c *Conn) {
	for {
		_, data, err := c.ws.Read(ctx)
		if err != nil {
			s.logReadError(ctx, err)
			return
		}

		var msg auth.Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Event == "" {
			if err := c.Emit(ctx, auth.EventError, auth.MsgInvalidRequest); err != nil {
				return
			}
			continue
		}

		if msg.Event == auth.EventDisconnect {
			return
		}

		if err := s.dispatcher.Dispatch(ctx, msg, c); err != nil {
			s.cfg.logger.DebugContext(ctx, "dropping connection", logger.Event(msg.Event), logger.Error(err))
			return
		}
	}
}

func (s *Server) logReadError(ctx context.Context, err error) {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway, websocket.StatusNoStatusRcvd:
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return
	}
	s.cfg.logger.DebugContext(ctx, "websocket read ended", logger.Error(err))
}

// Active returns the number of open connections.
func (s *Server) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// Close closes every open connection with StatusGoingAway and rejects new ones.
// It is safe for repeated calls.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	conns := make([]*Conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.close(websocket.StatusGoingAway, "server shutting down")
	}
}

func (s *Server) track(c *Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) untrack(c *Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, c)
}
