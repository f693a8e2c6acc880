package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/orbitflight/orbitflight/internal/config"
	"go.uber.org/zap"
)

// InputSink receives platform input forwarded by viewer clients.
type InputSink interface {
	SetKey(code int, pressed bool)
	SetPointer(x, y, width, height float64)
}

// Server streams frame state to websocket viewers and feeds their key and pointer
// events into the input snapshot. Socket I/O runs on per-client goroutines;
// Broadcast is called from the frame loop.
type Server struct {
	upgrader     websocket.Upgrader
	input        InputSink
	outSize      int
	writeTimeout time.Duration
	readTimeout  time.Duration
	log          *zap.Logger

	mu      sync.Mutex
	clients map[string]*Client

	httpSrv  *http.Server
	listener net.Listener
}

func NewServer(cfg config.ViewerConfig, input InputSink, log *zap.Logger) *Server {
	outSize := cfg.OutQueueSize
	if outSize <= 0 {
		outSize = 1
	}
	s := &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		input:        input,
		outSize:      outSize,
		writeTimeout: cfg.WriteTimeout,
		readTimeout:  cfg.ReadTimeout,
		log:          log,
		clients:      make(map[string]*Client),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Handler exposes the websocket endpoint for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Listen binds addr and serves in a background goroutine.
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("viewer server stopped", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the listener's address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("viewer upgrade failed", zap.Error(err))
		return
	}
	c := newClient(s, conn)
	s.mu.Lock()
	s.clients[c.ID] = c
	s.mu.Unlock()
	s.log.Info("viewer connected", zap.String("client", c.ID), zap.String("ip", conn.RemoteAddr().String()))
	c.start()
}

// Broadcast encodes state once and queues it for every client. A client whose
// queue is full is disconnected.
func (s *Server) Broadcast(state *FrameState) {
	s.mu.Lock()
	if len(s.clients) == 0 {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		s.log.Error("encode frame state", zap.Error(err))
		return
	}

	var slow []*Client
	s.mu.Lock()
	for _, c := range s.clients {
		if !c.enqueue(data) {
			slow = append(slow, c)
		}
	}
	s.mu.Unlock()

	// close re-enters the client map
	for _, c := range slow {
		s.log.Warn("viewer too slow, disconnecting", zap.String("client", c.ID))
		c.close()
	}
}

// Clients returns the number of connected viewers.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) remove(id string) {
	s.mu.Lock()
	_, ok := s.clients[id]
	delete(s.clients, id)
	s.mu.Unlock()
	if ok {
		s.log.Info("viewer disconnected", zap.String("client", id))
	}
}

func (s *Server) dispatch(c *Client, data []byte) {
	var msg InboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.log.Debug("bad viewer message", zap.Error(err))
		return
	}
	switch msg.Type {
	case MsgKey:
		s.input.SetKey(msg.Code, msg.Pressed)
	case MsgPointer:
		s.input.SetPointer(msg.X, msg.Y, msg.Width, msg.Height)
	default:
		c.log.Debug("unknown viewer message", zap.String("type", msg.Type))
	}
}

// Shutdown closes every client and stops accepting connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
	return s.httpSrv.Shutdown(ctx)
}
