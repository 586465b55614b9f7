package posenet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"HandSketch/internal/geom"
	"HandSketch/internal/logging"
	"HandSketch/internal/state"
)

// Path is the websocket endpoint poses are streamed to.
const Path = "/poses"

// Hello is the first message the server sends on a new connection.
type Hello struct {
	Session string `json:"session"`
}

// Server accepts websocket connections from the headset companion and
// pushes every received Message into a Feed.
type Server struct {
	feed     *Feed
	upgrader websocket.Upgrader
	peers    map[string]*websocket.Conn
	mu       sync.RWMutex
	log      *slog.Logger
}

func NewServer(feed *Feed) *Server {
	return &Server{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the companion runs on the headset, not in a browser
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[string]*websocket.Conn),
		log:   logging.For("posenet"),
	}
}

// Handler returns the HTTP handler serving Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.handlePoses)
	return mux
}

// ServeListener serves on an existing listener until ctx is cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		s.closePeers()
	}()
	s.log.Info("pose feed listening", "addr", ln.Addr().String(), "path", Path)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve pose feed: %w", err)
	}
	return nil
}

// Peers returns the number of connected companions.
func (s *Server) Peers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

func (s *Server) handlePoses(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	addr := conn.RemoteAddr().String()
	s.add(addr, conn)
	defer s.remove(addr)

	if err := conn.WriteJSON(Hello{Session: state.SessionID()}); err != nil {
		s.log.Warn("hello failed", "remote", addr, "err", err)
		return
	}

	seen := map[geom.Hand]bool{}
	defer func() {
		// a dropped connection is tracking loss for the hands it still feeds
		for h := range seen {
			s.feed.LoseFrom(addr, h)
		}
	}()
	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("pose stream ended", "remote", addr, "err", err)
			}
			return
		}
		h, ok := geom.ParseHand(m.Hand)
		if !ok {
			s.log.Debug("pose for unknown hand dropped", "remote", addr, "hand", m.Hand)
			continue
		}
		seen[h] = true
		s.feed.PushFrom(addr, m)
	}
}

func (s *Server) add(addr string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[addr] = conn
	s.log.Info("companion connected", "remote", addr)
}

func (s *Server) remove(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conn, ok := s.peers[addr]; ok {
		conn.Close()
		delete(s.peers, addr)
	}
	s.log.Info("companion disconnected", "remote", addr)
}

func (s *Server) closePeers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, conn := range s.peers {
		conn.Close()
		delete(s.peers, addr)
	}
}
