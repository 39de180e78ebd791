// Package mirror streams live match state to read-only spectator screens.
// Spectators join a room by connection code; every engine mutation is pushed
// to the room as a full state message.
package mirror

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"dartserver/internal/x01"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 5 * time.Second

type stateMsg struct {
	Type  string       `json:"type"`
	Code  string       `json:"code"`
	State x01.Snapshot `json:"state"`
}

type Server struct {
	log      *logrus.Entry
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]map[*websocket.Conn]struct{}
	srv   *http.Server
}

func New(log *logrus.Logger) *Server {
	return &Server{
		log: log.WithField("service", "mirror"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		rooms: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Handler exposes the spectator endpoint, GET /watch/{code}.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/watch/{code}", s.handleWatch).Methods(http.MethodGet)
	return r
}

func (s *Server) Serve(addr string) error {
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.log.WithField("addr", addr).Info("mirror listening")
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("upgrade failed")
		return
	}
	s.join(code, conn)
	s.log.WithField("code", code).Info("spectator joined")

	// Spectators only listen. The read loop exists to notice disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.leave(code, conn)
	conn.Close()
	s.log.WithField("code", code).Info("spectator left")
}

func (s *Server) join(code string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.rooms[code]
	if room == nil {
		room = make(map[*websocket.Conn]struct{})
		s.rooms[code] = room
	}
	room[conn] = struct{}{}
}

func (s *Server) leave(code string, conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.rooms[code]
	delete(room, conn)
	if len(room) == 0 {
		delete(s.rooms, code)
	}
}

// Publish fans the snapshot out to every spectator in the room. Dead
// connections are dropped; scoring never waits on a slow screen.
func (s *Server) Publish(code string, snap x01.Snapshot) {
	msg := stateMsg{Type: "state", Code: code, State: snap}

	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.rooms[code]))
	for conn := range s.rooms[code] {
		conns = append(conns, conn)
	}
	s.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			s.log.WithField("code", code).WithError(err).Error("spectator write failed")
			s.leave(code, conn)
			conn.Close()
		}
	}
}

// Spectators reports how many screens are watching a match.
func (s *Server) Spectators(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms[code])
}
