package server

import (
	"net/http"
	"sync"
	"time"

	"wordwolf/internal/config"

	"gorm.io/gorm"
)

type Server struct {
	store    *Store
	db       *gorm.DB
	hub      *wsHub
	cfg      config.Config
	words    WordSource
	timersMu sync.Mutex
	timers   map[string]*time.Timer
	now      func() time.Time
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	s := &Server{
		store:  NewStore(),
		db:     conn,
		hub:    newWSHub(),
		cfg:    cfg,
		timers: make(map[string]*time.Timer),
		now:    func() time.Time { return time.Now().UTC() },
	}
	if conn != nil {
		s.words = NewDBWordSource(conn)
	} else {
		s.words = NewStaticWordSource(defaultWords)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /api/matches", s.handleListMatches)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"rooms":  s.store.RoomCount(),
	})
}
