package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/xtding233/formula-front/internal/game"
)

// Server exposes a game.Service over HTTP.
type Server struct {
	HTTP *http.Server

	svc         *game.Service
	log         *slog.Logger
	streamDelay time.Duration
}

// NewServer builds the HTTP server for svc. streamDelay paces the battle
// log on the websocket stream.
func NewServer(addr string, svc *game.Service, log *slog.Logger, streamDelay time.Duration) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{svc: svc, log: log, streamDelay: streamDelay}
	s.HTTP = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)

	mux.HandleFunc("GET /v1/state", s.handleState)
	mux.HandleFunc("POST /v1/state/reset", s.handleReset)

	mux.HandleFunc("GET /v1/frames/{id}/stats", s.handleFrameStats)
	mux.HandleFunc("POST /v1/frames/{id}/activate", s.handleActivate)
	mux.HandleFunc("POST /v1/frames/{id}/equip", s.handleEquip)

	mux.HandleFunc("GET /v1/missions", s.handleMissions)
	mux.HandleFunc("POST /v1/missions/{id}/battle", s.handleBattle)
	mux.HandleFunc("GET /v1/missions/{id}/battle/stream", s.handleBattleStream)

	mux.HandleFunc("POST /v1/gacha/{banner}/pull", s.handlePull)

	mux.HandleFunc("POST /v1/parts/{id}/sell", s.handleSell)
	mux.HandleFunc("POST /v1/parts/{id}/dismantle", s.handleDismantle)
	return mux
}

func (s *Server) Serve() error                       { return s.HTTP.ListenAndServe() }
func (s *Server) Shutdown(ctx context.Context) error { return s.HTTP.Shutdown(ctx) }
func (s *Server) Close() error                       { return s.HTTP.Close() }
func (s *Server) Addr() string                       { return s.HTTP.Addr }
