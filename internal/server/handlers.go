package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/gacha"
	"github.com/xtding233/formula-front/internal/game"
	"github.com/xtding233/formula-front/internal/player"
)

// maxBody bounds request bodies; every request document is tiny.
const maxBody = 1 << 16

var errBadBody = errors.New("invalid request body")

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type catalogResp struct {
	Version  string            `json:"version"`
	Frames   []catalog.Frame   `json:"frames"`
	Parts    []catalog.Part    `json:"parts"`
	Missions []catalog.Mission `json:"missions"`
	Banners  []catalog.Banner  `json:"banners"`
}

type equipReq struct {
	Slot   catalog.Slot `json:"slot"`
	PartID string       `json:"partId"`
}

type seedReq struct {
	Seed *int64 `json:"seed"`
}

type pullReq struct {
	Count int    `json:"count"`
	Seed  *int64 `json:"seed"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, envelope{Error: err.Error()})
}

// statusFor maps domain rejections onto 4xx codes; anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, gacha.ErrInvalidCount),
		errors.Is(err, player.ErrUnknownSlot),
		errors.Is(err, player.ErrSlotMismatch):
		return http.StatusBadRequest
	case errors.Is(err, gacha.ErrInvalidBanner),
		errors.Is(err, game.ErrUnknownMission),
		errors.Is(err, player.ErrUnknownPart):
		return http.StatusNotFound
	case errors.Is(err, gacha.ErrInsufficientFunds),
		errors.Is(err, game.ErrMissionLocked),
		errors.Is(err, player.ErrFrameNotOwned),
		errors.Is(err, player.ErrPartNotInInventory):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decode reads an optional JSON body into dst. An empty body leaves dst as is.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(errBadBody, err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.ok(w, map[string]string{"catalog": s.svc.Catalog().Version()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.svc.Catalog()
	s.ok(w, catalogResp{
		Version:  c.Version(),
		Frames:   c.Frames(),
		Parts:    c.Parts(),
		Missions: c.Missions(),
		Banners:  c.Banners(),
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.ok(w, s.svc.State())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Reset(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, st)
}

func (s *Server) handleFrameStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.FrameStats(r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, stats)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SetActiveFrame(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, s.svc.State())
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	var req equipReq
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.svc.Equip(r.Context(), r.PathValue("id"), req.Slot, req.PartID); err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, s.svc.State())
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	s.ok(w, s.svc.Missions())
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	var req seedReq
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := s.svc.StartBattle(r.Context(), r.PathValue("id"), req.Seed)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, rep)
}

func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	req := pullReq{Count: 1}
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	rep, err := s.svc.Pull(r.Context(), r.PathValue("banner"), req.Count, req.Seed)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, rep)
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	tr, err := s.svc.Sell(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, tr)
}

func (s *Server) handleDismantle(w http.ResponseWriter, r *http.Request) {
	var req seedReq
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	tr, err := s.svc.Dismantle(r.Context(), r.PathValue("id"), req.Seed)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.ok(w, tr)
}
