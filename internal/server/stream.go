package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/xtding233/formula-front/internal/combat"
	"github.com/xtding233/formula-front/internal/game"
)

// StreamMsg is one websocket frame of a streamed battle: every log entry in
// order, then the full report.
type StreamMsg struct {
	Kind   string             `json:"kind"` // "entry" or "report"
	Index  int                `json:"index,omitempty"`
	Entry  *combat.Entry      `json:"entry,omitempty"`
	Report *game.BattleReport `json:"report,omitempty"`
}

// handleBattleStream resolves the battle up front, so rejections are plain
// HTTP errors, then replays the log over a websocket at the configured pace.
func (s *Server) handleBattleStream(w http.ResponseWriter, r *http.Request) {
	var seed *int64
	if v := r.URL.Query().Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.fail(w, r, errors.Join(errBadBody, err))
			return
		}
		seed = &n
	}
	rep, err := s.svc.StartBattle(r.Context(), r.PathValue("id"), seed)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.ErrorContext(r.Context(), "failed to accept", "err", err)
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())
	if err := s.replay(ctx, conn, rep); err != nil {
		s.log.WarnContext(ctx, "battle stream aborted", "battle", rep.ID, "err", err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "battle complete")
}

func (s *Server) replay(ctx context.Context, conn *websocket.Conn, rep game.BattleReport) error {
	for i := range rep.Result.Log {
		if i > 0 && s.streamDelay > 0 {
			t := time.NewTimer(s.streamDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		if err := wsjson.Write(ctx, conn, StreamMsg{Kind: "entry", Index: i, Entry: &rep.Result.Log[i]}); err != nil {
			return err
		}
	}
	return wsjson.Write(ctx, conn, StreamMsg{Kind: "report", Report: &rep})
}
