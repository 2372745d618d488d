package game

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/combat"
	"github.com/xtding233/formula-front/internal/player"
)

// BattleReport is a resolved battle together with what it changed.
type BattleReport struct {
	ID        string        `json:"id"`
	MissionID string        `json:"missionId"`
	FrameID   string        `json:"frameId"`
	Seed      int64         `json:"seed"`
	At        time.Time     `json:"at"`
	Result    combat.Result `json:"result"`
	Exp       int           `json:"exp,omitempty"`
}

// MissionStatus is a mission with the player's progress on it.
type MissionStatus struct {
	catalog.Mission
	Completed bool `json:"completed"`
	Unlocked  bool `json:"unlocked"`
	Current   bool `json:"current"`
}

// Missions lists every mission in unlock order.
func (s *Service) Missions() []MissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms := s.cat.Missions()
	out := make([]MissionStatus, len(ms))
	for i, m := range ms {
		out[i] = MissionStatus{
			Mission:   m,
			Completed: s.state.IsMissionCompleted(m.ID),
			Unlocked:  s.state.IsMissionUnlocked(s.cat, m.ID),
			Current:   s.state.Missions.CurrentMission == m.ID,
		}
	}
	return out
}

// StartBattle fights missionID with the active frame. A nil seed draws a
// fresh one. Victory applies the rewards; defeat only counts the battle.
func (s *Service) StartBattle(ctx context.Context, missionID string, seed *int64) (BattleReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.cat.Mission(missionID)
	if !ok {
		return BattleReport{}, ErrUnknownMission
	}
	if !s.state.IsMissionUnlocked(s.cat, missionID) {
		s.log.WarnContext(ctx, "battle rejected", "mission", missionID, "err", ErrMissionLocked)
		return BattleReport{}, ErrMissionLocked
	}
	frameID := s.state.ActiveFrameID
	eq, ok := s.state.Equipped(frameID)
	if !ok {
		return BattleReport{}, player.ErrFrameNotOwned
	}

	matchup := combat.Matchup{
		Player:  s.agg.Frame(frameID, eq).Combatant(s.cat.MustFrame(frameID).Name),
		Enemy:   s.agg.Enemy(m).Combatant(s.cat.MustFrame(m.EnemyFrame).Name),
		Rewards: m.Rewards,
	}
	sd := s.seed(seed)
	res := s.sim.Simulate(matchup, sd)

	rep := BattleReport{
		ID:        uuid.NewString(),
		MissionID: missionID,
		FrameID:   frameID,
		Seed:      sd,
		At:        time.Now().UTC(),
		Result:    res,
	}
	next := s.state.Clone()
	if res.Victory {
		next.CompleteMission(s.cat, missionID)
		next.AddCurrency(catalog.CurrencyDollars, res.Rewards.Dollars)
		next.AddCurrency(catalog.CurrencyMateria, res.Rewards.Materia)
		for _, id := range res.Rewards.Parts {
			next.AddPart(id)
		}
		next.GainExp(m.Rewards.Exp)
		rep.Exp = m.Rewards.Exp
	} else {
		next.RecordDefeat()
	}
	if err := s.commit(ctx, next); err != nil {
		return BattleReport{}, err
	}

	s.log.InfoContext(ctx, "battle resolved",
		"battle", rep.ID,
		"mission", missionID,
		"seed", sd,
		"victory", res.Victory,
		"turns", res.TurnsElapsed,
	)
	return rep, nil
}
