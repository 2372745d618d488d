package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/combat"
	"github.com/xtding233/formula-front/internal/gacha"
	"github.com/xtding233/formula-front/internal/loadout"
	"github.com/xtding233/formula-front/internal/player"
	"github.com/xtding233/formula-front/internal/rng"
)

var (
	ErrUnknownMission = errors.New("unknown mission")
	ErrMissionLocked  = errors.New("mission locked")
	// ErrCatalogMismatch rejects a catalog that no longer defines ids the
	// player state refers to.
	ErrCatalogMismatch = errors.New("catalog does not cover player state")
)

// Service owns one PlayerState and serialises every operation on it. Each
// mutation runs on a copy that replaces the state only once it is saved, so a
// failed save leaves nothing behind.
type Service struct {
	mu    sync.Mutex
	log   *slog.Logger
	store player.Store
	state *player.State

	cat   *catalog.Catalog
	agg   *loadout.Aggregator
	sim   *combat.Simulator
	gacha *gacha.Engine

	newSeed func() int64
}

// Option tweaks a Service at construction.
type Option func(*Service)

// WithSeedSource replaces the wall-clock seed used when a caller passes none.
func WithSeedSource(f func() int64) Option {
	return func(s *Service) { s.newSeed = f }
}

// New loads the player state from store. A corrupt save is logged and
// replaced by a default state.
func New(cat *catalog.Catalog, store player.Store, log *slog.Logger, opts ...Option) (*Service, error) {
	if log == nil {
		log = slog.Default()
	}
	st, err := store.Load()
	switch {
	case errors.Is(err, player.ErrCorruptSave):
		log.Warn("save unreadable, starting fresh", "err", err)
	case err != nil:
		return nil, err
	}
	if err := checkCoverage(cat, st); err != nil {
		return nil, err
	}

	s := &Service{log: log, store: store, state: st, newSeed: rng.NewSeed}
	s.setCatalog(cat)
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *Service) setCatalog(cat *catalog.Catalog) {
	s.cat = cat
	s.agg = loadout.NewAggregator(cat)
	s.sim = combat.NewSimulator(cat)
	s.gacha = gacha.NewEngine(cat)
}

// SwapCatalog installs a reloaded catalog. It is rejected if the current
// state references ids the new catalog lacks.
func (s *Service) SwapCatalog(cat *catalog.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := checkCoverage(cat, s.state); err != nil {
		return err
	}
	s.setCatalog(cat)
	s.log.Info("catalog swapped", "version", cat.Version())
	return nil
}

func checkCoverage(cat *catalog.Catalog, st *player.State) error {
	var missing []string
	for id, f := range st.OwnedFrames {
		if _, ok := cat.Frame(id); !ok {
			missing = append(missing, "frame "+id)
		}
		for _, p := range f.EquippedParts {
			if _, ok := cat.Part(p); !ok {
				missing = append(missing, "part "+p)
			}
		}
	}
	for id := range st.Inventory {
		if _, ok := cat.Part(id); !ok {
			missing = append(missing, "part "+id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrCatalogMismatch, missing)
	}
	return nil
}

func (s *Service) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cat
}

// State returns a snapshot the caller may keep.
func (s *Service) State() *player.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// commit saves next and installs it as the current state.
func (s *Service) commit(ctx context.Context, next *player.State) error {
	if err := s.store.Save(next); err != nil {
		s.log.ErrorContext(ctx, "save failed", "err", err)
		return fmt.Errorf("persist state: %w", err)
	}
	s.state = next
	return nil
}

func (s *Service) seed(in *int64) int64 {
	if in != nil {
		return *in
	}
	return s.newSeed()
}

// Reset replaces the state with a fresh default.
func (s *Service) Reset(ctx context.Context) (*player.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := player.Default()
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "state reset", "player", next.Player.ID)
	return next.Clone(), nil
}

// FrameStats aggregates an owned frame with its current parts.
func (s *Service) FrameStats(frameID string) (loadout.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	eq, ok := s.state.Equipped(frameID)
	if !ok {
		return loadout.Stats{}, player.ErrFrameNotOwned
	}
	return s.agg.Frame(frameID, eq), nil
}

func (s *Service) SetActiveFrame(ctx context.Context, frameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := next.SetActiveFrame(frameID); err != nil {
		s.log.WarnContext(ctx, "activate rejected", "frame", frameID, "err", err)
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "frame activated", "frame", frameID)
	return nil
}

// Equip moves partID into slot on frameID; an empty partID unequips.
func (s *Service) Equip(ctx context.Context, frameID string, slot catalog.Slot, partID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	if err := next.Equip(s.cat, frameID, slot, partID); err != nil {
		s.log.WarnContext(ctx, "equip rejected", "frame", frameID, "slot", slot, "part", partID, "err", err)
		return err
	}
	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "equipped", "frame", frameID, "slot", slot, "part", partID)
	return nil
}
