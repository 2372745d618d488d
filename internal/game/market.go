package game

import (
	"context"
	"maps"

	"github.com/google/uuid"
	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/gacha"
	"github.com/xtding233/formula-front/internal/player"
	"github.com/xtding233/formula-front/internal/rng"
)

// Dollar value of a sold part and base materia of a dismantled one.
var (
	sellValue = map[catalog.Rarity]int{
		catalog.RarityCommon:    50,
		catalog.RarityRare:      150,
		catalog.RarityEpic:      400,
		catalog.RarityLegendary: 1000,
	}
	dismantleValue = map[catalog.Rarity]int{
		catalog.RarityCommon:    10,
		catalog.RarityRare:      30,
		catalog.RarityEpic:      80,
		catalog.RarityLegendary: 200,
	}
)

// dismantleBonusMax bounds the random materia added on top of the base.
const dismantleBonusMax = 20

// PullReport is one gacha request.
type PullReport struct {
	ID         string                   `json:"id"`
	Banner     string                   `json:"banner"`
	Seed       int64                    `json:"seed"`
	Results    []gacha.PullResult       `json:"results"`
	Currencies map[catalog.Currency]int `json:"currencies"`
}

// Trade is the outcome of a sell or dismantle.
type Trade struct {
	PartID   string           `json:"partId"`
	Currency catalog.Currency `json:"currency"`
	Amount   int              `json:"amount"`
}

// Pull runs count pulls on bannerID. Rejections change nothing.
func (s *Service) Pull(ctx context.Context, bannerID string, count int, seed *int64) (PullReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sd := s.seed(seed)
	next := s.state.Clone()
	res, err := s.gacha.Pull(next, bannerID, count, sd)
	if err != nil {
		s.log.WarnContext(ctx, "pull rejected", "banner", bannerID, "count", count, "err", err)
		return PullReport{}, err
	}
	rep := PullReport{
		ID:         uuid.NewString(),
		Banner:     bannerID,
		Seed:       sd,
		Results:    res,
		Currencies: maps.Clone(next.Currencies),
	}
	if err := s.commit(ctx, next); err != nil {
		return PullReport{}, err
	}
	pity := 0
	for _, r := range res {
		if r.IsPity {
			pity++
		}
	}
	s.log.InfoContext(ctx, "pulled",
		"batch", rep.ID,
		"banner", bannerID,
		"name", s.cat.MustBanner(bannerID).Name,
		"count", count,
		"seed", sd,
		"pity", pity,
	)
	return rep, nil
}

// Sell removes one unit of partID for dollars.
func (s *Service) Sell(ctx context.Context, partID string) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	p, err := s.takePart(next, partID)
	if err != nil {
		s.log.WarnContext(ctx, "sell rejected", "part", partID, "err", err)
		return Trade{}, err
	}
	t := Trade{PartID: partID, Currency: catalog.CurrencyDollars, Amount: sellValue[p.Rarity]}
	next.AddCurrency(t.Currency, t.Amount)
	if err := s.commit(ctx, next); err != nil {
		return Trade{}, err
	}
	s.log.InfoContext(ctx, "part sold", "part", partID, "dollars", t.Amount)
	return t, nil
}

// Dismantle removes one unit of partID for materia: a rarity base plus a
// seeded bonus in [0,20].
func (s *Service) Dismantle(ctx context.Context, partID string, seed *int64) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	p, err := s.takePart(next, partID)
	if err != nil {
		s.log.WarnContext(ctx, "dismantle rejected", "part", partID, "err", err)
		return Trade{}, err
	}
	bonus := rng.IntRange(rng.NewLCG(s.seed(seed)), 0, dismantleBonusMax)
	t := Trade{PartID: partID, Currency: catalog.CurrencyMateria, Amount: dismantleValue[p.Rarity] + bonus}
	next.AddCurrency(t.Currency, t.Amount)
	if err := s.commit(ctx, next); err != nil {
		return Trade{}, err
	}
	s.log.InfoContext(ctx, "part dismantled", "part", partID, "materia", t.Amount)
	return t, nil
}

func (s *Service) takePart(st *player.State, id string) (catalog.Part, error) {
	p, ok := s.cat.Part(id)
	if !ok {
		return catalog.Part{}, player.ErrUnknownPart
	}
	if !st.RemovePart(id) {
		return catalog.Part{}, player.ErrPartNotInInventory
	}
	return p, nil
}
