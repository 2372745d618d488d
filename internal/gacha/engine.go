package gacha

import (
	"errors"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/rng"
)

var (
	ErrInvalidBanner     = errors.New("invalid banner")
	ErrInvalidCount      = errors.New("pull count must be between 1 and 100")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

const (
	// MaxPullCount caps one request.
	MaxPullCount = 100
	// DuplicateFrameMateria compensates a frame the player already owns.
	DuplicateFrameMateria = 100

	pityLegendary = 0.1
	pityEpic      = 0.4
)

// PullResult is one resolved pull.
type PullResult struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Rarity  catalog.Rarity `json:"rarity"`
	Slot    catalog.Slot   `json:"slot,omitempty"`
	IsNew   bool           `json:"isNew"`
	IsFrame bool           `json:"isFrame"`
	IsPity  bool           `json:"isPity"`
}

// Engine resolves pulls against a catalog. It keeps no per-player state.
type Engine struct {
	cat *catalog.Catalog
}

func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Pull spends the cost of count pulls up front and then resolves them in
// order, each one advancing the banner's pity counter. A rejected request
// leaves prog untouched.
func (e *Engine) Pull(prog Progression, bannerID string, count int, seed int64) ([]PullResult, error) {
	b, ok := e.cat.Banner(bannerID)
	if !ok {
		return nil, ErrInvalidBanner
	}
	if count < 1 || count > MaxPullCount {
		return nil, ErrInvalidCount
	}
	cost := b.TotalCost(count)
	if !prog.CanAfford(b.Currency, cost) || !prog.SpendCurrency(b.Currency, cost) {
		return nil, ErrInsufficientFunds
	}

	r := rng.NewLCG(seed)
	pulls, threshold := prog.PityCount(b.ID, b.Pity)
	ps := NewPitySystem(threshold, pulls)

	out := make([]PullResult, 0, count)
	for i := 0; i < count; i++ {
		roll := r.Float64()
		forced := ps.Advance()

		var rarity catalog.Rarity
		if forced {
			rarity = pityRarity(r)
		} else {
			rarity, _ = rollRarity(b.Rates, roll)
		}

		id := e.pick(r, b, rarity)
		res := e.grant(prog, b, id)
		res.IsPity = forced
		out = append(out, res)
		prog.RecordPull()
	}
	prog.SetPityCount(b.ID, ps.Count)
	return out, nil
}

// pityRarity is the nested roll used for forced pulls: a legendary check,
// then an epic check, each with a fresh draw, else rare.
func pityRarity(r rng.Source) catalog.Rarity {
	if hit, _ := Draw(pityLegendary, r); hit {
		return catalog.RarityLegendary
	}
	if hit, _ := Draw(pityEpic, r); hit {
		return catalog.RarityEpic
	}
	return catalog.RarityRare
}

// pick chooses uniformly among pool entries of the given rarity, falling back
// to the whole pool when none match.
func (e *Engine) pick(r rng.Source, b catalog.Banner, rarity catalog.Rarity) string {
	var matched []string
	for _, id := range b.Pool {
		if got, ok := e.cat.ItemRarity(b, id); ok && got == rarity {
			matched = append(matched, id)
		}
	}
	if len(matched) == 0 {
		matched = b.Pool
	}
	return matched[rng.IntRange(r, 0, len(matched)-1)]
}

func (e *Engine) grant(prog Progression, b catalog.Banner, id string) PullResult {
	if b.FrameBanner {
		f := e.cat.MustFrame(id)
		isNew := prog.AddFrame(id)
		if !isNew {
			prog.AddCurrency(catalog.CurrencyMateria, DuplicateFrameMateria)
		}
		return PullResult{ID: f.ID, Name: f.Name, Rarity: f.Rarity, IsNew: isNew, IsFrame: true}
	}
	p := e.cat.MustPart(id)
	qty := prog.AddPart(id)
	return PullResult{ID: p.ID, Name: p.Name, Rarity: p.Rarity, Slot: p.Slot, IsNew: qty == 1}
}
