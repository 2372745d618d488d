package catalog

import (
	"fmt"
	"math"
	"strings"
)

// rateSlack tolerates float noise in rarity tables that are meant to sum to 1.
const rateSlack = 1e-9

// Validate checks referential integrity and semantic constraints of d.
// All problems are reported together.
func Validate(d Data) error {
	var errs []string

	frames := map[string]Frame{}
	for i, f := range d.Frames {
		switch {
		case f.ID == "":
			errs = append(errs, fmt.Sprintf("frames[%d].id is required", i))
		case frames[f.ID].ID != "":
			errs = append(errs, fmt.Sprintf("frames[%d]: duplicate id %q", i, f.ID))
		}
		if !f.Rarity.Valid() {
			errs = append(errs, fmt.Sprintf("frame %s: unknown rarity %q", f.ID, f.Rarity))
		}
		if f.Base.HP <= 0 {
			errs = append(errs, fmt.Sprintf("frame %s: base_stats.hp must be > 0", f.ID))
		}
		frames[f.ID] = f
	}

	parts := map[string]Part{}
	for i, p := range d.Parts {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Sprintf("parts[%d].id is required", i))
		case parts[p.ID].ID != "":
			errs = append(errs, fmt.Sprintf("parts[%d]: duplicate id %q", i, p.ID))
		}
		if !p.Slot.Valid() {
			errs = append(errs, fmt.Sprintf("part %s: unknown slot %q", p.ID, p.Slot))
		}
		if !p.Rarity.Valid() {
			errs = append(errs, fmt.Sprintf("part %s: unknown rarity %q", p.ID, p.Rarity))
		}
		parts[p.ID] = p
	}

	missions := map[string]bool{}
	for i, m := range d.Missions {
		switch {
		case m.ID == "":
			errs = append(errs, fmt.Sprintf("missions[%d].id is required", i))
		case missions[m.ID]:
			errs = append(errs, fmt.Sprintf("missions[%d]: duplicate id %q", i, m.ID))
		}
		missions[m.ID] = true
		if m.Difficulty < 1 || m.Difficulty > 10 {
			errs = append(errs, fmt.Sprintf("mission %s: difficulty must be in [1,10]", m.ID))
		}
		if _, ok := frames[m.EnemyFrame]; !ok {
			errs = append(errs, fmt.Sprintf("mission %s: unknown enemy_frame %q", m.ID, m.EnemyFrame))
		}
		for _, id := range m.EnemyParts {
			if _, ok := parts[id]; !ok {
				errs = append(errs, fmt.Sprintf("mission %s: unknown enemy part %q", m.ID, id))
			}
		}
		for _, id := range m.Rewards.Parts {
			if _, ok := parts[id]; !ok {
				errs = append(errs, fmt.Sprintf("mission %s: unknown reward part %q", m.ID, id))
			}
		}
		if m.Rewards.Dollars < 0 {
			errs = append(errs, fmt.Sprintf("mission %s: rewards.dollars must be >= 0", m.ID))
		}
	}

	banners := map[string]bool{}
	for i, b := range d.Banners {
		switch {
		case b.ID == "":
			errs = append(errs, fmt.Sprintf("banners[%d].id is required", i))
		case banners[b.ID]:
			errs = append(errs, fmt.Sprintf("banners[%d]: duplicate id %q", i, b.ID))
		}
		banners[b.ID] = true
		if b.Cost < 0 {
			errs = append(errs, fmt.Sprintf("banner %s: cost must be >= 0", b.ID))
		}
		if b.Pity < 0 {
			errs = append(errs, fmt.Sprintf("banner %s: pity must be >= 0 (0 disables pity)", b.ID))
		}
		switch b.Currency {
		case "", CurrencyDollars, CurrencyMateria:
		default:
			errs = append(errs, fmt.Sprintf("banner %s: unknown currency %q", b.ID, b.Currency))
		}
		sum := 0.0
		for j, r := range b.Rates {
			if !r.Rarity.Valid() {
				errs = append(errs, fmt.Sprintf("banner %s: rates[%d] unknown rarity %q", b.ID, j, r.Rarity))
			}
			if math.IsNaN(r.Rate) || r.Rate < 0 || r.Rate > 1 {
				errs = append(errs, fmt.Sprintf("banner %s: rates[%d] must be in [0,1]", b.ID, j))
			}
			sum += r.Rate
		}
		if sum <= 0 || sum > 1+rateSlack {
			errs = append(errs, fmt.Sprintf("banner %s: rates must sum to (0,1], got %g", b.ID, sum))
		}
		if len(b.Pool) == 0 {
			errs = append(errs, fmt.Sprintf("banner %s: pool must not be empty", b.ID))
		}
		for _, id := range b.Pool {
			if b.FrameBanner {
				if _, ok := frames[id]; !ok {
					errs = append(errs, fmt.Sprintf("banner %s: unknown frame %q in pool", b.ID, id))
				}
				continue
			}
			if _, ok := parts[id]; !ok {
				errs = append(errs, fmt.Sprintf("banner %s: unknown part %q in pool", b.ID, id))
			}
		}
	}

	if len(d.Missions) == 0 {
		errs = append(errs, "at least one mission is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
