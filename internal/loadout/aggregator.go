package loadout

import "github.com/xtding233/formula-front/internal/catalog"

// Aggregator resolves ids against a catalog before aggregating.
type Aggregator struct {
	cat *catalog.Catalog
}

func NewAggregator(cat *catalog.Catalog) *Aggregator {
	return &Aggregator{cat: cat}
}

// Frame aggregates frameID with the given slot → part id mapping.
// Empty slots are skipped; slots are visited in catalog order.
func (a *Aggregator) Frame(frameID string, equipped map[catalog.Slot]string) Stats {
	frame := a.cat.MustFrame(frameID)
	parts := make([]catalog.Part, 0, len(equipped))
	for _, slot := range catalog.Slots {
		if id := equipped[slot]; id != "" {
			parts = append(parts, a.cat.MustPart(id))
		}
	}
	return Aggregate(frame, parts)
}

// Enemy aggregates a mission's opponent.
func (a *Aggregator) Enemy(m catalog.Mission) EnemyStats {
	frame := a.cat.MustFrame(m.EnemyFrame)
	parts := make([]catalog.Part, 0, len(m.EnemyParts))
	for _, id := range m.EnemyParts {
		parts = append(parts, a.cat.MustPart(id))
	}
	return AggregateEnemy(frame, parts, m)
}
