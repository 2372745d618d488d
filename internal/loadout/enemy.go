package loadout

import (
	"math"

	"github.com/xtding233/formula-front/internal/catalog"
)

// EnemyStats is the narrower block a mission opponent is built from.
type EnemyStats struct {
	HP               float64 `json:"hp"`
	Mobility         float64 `json:"mobility"`
	HeadArmor        float64 `json:"headArmor"`
	BodyArmor        float64 `json:"bodyArmor"`
	RangedAtk        float64 `json:"rangedAtk"`
	MeleeAtk         float64 `json:"meleeAtk"`
	Accuracy         float64 `json:"accuracy"`
	Evasion          float64 `json:"evasion"`
	TotalArmor       float64 `json:"totalArmor"`
	DamageMitigation float64 `json:"damageMitigation"`
}

func (s *EnemyStats) field(key string) *float64 {
	switch key {
	case "hp":
		return &s.HP
	case "mobility":
		return &s.Mobility
	case "headArmor":
		return &s.HeadArmor
	case "bodyArmor":
		return &s.BodyArmor
	case "rangedAtk":
		return &s.RangedAtk
	case "meleeAtk":
		return &s.MeleeAtk
	case "accuracy":
		return &s.Accuracy
	case "evasion":
		return &s.Evasion
	}
	return nil
}

// AggregateEnemy sums the mission's fixed parts onto its enemy frame without
// frame bonuses, then scales hp and both attacks by the difficulty factor,
// truncating toward zero. Mitigation is taken before scaling.
func AggregateEnemy(frame catalog.Frame, parts []catalog.Part, m catalog.Mission) EnemyStats {
	s := EnemyStats{
		HP:        frame.Base.HP,
		Mobility:  frame.Base.Mobility,
		HeadArmor: frame.Armor.Head,
		BodyArmor: frame.Armor.Body,
		Accuracy:  BaseAccuracy,
		Evasion:   BaseEvasion,
	}
	for _, p := range parts {
		for key, delta := range p.Stats {
			if f := s.field(key); f != nil {
				*f += delta
			}
		}
	}

	s.TotalArmor = s.HeadArmor + s.BodyArmor
	s.DamageMitigation = Mitigation(s.TotalArmor)

	pct := float64(m.ScalePercent())
	s.HP = math.Trunc(s.HP * pct / 100)
	s.RangedAtk = math.Trunc(s.RangedAtk * pct / 100)
	s.MeleeAtk = math.Trunc(s.MeleeAtk * pct / 100)
	return s
}

func (s EnemyStats) Combatant(name string) Combatant {
	return Combatant{
		Name:             name,
		HP:               s.HP,
		RangedAtk:        s.RangedAtk,
		MeleeAtk:         s.MeleeAtk,
		Accuracy:         s.Accuracy,
		Evasion:          s.Evasion,
		DamageMitigation: s.DamageMitigation,
	}
}
