package loadout

import (
	"math"

	"github.com/xtding233/formula-front/internal/catalog"
)

// Baseline combat stats every frame starts from before parts are added.
const (
	BaseAccuracy = 50
	BaseEvasion  = 10

	// MaxMitigation caps the armor curve.
	MaxMitigation = 0.75
	// armorKnee is the armor value at which mitigation reaches 50% of the raw curve.
	armorKnee = 200
	// heatTolerance is how far heat may exceed cooling before a build overheats.
	heatTolerance = -50
)

// Stats is a frame's effective stat block after parts and bonuses.
// Derived on demand, never persisted.
type Stats struct {
	HP            float64 `json:"hp"`
	EnergyOutput  float64 `json:"energyOutput"`
	CPUCap        float64 `json:"cpuCap"`
	WeightCap     float64 `json:"weightCap"`
	HeatCap       float64 `json:"heatCap"`
	TAP           float64 `json:"tap"`
	Mobility      float64 `json:"mobility"`
	HeadArmor     float64 `json:"headArmor"`
	ShoulderArmor float64 `json:"shoulderArmor"`
	BodyArmor     float64 `json:"bodyArmor"`
	LegArmor      float64 `json:"legArmor"`
	RangedAtk     float64 `json:"rangedAtk"`
	MeleeAtk      float64 `json:"meleeAtk"`
	Accuracy      float64 `json:"accuracy"`
	Evasion       float64 `json:"evasion"`
	Cooling       float64 `json:"cooling"`

	TotalWeight float64 `json:"totalWeight"`
	TotalEnergy float64 `json:"totalEnergy"`
	TotalHeat   float64 `json:"totalHeat"`
	TotalCPU    float64 `json:"totalCpu"`

	TotalArmor       float64 `json:"totalArmor"`
	DamageMitigation float64 `json:"damageMitigation"`
	HeatRejection    float64 `json:"heatRejection"`
	DPS              float64 `json:"dps"` // ranking heuristic only

	IsOverweight  bool `json:"isOverweight"`
	IsOverpowered bool `json:"isOverpowered"`
	IsOverheating bool `json:"isOverheating"`
	IsOverloaded  bool `json:"isOverloaded"`
	IsValid       bool `json:"isValid"`
}

// field maps a stat key to its slot in s. Keys outside the schema return nil
// and are ignored by callers, so part data may carry stats this build does
// not know about.
func (s *Stats) field(key string) *float64 {
	switch key {
	case "hp":
		return &s.HP
	case "energyOutput":
		return &s.EnergyOutput
	case "cpuCap":
		return &s.CPUCap
	case "weightCap":
		return &s.WeightCap
	case "heatCap":
		return &s.HeatCap
	case "tap":
		return &s.TAP
	case "mobility":
		return &s.Mobility
	case "headArmor":
		return &s.HeadArmor
	case "shoulderArmor":
		return &s.ShoulderArmor
	case "bodyArmor":
		return &s.BodyArmor
	case "legArmor":
		return &s.LegArmor
	case "rangedAtk":
		return &s.RangedAtk
	case "meleeAtk":
		return &s.MeleeAtk
	case "accuracy":
		return &s.Accuracy
	case "evasion":
		return &s.Evasion
	case "cooling":
		return &s.Cooling
	}
	return nil
}

// Aggregate folds parts into frame's base block, applies the frame bonuses,
// then derives armor, heat and validity.
func Aggregate(frame catalog.Frame, parts []catalog.Part) Stats {
	s := Stats{
		HP:            frame.Base.HP,
		EnergyOutput:  frame.Base.EnergyOutput,
		CPUCap:        frame.Base.CPUCap,
		WeightCap:     frame.Base.WeightCap,
		HeatCap:       frame.Base.HeatCap,
		TAP:           frame.Base.TAP,
		Mobility:      frame.Base.Mobility,
		HeadArmor:     frame.Armor.Head,
		ShoulderArmor: frame.Armor.Shoulder,
		BodyArmor:     frame.Armor.Body,
		LegArmor:      frame.Armor.Leg,
		Accuracy:      BaseAccuracy,
		Evasion:       BaseEvasion,
	}

	for _, p := range parts {
		for key, delta := range p.Stats {
			if f := s.field(key); f != nil {
				*f += delta
			}
		}
		s.TotalWeight += p.Costs.Weight
		s.TotalEnergy += p.Costs.Energy
		s.TotalHeat += p.Costs.Heat
		s.TotalCPU += p.Costs.CPU
	}

	// bonuses scale the post-sum value; repeated keys compound
	for _, b := range frame.Bonuses {
		if f := s.field(b.Stat); f != nil {
			*f *= 1 + b.Value
		}
	}

	s.TotalArmor = s.HeadArmor + s.ShoulderArmor*0.5 + s.BodyArmor*1.2 + s.LegArmor
	s.DamageMitigation = Mitigation(s.TotalArmor)
	s.HeatRejection = s.Cooling - s.TotalHeat
	s.DPS = (s.RangedAtk + s.MeleeAtk) * (1 + s.Accuracy/100)

	s.IsOverweight = s.TotalWeight > s.WeightCap
	s.IsOverpowered = s.TotalEnergy > s.EnergyOutput
	s.IsOverheating = s.HeatRejection < heatTolerance
	s.IsOverloaded = s.TotalCPU > s.CPUCap
	s.IsValid = !s.IsOverweight && !s.IsOverpowered && !s.IsOverheating && !s.IsOverloaded
	return s
}

// Mitigation is the soft armor curve a/(a+200), capped at 75%.
func Mitigation(totalArmor float64) float64 {
	return math.Min(MaxMitigation, totalArmor/(totalArmor+armorKnee))
}

// Combatant projects s onto the fields combat resolution reads.
func (s Stats) Combatant(name string) Combatant {
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

// Combatant is one side of a battle.
type Combatant struct {
	Name             string  `json:"name"`
	HP               float64 `json:"hp"`
	RangedAtk        float64 `json:"rangedAtk"`
	MeleeAtk         float64 `json:"meleeAtk"`
	Accuracy         float64 `json:"accuracy"`
	Evasion          float64 `json:"evasion"`
	DamageMitigation float64 `json:"damageMitigation"`
}

// Attack is the stronger of the two attack stats.
func (c Combatant) Attack() float64 {
	if c.RangedAtk > c.MeleeAtk {
		return c.RangedAtk
	}
	return c.MeleeAtk
}
