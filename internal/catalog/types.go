// types.go
package catalog

// Rarity tiers, lowest first.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists every tier in ascending order.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Slot is an equipment position on a frame.
type Slot string

const (
	SlotHead          Slot = "head"
	SlotTorso         Slot = "torso"
	SlotLegs          Slot = "legs"
	SlotLeftArm       Slot = "leftArm"
	SlotRightArm      Slot = "rightArm"
	SlotLeftShoulder  Slot = "leftShoulder"
	SlotRightShoulder Slot = "rightShoulder"
	SlotEngine        Slot = "engine"
	SlotCooling       Slot = "cooling"
	SlotChip          Slot = "chip"
)

// Slots lists every slot in display order.
var Slots = []Slot{
	SlotHead, SlotTorso, SlotLegs, SlotLeftArm, SlotRightArm,
	SlotLeftShoulder, SlotRightShoulder, SlotEngine, SlotCooling, SlotChip,
}

func (s Slot) Valid() bool {
	for _, v := range Slots {
		if v == s {
			return true
		}
	}
	return false
}

// Currency names a player balance.
type Currency string

const (
	CurrencyDollars Currency = "dollars"
	CurrencyMateria Currency = "materia"
)

type BaseStats struct {
	HP           float64 `yaml:"hp" json:"hp"`
	EnergyOutput float64 `yaml:"energy_output" json:"energyOutput"`
	CPUCap       float64 `yaml:"cpu_cap" json:"cpuCap"`
	WeightCap    float64 `yaml:"weight_cap" json:"weightCap"`
	HeatCap      float64 `yaml:"heat_cap" json:"heatCap"`
	TAP          float64 `yaml:"tap" json:"tap"`
	Mobility     float64 `yaml:"mobility" json:"mobility"`
}

type Armor struct {
	Head     float64 `yaml:"head" json:"head"`
	Shoulder float64 `yaml:"shoulder" json:"shoulder"`
	Body     float64 `yaml:"body" json:"body"`
	Leg      float64 `yaml:"leg" json:"leg"`
}

// Bonus scales one aggregated stat by (1 + Value).
type Bonus struct {
	Stat  string  `yaml:"stat" json:"stat"`
	Value float64 `yaml:"value" json:"value"`
}

type Frame struct {
	ID           string    `yaml:"id" json:"id"`
	Name         string    `yaml:"name" json:"name"`
	Manufacturer string    `yaml:"manufacturer" json:"manufacturer"`
	Rarity       Rarity    `yaml:"rarity" json:"rarity"`
	Description  string    `yaml:"description,omitempty" json:"description,omitempty"`
	Base         BaseStats `yaml:"base_stats" json:"baseStats"`
	Armor        Armor     `yaml:"armor" json:"armor"`
	Bonuses      []Bonus   `yaml:"bonuses,omitempty" json:"bonuses,omitempty"`
}

// Costs is what a part draws from the frame's budgets. Heat and energy may be
// negative on cooling and engine parts.
type Costs struct {
	Energy float64 `yaml:"energy" json:"energy"`
	Heat   float64 `yaml:"heat" json:"heat"`
	CPU    float64 `yaml:"cpu" json:"cpu"`
	Weight float64 `yaml:"weight" json:"weight"`
}

type Part struct {
	ID           string             `yaml:"id" json:"id"`
	Slot         Slot               `yaml:"slot" json:"slot"`
	Name         string             `yaml:"name" json:"name"`
	Manufacturer string             `yaml:"manufacturer" json:"manufacturer"`
	Rarity       Rarity             `yaml:"rarity" json:"rarity"`
	Stats        map[string]float64 `yaml:"stats,omitempty" json:"stats,omitempty"` // additive deltas, keyed by stat name
	Costs        Costs              `yaml:"costs" json:"costs"`
	Weapon       bool               `yaml:"weapon,omitempty" json:"weapon,omitempty"`
}

type MissionRewards struct {
	Dollars int      `yaml:"dollars" json:"dollars"`
	Exp     int      `yaml:"exp,omitempty" json:"exp,omitempty"`
	Parts   []string `yaml:"parts,omitempty" json:"parts,omitempty"`
}

type Mission struct {
	ID          string         `yaml:"id" json:"id"`
	Chapter     int            `yaml:"chapter" json:"chapter"`
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Difficulty  int            `yaml:"difficulty" json:"difficulty"`
	EnemyFrame  string         `yaml:"enemy_frame" json:"enemyFrame"`
	EnemyParts  []string       `yaml:"enemy_parts" json:"enemyParts"`
	Rewards     MissionRewards `yaml:"rewards" json:"rewards"`
}

// ScalePercent is the difficulty multiplier in integer percent: 100 + 15*difficulty.
func (m Mission) ScalePercent() int {
	return 100 + 15*m.Difficulty
}

type RarityRate struct {
	Rarity Rarity  `yaml:"rarity" json:"rarity"`
	Rate   float64 `yaml:"rate" json:"rate"`
}

type Banner struct {
	ID          string       `yaml:"id" json:"id"`
	Name        string       `yaml:"name" json:"name"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Cost        int          `yaml:"cost" json:"cost"`
	Currency    Currency     `yaml:"currency,omitempty" json:"currency"`
	Rates       []RarityRate `yaml:"rates" json:"rates"` // walked in declaration order
	Pool        []string     `yaml:"pool" json:"pool"`
	Pity        int          `yaml:"pity" json:"pity"`
	FrameBanner bool         `yaml:"frame_banner,omitempty" json:"frameBanner,omitempty"`
}

// TotalCost is the price of count pulls.
func (b Banner) TotalCost(count int) int {
	if count <= 0 {
		return 0
	}
	return b.Cost * count
}

// Data is the on-disk catalog document.
type Data struct {
	Version  string    `yaml:"version"`
	Notes    string    `yaml:"notes,omitempty"`
	Frames   []Frame   `yaml:"frames"`
	Parts    []Part    `yaml:"parts"`
	Missions []Mission `yaml:"missions"`
	Banners  []Banner  `yaml:"banners"`
}
