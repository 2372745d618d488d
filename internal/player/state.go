package player

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/xtding233/formula-front/internal/catalog"
)

// SchemaVersion is written into every save.
const SchemaVersion = 1

// Starting values for a new pilot.
const (
	StartFrame       = "VK-MF01"
	StartDollars     = 10000
	StartMateria     = 500
	StartMission     = "M01"
	DefaultPity      = 10
	defaultPilotName = "PILOT"
)

type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	Exp   int    `json:"exp"`
}

// OwnedFrame maps slots to equipped part ids. Empty slots are absent.
type OwnedFrame struct {
	ID            string                  `json:"id"`
	EquippedParts map[catalog.Slot]string `json:"equippedParts"`
}

func newOwnedFrame(id string) *OwnedFrame {
	return &OwnedFrame{ID: id, EquippedParts: map[catalog.Slot]string{}}
}

type Missions struct {
	Completed      []string `json:"completed"`
	CurrentMission string   `json:"currentMission"`
}

// PityCounter tracks pulls since the last forced pull on one banner.
type PityCounter struct {
	Pulls int `json:"pulls"`
	Pity  int `json:"pity"`
}

type Stats struct {
	TotalBattles   int `json:"totalBattles"`
	BattlesWon     int `json:"battlesWon"`
	TotalPulls     int `json:"totalPulls"`
	PartsCollected int `json:"partsCollected"`
}

// State is the persisted aggregate root. It is not safe for concurrent use;
// callers serialise access.
type State struct {
	Version       int                      `json:"version"`
	Player        Profile                  `json:"player"`
	Currencies    map[catalog.Currency]int `json:"currencies"`
	ActiveFrameID string                   `json:"activeFrameId"`
	OwnedFrames   map[string]*OwnedFrame   `json:"ownedFrames"`
	// Inventory holds unequipped units only; zero entries are deleted.
	Inventory map[string]int         `json:"inventory"`
	Missions  Missions               `json:"missions"`
	Gacha     map[string]PityCounter `json:"gacha"`
	Stats     Stats                  `json:"stats"`
}

// Default returns a fresh pilot: the starter frame with three parts
// equipped, an empty inventory and a new profile id.
func Default() *State {
	start := newOwnedFrame(StartFrame)
	start.EquippedParts[catalog.SlotHead] = "VK-H1"
	start.EquippedParts[catalog.SlotTorso] = "VK-TC"
	start.EquippedParts[catalog.SlotRightArm] = "VK-AR"

	return &State{
		Version: SchemaVersion,
		Player:  Profile{ID: uuid.NewString(), Name: defaultPilotName, Level: 1},
		Currencies: map[catalog.Currency]int{
			catalog.CurrencyDollars: StartDollars,
			catalog.CurrencyMateria: StartMateria,
		},
		ActiveFrameID: StartFrame,
		OwnedFrames:   map[string]*OwnedFrame{StartFrame: start},
		Inventory:     map[string]int{},
		Missions:      Missions{Completed: []string{}, CurrentMission: StartMission},
		Gacha: map[string]PityCounter{
			"standard": {Pity: DefaultPity},
			"rare":     {Pity: DefaultPity},
			"frame":    {Pity: DefaultPity},
		},
		Stats: Stats{PartsCollected: 3},
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Currencies = maps.Clone(s.Currencies)
	c.Inventory = maps.Clone(s.Inventory)
	c.Gacha = maps.Clone(s.Gacha)
	c.Missions.Completed = slices.Clone(s.Missions.Completed)
	c.OwnedFrames = make(map[string]*OwnedFrame, len(s.OwnedFrames))
	for id, f := range s.OwnedFrames {
		c.OwnedFrames[id] = &OwnedFrame{ID: f.ID, EquippedParts: maps.Clone(f.EquippedParts)}
	}
	return &c
}

// normalize repairs what a hand-edited or partial save can break: nil maps,
// non-positive inventory entries, frames without a slot map and
// counters without a threshold.
func (s *State) normalize() {
	if s.Currencies == nil {
		s.Currencies = map[catalog.Currency]int{}
	}
	if s.Inventory == nil {
		s.Inventory = map[string]int{}
	}
	for id, n := range s.Inventory {
		if n <= 0 {
			delete(s.Inventory, id)
		}
	}
	if s.OwnedFrames == nil {
		s.OwnedFrames = map[string]*OwnedFrame{}
	}
	for id, f := range s.OwnedFrames {
		if f == nil {
			f = newOwnedFrame(id)
			s.OwnedFrames[id] = f
		}
		if f.ID == "" {
			f.ID = id
		}
		if f.EquippedParts == nil {
			f.EquippedParts = map[catalog.Slot]string{}
		}
		for slot, part := range f.EquippedParts {
			if part == "" {
				delete(f.EquippedParts, slot)
			}
		}
	}
	if s.Gacha == nil {
		s.Gacha = map[string]PityCounter{}
	}
	for id, pc := range s.Gacha {
		if pc.Pity <= 0 {
			pc.Pity = DefaultPity
			s.Gacha[id] = pc
		}
	}
	if s.Missions.Completed == nil {
		s.Missions.Completed = []string{}
	}
}
