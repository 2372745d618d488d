package player

import (
	"errors"
	"slices"

	"github.com/xtding233/formula-front/internal/catalog"
)

var (
	ErrFrameNotOwned      = errors.New("frame not owned")
	ErrUnknownSlot        = errors.New("unknown slot")
	ErrUnknownPart        = errors.New("unknown part")
	ErrPartNotInInventory = errors.New("part not in inventory")
	ErrSlotMismatch       = errors.New("part does not fit slot")
)

// ExpPerLevel is the experience needed for each level after the first.
const ExpPerLevel = 1000

func (s *State) CanAfford(c catalog.Currency, amount int) bool {
	return s.Currencies[c] >= amount
}

// SpendCurrency debits amount if affordable and reports whether it did.
func (s *State) SpendCurrency(c catalog.Currency, amount int) bool {
	if !s.CanAfford(c, amount) {
		return false
	}
	s.Currencies[c] -= amount
	return true
}

func (s *State) AddCurrency(c catalog.Currency, amount int) {
	s.Currencies[c] += amount
}

// AddPart acquires one unit and returns the resulting quantity.
func (s *State) AddPart(id string) int {
	s.Stats.PartsCollected++
	return s.stashPart(id)
}

// stashPart moves a unit into inventory without counting it as collected.
func (s *State) stashPart(id string) int {
	s.Inventory[id]++
	return s.Inventory[id]
}

// RemovePart takes one unit out of inventory. The last unit deletes the
// entry. It reports false when there is nothing to remove.
func (s *State) RemovePart(id string) bool {
	n := s.Inventory[id]
	if n <= 0 {
		return false
	}
	if n == 1 {
		delete(s.Inventory, id)
	} else {
		s.Inventory[id] = n - 1
	}
	return true
}

func (s *State) PartCount(id string) int { return s.Inventory[id] }

// AddFrame grants a frame with every slot empty. It reports false and
// changes nothing if the frame is already owned.
func (s *State) AddFrame(id string) bool {
	if _, ok := s.OwnedFrames[id]; ok {
		return false
	}
	s.OwnedFrames[id] = newOwnedFrame(id)
	return true
}

func (s *State) OwnsFrame(id string) bool {
	_, ok := s.OwnedFrames[id]
	return ok
}

func (s *State) SetActiveFrame(id string) error {
	if !s.OwnsFrame(id) {
		return ErrFrameNotOwned
	}
	s.ActiveFrameID = id
	return nil
}

// Equip puts partID into slot on an owned frame. A part already in that slot
// goes back to inventory first. An empty partID unequips. Every check runs
// before any change, so a rejected call leaves s untouched.
func (s *State) Equip(cat *catalog.Catalog, frameID string, slot catalog.Slot, partID string) error {
	f, ok := s.OwnedFrames[frameID]
	if !ok {
		return ErrFrameNotOwned
	}
	if !slot.Valid() {
		return ErrUnknownSlot
	}
	prev := f.EquippedParts[slot]

	if partID != "" {
		p, ok := cat.Part(partID)
		if !ok {
			return ErrUnknownPart
		}
		if p.Slot != slot {
			return ErrSlotMismatch
		}
		avail := s.Inventory[partID]
		if prev == partID {
			avail++
		}
		if avail < 1 {
			return ErrPartNotInInventory
		}
	}

	if prev != "" {
		s.stashPart(prev)
		delete(f.EquippedParts, slot)
	}
	if partID != "" {
		s.RemovePart(partID)
		f.EquippedParts[slot] = partID
	}
	return nil
}

// Unequip returns whatever is in slot to inventory.
func (s *State) Unequip(frameID string, slot catalog.Slot) error {
	return s.Equip(nil, frameID, slot, "")
}

// Equipped returns the slot mapping of an owned frame.
func (s *State) Equipped(frameID string) (map[catalog.Slot]string, bool) {
	f, ok := s.OwnedFrames[frameID]
	if !ok {
		return nil, false
	}
	return f.EquippedParts, true
}

func (s *State) IsMissionCompleted(id string) bool {
	return slices.Contains(s.Missions.Completed, id)
}

// IsMissionUnlocked: the first mission always is; any other needs its
// predecessor in catalog order completed.
func (s *State) IsMissionUnlocked(cat *catalog.Catalog, id string) bool {
	i := cat.MissionIndex(id)
	switch {
	case i < 0:
		return false
	case i == 0:
		return true
	}
	return s.IsMissionCompleted(cat.Missions()[i-1].ID)
}

// CompleteMission records a won battle. The completed set is idempotent; the
// counters are not. The current mission advances past id on first clear.
func (s *State) CompleteMission(cat *catalog.Catalog, id string) {
	if !s.IsMissionCompleted(id) {
		s.Missions.Completed = append(s.Missions.Completed, id)
		if i := cat.MissionIndex(id); i >= 0 && i+1 < len(cat.Missions()) {
			s.Missions.CurrentMission = cat.Missions()[i+1].ID
		}
	}
	s.Stats.TotalBattles++
	s.Stats.BattlesWon++
}

// RecordDefeat counts a lost battle.
func (s *State) RecordDefeat() {
	s.Stats.TotalBattles++
}

// GainExp credits experience and recomputes the level.
func (s *State) GainExp(n int) {
	s.Player.Exp += n
	s.Player.Level = 1 + s.Player.Exp/ExpPerLevel
}

// PityCount returns the counter for bannerID, creating it with
// defaultThreshold if absent or unset.
func (s *State) PityCount(bannerID string, defaultThreshold int) (int, int) {
	pc, ok := s.Gacha[bannerID]
	if !ok || pc.Pity <= 0 {
		pc.Pity = defaultThreshold
		s.Gacha[bannerID] = pc
	}
	return pc.Pulls, pc.Pity
}

func (s *State) SetPityCount(bannerID string, pulls int) {
	pc := s.Gacha[bannerID]
	pc.Pulls = pulls
	s.Gacha[bannerID] = pc
}

func (s *State) RecordPull() { s.Stats.TotalPulls++ }
