package player

import (
	"errors"
	"reflect"
	"testing"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/gacha"
	"pgregory.net/rapid"
)

var _ gacha.Progression = (*State)(nil)

func TestDefaultState(t *testing.T) {
	s := Default()
	if s.Player.ID == "" || s.Player.Name != "PILOT" || s.Player.Level != 1 {
		t.Fatalf("profile=%+v", s.Player)
	}
	if s.Currencies[catalog.CurrencyDollars] != 10000 || s.Currencies[catalog.CurrencyMateria] != 500 {
		t.Fatalf("currencies=%v", s.Currencies)
	}
	if len(s.Inventory) != 0 {
		t.Fatalf("equipped starter parts must not also sit in inventory: %v", s.Inventory)
	}
	eq, ok := s.Equipped(StartFrame)
	if !ok || eq[catalog.SlotHead] != "VK-H1" || eq[catalog.SlotTorso] != "VK-TC" || eq[catalog.SlotRightArm] != "VK-AR" {
		t.Fatalf("starter loadout=%v", eq)
	}
	if Default().Player.ID == s.Player.ID {
		t.Fatalf("profile ids should be unique")
	}
}

func TestRemovePartDeletesLastUnit(t *testing.T) {
	s := Default()
	s.AddPart("HD-12")
	if !s.RemovePart("HD-12") {
		t.Fatalf("remove should succeed")
	}
	if _, ok := s.Inventory["HD-12"]; ok {
		t.Fatalf("zero-quantity entry must be deleted: %v", s.Inventory)
	}
	if s.RemovePart("HD-12") {
		t.Fatalf("removing an absent part must report false")
	}
}

func TestAddPartCountsCollected(t *testing.T) {
	s := Default()
	if n := s.AddPart("HD-12"); n != 1 {
		t.Fatalf("qty=%d", n)
	}
	if n := s.AddPart("HD-12"); n != 2 {
		t.Fatalf("qty=%d", n)
	}
	if s.Stats.PartsCollected != 5 {
		t.Fatalf("partsCollected=%d want 5", s.Stats.PartsCollected)
	}
}

func TestFramesAndActive(t *testing.T) {
	s := Default()
	if !s.AddFrame("HL-AF01") || s.AddFrame("HL-AF01") {
		t.Fatalf("AddFrame should be idempotent")
	}
	if eq, _ := s.Equipped("HL-AF01"); len(eq) != 0 {
		t.Fatalf("new frame should start empty: %v", eq)
	}
	if err := s.SetActiveFrame("KF-SF01"); !errors.Is(err, ErrFrameNotOwned) {
		t.Fatalf("err=%v", err)
	}
	if s.ActiveFrameID != StartFrame {
		t.Fatalf("rejected activation changed state")
	}
	if err := s.SetActiveFrame("HL-AF01"); err != nil || s.ActiveFrameID != "HL-AF01" {
		t.Fatalf("activate: %v", err)
	}
}

func TestEquipRejectionsHaveNoEffect(t *testing.T) {
	cat := catalog.MustDefault()
	s := Default()
	s.AddPart("HD-12")
	before := s.Clone()

	cases := []struct {
		name  string
		frame string
		slot  catalog.Slot
		part  string
		want  error
	}{
		{"unowned frame", "KF-SF01", catalog.SlotHead, "HD-12", ErrFrameNotOwned},
		{"bad slot", StartFrame, "tail", "HD-12", ErrUnknownSlot},
		{"unknown part", StartFrame, catalog.SlotHead, "NOPE", ErrUnknownPart},
		{"wrong slot", StartFrame, catalog.SlotLegs, "HD-12", ErrSlotMismatch},
		{"not in inventory", StartFrame, catalog.SlotHead, "KG-9", ErrPartNotInInventory},
	}
	for _, c := range cases {
		if err := s.Equip(cat, c.frame, c.slot, c.part); !errors.Is(err, c.want) {
			t.Fatalf("%s: err=%v want %v", c.name, err, c.want)
		}
		if !reflect.DeepEqual(s, before) {
			t.Fatalf("%s: state changed", c.name)
		}
	}
}

func TestEquipSwapsPreviousIntoInventory(t *testing.T) {
	cat := catalog.MustDefault()
	s := Default()
	s.AddPart("HD-12")
	collected := s.Stats.PartsCollected

	if err := s.Equip(cat, StartFrame, catalog.SlotHead, "HD-12"); err != nil {
		t.Fatal(err)
	}
	eq, _ := s.Equipped(StartFrame)
	if eq[catalog.SlotHead] != "HD-12" || s.PartCount("HD-12") != 0 || s.PartCount("VK-H1") != 1 {
		t.Fatalf("swap failed: eq=%v inv=%v", eq, s.Inventory)
	}
	if s.Stats.PartsCollected != collected {
		t.Fatalf("swapping must not count as collecting")
	}

	// re-equipping the same part is a no-op
	if err := s.Equip(cat, StartFrame, catalog.SlotHead, "HD-12"); err != nil {
		t.Fatal(err)
	}
	if eq[catalog.SlotHead] != "HD-12" || s.PartCount("HD-12") != 0 {
		t.Fatalf("self swap: eq=%v inv=%v", eq, s.Inventory)
	}
}

func TestEquipUnequipRoundTrip(t *testing.T) {
	cat := catalog.MustDefault()
	rapid.Check(t, func(t *rapid.T) {
		s := Default()
		s.AddFrame("HL-AF01")
		part := rapid.SampledFrom(cat.Parts()).Draw(t, "part")
		extra := rapid.IntRange(1, 3).Draw(t, "qty")
		for i := 0; i < extra; i++ {
			s.AddPart(part.ID)
		}
		qty := s.PartCount(part.ID)

		if err := s.Equip(cat, "HL-AF01", part.Slot, part.ID); err != nil {
			t.Fatalf("equip: %v", err)
		}
		if err := s.Unequip("HL-AF01", part.Slot); err != nil {
			t.Fatalf("unequip: %v", err)
		}
		if s.PartCount(part.ID) != qty {
			t.Fatalf("qty %d -> %d", qty, s.PartCount(part.ID))
		}
		if eq, _ := s.Equipped("HL-AF01"); eq[part.Slot] != "" {
			t.Fatalf("slot %s not empty: %v", part.Slot, eq)
		}
	})
}

func TestMissionUnlockChain(t *testing.T) {
	cat := catalog.MustDefault()
	rapid.Check(t, func(t *rapid.T) {
		s := Default()
		ms := cat.Missions()
		for _, m := range ms {
			if rapid.Bool().Draw(t, m.ID) {
				s.CompleteMission(cat, m.ID)
			}
		}
		for i, m := range ms {
			want := i == 0 || s.IsMissionCompleted(ms[i-1].ID)
			if got := s.IsMissionUnlocked(cat, m.ID); got != want {
				t.Fatalf("%s unlocked=%v want %v", m.ID, got, want)
			}
		}
	})
	if Default().IsMissionUnlocked(cat, "M99") {
		t.Fatalf("unknown mission must be locked")
	}
}

func TestCompleteMission(t *testing.T) {
	cat := catalog.MustDefault()
	s := Default()
	s.CompleteMission(cat, "M01")
	s.CompleteMission(cat, "M01")
	if !reflect.DeepEqual(s.Missions.Completed, []string{"M01"}) {
		t.Fatalf("completed=%v", s.Missions.Completed)
	}
	if s.Missions.CurrentMission != "M02" {
		t.Fatalf("current=%s", s.Missions.CurrentMission)
	}
	if s.Stats.TotalBattles != 2 || s.Stats.BattlesWon != 2 {
		t.Fatalf("stats=%+v", s.Stats)
	}
	s.RecordDefeat()
	if s.Stats.TotalBattles != 3 || s.Stats.BattlesWon != 2 {
		t.Fatalf("stats=%+v", s.Stats)
	}
}

func TestGainExpLevels(t *testing.T) {
	s := Default()
	s.GainExp(999)
	if s.Player.Level != 1 {
		t.Fatalf("level=%d", s.Player.Level)
	}
	s.GainExp(1)
	if s.Player.Level != 2 {
		t.Fatalf("level=%d", s.Player.Level)
	}
}

func TestCurrencyAndPity(t *testing.T) {
	s := Default()
	if s.SpendCurrency(catalog.CurrencyDollars, 10001) {
		t.Fatalf("overspend allowed")
	}
	if !s.SpendCurrency(catalog.CurrencyDollars, 10000) || s.Currencies[catalog.CurrencyDollars] != 0 {
		t.Fatalf("exact spend failed")
	}
	if p, th := s.PityCount("event", 25); p != 0 || th != 25 {
		t.Fatalf("new counter=%d/%d", p, th)
	}
	s.SetPityCount("standard", 4)
	if p, th := s.PityCount("standard", 99); p != 4 || th != 10 {
		t.Fatalf("stored counter=%d/%d", p, th)
	}
}
