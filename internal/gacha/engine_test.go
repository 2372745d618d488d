package gacha_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/gacha"
	"github.com/xtding233/formula-front/internal/gacha/mocks"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"
)

// memProg is a small in-memory Progression for state assertions.
type memProg struct {
	funds  map[catalog.Currency]int
	parts  map[string]int
	frames map[string]bool
	pity   map[string][2]int
	pulls  int
}

func newMemProg(dollars int) *memProg {
	return &memProg{
		funds:  map[catalog.Currency]int{catalog.CurrencyDollars: dollars},
		parts:  map[string]int{},
		frames: map[string]bool{"VK-MF01": true},
		pity:   map[string][2]int{},
	}
}

func (m *memProg) CanAfford(c catalog.Currency, n int) bool { return m.funds[c] >= n }

func (m *memProg) SpendCurrency(c catalog.Currency, n int) bool {
	if m.funds[c] < n {
		return false
	}
	m.funds[c] -= n
	return true
}

func (m *memProg) AddCurrency(c catalog.Currency, n int) { m.funds[c] += n }

func (m *memProg) AddPart(id string) int {
	m.parts[id]++
	return m.parts[id]
}

func (m *memProg) AddFrame(id string) bool {
	if m.frames[id] {
		return false
	}
	m.frames[id] = true
	return true
}

func (m *memProg) PityCount(id string, def int) (int, int) {
	p, ok := m.pity[id]
	if !ok {
		p = [2]int{0, def}
		m.pity[id] = p
	}
	return p[0], p[1]
}

func (m *memProg) SetPityCount(id string, n int) {
	p := m.pity[id]
	p[0] = n
	m.pity[id] = p
}

func (m *memProg) RecordPull() { m.pulls++ }

func ids(rs []gacha.PullResult) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestPullGoldenStandardBanner(t *testing.T) {
	eng := gacha.NewEngine(catalog.MustDefault())
	prog := newMemProg(10000)

	res, err := eng.Pull(prog, "standard", 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"VK-TC", "VK-AR", "VK-H1", "VK-AR", "ENG-A1", "VK-TC", "VK-H1", "VK-TC", "HL-S2", "HL-AC"}
	if got := ids(res); !reflect.DeepEqual(got, want) {
		t.Fatalf("ids=%v want %v", got, want)
	}
	for i, r := range res {
		if r.IsPity != (i == 9) {
			t.Fatalf("pull %d isPity=%v", i, r.IsPity)
		}
	}
	if !res[0].IsNew || res[5].IsNew || res[3].IsNew {
		t.Fatalf("isNew should track first copies: %+v", res)
	}
	if res[9].Rarity != catalog.RarityRare || res[9].Slot != catalog.SlotTorso {
		t.Fatalf("pity pull=%+v", res[9])
	}
	if prog.funds[catalog.CurrencyDollars] != 5000 {
		t.Fatalf("dollars=%d want 5000", prog.funds[catalog.CurrencyDollars])
	}
	if prog.pity["standard"][0] != 0 || prog.pulls != 10 {
		t.Fatalf("pity=%v pulls=%d", prog.pity["standard"], prog.pulls)
	}
	if prog.parts["VK-TC"] != 3 {
		t.Fatalf("VK-TC qty=%d", prog.parts["VK-TC"])
	}
}

func TestPullResumesPityCounter(t *testing.T) {
	eng := gacha.NewEngine(catalog.MustDefault())
	prog := newMemProg(10000)
	prog.pity["standard"] = [2]int{8, 10}

	res, err := eng.Pull(prog, "standard", 3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(res); !reflect.DeepEqual(got, []string{"VK-H1", "HD-12", "CHIP-B1"}) {
		t.Fatalf("ids=%v", got)
	}
	if res[0].IsPity || !res[1].IsPity || res[2].IsPity {
		t.Fatalf("second pull should be the forced one: %+v", res)
	}
	if prog.pity["standard"][0] != 1 {
		t.Fatalf("counter=%d want 1", prog.pity["standard"][0])
	}
}

func TestFrameBannerDuplicateCompensates(t *testing.T) {
	eng := gacha.NewEngine(catalog.MustDefault())
	prog := newMemProg(30000)

	res, err := eng.Pull(prog, "frame", 10, 42)
	if err != nil {
		t.Fatal(err)
	}
	// HL-AF01 eight times, VK-MF01 already owned, KF-SF01 once. Single-item
	// rarity pools still consume their pick draw, so the order is fixed.
	want := []string{"HL-AF01", "HL-AF01", "HL-AF01", "HL-AF01", "HL-AF01", "VK-MF01", "HL-AF01", "KF-SF01", "HL-AF01", "HL-AF01"}
	for i, r := range res {
		if r.ID != want[i] {
			t.Fatalf("pull %d: got %s want %s", i, r.ID, want[i])
		}
	}
	dups := 0
	for _, r := range res {
		if !r.IsFrame || r.Slot != "" {
			t.Fatalf("frame result=%+v", r)
		}
		if !r.IsNew {
			dups++
		}
	}
	if dups != 8 {
		t.Fatalf("duplicates=%d want 8", dups)
	}
	if got := prog.funds[catalog.CurrencyMateria]; got != 8*gacha.DuplicateFrameMateria {
		t.Fatalf("materia=%d", got)
	}
	if !prog.frames["HL-AF01"] || !prog.frames["KF-SF01"] {
		t.Fatalf("frames=%v", prog.frames)
	}
}

func TestPullRejections(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := gacha.NewEngine(catalog.MustDefault())

	// No expectations: the engine must not touch progression.
	idle := mocks.NewMockProgression(ctrl)
	if _, err := eng.Pull(idle, "nope", 1, 1); !errors.Is(err, gacha.ErrInvalidBanner) {
		t.Fatalf("err=%v want ErrInvalidBanner", err)
	}
	for _, n := range []int{0, -1, gacha.MaxPullCount + 1} {
		if _, err := eng.Pull(idle, "standard", n, 1); !errors.Is(err, gacha.ErrInvalidCount) {
			t.Fatalf("count %d: err=%v", n, err)
		}
	}

	broke := mocks.NewMockProgression(ctrl)
	broke.EXPECT().CanAfford(catalog.CurrencyDollars, 5000).Return(false)
	if _, err := eng.Pull(broke, "standard", 10, 1); !errors.Is(err, gacha.ErrInsufficientFunds) {
		t.Fatalf("err=%v want ErrInsufficientFunds", err)
	}
}

func TestPullDebitsBeforeResolving(t *testing.T) {
	ctrl := gomock.NewController(t)
	prog := mocks.NewMockProgression(ctrl)

	gomock.InOrder(
		prog.EXPECT().CanAfford(catalog.CurrencyDollars, 1500).Return(true),
		prog.EXPECT().SpendCurrency(catalog.CurrencyDollars, 1500).Return(true),
		prog.EXPECT().PityCount("rare", 10).Return(0, 10),
		prog.EXPECT().AddPart(gomock.Any()).Return(1),
		prog.EXPECT().RecordPull(),
		prog.EXPECT().SetPityCount("rare", 1),
	)

	res, err := gacha.NewEngine(catalog.MustDefault()).Pull(prog, "rare", 1, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0].ID != "HL-PL" || !res[0].IsNew {
		t.Fatalf("res=%+v", res)
	}
}

func TestInsufficientFundsLeavesStateUnchanged(t *testing.T) {
	eng := gacha.NewEngine(catalog.MustDefault())
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 20).Draw(t, "count")
		funds := rapid.IntRange(0, 500*count-1).Draw(t, "funds")
		prog := newMemProg(funds)
		prog.pity["standard"] = [2]int{rapid.IntRange(0, 9).Draw(t, "pulls"), 10}
		before := *prog
		beforePity := prog.pity["standard"]

		if _, err := eng.Pull(prog, "standard", count, rapid.Int64().Draw(t, "seed")); !errors.Is(err, gacha.ErrInsufficientFunds) {
			t.Fatalf("err=%v", err)
		}
		if prog.funds[catalog.CurrencyDollars] != funds || len(prog.parts) != 0 || prog.pulls != before.pulls {
			t.Fatalf("state mutated: %+v", prog)
		}
		if prog.pity["standard"] != beforePity {
			t.Fatalf("pity mutated: %v -> %v", beforePity, prog.pity["standard"])
		}
	})
}

// mixedCatalog adds a banner whose pool holds one part of every rarity, so
// the rarity of a result reflects the rarity that was rolled.
func mixedCatalog(t interface{ Fatalf(string, ...any) }) *catalog.Catalog {
	base := catalog.MustDefault()
	banners := append([]catalog.Banner(nil), base.Banners()...)
	banners = append(banners, catalog.Banner{
		ID:   "mixed",
		Name: "MIXED",
		Cost: 100,
		Pity: 10,
		Rates: []catalog.RarityRate{
			{Rarity: catalog.RarityCommon, Rate: 0.97},
			{Rarity: catalog.RarityRare, Rate: 0.01},
			{Rarity: catalog.RarityEpic, Rate: 0.01},
			{Rarity: catalog.RarityLegendary, Rate: 0.01},
		},
		Pool: []string{"VK-H1", "HD-12", "HV-33", "KG-9"},
	})
	c, err := catalog.New(catalog.Data{
		Version:  "test",
		Frames:   base.Frames(),
		Parts:    base.Parts(),
		Missions: base.Missions(),
		Banners:  banners,
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func TestTenPullHasExactlyOneForcedPull(t *testing.T) {
	eng := gacha.NewEngine(mixedCatalog(t))
	rapid.Check(t, func(t *rapid.T) {
		prog := newMemProg(1000)
		res, err := eng.Pull(prog, "mixed", 10, rapid.Int64().Draw(t, "seed"))
		if err != nil {
			t.Fatal(err)
		}
		forced := 0
		for i, r := range res {
			if !r.IsPity {
				continue
			}
			forced++
			if i != 9 {
				t.Fatalf("forced pull at index %d", i)
			}
			if r.Rarity == catalog.RarityCommon {
				t.Fatalf("forced pull was common: %+v", r)
			}
		}
		if forced != 1 {
			t.Fatalf("forced pulls=%d want 1", forced)
		}
	})
}

func TestRunMonteCarlo(t *testing.T) {
	eng := gacha.NewEngine(catalog.MustDefault())
	p := gacha.SimParams{Banner: "rare", Trials: 40, Budget: 30, BaseSeed: 9, Workers: 1}

	a, err := gacha.RunMonteCarlo(context.Background(), eng, p)
	if err != nil {
		t.Fatal(err)
	}
	p.Workers = 6
	b, err := gacha.RunMonteCarlo(context.Background(), eng, p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("report depends on workers")
	}
	sum := 0.0
	for _, v := range a.RarityShare {
		sum += v
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("rarity shares sum to %v", sum)
	}
	// every 10th single pull is forced
	if a.PityShare < 0.099 || a.PityShare > 0.101 {
		t.Fatalf("pity share=%v", a.PityShare)
	}
	if a.RarityShare[catalog.RarityCommon] != 0 {
		t.Fatalf("rare banner has no commons")
	}
	if len(a.FirstLegendary.Samples)+a.NoLegendary != p.Trials {
		t.Fatalf("trial accounting: %d + %d", len(a.FirstLegendary.Samples), a.NoLegendary)
	}

	if _, err := gacha.RunMonteCarlo(context.Background(), eng, gacha.SimParams{Banner: "nope", Trials: 1, Budget: 1}); !errors.Is(err, gacha.ErrInvalidBanner) {
		t.Fatalf("err=%v", err)
	}
}
