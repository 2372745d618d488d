package combat

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/loadout"
	"pgregory.net/rapid"
)

func starterMatchup(t *testing.T) (*Simulator, Matchup) {
	t.Helper()
	cat := catalog.MustDefault()
	agg := loadout.NewAggregator(cat)
	player := agg.Frame("VK-MF01", map[catalog.Slot]string{
		catalog.SlotHead:     "VK-H1",
		catalog.SlotTorso:    "VK-TC",
		catalog.SlotRightArm: "VK-AR",
	})
	m := cat.MustMission("M01")
	return NewSimulator(cat), Matchup{
		Player:  player.Combatant("VALKAR GUARDIAN"),
		Enemy:   agg.Enemy(m).Combatant("VALKAR GUARDIAN"),
		Rewards: m.Rewards,
	}
}

func TestSimulateGoldenStarterVsM01(t *testing.T) {
	sim, m := starterMatchup(t)
	res := sim.Simulate(m, 42)

	if res.Victory {
		t.Fatalf("starter loadout should not beat M01 within the turn cap")
	}
	if res.TurnsElapsed != MaxTurns {
		t.Fatalf("turns=%d want %d", res.TurnsElapsed, MaxTurns)
	}
	if res.PlayerHPRemaining != 1216 || res.EnemyHPRemaining != 1403 {
		t.Fatalf("hp remaining=%v/%v want 1216/1403", res.PlayerHPRemaining, res.EnemyHPRemaining)
	}
	if len(res.Log) != 70 {
		t.Fatalf("log length=%d want 70", len(res.Log))
	}

	first := res.Log[3]
	if first.Type != EntryPlayer || first.Text != "[T1] Your cannon hits for 21 DMG!" || first.Damage == nil || *first.Damage != 21 {
		t.Fatalf("first strike=%+v", first)
	}
	if res.Log[4].Type != EntryMiss || res.Log[4].Damage != nil {
		t.Fatalf("enemy turn 1 should miss: %+v", res.Log[4])
	}
	if got := res.Log[13]; got.Type != EntryStatus || got.Text != "--- HP: You 1512 | Enemy 1701 ---" {
		t.Fatalf("turn 5 status=%+v", got)
	}
	if res.Log.Count(EntryStatus) != 6 {
		t.Fatalf("status lines=%d want 6", res.Log.Count(EntryStatus))
	}
	if last := res.Log[len(res.Log)-1]; last.Type != EntryDefeat {
		t.Fatalf("last entry=%+v", last)
	}
	if len(res.Rewards.Parts) != 0 || res.Rewards.Dollars != 0 || res.Rewards.Materia != 0 {
		t.Fatalf("defeat must not grant rewards: %+v", res.Rewards)
	}
}

func TestSimulateOpeningEntries(t *testing.T) {
	sim, m := starterMatchup(t)
	res := sim.Simulate(m, 7)
	if res.Log[0].Type != EntryStart || res.Log[0].Detail != "VALKAR GUARDIAN vs VALKAR GUARDIAN" {
		t.Fatalf("start entry=%+v", res.Log[0])
	}
	if res.Log[1].Text != "[PLAYER] HP: 1550 | ATK: 36" {
		t.Fatalf("player info=%q", res.Log[1].Text)
	}
	if res.Log[2].Text != "[ENEMY] HP: 1782 | ATK: 40" {
		t.Fatalf("enemy info=%q", res.Log[2].Text)
	}
}

func TestSimulateVictoryWithDrop(t *testing.T) {
	sim, m := starterMatchup(t)
	m.Player = loadout.Combatant{Name: "ACE", HP: 3000, RangedAtk: 2000, Accuracy: 200, Evasion: 10, DamageMitigation: 0.5}

	res := sim.Simulate(m, 1)
	if !res.Victory || res.TurnsElapsed != 2 {
		t.Fatalf("victory=%v turns=%d", res.Victory, res.TurnsElapsed)
	}
	if res.EnemyHPRemaining != 0 || res.PlayerHPRemaining != 2977 {
		t.Fatalf("hp=%v/%v", res.PlayerHPRemaining, res.EnemyHPRemaining)
	}
	want := Rewards{Dollars: 500, Materia: 30, Parts: []string{"KG-9"}}
	if !reflect.DeepEqual(res.Rewards, want) {
		t.Fatalf("rewards=%+v want %+v", res.Rewards, want)
	}
	types := []EntryType{EntryStart, EntryInfo, EntryInfo, EntryPlayer, EntryEnemy, EntryPlayer, EntryVictory, EntryReward}
	if len(res.Log) != len(types) {
		t.Fatalf("log=%+v", res.Log)
	}
	for i, ty := range types {
		if res.Log[i].Type != ty {
			t.Fatalf("entry %d type=%s want %s", i, res.Log[i].Type, ty)
		}
	}
	if res.Log[7].Text != "REWARDS: $500 | 30 Materia | Part: BUNKER HEAD" {
		t.Fatalf("reward text=%q", res.Log[7].Text)
	}
}

func TestEnemyDoesNotStrikeOnKillingTurn(t *testing.T) {
	sim, m := starterMatchup(t)
	m.Player = loadout.Combatant{Name: "ACE", HP: 10, RangedAtk: 1e6, Accuracy: 1000}
	m.Enemy.Accuracy = 1000
	res := sim.Simulate(m, 3)
	if !res.Victory || res.TurnsElapsed != 1 || res.PlayerHPRemaining != 10 {
		t.Fatalf("kill on turn 1 expected without reply: %+v", res)
	}
}

func TestNegativeHitChanceNeverHits(t *testing.T) {
	sim, m := starterMatchup(t)
	m.Enemy.Evasion = 250
	m.Player.Evasion = 250
	res := sim.Simulate(m, 99)
	if res.Log.Count(EntryPlayer)+res.Log.Count(EntryEnemy) != 0 {
		t.Fatalf("negative hit chance must always miss")
	}
	if res.Victory || res.TurnsElapsed != MaxTurns {
		t.Fatalf("stalemate should run to the cap as a defeat")
	}
}

func TestMissionRewardPartsAreGranted(t *testing.T) {
	sim, m := starterMatchup(t)
	m.Player = loadout.Combatant{Name: "ACE", HP: 3000, RangedAtk: 2000, Accuracy: 200, Evasion: 10, DamageMitigation: 0.5}
	m.Rewards.Parts = []string{"VK-VT"}
	res := sim.Simulate(m, 2)
	if len(res.Rewards.Parts) == 0 || res.Rewards.Parts[0] != "VK-VT" {
		t.Fatalf("fixed reward part missing: %+v", res.Rewards)
	}
}

func genCombatant(t *rapid.T, name string) loadout.Combatant {
	return loadout.Combatant{
		Name:             name,
		HP:               float64(rapid.IntRange(0, 5000).Draw(t, name+"-hp")),
		RangedAtk:        float64(rapid.IntRange(0, 400).Draw(t, name+"-ra")),
		MeleeAtk:         float64(rapid.IntRange(0, 400).Draw(t, name+"-me")),
		Accuracy:         float64(rapid.IntRange(0, 200).Draw(t, name+"-acc")),
		Evasion:          float64(rapid.IntRange(0, 120).Draw(t, name+"-eva")),
		DamageMitigation: rapid.Float64Range(0, 0.75).Draw(t, name+"-mit"),
	}
}

func TestSimulateProperties(t *testing.T) {
	sim := NewSimulator(catalog.MustDefault())
	rapid.Check(t, func(t *rapid.T) {
		m := Matchup{
			Player:  genCombatant(t, "p"),
			Enemy:   genCombatant(t, "e"),
			Rewards: catalog.MissionRewards{Dollars: rapid.IntRange(0, 10000).Draw(t, "dollars")},
		}
		seed := rapid.Int64().Draw(t, "seed")

		a, b := sim.Simulate(m, seed), sim.Simulate(m, seed)
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		if string(ja) != string(jb) {
			t.Fatalf("same seed produced different results")
		}
		if a.TurnsElapsed > MaxTurns {
			t.Fatalf("turns=%d over cap", a.TurnsElapsed)
		}
		if a.Victory != (a.EnemyHPRemaining <= 0) {
			t.Fatalf("victory=%v with enemy hp %v", a.Victory, a.EnemyHPRemaining)
		}
		for _, e := range a.Log {
			if e.Damage != nil && *e.Damage < 0 {
				t.Fatalf("negative damage in %+v", e)
			}
		}
		if a.Victory {
			if a.Rewards.Materia < 10 || a.Rewards.Materia > 50 || len(a.Rewards.Parts) > 1 {
				t.Fatalf("rewards out of range: %+v", a.Rewards)
			}
		}
	})
}

func TestRunBatchIsScheduleIndependent(t *testing.T) {
	sim, m := starterMatchup(t)
	m.Player.RangedAtk = 120

	one, err := RunBatch(context.Background(), sim, m, 1000, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	many, err := RunBatch(context.Background(), sim, m, 1000, 64, 8)
	if err != nil {
		t.Fatal(err)
	}
	if one != many {
		t.Fatalf("batch stats depend on workers: %+v vs %+v", one, many)
	}
	if one.Trials != 64 || one.Wins+one.TurnCapBattles > 64 {
		t.Fatalf("bad counts: %+v", one)
	}
}

func TestRunBatchHonoursCancel(t *testing.T) {
	sim, m := starterMatchup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunBatch(ctx, sim, m, 1, 32, 2); err == nil {
		t.Fatalf("expected context error")
	}
}
