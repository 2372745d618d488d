package combat

import (
	"fmt"
	"math"
	"strconv"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/loadout"
	"github.com/xtding233/formula-front/internal/rng"
)

const (
	// MaxTurns bounds every battle; an undecided battle is a defeat.
	MaxTurns = 30
	// statusEvery is the turn interval for HP status lines.
	statusEvery = 5

	materiaMin = 10
	materiaMax = 50
	dropChance = 0.3
)

// weaponWords is cosmetic flavour for player hits, unrelated to the loadout.
var weaponWords = [...]string{"rifle", "cannon", "laser", "blade"}

type Rewards struct {
	Dollars int      `json:"dollars"`
	Materia int      `json:"materia"`
	Parts   []string `json:"parts"`
}

type Result struct {
	Victory           bool    `json:"victory"`
	Log               Log     `json:"log"`
	Rewards           Rewards `json:"rewards"`
	TurnsElapsed      int     `json:"turns"`
	PlayerHPRemaining float64 `json:"playerHpRemaining"`
	EnemyHPRemaining  float64 `json:"enemyHpRemaining"`
}

// Matchup is everything a battle needs besides the seed.
type Matchup struct {
	Player  loadout.Combatant
	Enemy   loadout.Combatant
	Rewards catalog.MissionRewards
}

// Simulator resolves battles. It holds only the immutable drop pool, so one
// Simulator may serve concurrent calls.
type Simulator struct {
	dropPool []catalog.Part
}

// NewSimulator builds a simulator whose part drops are drawn uniformly from
// every part in cat, in catalog order.
func NewSimulator(cat *catalog.Catalog) *Simulator {
	return &Simulator{dropPool: cat.Parts()}
}

// Simulate runs one battle. It is a pure function of m and seed.
func (s *Simulator) Simulate(m Matchup, seed int64) Result {
	r := rng.NewLCG(seed)
	p, e := m.Player, m.Enemy
	playerHP, enemyHP := p.HP, e.HP

	var log Log
	log = append(log, Entry{
		Type:   EntryStart,
		Text:   "BATTLE INITIATED",
		Detail: fmt.Sprintf("%s vs %s", p.Name, e.Name),
	})
	log.add(EntryInfo, fmt.Sprintf("[PLAYER] HP: %s | ATK: %d", num(playerHP), int(math.Floor(p.RangedAtk+p.MeleeAtk))))
	log.add(EntryInfo, fmt.Sprintf("[ENEMY] HP: %s | ATK: %d", num(enemyHP), int(math.Floor(e.RangedAtk+e.MeleeAtk))))

	turn := 0
	for playerHP > 0 && enemyHP > 0 && turn < MaxTurns {
		turn++

		if hit, dmg := strike(r, p, e); hit {
			enemyHP -= float64(dmg)
			word := weaponWords[rng.IntRange(r, 0, len(weaponWords)-1)]
			log.hit(EntryPlayer, fmt.Sprintf("[T%d] Your %s hits for %d DMG!", turn, word, dmg), dmg)
		} else {
			log.add(EntryMiss, fmt.Sprintf("[T%d] Your attack missed!", turn))
		}

		if enemyHP <= 0 {
			break
		}

		if hit, dmg := strike(r, e, p); hit {
			playerHP -= float64(dmg)
			log.hit(EntryEnemy, fmt.Sprintf("[T%d] Enemy strikes for %d DMG!", turn, dmg), dmg)
		} else {
			log.add(EntryMiss, fmt.Sprintf("[T%d] Enemy attack evaded!", turn))
		}

		if turn%statusEvery == 0 {
			log.add(EntryStatus, fmt.Sprintf("--- HP: You %s | Enemy %s ---", num(math.Max(0, playerHP)), num(math.Max(0, enemyHP))))
		}
	}

	res := Result{
		Victory:           enemyHP <= 0,
		TurnsElapsed:      turn,
		PlayerHPRemaining: math.Max(0, playerHP),
		EnemyHPRemaining:  math.Max(0, enemyHP),
		Rewards:           Rewards{Parts: []string{}},
	}
	if res.Victory {
		log.add(EntryVictory, fmt.Sprintf("VICTORY! Enemy %s destroyed!", e.Name))
		res.Rewards = s.rollRewards(r, m.Rewards)
		log.add(EntryReward, s.rewardText(res.Rewards))
	} else {
		log.add(EntryDefeat, "DEFEAT... Your mech was destroyed.")
	}
	res.Log = log
	return res
}

// strike resolves one attack. Hit chance is accuracy scaled by the defender's
// evasion and is deliberately not clamped: above 1 always hits, below 0 never.
func strike(r rng.Source, att, def loadout.Combatant) (bool, int) {
	chance := att.Accuracy * (1 - def.Evasion/100) / 100
	if r.Float64() >= chance {
		return false, 0
	}
	base := att.Attack() * (0.8 + r.Float64()*0.4)
	dmg := int(math.Floor(base * (1 - def.DamageMitigation)))
	if dmg < 0 {
		dmg = 0
	}
	return true, dmg
}

func (s *Simulator) rollRewards(r rng.Source, mr catalog.MissionRewards) Rewards {
	out := Rewards{
		Dollars: mr.Dollars,
		Materia: rng.IntRange(r, materiaMin, materiaMax),
		Parts:   append([]string{}, mr.Parts...),
	}
	if r.Float64() < dropChance && len(s.dropPool) > 0 {
		drop := s.dropPool[rng.IntRange(r, 0, len(s.dropPool)-1)]
		out.Parts = append(out.Parts, drop.ID)
	}
	return out
}

func (s *Simulator) rewardText(rw Rewards) string {
	text := fmt.Sprintf("REWARDS: $%d | %d Materia", rw.Dollars, rw.Materia)
	for _, id := range rw.Parts {
		name := id
		for _, p := range s.dropPool {
			if p.ID == id {
				name = p.Name
				break
			}
		}
		text += " | Part: " + name
	}
	return text
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
