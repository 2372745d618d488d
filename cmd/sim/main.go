package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/xtding233/formula-front/internal/catalog"
	"github.com/xtding233/formula-front/internal/combat"
	"github.com/xtding233/formula-front/internal/gacha"
	"github.com/xtding233/formula-front/internal/loadout"
)

type options struct {
	mode    string
	catalog string
	out     string
	seed    int64
	n       int
	workers int
	frame   string
	parts   string
	mission string
	banner  string
	budget  int
}

func main() {
	var o options
	flag.StringVar(&o.mode, "mode", "battle", "battle or gacha")
	flag.StringVar(&o.catalog, "catalog", "", "catalog dir (empty = embedded)")
	flag.StringVar(&o.out, "out", "", "output file (empty = stdout)")
	flag.Int64Var(&o.seed, "seed", 1, "base seed")
	flag.IntVar(&o.n, "n", 1000, "number of trials")
	flag.IntVar(&o.workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	flag.StringVar(&o.frame, "frame", "VK-MF01", "battle: player frame id")
	flag.StringVar(&o.parts, "parts", "VK-H1,VK-TC,VK-AR", "battle: comma separated part ids")
	flag.StringVar(&o.mission, "mission", "M01", "battle: mission id")
	flag.StringVar(&o.banner, "banner", "standard", "gacha: banner id")
	flag.IntVar(&o.budget, "budget", 100, "gacha: pulls per trial")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o); err != nil {
		fmt.Fprintln(os.Stderr, "sim:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	cat, err := loadCatalog(o.catalog)
	if err != nil {
		return err
	}

	var res any
	switch o.mode {
	case "battle":
		res, err = battle(ctx, cat, o)
	case "gacha":
		res, err = gacha.RunMonteCarlo(ctx, gacha.NewEngine(cat), gacha.SimParams{
			Banner:   o.banner,
			Trials:   o.n,
			Budget:   o.budget,
			BaseSeed: o.seed,
			Workers:  o.workers,
		})
	default:
		err = fmt.Errorf("unknown mode %q", o.mode)
	}
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	if o.out == "" {
		_, err = fmt.Println(string(b))
		return err
	}
	return os.WriteFile(o.out, append(b, '\n'), 0o644)
}

func loadCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Default()
	}
	return catalog.NewLoader(dir).Load()
}

type battleReport struct {
	Frame   string             `json:"frame"`
	Mission string             `json:"mission"`
	Player  loadout.Stats      `json:"player"`
	Enemy   loadout.EnemyStats `json:"enemy"`
	Batch   combat.BatchStats  `json:"batch"`
}

func battle(ctx context.Context, cat *catalog.Catalog, o options) (battleReport, error) {
	frame, ok := cat.Frame(o.frame)
	if !ok {
		return battleReport{}, fmt.Errorf("unknown frame %q", o.frame)
	}
	m, ok := cat.Mission(o.mission)
	if !ok {
		return battleReport{}, fmt.Errorf("unknown mission %q", o.mission)
	}
	equipped := map[catalog.Slot]string{}
	for _, id := range strings.Split(o.parts, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		p, ok := cat.Part(id)
		if !ok {
			return battleReport{}, fmt.Errorf("unknown part %q", id)
		}
		if prev, taken := equipped[p.Slot]; taken {
			return battleReport{}, fmt.Errorf("parts %s and %s both use slot %s", prev, id, p.Slot)
		}
		equipped[p.Slot] = id
	}

	agg := loadout.NewAggregator(cat)
	ps := agg.Frame(frame.ID, equipped)
	es := agg.Enemy(m)
	matchup := combat.Matchup{
		Player:  ps.Combatant(frame.Name),
		Enemy:   es.Combatant(cat.MustFrame(m.EnemyFrame).Name),
		Rewards: m.Rewards,
	}
	st, err := combat.RunBatch(ctx, combat.NewSimulator(cat), matchup, o.seed, o.n, o.workers)
	if err != nil {
		return battleReport{}, err
	}
	return battleReport{Frame: frame.ID, Mission: m.ID, Player: ps, Enemy: es, Batch: st}, nil
}
