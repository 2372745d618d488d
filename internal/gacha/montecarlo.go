package gacha

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/xtding233/formula-front/internal/catalog"
	"golang.org/x/sync/errgroup"
)

// SimParams describes one banner analysis run.
type SimParams struct {
	Banner   string
	Trials   int
	Budget   int   // pulls per trial, issued as single pulls
	BaseSeed int64 // trial i uses seeds derived from BaseSeed+i
	Workers  int   // <= 0 means GOMAXPROCS
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stdDev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// Report is the outcome of RunMonteCarlo.
type Report struct {
	Banner string `json:"banner"`
	Trials int    `json:"trials"`
	Budget int    `json:"budget"`
	// FirstLegendary covers only the trials that hit a legendary within budget.
	FirstLegendary Stats                      `json:"firstLegendary"`
	NoLegendary    int                        `json:"noLegendary"`
	RarityShare    map[catalog.Rarity]float64 `json:"rarityShare"`
	PityShare      float64                    `json:"pityShare"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// sandbox is an unlimited-funds Progression for offline trials.
type sandbox struct {
	parts     map[string]int
	frames    map[string]bool
	pulls     int
	threshold int
}

func newSandbox() *sandbox {
	return &sandbox{parts: map[string]int{}, frames: map[string]bool{}}
}

func (s *sandbox) CanAfford(catalog.Currency, int) bool { return true }

func (s *sandbox) SpendCurrency(catalog.Currency, int) bool { return true }

func (s *sandbox) AddCurrency(catalog.Currency, int) {}

func (s *sandbox) RecordPull() {}

func (s *sandbox) AddPart(id string) int {
	s.parts[id]++
	return s.parts[id]
}

func (s *sandbox) AddFrame(id string) bool {
	if s.frames[id] {
		return false
	}
	s.frames[id] = true
	return true
}

func (s *sandbox) PityCount(_ string, def int) (int, int) {
	if s.threshold == 0 {
		s.threshold = def
	}
	return s.pulls, s.threshold
}

func (s *sandbox) SetPityCount(_ string, pulls int) { s.pulls = pulls }

type trial struct {
	first  int // 1-based pull index of the first legendary, 0 if none
	rarity map[catalog.Rarity]int
	forced int
}

// runTrial issues Budget single pulls, each with its own seed, the way a
// player pulling one at a time would.
func (e *Engine) runTrial(p SimParams, idx int) (trial, error) {
	sb := newSandbox()
	t := trial{rarity: map[catalog.Rarity]int{}}
	seed := (p.BaseSeed + int64(idx)) * int64(p.Budget)
	for i := 0; i < p.Budget; i++ {
		res, err := e.Pull(sb, p.Banner, 1, seed+int64(i))
		if err != nil {
			return trial{}, err
		}
		r := res[0]
		t.rarity[r.Rarity]++
		if r.IsPity {
			t.forced++
		}
		if r.Rarity == catalog.RarityLegendary && t.first == 0 {
			t.first = i + 1
		}
	}
	return t, nil
}

// RunMonteCarlo repeats trials in parallel and returns summary stats. The
// report does not depend on scheduling.
func RunMonteCarlo(ctx context.Context, e *Engine, p SimParams) (Report, error) {
	if _, ok := e.cat.Banner(p.Banner); !ok {
		return Report{}, ErrInvalidBanner
	}
	rep := Report{Banner: p.Banner, Trials: p.Trials, Budget: p.Budget, RarityShare: map[catalog.Rarity]float64{}}
	if p.Trials <= 0 || p.Budget <= 0 {
		return rep, nil
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	trials := make([]trial, p.Trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < p.Trials; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := e.runTrial(p, i)
			if err != nil {
				return err
			}
			trials[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	var firsts []int
	counts := map[catalog.Rarity]int{}
	forced := 0
	for _, t := range trials {
		if t.first > 0 {
			firsts = append(firsts, t.first)
		} else {
			rep.NoLegendary++
		}
		for r, n := range t.rarity {
			counts[r] += n
		}
		forced += t.forced
	}
	total := float64(p.Trials * p.Budget)
	for _, r := range catalog.Rarities {
		rep.RarityShare[r] = float64(counts[r]) / total
	}
	rep.PityShare = float64(forced) / total
	rep.FirstLegendary = calcStats(firsts)
	return rep, nil
}
