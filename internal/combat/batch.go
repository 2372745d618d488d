package combat

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchStats summarises many seeded runs of one matchup.
type BatchStats struct {
	Trials         int     `json:"trials"`
	Wins           int     `json:"wins"`
	WinRate        float64 `json:"winRate"`
	MeanTurns      float64 `json:"meanTurns"`
	MeanPlayerHP   float64 `json:"meanPlayerHpRemaining"`
	TurnCapBattles int     `json:"turnCapBattles"` // ended by the turn cap with both sides standing
}

// RunBatch simulates trials battles with seeds baseSeed, baseSeed+1, ...
// across at most workers goroutines (<= 0 means GOMAXPROCS). The summary does
// not depend on scheduling.
func RunBatch(ctx context.Context, sim *Simulator, m Matchup, baseSeed int64, trials, workers int) (BatchStats, error) {
	if trials <= 0 {
		return BatchStats{}, nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, trials)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < trials; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = sim.Simulate(m, baseSeed+int64(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchStats{}, err
	}

	st := BatchStats{Trials: trials}
	var turns, hp float64
	for _, r := range results {
		if r.Victory {
			st.Wins++
		} else if r.PlayerHPRemaining > 0 {
			st.TurnCapBattles++
		}
		turns += float64(r.TurnsElapsed)
		hp += r.PlayerHPRemaining
	}
	st.WinRate = float64(st.Wins) / float64(trials)
	st.MeanTurns = turns / float64(trials)
	st.MeanPlayerHP = hp / float64(trials)
	return st, nil
}
