package experiments

import (
	"context"
	"fmt"
	"io"
	"time"

	"tetress/agent"
	"tetress/game"
	"tetress/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Throughput is the search rate of MCTS with a number of workers.
type Throughput struct {
	Goroutines int
	Searches   int
	Episodes   int
	Duration   time.Duration
}

func (t Throughput) PerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Episodes) / t.Duration.Seconds()
}

// RunThroughputExperiment times MCTS searches on the same sampled midgame
// positions for every worker count.
func RunThroughputExperiment(ctx context.Context, goroutines []int, duration time.Duration, positions int) ([]Throughput, error) {
	states, err := samplePositions(positions, 30)
	if err != nil {
		return nil, err
	}

	log.Info().Msg("starting throughput experiment...")

	var results []Throughput
	for _, n := range goroutines {
		mcts := searcher.NewMCTS(n, searcher.WithDuration(duration), searcher.WithMetrics())
		t := Throughput{Goroutines: n}
		for _, s := range states {
			result, err := mcts.Search(ctx, s.Board, s.Turn)
			if err != nil {
				return nil, fmt.Errorf("search with %d goroutines: %w", n, err)
			}
			t.Searches++
			t.Episodes += result.Metric.Episodes
			t.Duration += result.Metric.Duration
		}
		results = append(results, t)
		log.Info().Int("goroutines", n).Float64("episodes/s", t.PerSecond()).Msg("measured throughput")
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}

// samplePositions plays random placements until occupied cells are taken,
// keeping only positions where the side to move can still play.
func samplePositions(n, occupied int) ([]game.GameState, error) {
	var states []game.GameState
	for len(states) < n {
		s := game.NewGameState()
		for s.Board.Occupied() < occupied && !s.Blocked() {
			move, err := agent.RandomMove(s.Board, s.Turn)
			if err != nil {
				return nil, err
			}
			s = s.Play(move)
		}
		if !s.Blocked() {
			states = append(states, s)
		}
	}
	return states, nil
}

func FprintThroughput(w io.Writer, results []Throughput) {
	if len(results) == 0 {
		return
	}
	base := results[0].PerSecond()
	fmt.Fprintf(w, "%-12s %-12s %-10s\n", "goroutines", "episodes/s", "speedup")
	for _, t := range results {
		speedup := 0.0
		if base > 0 {
			speedup = t.PerSecond() / base
		}
		fmt.Fprintf(w, "%-12d %-12.0f %-10.2f\n", t.Goroutines, t.PerSecond(), speedup)
	}
	total := lo.SumBy(results, func(t Throughput) int { return t.Episodes })
	fmt.Fprintf(w, "total episodes: %d\n", total)
}
