package experiments

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tetress/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	exp := Experiment{
		Name:     "smoke",
		Games:    4,
		Parallel: 2,
		MaxTurns: 12,
		Agents: []AgentConfig{
			{ID: 0, Engine: "random"},
			{ID: 1, Engine: "mcts", Goroutines: 2, Iterations: 20, Cutoff: 5},
		},
		MatchUps: []MatchUp{{Baseline: 0, Challenger: 1}},
	}

	t.Run("plays and stores every game", func(t *testing.T) {
		w, err := metrics.NewWriter(t.TempDir(), exp.Name)
		require.NoError(t, err)

		summaries, err := Run(context.Background(), exp, w)
		require.NoError(t, err)
		require.Len(t, summaries, 1)

		s := summaries[0]
		require.Equal(t, 4, s.Games)
		require.Equal(t, 4, s.Wins+s.Losses+s.Draws)
		require.Len(t, s.Lengths, 4)

		for _, name := range []string{"setup.yaml", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(w.Dir(), name))
		}
		data, err := os.ReadFile(filepath.Join(w.Dir(), "setup.yaml"))
		require.NoError(t, err)
		require.Contains(t, string(data), "name: smoke")
	})

	t.Run("without a writer nothing is stored", func(t *testing.T) {
		summaries, err := Run(context.Background(), exp, nil)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
	})

	t.Run("unknown agents are rejected", func(t *testing.T) {
		bad := exp
		bad.MatchUps = []MatchUp{{Baseline: 0, Challenger: 7}}
		_, err := Run(context.Background(), bad, nil)
		require.Error(t, err)
	})
}

func TestSummary(t *testing.T) {
	t.Run("draws count half", func(t *testing.T) {
		s := Summary{Games: 4, Wins: 2, Draws: 2}
		require.InDelta(t, 0.75, s.WinRate(), 1e-9)
	})

	t.Run("margin shrinks with more games", func(t *testing.T) {
		few := Summary{Games: 10, Wins: 5}
		many := Summary{Games: 1000, Wins: 500}
		require.Greater(t, few.Margin(), many.Margin())
		require.InDelta(t, zValue(95)*0.5/math.Sqrt(1000), many.Margin(), 1e-9)
	})

	t.Run("z value for 95 percent", func(t *testing.T) {
		require.InDelta(t, 1.959964, zValue(95), 1e-5)
	})

	t.Run("empty summary", func(t *testing.T) {
		require.Zero(t, Summary{}.WinRate())
		require.Zero(t, Summary{}.Margin())
	})

	t.Run("prints table and histogram", func(t *testing.T) {
		var buf bytes.Buffer
		s := Summary{MatchUp: MatchUp{Baseline: 0, Challenger: 1}, Games: 3, Wins: 2, Losses: 1, Lengths: []float64{20, 30, 40}}
		require.NoError(t, Fprint(&buf, []Summary{s}))
		require.Contains(t, buf.String(), "win rate")
		require.Contains(t, buf.String(), "game lengths")
	})
}

func TestThroughput(t *testing.T) {
	t.Run("sampled positions are playable", func(t *testing.T) {
		states, err := samplePositions(3, 20)
		require.NoError(t, err)
		require.Len(t, states, 3)
		for _, s := range states {
			require.False(t, s.Blocked())
		}
	})

	t.Run("measures every worker count", func(t *testing.T) {
		results, err := RunThroughputExperiment(context.Background(), []int{1, 2}, 50*time.Millisecond, 1)
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			require.Equal(t, 1, r.Searches)
			require.Positive(t, r.Duration)
		}

		var buf bytes.Buffer
		FprintThroughput(&buf, results)
		require.Contains(t, buf.String(), "speedup")
	})
}
