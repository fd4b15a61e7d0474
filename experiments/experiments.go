package experiments

import (
	"context"
	"fmt"
	"time"

	"tetress/agent"
	"tetress/engine"
	"tetress/experiments/metrics"
	"tetress/game"
	"tetress/searcher"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// AgentConfig describes one contestant.
type AgentConfig struct {
	ID         int           `yaml:"id"`
	Engine     string        `yaml:"engine"` // mcts, minimax or random
	Goroutines int           `yaml:"goroutines,omitempty"`
	Iterations int           `yaml:"iterations,omitempty"`
	Duration   time.Duration `yaml:"duration,omitempty"`
	Cutoff     int           `yaml:"cutoff,omitempty"`
	Depth      int           `yaml:"depth,omitempty"`
	Phased     bool          `yaml:"phased,omitempty"` // Random opening and ending solver around the engine
}

// MatchUp pits a challenger against a baseline, both by AgentConfig.ID.
type MatchUp struct {
	Baseline   int `yaml:"baseline"`
	Challenger int `yaml:"challenger"`
}

type Experiment struct {
	Name     string        `yaml:"name"`
	Games    int           `yaml:"games"`    // Per match up, colours alternate
	Parallel int           `yaml:"parallel"` // Games played at once
	MaxTurns int           `yaml:"max_turns,omitempty"`
	Agents   []AgentConfig `yaml:"agents"`
	MatchUps []MatchUp     `yaml:"match_ups"`
}

func ParallelizationExperiment() Experiment {
	baseline := AgentConfig{ID: 0, Engine: "mcts", Goroutines: 1, Duration: TimeBudget}
	agents := []AgentConfig{baseline}
	var matchUps []MatchUp
	for i, goroutines := range []int{2, 4, 8, 16, 32} {
		agents = append(agents, AgentConfig{ID: i + 1, Engine: "mcts", Goroutines: goroutines, Duration: TimeBudget})
		matchUps = append(matchUps, MatchUp{Baseline: baseline.ID, Challenger: i + 1})
	}
	return Experiment{Name: "parallelization", Games: NumGames, Parallel: 1, Agents: agents, MatchUps: matchUps}
}

func CutoffExperiment() Experiment {
	baseline := AgentConfig{ID: 0, Engine: "mcts", Goroutines: 8, Duration: TimeBudget, Cutoff: game.MaxTurns} // Full playouts
	agents := []AgentConfig{baseline}
	var matchUps []MatchUp
	for i, cutoff := range []int{5, 10, 20, 40, 80} {
		agents = append(agents, AgentConfig{ID: i + 1, Engine: "mcts", Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: cutoff})
		matchUps = append(matchUps, MatchUp{Baseline: baseline.ID, Challenger: i + 1})
	}
	return Experiment{Name: "cutoff", Games: NumGames, Parallel: 1, Agents: agents, MatchUps: matchUps}
}

// EngineExperiment plays the phased agents of both engines against each other
// and against random play.
func EngineExperiment() Experiment {
	agents := []AgentConfig{
		{ID: 0, Engine: "random"},
		{ID: 1, Engine: "mcts", Goroutines: 4, Duration: TimeBudget, Phased: true},
		{ID: 2, Engine: "minimax", Depth: 2, Phased: true},
	}
	matchUps := []MatchUp{
		{Baseline: 0, Challenger: 1},
		{Baseline: 0, Challenger: 2},
		{Baseline: 2, Challenger: 1},
	}
	return Experiment{Name: "engines", Games: NumGames, Parallel: 4, Agents: agents, MatchUps: matchUps}
}

type gameResult struct {
	red, blue int // AgentConfig.ID
	outcome   engine.Outcome
}

// Run plays every match up and stores the records with w if it is not nil.
func Run(ctx context.Context, exp Experiment, w *metrics.Writer) ([]Summary, error) {
	configs := lo.KeyBy(exp.Agents, func(c AgentConfig) int { return c.ID })
	for _, m := range exp.MatchUps {
		for _, id := range []int{m.Baseline, m.Challenger} {
			if _, ok := configs[id]; !ok {
				return nil, fmt.Errorf("match up refers to unknown agent %d", id)
			}
		}
	}
	if w != nil {
		if err := w.WriteSetup(exp); err != nil {
			return nil, err
		}
	}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	var results []gameResult
	var summaries []Summary
	for mi, m := range exp.MatchUps {
		baseline, challenger := configs[m.Baseline], configs[m.Challenger]
		log.Info().Msgf("starting matchup %d of %d between baseline=%+v and challenger=%+v...", mi+1, len(exp.MatchUps), baseline, challenger)

		played, err := runMatchUp(ctx, exp, baseline, challenger)
		if err != nil {
			return nil, fmt.Errorf("matchup %d: %w", mi+1, err)
		}
		results = append(results, played...)
		summary := summarize(m, played)
		summaries = append(summaries, summary)

		log.Info().
			Int("wins", summary.Wins).
			Int("losses", summary.Losses).
			Int("draws", summary.Draws).
			Msgf("completed matchup %d of %d", mi+1, len(exp.MatchUps))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if w != nil {
		if err := store(w, results); err != nil {
			return nil, err
		}
		log.Info().Str("dir", w.Dir()).Msg("stored game and move records")
	}
	return summaries, nil
}

func runMatchUp(ctx context.Context, exp Experiment, baseline, challenger AgentConfig) ([]gameResult, error) {
	results := make([]gameResult, exp.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Parallel, 1))

	for i := range exp.Games {
		red, blue := baseline, challenger
		if i%2 == 1 {
			red, blue = blue, red
		}
		g.Go(func() error {
			e := engine.NewLocalEngine(newAgent(red), newAgent(blue), engine.WithMaxTurns(exp.MaxTurns))
			outcome, err := e.Run(ctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = gameResult{red: red.ID, blue: blue.ID, outcome: outcome}
			log.Info().Msgf("completed game %d of %d with winner: %s", i+1, exp.Games, lo.Ternary(outcome.Decided, outcome.Game.Winner, "draw"))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func store(w *metrics.Writer, results []gameResult) error {
	var games []metrics.GameRecord
	var moves []metrics.MoveRecord
	for i, r := range results {
		id := i + 1
		games = append(games, metrics.GameRecord{
			ID:         id,
			Red:        r.red,
			Blue:       r.blue,
			GameMetric: r.outcome.Game,
		})
		moves = append(moves, lo.Map(r.outcome.Moves, func(m metrics.MoveMetric, _ int) metrics.MoveRecord {
			return metrics.MoveRecord{Game: id, MoveMetric: m}
		})...)
	}

	if err := w.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := w.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

// newAgent builds a fresh agent so that games can run side by side.
func newAgent(config AgentConfig) agent.Agent {
	var middle searcher.Searcher
	switch config.Engine {
	case "mcts":
		middle = createMCTS(config)
	case "minimax":
		options := []searcher.MinimaxOption{searcher.WithMinimaxMetrics()}
		if config.Depth > 0 {
			options = append(options, searcher.WithDepth(config.Depth))
		}
		middle = searcher.NewMinimax(options...)
	default:
		return agent.NewRandomAgent()
	}

	if config.Phased {
		ending := searcher.NewEnding(config.Goroutines, searcher.WithEndingMetrics())
		return agent.NewPhasedAgent(middle, ending, agent.DefaultRandomUntil, agent.DefaultEndingAfter)
	}
	return agent.NewEvaluationAgent(middle)
}

func createMCTS(config AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Iterations == 0 && config.Duration == 0 {
		options = append(options, searcher.WithDuration(TimeBudget))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(max(config.Goroutines, 1), options...)
}
