package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tetress/agent"
	"tetress/config"
	"tetress/engine"
	"tetress/experiments"
	"tetress/experiments/metrics"
	"tetress/game"
	"tetress/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "play", "One of play, suggest, experiment or throughput")
	configPath := flag.String("config", "", "Config file (yaml, toml or json)")
	opponent := flag.String("opponent", "random", "Blue player in play mode: random or self")
	fixturePath := flag.String("fixture", "", "YAML fixtures holding the position for suggest mode")
	fixtureName := flag.String("name", "", "Fixture to use, the first one if empty")
	experiment := flag.String("experiment", "engines", "Experiment to run: parallelization, cutoff or engines")
	out := flag.String("out", "results", "Directory for experiment records")
	flag.Parse()

	c, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Init(c.LogLevel, c.PrettyLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "play":
		err = play(ctx, c, *opponent)
	case "suggest":
		err = suggest(ctx, c, *fixturePath, *fixtureName)
	case "experiment":
		err = runExperiment(ctx, *experiment, *out)
	case "throughput":
		err = runThroughput(ctx, c)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed")
	}
}

func play(ctx context.Context, c config.Config, opponent string) error {
	red, err := c.NewAgent()
	if err != nil {
		return err
	}
	var blue agent.Agent
	switch opponent {
	case "random":
		blue = agent.NewRandomAgent()
	case "self":
		if blue, err = c.NewAgent(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown opponent %q", opponent)
	}

	observer := func(u engine.Update) {
		fmt.Printf("%d. %v %v\n%v\n\n", u.State.Ply, u.Player, u.Move, u.State.Board)
	}
	e := engine.NewLocalEngine(red, blue, engine.WithMaxTurns(c.Agent.MaxTurns), engine.WithObserver(observer))
	outcome, err := e.Run(ctx)
	if err != nil {
		return err
	}

	if outcome.Decided {
		fmt.Printf("%v wins after %d turns (%d-%d)\n", outcome.Winner, outcome.Final.Ply, outcome.Game.RedCells, outcome.Game.BlueCells)
	} else {
		fmt.Printf("draw after %d turns\n", outcome.Final.Ply)
	}
	return nil
}

func suggest(ctx context.Context, c config.Config, path, name string) error {
	if path == "" {
		return fmt.Errorf("suggest needs -fixture")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	fixtures, err := game.ReadFixtures(f)
	if err != nil {
		return err
	}
	if len(fixtures) == 0 {
		return fmt.Errorf("no fixtures in %s", path)
	}

	fixture := fixtures[0]
	if name != "" {
		found := false
		for _, candidate := range fixtures {
			if candidate.Name == name {
				fixture, found = candidate, true
				break
			}
		}
		if !found {
			return fmt.Errorf("no fixture named %q in %s", name, path)
		}
	}

	state, err := fixture.State()
	if err != nil {
		return err
	}
	a, err := c.NewAgent()
	if err != nil {
		return err
	}
	move, metric, err := a.FindMove(ctx, state)
	if err != nil {
		return err
	}

	fmt.Printf("%v\n\n%v plays %v\n", state.Board, state.Turn, move)
	log.Info().
		Str("engine", metric.Engine).
		Dur("duration", metric.Duration).
		Int("episodes", metric.Episodes).
		Int("nodes", metric.Nodes).
		Msg("suggested move")
	return nil
}

func runExperiment(ctx context.Context, name, out string) error {
	var exp experiments.Experiment
	switch name {
	case "parallelization":
		exp = experiments.ParallelizationExperiment()
	case "cutoff":
		exp = experiments.CutoffExperiment()
	case "engines":
		exp = experiments.EngineExperiment()
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}

	w, err := metrics.NewWriter(out, exp.Name)
	if err != nil {
		return err
	}
	summaries, err := experiments.Run(ctx, exp, w)
	if err != nil {
		return err
	}
	return experiments.Fprint(os.Stdout, summaries)
}

func runThroughput(ctx context.Context, c config.Config) error {
	duration := c.Search.Duration
	if duration <= 0 {
		duration = 100 * time.Millisecond
	}
	results, err := experiments.RunThroughputExperiment(ctx, []int{1, 2, 4, 8, 16, 32}, duration, 10)
	if err != nil {
		return err
	}
	experiments.FprintThroughput(os.Stdout, results)
	return nil
}
