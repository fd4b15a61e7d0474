// Package config loads engine settings from defaults, an optional file and
// TETRESS_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"tetress/agent"
	"tetress/game"
	"tetress/searcher"

	"github.com/spf13/viper"
)

type Search struct {
	Iterations       int           `mapstructure:"iterations"`
	Duration         time.Duration `mapstructure:"duration"`
	Exploration      float64       `mapstructure:"exploration"`
	HeuristicWeight  float64       `mapstructure:"heuristic-weight"`
	Width            int           `mapstructure:"width"`
	Cutoff           int           `mapstructure:"cutoff"`
	Goroutines       int           `mapstructure:"goroutines"`
	Depth            int           `mapstructure:"depth"`
	Adversarial      bool          `mapstructure:"adversarial"`
	BestChildRollout bool          `mapstructure:"best-child-rollout"`
	Seed             uint64        `mapstructure:"seed"` // 0 draws a fresh seed per search
}

type Eval struct {
	Epsilon        float64 `mapstructure:"epsilon"`
	HoleThreshold  int     `mapstructure:"hole-threshold"`
	EvenHoles      string  `mapstructure:"even-holes"`
	CenterWeight   float64 `mapstructure:"center-weight"`
	FavorablePath  string  `mapstructure:"favorable-path"`
	FavorableBonus float64 `mapstructure:"favorable-bonus"`
	CacheFraction  float64 `mapstructure:"cache-fraction"` // Share of memory for the minimax cache, 0 disables it
}

type Agent struct {
	Engine      string `mapstructure:"engine"` // mcts or minimax
	RandomUntil int    `mapstructure:"random-until"`
	EndingAfter int    `mapstructure:"ending-after"`
	MaxTurns    int    `mapstructure:"max-turns"`
}

type Config struct {
	LogLevel  string `mapstructure:"log-level"`
	PrettyLog bool   `mapstructure:"pretty-log"`
	Search    Search `mapstructure:"search"`
	Eval      Eval   `mapstructure:"eval"`
	Agent     Agent  `mapstructure:"agent"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")
	v.SetDefault("pretty-log", true)

	v.SetDefault("search.iterations", 0)
	v.SetDefault("search.duration", time.Second)
	v.SetDefault("search.exploration", searcher.DefaultExploration)
	v.SetDefault("search.heuristic-weight", searcher.DefaultHeuristicWeight)
	v.SetDefault("search.width", searcher.DefaultWidth)
	v.SetDefault("search.cutoff", searcher.DefaultCutoff)
	v.SetDefault("search.goroutines", 1)
	v.SetDefault("search.depth", searcher.DefaultDepth)
	v.SetDefault("search.adversarial", false)
	v.SetDefault("search.best-child-rollout", false)
	v.SetDefault("search.seed", 0)

	v.SetDefault("eval.epsilon", game.DefaultEpsilon)
	v.SetDefault("eval.hole-threshold", game.DefaultHoleThreshold)
	v.SetDefault("eval.even-holes", "reward")
	v.SetDefault("eval.center-weight", 0.0)
	v.SetDefault("eval.favorable-path", "")
	v.SetDefault("eval.favorable-bonus", 1.0)
	v.SetDefault("eval.cache-fraction", 0.0)

	v.SetDefault("agent.engine", "mcts")
	v.SetDefault("agent.random-until", agent.DefaultRandomUntil)
	v.SetDefault("agent.ending-after", agent.DefaultEndingAfter)
	v.SetDefault("agent.max-turns", game.MaxTurns)
}

// Load reads the settings. An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("tetress")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Search.Iterations <= 0 && c.Search.Duration <= 0 {
		return fmt.Errorf("search needs iterations or a duration")
	}
	if _, err := game.ParseHoleParity(c.Eval.EvenHoles); err != nil {
		return err
	}
	switch c.Agent.Engine {
	case "mcts", "minimax":
	default:
		return fmt.Errorf("unknown engine %q", c.Agent.Engine)
	}
	return nil
}

// Evaluator builds the heuristic, loading the favourable positions if a path is set.
func (c Config) Evaluator() (*game.Evaluator, error) {
	parity, err := game.ParseHoleParity(c.Eval.EvenHoles)
	if err != nil {
		return nil, err
	}
	options := []game.EvalOption{
		game.WithEpsilon(c.Eval.Epsilon),
		game.WithHoleThreshold(c.Eval.HoleThreshold),
		game.WithHoleParity(parity),
		game.WithCenterWeight(c.Eval.CenterWeight),
	}

	if c.Eval.FavorablePath != "" {
		f, err := os.Open(c.Eval.FavorablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open favorable positions: %w", err)
		}
		defer f.Close()
		set, err := game.ReadPositionSet(f)
		if err != nil {
			return nil, err
		}
		options = append(options, game.WithFavorable(set, c.Eval.FavorableBonus))
	}
	return game.NewEvaluator(options...), nil
}

func (c Config) MCTS(evaluate game.Evaluate) *searcher.MCTS {
	s := c.Search
	options := []searcher.Option{
		searcher.WithIterations(s.Iterations),
		searcher.WithDuration(s.Duration),
		searcher.WithCutoff(s.Cutoff),
		searcher.WithWidth(s.Width),
		searcher.WithExploration(s.Exploration),
		searcher.WithHeuristicWeight(s.HeuristicWeight),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithMetrics(),
	}
	if s.BestChildRollout {
		options = append(options, searcher.WithBestChildRollout())
	}
	if s.Seed != 0 {
		options = append(options, searcher.WithSeed(s.Seed))
	}
	return searcher.NewMCTS(s.Goroutines, options...)
}

func (c Config) Minimax(evaluate game.Evaluate) *searcher.Minimax {
	options := []searcher.MinimaxOption{
		searcher.WithDepth(c.Search.Depth),
		searcher.WithMinimaxEvaluationFn(evaluate),
		searcher.WithMinimaxMetrics(),
	}
	if c.Search.Adversarial {
		options = append(options, searcher.WithAdversarial())
	}
	if c.Eval.CacheFraction > 0 {
		options = append(options, searcher.WithEvalCache(c.Eval.CacheFraction))
	}
	return searcher.NewMinimax(options...)
}

// NewAgent assembles the phased agent around the configured middle engine.
func (c Config) NewAgent() (agent.Agent, error) {
	evaluator, err := c.Evaluator()
	if err != nil {
		return nil, err
	}
	var middle searcher.Searcher
	if c.Agent.Engine == "minimax" {
		middle = c.Minimax(evaluator.Evaluate)
	} else {
		middle = c.MCTS(evaluator.Evaluate)
	}
	ending := searcher.NewEnding(c.Search.Goroutines, searcher.WithEndingMetrics())
	return agent.NewPhasedAgent(middle, ending, c.Agent.RandomUntil, c.Agent.EndingAfter), nil
}
