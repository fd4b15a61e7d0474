package searcher

import (
	"context"
	"fmt"
	"math"
	"time"

	"tetress/experiments/metrics"
	"tetress/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

// DefaultWidth is the number of children kept when a node is expanded.
const DefaultWidth = 10

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines       int
	iterations       int
	duration         time.Duration
	cutoff           int
	width            int
	policy           policy
	bestChildRollout bool
	seed             *uint64
	evaluate         game.Evaluate
	metrics          metrics.Collector
}

// Result is the outcome of one search.
type Result struct {
	Move     game.Action
	Root     Stats
	Children []ChildStats
	Metric   metrics.SearchMetric
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

// WithWidth limits how many children an expansion keeps.
func WithWidth(width int) Option {
	return func(m *MCTS) {
		if width > 0 {
			m.width = width
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.policy.exploration = c
		}
	}
}

func WithHeuristicWeight(weight float64) Option {
	return func(m *MCTS) {
		m.policy.bias = weight
	}
}

// WithBestChildRollout starts each playout from the best ranked child of the
// expanded node rather than from the node itself.
func WithBestChildRollout() Option {
	return func(m *MCTS) {
		m.bestChildRollout = true
	}
}

// WithSeed makes playouts reproducible. Worker i draws from seed+i.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = &seed
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     DefaultCutoff,
		width:      DefaultWidth,
		policy:     policy{exploration: DefaultExploration, bias: DefaultHeuristicWeight},
		evaluate:   game.Heuristic,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations <= 0 && m.duration <= 0 {
		panic("Must specify search iterations or duration")
	}
	return m
}

func (m *MCTS) FindMove(ctx context.Context, board game.Board, color game.Color) (game.Action, error) {
	result, err := m.Search(ctx, board, color)
	if err != nil {
		return game.Action{}, err
	}
	return result.Move, nil
}

// Search builds a fresh tree for color and returns the root's best child.
// The search stops after the configured iterations, after the configured
// duration or when ctx is done, whichever comes first. A search cut short
// still answers as long as the root was expanded.
func (m *MCTS) Search(ctx context.Context, board game.Board, color game.Color) (Result, error) {
	if !game.HasLegalMove(board, color) {
		return Result{}, ErrNoLegalMoves
	}

	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	t := newTree(board, color, m.evaluate)
	m.metrics.Start("mcts", m.goroutines, m.cutoff)
	var err error
	if m.iterations > 0 {
		err = m.iterate(ctx, t)
	} else {
		err = m.countdown(ctx, t)
	}
	metric := m.metrics.Complete()

	root := t.root()
	if len(root.children) == 0 {
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrNoExpansion, err)
		}
		return Result{}, ErrNoExpansion
	}
	if err != nil {
		log.Debug().Err(err).Int("visits", root.visits).Msg("search interrupted, answering with the best move so far")
	}

	best := t.nodes[t.bestChild(0)]
	log.Debug().
		Str("color", color.String()).
		Str("move", best.move.String()).
		Int("visits", root.visits).
		Int("nodes", len(t.nodes)).
		Float64("score", best.score).
		Msg("mcts search complete")

	return Result{
		Move:     best.move,
		Root:     root.stats(),
		Children: t.childStats(0),
		Metric:   metric,
	}, nil
}

func (m *MCTS) iterate(ctx context.Context, t *tree) error {
	task := make(chan struct{}, m.iterations)
	for i := 0; i < m.iterations; i++ {
		task <- struct{}{}
	}
	close(task)

	seed := m.baseSeed()
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(seed + uint64(i)))
		g.Go(func() error {
			for range task {
				if err := ctx.Err(); err != nil {
					return err
				}
				m.simulate(t, rng)
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	return g.Wait()
}

func (m *MCTS) countdown(ctx context.Context, t *tree) error {
	seed := m.baseSeed()
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(seed + uint64(i)))
		g.Go(func() error {
			for ctx.Err() == nil {
				m.simulate(t, rng)
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	return g.Wait()
}

func (m *MCTS) baseSeed() uint64 {
	if m.seed != nil {
		return *m.seed
	}
	return frand.Uint64n(math.MaxUint64)
}

// simulate runs one iteration. Selection, expansion and backup hold the tree
// lock; the playout runs on copied boards outside it.
func (m *MCTS) simulate(t *tree, rng *rand.Rand) {
	t.Lock()
	leaf := t.selectLeaf()
	if t.expand(leaf, m.width, m.evaluate) > 0 {
		m.metrics.AddExpansion()
	}
	start := leaf
	if m.bestChildRollout && len(t.nodes[leaf].children) > 0 {
		start = t.nodes[leaf].children[0]
	}
	board, toMove := t.nodes[start].board, t.nodes[start].toMove
	t.Unlock()

	winner, decided := rollout(board, toMove, m.cutoff, rng, m.metrics)

	t.Lock()
	t.backup(start, outcomeFor(t.color, winner, decided), m.policy)
	t.Unlock()
}
