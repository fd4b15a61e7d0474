package searcher

import (
	"context"
	"math"

	"tetress/experiments/metrics"
	"tetress/game"

	"github.com/rs/zerolog/log"
)

const DefaultDepth = 20

type MinimaxOption func(m *Minimax)

// Minimax is a depth-bounded alpha-beta search. Positions are scored for the
// searching color with the evaluator.
//
// By default every ply generates the searching color's placements and the
// root's children are searched as maximizing nodes. WithAdversarial switches
// to a game tree whose plies alternate between the two colors.
type Minimax struct {
	depth       int
	adversarial bool
	evaluate    game.Evaluate
	cache       *evalCache
	metrics     metrics.Collector
}

func WithDepth(depth int) MinimaxOption {
	return func(m *Minimax) {
		if depth > 0 {
			m.depth = depth
		}
	}
}

func WithAdversarial() MinimaxOption {
	return func(m *Minimax) {
		m.adversarial = true
	}
}

func WithMinimaxEvaluationFn(evaluate game.Evaluate) MinimaxOption {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithEvalCache memoises evaluations in a cache using up to fraction of the
// system memory.
func WithEvalCache(fraction float64) MinimaxOption {
	return func(m *Minimax) {
		if fraction > 0 {
			m.cache = newEvalCache(fraction)
		}
	}
}

func WithMinimaxMetrics() MinimaxOption {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(options ...MinimaxOption) *Minimax {
	m := &Minimax{ // Default values
		depth:    DefaultDepth,
		evaluate: game.Heuristic,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindMove returns the root placement with the highest value. Ties keep the
// first placement found. When ctx is done the best placement among the
// fully searched ones is returned.
func (m *Minimax) FindMove(ctx context.Context, board game.Board, color game.Color) (game.Action, error) {
	moves := game.LegalMoves(board, color)
	if len(moves) == 0 {
		return game.Action{}, ErrNoLegalMoves
	}

	m.metrics.Start("minimax", 1, m.depth)

	best := moves[0]
	bestValue := math.Inf(-1)
	searched := 0
	for _, move := range moves {
		if err := ctx.Err(); err != nil {
			if searched == 0 {
				return game.Action{}, err
			}
			log.Debug().Err(err).Int("searched", searched).Msg("minimax interrupted")
			break
		}
		value := m.search(ctx, board.Apply(move, color), color, m.depth, math.Inf(-1), math.Inf(1), !m.adversarial)
		if err := ctx.Err(); err != nil {
			// The subtree was cut short, its value is not comparable
			if searched == 0 {
				return game.Action{}, err
			}
			log.Debug().Err(err).Int("searched", searched).Msg("minimax interrupted")
			break
		}
		if value > bestValue {
			best, bestValue = move, value
		}
		searched++
	}

	log.Debug().
		Str("color", color.String()).
		Str("move", best.String()).
		Float64("value", bestValue).
		Msg("minimax search complete")
	return best, nil
}

// Metric returns the counters of the last search when metrics are enabled.
// Call it right after FindMove: the duration runs until the call.
func (m *Minimax) Metric() metrics.SearchMetric {
	return m.metrics.Complete()
}

func (m *Minimax) search(ctx context.Context, board game.Board, color game.Color, depth int, alpha, beta float64, maximizing bool) float64 {
	m.metrics.AddNodes(1)
	if depth == 0 || ctx.Err() != nil {
		return m.value(board, color)
	}
	if _, decided := board.Winner(); decided {
		return m.value(board, color)
	}

	mover := color
	if m.adversarial && !maximizing {
		mover = color.Other()
	}
	moves := game.LegalMoves(board, mover)
	if len(moves) == 0 {
		return m.value(board, color)
	}

	if maximizing {
		value := math.Inf(-1)
		for _, move := range moves {
			value = max(value, m.search(ctx, board.Apply(move, mover), color, depth-1, alpha, beta, false))
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return value
	}

	value := math.Inf(1)
	for _, move := range moves {
		value = min(value, m.search(ctx, board.Apply(move, mover), color, depth-1, alpha, beta, true))
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return value
}

func (m *Minimax) value(board game.Board, color game.Color) float64 {
	if m.cache != nil {
		return m.cache.value(board, color, m.evaluate)
	}
	return m.evaluate(board, color)
}
