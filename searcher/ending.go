package searcher

import (
	"context"
	"math"

	"tetress/experiments/metrics"
	"tetress/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type EndingOption func(e *Ending)

// Ending is the one-ply endgame solver: it picks the placement that leaves
// the opponent with the fewest replies.
type Ending struct {
	goroutines int
	metrics    metrics.Collector
}

func WithEndingMetrics() EndingOption {
	return func(e *Ending) {
		e.metrics = metrics.NewCollector()
	}
}

// NewEnding counts replies on up to goroutines workers. With one worker the
// scan stops at the first placement leaving no reply.
func NewEnding(goroutines int, options ...EndingOption) *Ending {
	e := &Ending{
		goroutines: max(goroutines, 1),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// FindMove scans the placements in generation order. A placement leaving the
// opponent without replies wins at once. Otherwise the fewest replies wins,
// and on an equal count a later placement takes over when its board has an
// even number of holes.
func (e *Ending) FindMove(ctx context.Context, board game.Board, color game.Color) (game.Action, error) {
	moves := game.LegalMoves(board, color)
	if len(moves) == 0 {
		return game.Action{}, ErrNoLegalMoves
	}

	e.metrics.Start("ending", e.goroutines, 1)
	replies, err := e.countReplies(ctx, board, color, moves)
	if err != nil {
		return game.Action{}, err
	}
	e.metrics.AddNodes(len(replies))

	best, fewest := 0, math.MaxInt
	for i, n := range replies {
		if n == 0 {
			log.Debug().Str("move", moves[i].String()).Msg("ending found a blocking move")
			return moves[i], nil
		}
		if n < fewest || (n == fewest && game.HoleCount(board.Apply(moves[i], color))%2 == 0) {
			best, fewest = i, n
		}
	}
	log.Debug().Str("move", moves[best].String()).Int("replies", fewest).Msg("ending search complete")
	return moves[best], nil
}

func (e *Ending) Metric() metrics.SearchMetric {
	return e.metrics.Complete()
}

// countReplies returns the opponent's reply count after each move. The
// sequential path stops after the first zero, so the slice may be shorter
// than moves.
func (e *Ending) countReplies(ctx context.Context, board game.Board, color game.Color, moves []game.Action) ([]int, error) {
	opponent := color.Other()
	replies := make([]int, len(moves))

	if e.goroutines == 1 {
		for i, move := range moves {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			replies[i] = len(game.LegalMoves(board.Apply(move, color), opponent))
			if replies[i] == 0 {
				return replies[:i+1], nil
			}
		}
		return replies, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.goroutines)
	for i, move := range moves {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			replies[i] = len(game.LegalMoves(board.Apply(move, color), opponent))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return replies, nil
}
