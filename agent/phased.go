package agent

import (
	"context"

	"tetress/experiments/metrics"
	"tetress/game"
	"tetress/searcher"

	"github.com/rs/zerolog/log"
)

const (
	DefaultRandomUntil = 50 // Occupied cells below which moves are random
	DefaultEndingAfter = 70 // Occupied cells from which the endgame solver plays
)

type phasedAgent struct {
	middle      searcher.Searcher
	ending      searcher.Searcher
	randomUntil int
	endingAfter int
}

// NewPhasedAgent switches engines as the board fills up: a centred opening
// on the empty board, the middle engine for a first placement on an occupied
// board, random placements while fewer than randomUntil cells are taken, the
// middle engine until endingAfter cells, then the ending engine.
func NewPhasedAgent(middle, ending searcher.Searcher, randomUntil, endingAfter int) Agent {
	return phasedAgent{
		middle:      middle,
		ending:      ending,
		randomUntil: randomUntil,
		endingAfter: endingAfter,
	}
}

func (a phasedAgent) FindMove(ctx context.Context, state game.GameState) (game.Action, metrics.SearchMetric, error) {
	occupied := state.Board.Occupied()
	switch {
	case occupied == 0:
		move, err := OpeningMove(state.Board, state.Turn)
		return move, metrics.SearchMetric{Engine: "opening"}, err
	case state.Board.Count(state.Turn) == 0:
		log.Debug().Int("occupied", occupied).Msg("first placement by search")
		return search(ctx, a.middle, state)
	case occupied < a.randomUntil:
		move, err := RandomMove(state.Board, state.Turn)
		return move, metrics.SearchMetric{Engine: "random"}, err
	case occupied < a.endingAfter:
		log.Debug().Int("occupied", occupied).Msg("decision by search")
		return search(ctx, a.middle, state)
	default:
		log.Debug().Int("occupied", occupied).Msg("decision by ending")
		return search(ctx, a.ending, state)
	}
}
