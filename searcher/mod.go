// Package searcher holds the move search engines: Monte Carlo tree search,
// depth-bounded alpha-beta and the one-ply endgame solver.
package searcher

import (
	"context"
	"errors"

	"tetress/game"
)

var (
	// ErrNoLegalMoves is returned when the searching color cannot place
	// anything. For the game driver this means the color has lost.
	ErrNoLegalMoves = errors.New("no legal moves")
	// ErrNoExpansion is returned when the budget ran out before the root
	// was expanded, so there is no move to recommend.
	ErrNoExpansion = errors.New("search ended before expanding the root")
)

type Searcher interface {
	FindMove(ctx context.Context, board game.Board, color game.Color) (game.Action, error)
}

type outcome int

const (
	draw outcome = iota
	win
	loss
)

func outcomeFor(color, winner game.Color, decided bool) outcome {
	switch {
	case !decided:
		return draw
	case winner == color:
		return win
	default:
		return loss
	}
}
