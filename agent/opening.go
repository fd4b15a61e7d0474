package agent

import (
	"context"

	"tetress/experiments/metrics"
	"tetress/game"
	"tetress/searcher"

	"lukechampine.com/frand"
)

// OpeningMove places a random tetromino over one of the nine cells around
// the middle of the board. If none of those fits it falls back to a random
// legal placement.
func OpeningMove(b game.Board, color game.Color) (game.Action, error) {
	const low, span = game.BoardN/2 - 1, 3
	anchor := game.NewCoord(low+frand.Intn(span), low+frand.Intn(span))
	placements := game.PlacementsAt(anchor)
	frand.Shuffle(len(placements), func(i, j int) {
		placements[i], placements[j] = placements[j], placements[i]
	})
	for _, a := range placements {
		if game.IsLegal(b, a, color) {
			return a, nil
		}
	}
	return RandomMove(b, color)
}

// RandomMove picks uniformly among the legal placements.
func RandomMove(b game.Board, color game.Color) (game.Action, error) {
	moves := game.LegalMoves(b, color)
	if len(moves) == 0 {
		return game.Action{}, searcher.ErrNoLegalMoves
	}
	return moves[frand.Intn(len(moves))], nil
}

type randomAgent struct{}

// NewRandomAgent returns an agent playing uniformly random legal placements.
func NewRandomAgent() Agent {
	return randomAgent{}
}

func (randomAgent) FindMove(_ context.Context, state game.GameState) (game.Action, metrics.SearchMetric, error) {
	move, err := RandomMove(state.Board, state.Turn)
	return move, metrics.SearchMetric{Engine: "random"}, err
}
