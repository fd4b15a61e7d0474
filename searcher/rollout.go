package searcher

import (
	"tetress/experiments/metrics"
	"tetress/game"

	"golang.org/x/exp/rand"
)

// DefaultCutoff is the playout length limit in plies.
const DefaultCutoff = 150

// rollout plays uniformly random legal placements, alternating colors from
// toMove. A color left without placements loses; when the cutoff is reached
// the majority of cells decides.
func rollout(board game.Board, toMove game.Color, cutoff int, rng *rand.Rand, metrics metrics.Collector) (game.Color, bool) {
	for depth := 0; depth < cutoff; depth++ {
		moves := game.LegalMoves(board, toMove)
		if len(moves) == 0 { // Game over before cutoff
			metrics.AddFullPlayout()
			return toMove.Other(), true
		}
		move := moves[rng.Intn(len(moves))] // Random rollout policy
		board = board.Apply(move, toMove)
		toMove = toMove.Other()
	}
	return board.Winner()
}
