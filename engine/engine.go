package engine

import (
	"context"

	"tetress/experiments/metrics"
	"tetress/game"
)

type Engine interface {
	// Run plays a game till a side is blocked or the turn budget runs out
	Run(ctx context.Context) (Outcome, error)
}

// Update is one played placement and the state it produced.
type Update struct {
	Move   game.Action
	Player game.Color
	State  game.GameState
	Hash   uint64
}

type Outcome struct {
	Winner  game.Color
	Decided bool // False on a draw
	Final   game.GameState
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}
