package agent

import (
	"context"

	"tetress/experiments/metrics"
	"tetress/game"
	"tetress/searcher"
)

type Agent interface {
	// FindMove returns a placement for the side to move and performance metrics (if collected) from the search
	FindMove(ctx context.Context, state game.GameState) (game.Action, metrics.SearchMetric, error)
}

// metered is implemented by engines that can report on their last search.
type metered interface {
	Metric() metrics.SearchMetric
}

type evaluationAgent struct {
	searcher searcher.Searcher
}

// NewEvaluationAgent returns an agent that always plays the engine's best move.
func NewEvaluationAgent(s searcher.Searcher) Agent {
	return evaluationAgent{searcher: s}
}

func (a evaluationAgent) FindMove(ctx context.Context, state game.GameState) (game.Action, metrics.SearchMetric, error) {
	return search(ctx, a.searcher, state)
}

func search(ctx context.Context, s searcher.Searcher, state game.GameState) (game.Action, metrics.SearchMetric, error) {
	if mcts, ok := s.(*searcher.MCTS); ok {
		result, err := mcts.Search(ctx, state.Board, state.Turn)
		return result.Move, result.Metric, err
	}

	move, err := s.FindMove(ctx, state.Board, state.Turn)
	var metric metrics.SearchMetric
	if m, ok := s.(metered); ok {
		metric = m.Metric()
	}
	return move, metric, err
}
