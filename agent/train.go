package agent

import (
	"context"
	"math"

	"tetress/experiments/metrics"
	"tetress/game"
	"tetress/searcher"

	"lukechampine.com/frand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
}

// NewTrainingAgent returns an agent for self-play that samples the root's
// children in proportion to visits^(1/temperature).
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{mcts: mcts, temperature: temperature}
}

func (a trainingAgent) FindMove(ctx context.Context, state game.GameState) (game.Action, metrics.SearchMetric, error) {
	result, err := a.mcts.Search(ctx, state.Board, state.Turn)
	if err != nil {
		return game.Action{}, result.Metric, err
	}
	policy := adjustTemperature(result.Children, a.temperature)
	if policy == nil {
		return result.Move, result.Metric, nil
	}
	return sample(result.Children, policy, frand.Float64()), result.Metric, nil
}

// adjustTemperature turns child visit counts into probabilities. It returns
// nil when no child has been visited.
func adjustTemperature(children []searcher.ChildStats, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(children))
	for i, child := range children {
		prob := math.Pow(float64(child.Visits), exponent)
		sum += prob
		adjusted[i] = prob
	}
	if sum == 0 {
		return nil
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(children []searcher.ChildStats, policy []float64, sampled float64) game.Action {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return children[i].Move
		}
	}
	return children[len(children)-1].Move // Fallback in case of rounding errors
}
