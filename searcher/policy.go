package searcher

import "math"

// Hyperparameters for MCTS

const DefaultExploration = 0.5     // C in the exploration term
const DefaultHeuristicWeight = 0.5 // Weight of the cached heuristic in a child's score

type policy struct {
	exploration float64
	bias        float64
}

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n) = q/n + c*sqrt(ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}

// childScore is the selection score of a visited non-root node.
func (p policy) childScore(wins, visits, parentVisits int, heuristic float64) float64 {
	u := newUCT(p.exploration*p.exploration, float64(parentVisits))
	return u.evaluate(float64(wins), float64(visits)) + p.bias*heuristic
}

// rootScore is the win rate of the root.
func (p policy) rootScore(wins, visits int) float64 {
	return float64(wins) / float64(visits)
}
