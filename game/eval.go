package game

import "fmt"

// HoleParity decides which parity of the hole count earns the +1 term.
type HoleParity int

const (
	EvenHolesRewarded HoleParity = iota
	EvenHolesPenalized
)

func ParseHoleParity(s string) (HoleParity, error) {
	switch s {
	case "", "reward":
		return EvenHolesRewarded, nil
	case "penalize":
		return EvenHolesPenalized, nil
	default:
		return 0, fmt.Errorf("unknown hole parity %q", s)
	}
}

const (
	DefaultEpsilon       = 0.001
	DefaultHoleThreshold = 80
)

type EvalOption func(e *Evaluator)

// Evaluator is the position heuristic shared by every search engine. It is
// safe for concurrent use as long as its favorable set is not modified
// during a search.
type Evaluator struct {
	epsilon        float64
	holeThreshold  int
	parity         HoleParity
	centerWeight   float64
	favorable      *PositionSet
	favorableBonus float64
}

func WithEpsilon(epsilon float64) EvalOption {
	return func(e *Evaluator) {
		if epsilon > 0 {
			e.epsilon = epsilon
		}
	}
}

// WithHoleThreshold sets how many occupied cells are needed before holes count.
func WithHoleThreshold(threshold int) EvalOption {
	return func(e *Evaluator) {
		e.holeThreshold = threshold
	}
}

func WithHoleParity(parity HoleParity) EvalOption {
	return func(e *Evaluator) {
		e.parity = parity
	}
}

// WithCenterWeight adds weight * -(sum of squared distances of own cells to
// the middle cell) to every evaluation.
func WithCenterWeight(weight float64) EvalOption {
	return func(e *Evaluator) {
		e.centerWeight = weight
	}
}

// WithFavorable adds bonus whenever the board is in set.
func WithFavorable(set *PositionSet, bonus float64) EvalOption {
	return func(e *Evaluator) {
		e.favorable = set
		e.favorableBonus = bonus
	}
}

func NewEvaluator(options ...EvalOption) *Evaluator {
	e := &Evaluator{ // Default values
		epsilon:       DefaultEpsilon,
		holeThreshold: DefaultHoleThreshold,
		parity:        EvenHolesRewarded,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Evaluate combines the cell ratio with the late-game hole term and the
// optional center and favorable-position terms.
func (e *Evaluator) Evaluate(b Board, color Color) float64 {
	mine := b.Count(color)
	theirs := b.Count(color.Other())
	evaluation := (float64(mine) + e.epsilon) / (float64(theirs) + e.epsilon)

	if mine+theirs > e.holeThreshold {
		evaluation += e.holesTerm(HoleCount(b))
	}
	if e.centerWeight != 0 {
		evaluation += e.centerWeight * centerPenalty(b, color)
	}
	if e.favorable != nil && e.favorableBonus != 0 && e.favorable.Contains(b) {
		evaluation += e.favorableBonus
	}
	return evaluation
}

func (e *Evaluator) holesTerm(holes int) float64 {
	even := holes%2 == 0
	if even == (e.parity == EvenHolesRewarded) {
		return 1
	}
	return -1
}

func centerPenalty(b Board, color Color) float64 {
	const mid = BoardN / 2
	penalty := 0
	for i, v := range b.cells {
		if v != uint8(color) {
			continue
		}
		c := coordAt(i)
		penalty -= (c.R-mid)*(c.R-mid) + (c.C-mid)*(c.C-mid)
	}
	return float64(penalty)
}

var defaultEvaluator = NewEvaluator()

// Heuristic evaluates with the default settings.
func Heuristic(b Board, color Color) float64 {
	return defaultEvaluator.Evaluate(b, color)
}
