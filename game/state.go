package game

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// MaxTurns is the turn budget of a game. When it runs out the majority of
// cells decides.
const MaxTurns = 150

// GameState is the board together with the side to move. Like Board it is a
// value: Play returns a new state and leaves the receiver untouched.
type GameState struct {
	Board Board
	Turn  Color
	Ply   int // Placements played so far
}

func NewGameState() GameState {
	return GameState{Turn: Red}
}

func (s GameState) LegalMoves() []Action {
	return LegalMoves(s.Board, s.Turn)
}

// Play applies a for the side to move and passes the turn. It does not check
// legality.
func (s GameState) Play(a Action) GameState {
	return GameState{
		Board: s.Board.Apply(a, s.Turn),
		Turn:  s.Turn.Other(),
		Ply:   s.Ply + 1,
	}
}

// TryPlay validates a before playing it.
func (s GameState) TryPlay(a Action) (GameState, error) {
	if err := CheckPlacement(s.Board, a, s.Turn); err != nil {
		return s, fmt.Errorf("%v cannot play %v: %w", s.Turn, a, err)
	}
	return s.Play(a), nil
}

// Blocked reports whether the side to move has no placement left.
func (s GameState) Blocked() bool {
	return !HasLegalMove(s.Board, s.Turn)
}

// Over reports whether the game has ended by blockage or by turn budget.
func (s GameState) Over() bool {
	return s.Ply >= MaxTurns || s.Blocked()
}

// Winner returns the winner of a finished game under the MaxTurns budget.
func (s GameState) Winner() (Color, bool) {
	return s.WinnerAt(MaxTurns)
}

// WinnerAt scores a game played with the given turn budget. Once the budget
// is spent the majority of cells wins, even if the side to move is also
// blocked. Before that a blocked side loses. An even split is a draw.
func (s GameState) WinnerAt(maxTurns int) (Color, bool) {
	if s.Ply < maxTurns && s.Blocked() {
		return s.Turn.Other(), true
	}
	return s.Board.Winner()
}

func (s GameState) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.Write(s.Board.cells[:])
	_, _ = d.Write([]byte{byte(s.Turn)})
	return d.Sum64()
}
