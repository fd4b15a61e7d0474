package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGameState(t *testing.T) {
	t.Run("Red opens and turns alternate", func(t *testing.T) {
		s := NewGameState()
		require.Equal(t, Red, s.Turn)

		next := s.Play(s.LegalMoves()[0])
		require.Equal(t, Blue, next.Turn)
		require.Equal(t, 1, next.Ply)
		require.Equal(t, 4, next.Board.Count(Red))
		require.Equal(t, 0, s.Board.Occupied(), "Should not modify the original state")
	})

	t.Run("Illegal placements are refused", func(t *testing.T) {
		s := NewGameState()
		s = s.Play(MustAction(NewCoord(0, 0), NewCoord(0, 1), NewCoord(0, 2), NewCoord(0, 3)))

		_, err := s.TryPlay(MustAction(NewCoord(0, 1), NewCoord(1, 1), NewCoord(2, 1), NewCoord(3, 1)))
		require.ErrorIs(t, err, ErrOccupied)

		next, err := s.TryPlay(MustAction(NewCoord(5, 0), NewCoord(5, 1), NewCoord(5, 2), NewCoord(5, 3)))
		require.NoError(t, err, "Should allow Blue's first placement anywhere")
		require.Equal(t, Red, next.Turn)
	})

	t.Run("A blocked side loses", func(t *testing.T) {
		b := Board{}
		for i := 3; i < NumCells; i++ {
			color := Red
			if i%5 == 0 {
				color = Blue
			}
			b = b.Fill(color, coordAt(i))
		}
		s := GameState{Board: b, Turn: Red}
		require.True(t, s.Blocked())
		require.True(t, s.Over())

		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Blue, winner)
	})

	t.Run("Turn budget ends the game", func(t *testing.T) {
		s := GameState{Board: Board{}.Fill(Blue, NewCoord(1, 1)), Turn: Red, Ply: MaxTurns}
		require.True(t, s.Over())
		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Blue, winner)
	})

	t.Run("Turn budget is decided by majority even when blocked", func(t *testing.T) {
		b := Board{}
		for i := 3; i < NumCells; i++ {
			color := Red
			if i%5 == 0 {
				color = Blue
			}
			b = b.Fill(color, coordAt(i))
		}
		s := GameState{Board: b, Turn: Red, Ply: MaxTurns}
		require.True(t, s.Blocked())

		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Red, winner)

		winner, ok = s.WinnerAt(MaxTurns + 10)
		require.True(t, ok)
		require.Equal(t, Blue, winner, "Within the budget the blocked side loses")
	})

	t.Run("Hash depends on the side to move", func(t *testing.T) {
		b := Board{}.Fill(Red, NewCoord(1, 1))
		require.NotEqual(t, GameState{Board: b, Turn: Red}.Hash(), GameState{Board: b, Turn: Blue}.Hash())
		require.Equal(t, GameState{Board: b, Turn: Red}.Hash(), GameState{Board: b, Turn: Red, Ply: 3}.Hash())
	})
}

func TestFixtures(t *testing.T) {
	const input = `
- name: corner
  turn: blue
  ply: 1
  grid: |
    r r r r . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
    . . . . . . . . . . .
`

	t.Run("Fixtures decode into states", func(t *testing.T) {
		fixtures, err := ReadFixtures(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, fixtures, 1)

		state, err := fixtures[0].State()
		require.NoError(t, err)
		require.Equal(t, Blue, state.Turn)
		require.Equal(t, 1, state.Ply)
		require.Equal(t, []Coord{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, state.Board.Cells(Red))
	})

	t.Run("Written fixtures decode to the same state", func(t *testing.T) {
		state := NewGameState().Play(MustAction(NewCoord(5, 4), NewCoord(5, 5), NewCoord(5, 6), NewCoord(4, 5)))

		var buf bytes.Buffer
		require.NoError(t, WriteFixtures(&buf, []Fixture{NewFixture("center", state)}))

		fixtures, err := ReadFixtures(&buf)
		require.NoError(t, err)
		decoded, err := fixtures[0].State()
		require.NoError(t, err)
		require.Equal(t, state, decoded)
	})

	t.Run("Unknown turn is an error", func(t *testing.T) {
		_, err := Fixture{Name: "bad", Turn: "green", Grid: Board{}.String()}.State()
		require.Error(t, err)
	})
}
