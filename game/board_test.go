package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoord(t *testing.T) {
	t.Run("Coordinates wrap around both axes", func(t *testing.T) {
		require.Equal(t, Coord{R: 10, C: 0}, NewCoord(-1, 11))
		require.Equal(t, Coord{R: 0, C: 10}, NewCoord(22, -12))
		require.Equal(t, Coord{R: 0, C: 0}, NewCoord(5, 5).Add(6, -5))
	})

	t.Run("Neighbors of a corner cell wrap to the opposite edges", func(t *testing.T) {
		neighbors := NewCoord(0, 0).Neighbors()
		require.Equal(t, [4]Coord{{10, 0}, {1, 0}, {0, 10}, {0, 1}}, neighbors)
	})
}

func TestFingerprint(t *testing.T) {
	t.Run("Empty board is all zeros", func(t *testing.T) {
		require.Equal(t, strings.Repeat("0", NumCells), Board{}.Fingerprint())
	})

	t.Run("Fingerprint round trips", func(t *testing.T) {
		b := Board{}.
			Fill(Red, NewCoord(0, 0), NewCoord(5, 5)).
			Fill(Blue, NewCoord(10, 10), NewCoord(3, 7))

		fingerprint := b.Fingerprint()
		require.Equal(t, byte('1'), fingerprint[0])
		require.Equal(t, byte('2'), fingerprint[NumCells-1])

		parsed, err := ParseBoard(fingerprint)
		require.NoError(t, err)
		require.Equal(t, b, parsed)
	})

	t.Run("Malformed fingerprints are rejected", func(t *testing.T) {
		_, err := ParseBoard("012")
		require.ErrorIs(t, err, ErrInvalidBoard)

		_, err = ParseBoard(strings.Repeat("3", NumCells))
		require.ErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("Grid form round trips", func(t *testing.T) {
		b := Board{}.Fill(Red, NewCoord(1, 2)).Fill(Blue, NewCoord(9, 0))
		parsed, err := ParseGrid(b.String())
		require.NoError(t, err)
		require.Equal(t, b, parsed)
	})

	t.Run("Equal boards hash equally", func(t *testing.T) {
		a := Board{}.Fill(Red, NewCoord(4, 4))
		b := Board{}.Fill(Red, NewCoord(4, 4))
		require.Equal(t, a.Hash(), b.Hash())
		require.NotEqual(t, a.Hash(), Board{}.Hash())
	})
}

func TestApply(t *testing.T) {
	t.Run("First move T at the center places exactly four cells", func(t *testing.T) {
		a := MustAction(NewCoord(5, 4), NewCoord(5, 5), NewCoord(5, 6), NewCoord(4, 5))
		require.NoError(t, CheckPlacement(Board{}, a, Red))

		b := Board{}.Apply(a, Red)
		require.Equal(t, []Coord{{4, 5}, {5, 4}, {5, 5}, {5, 6}}, b.Cells(Red))
		require.Equal(t, 4, b.Occupied())
	})

	t.Run("Completing a row clears it and nothing else", func(t *testing.T) {
		before := Board{}.
			Fill(Red, NewCoord(0, 0), NewCoord(8, 8)).
			Fill(Blue, NewCoord(10, 3))
		for c := 0; c < BoardN-1; c++ {
			color := Blue
			if c%2 == 1 {
				color = Red
			}
			before = before.Fill(color, NewCoord(3, c))
		}

		a := MustAction(NewCoord(3, 10), NewCoord(4, 10), NewCoord(5, 10), NewCoord(6, 10))
		require.NoError(t, CheckPlacement(before, a, Red))

		after := before.Apply(a, Red)
		for c := 0; c < BoardN; c++ {
			require.True(t, after.IsEmpty(NewCoord(3, c)), "Should clear cell 3-%d", c)
		}
		for r := 4; r <= 6; r++ {
			color, ok := after.Get(NewCoord(r, 10))
			require.True(t, ok)
			require.Equal(t, Red, color)
		}
		for i := 0; i < NumCells; i++ {
			c := coordAt(i)
			if c.R == 3 || (c.C == 10 && c.R >= 4 && c.R <= 6) {
				continue
			}
			require.Equal(t, before.cells[i], after.cells[i], "Should leave %v unchanged", c)
		}
	})

	t.Run("Full rows and columns are cleared in the same pass", func(t *testing.T) {
		b := Board{}
		for i := 0; i < BoardN; i++ {
			if i != 0 {
				b = b.Fill(Blue, NewCoord(0, i))
			}
			if i > 3 {
				b = b.Fill(Blue, NewCoord(i, 0))
			}
		}
		b = b.Fill(Red, NewCoord(2, 1))

		// Covers 0-0 (completing row 0) and 1-0..3-0 (completing column 0)
		a := MustAction(NewCoord(0, 0), NewCoord(1, 0), NewCoord(2, 0), NewCoord(3, 0))
		after := b.Apply(a, Red)

		require.Equal(t, []Coord{{2, 1}}, after.Cells(Red))
		require.Empty(t, after.Cells(Blue))
	})

	t.Run("Apply leaves the receiver untouched", func(t *testing.T) {
		b := Board{}
		_ = b.Apply(MustAction(NewCoord(0, 0), NewCoord(0, 1), NewCoord(0, 2), NewCoord(0, 3)), Blue)
		require.Equal(t, Board{}, b)
	})
}

func TestWinner(t *testing.T) {
	t.Run("Majority wins", func(t *testing.T) {
		b := Board{}.Fill(Red, NewCoord(0, 0), NewCoord(0, 1)).Fill(Blue, NewCoord(5, 5))
		winner, ok := b.Winner()
		require.True(t, ok)
		require.Equal(t, Red, winner)

		red, blue := b.Counts()
		require.Equal(t, 2, red)
		require.Equal(t, 1, blue)
	})

	t.Run("Even split has no winner", func(t *testing.T) {
		b := Board{}.Fill(Red, NewCoord(0, 0)).Fill(Blue, NewCoord(5, 5))
		_, ok := b.Winner()
		require.False(t, ok)
	})
}
