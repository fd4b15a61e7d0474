package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var ErrInvalidBoard = errors.New("invalid board")

// Board is an immutable position. It is a comparable value: copying a Board
// copies the position, and two boards are equal iff every cell matches.
type Board struct {
	cells [NumCells]uint8
}

func (b Board) Get(c Coord) (Color, bool) {
	v := b.cells[NewCoord(c.R, c.C).index()]
	if v == empty {
		return 0, false
	}
	return Color(v), true
}

func (b Board) IsEmpty(c Coord) bool {
	return b.cells[NewCoord(c.R, c.C).index()] == empty
}

// Fill sets the given cells to color without clearing lines. It is meant for
// building positions, not for playing moves.
func (b Board) Fill(color Color, coords ...Coord) Board {
	for _, c := range coords {
		b.cells[NewCoord(c.R, c.C).index()] = uint8(color)
	}
	return b
}

// Apply places the action for color and then empties every full row and
// every full column of the resulting board in a single pass. Legality is
// the caller's concern; see CheckPlacement.
func (b Board) Apply(a Action, color Color) Board {
	for _, c := range a {
		b.cells[c.index()] = uint8(color)
	}
	b.clearLines()
	return b
}

func (b *Board) clearLines() {
	var rows, cols [BoardN]bool
	for r := 0; r < BoardN; r++ {
		rows[r] = true
		for c := 0; c < BoardN; c++ {
			if b.cells[r*BoardN+c] == empty {
				rows[r] = false
				break
			}
		}
	}
	for c := 0; c < BoardN; c++ {
		cols[c] = true
		for r := 0; r < BoardN; r++ {
			if b.cells[r*BoardN+c] == empty {
				cols[c] = false
				break
			}
		}
	}

	// Both sets are collected before anything is cleared
	for r, full := range rows {
		if full {
			for c := 0; c < BoardN; c++ {
				b.cells[r*BoardN+c] = empty
			}
		}
	}
	for c, full := range cols {
		if full {
			for r := 0; r < BoardN; r++ {
				b.cells[r*BoardN+c] = empty
			}
		}
	}
}

func (b Board) Count(color Color) int {
	n := 0
	for _, v := range b.cells {
		if v == uint8(color) {
			n++
		}
	}
	return n
}

// Counts returns the number of cells owned by each player.
func (b Board) Counts() (red, blue int) {
	for _, v := range b.cells {
		switch Color(v) {
		case Red:
			red++
		case Blue:
			blue++
		}
	}
	return red, blue
}

func (b Board) Occupied() int {
	red, blue := b.Counts()
	return red + blue
}

// Winner reports the color owning strictly more cells. An even split has no winner.
func (b Board) Winner() (Color, bool) {
	red, blue := b.Counts()
	switch {
	case red > blue:
		return Red, true
	case blue > red:
		return Blue, true
	default:
		return 0, false
	}
}

// Cells lists the cells owned by color in row-major order.
func (b Board) Cells(color Color) []Coord {
	var cells []Coord
	for i, v := range b.cells {
		if v == uint8(color) {
			cells = append(cells, coordAt(i))
		}
	}
	return cells
}

// Fingerprint encodes the board as 121 characters, one per cell in row-major
// order: '0' empty, '1' red, '2' blue.
func (b Board) Fingerprint() string {
	var sb strings.Builder
	sb.Grow(NumCells)
	for _, v := range b.cells {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// ParseBoard decodes a Fingerprint.
func ParseBoard(fingerprint string) (Board, error) {
	var b Board
	if len(fingerprint) != NumCells {
		return b, fmt.Errorf("%w: fingerprint has %d cells, want %d", ErrInvalidBoard, len(fingerprint), NumCells)
	}
	for i := 0; i < NumCells; i++ {
		switch ch := fingerprint[i]; ch {
		case '0', '1', '2':
			b.cells[i] = ch - '0'
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q at cell %d", ErrInvalidBoard, ch, i)
		}
	}
	return b, nil
}

// Hash is a 64-bit digest of the cells, suitable as a compact map key.
func (b Board) Hash() uint64 {
	return xxhash.Sum64(b.cells[:])
}
