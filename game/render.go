package game

import (
	"fmt"
	"strings"
)

// String renders the board as 11 rows of 'r', 'b' and '.' separated by spaces.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < BoardN; r++ {
		for c := 0; c < BoardN; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			switch b.cells[r*BoardN+c] {
			case uint8(Red):
				sb.WriteByte('r')
			case uint8(Blue):
				sb.WriteByte('b')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid reads the String form back. Whitespace is ignored; cells may be
// written as r/R/1, b/B/2 or ./0.
func ParseGrid(text string) (Board, error) {
	var b Board
	i := 0
	for _, ch := range text {
		var v uint8
		switch ch {
		case ' ', '\t', '\n', '\r':
			continue
		case 'r', 'R', '1':
			v = uint8(Red)
		case 'b', 'B', '2':
			v = uint8(Blue)
		case '.', '0':
			v = empty
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q in grid", ErrInvalidBoard, ch)
		}
		if i >= NumCells {
			return Board{}, fmt.Errorf("%w: grid has more than %d cells", ErrInvalidBoard, NumCells)
		}
		b.cells[i] = v
		i++
	}
	if i != NumCells {
		return Board{}, fmt.Errorf("%w: grid has %d cells, want %d", ErrInvalidBoard, i, NumCells)
	}
	return b, nil
}
