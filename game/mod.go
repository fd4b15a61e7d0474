package game

const (
	// BoardN is the side length of the square toroidal board.
	BoardN    = 11
	NumCells  = BoardN * BoardN
	PieceSize = 4
)

// Color identifies a player. Red moves first.
type Color uint8

const (
	Red Color = iota + 1
	Blue
)

// empty marks an unoccupied cell inside a Board. It is never exposed as a Color.
const empty = 0

func (c Color) Other() Color {
	if c == Red {
		return Blue
	}
	return Red
}

func (c Color) Valid() bool {
	return c == Red || c == Blue
}

func (c Color) String() string {
	switch c {
	case Red:
		return "RED"
	case Blue:
		return "BLUE"
	default:
		return "UNKNOWN"
	}
}

// ParseColor accepts the names used in fixtures and configuration files.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "red", "RED", "r", "1":
		return Red, true
	case "blue", "BLUE", "b", "2":
		return Blue, true
	default:
		return 0, false
	}
}

// Evaluate scores a board from the given color's perspective. Higher is better.
type Evaluate func(b Board, color Color) float64
