package game

import (
	"errors"
	"fmt"
	"strings"
)

type PieceType uint8

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceJ
	PieceL
	PieceS
	PieceZ
)

func (p PieceType) String() string {
	return [...]string{"I", "O", "T", "J", "L", "S", "Z"}[p]
}

type offset struct {
	dr, dc int
}

type template struct {
	piece PieceType
	cells [PieceSize]offset
}

// templates lists the 19 fixed orientations of the seven tetrominoes.
var templates = [...]template{
	{PieceI, [4]offset{{0, 0}, {0, 1}, {0, 2}, {0, 3}}},
	{PieceI, [4]offset{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},

	{PieceO, [4]offset{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},

	{PieceT, [4]offset{{0, 0}, {0, 1}, {0, 2}, {1, 1}}},
	{PieceT, [4]offset{{0, 1}, {1, 0}, {1, 1}, {1, 2}}},
	{PieceT, [4]offset{{0, 0}, {1, 0}, {2, 0}, {1, 1}}},
	{PieceT, [4]offset{{0, 1}, {1, 0}, {1, 1}, {2, 1}}},

	{PieceJ, [4]offset{{0, 1}, {1, 1}, {2, 1}, {2, 0}}},
	{PieceJ, [4]offset{{0, 0}, {1, 0}, {1, 1}, {1, 2}}},
	{PieceJ, [4]offset{{0, 0}, {0, 1}, {1, 0}, {2, 0}}},
	{PieceJ, [4]offset{{0, 0}, {0, 1}, {0, 2}, {1, 2}}},

	{PieceL, [4]offset{{0, 0}, {1, 0}, {2, 0}, {2, 1}}},
	{PieceL, [4]offset{{0, 0}, {0, 1}, {0, 2}, {1, 0}}},
	{PieceL, [4]offset{{0, 0}, {0, 1}, {1, 1}, {2, 1}}},
	{PieceL, [4]offset{{0, 2}, {1, 0}, {1, 1}, {1, 2}}},

	{PieceS, [4]offset{{0, 1}, {0, 2}, {1, 0}, {1, 1}}},
	{PieceS, [4]offset{{0, 0}, {1, 0}, {1, 1}, {2, 1}}},

	{PieceZ, [4]offset{{0, 0}, {0, 1}, {1, 1}, {1, 2}}},
	{PieceZ, [4]offset{{0, 1}, {1, 0}, {1, 1}, {2, 0}}},
}

// NumTemplates is the number of fixed tetromino orientations.
const NumTemplates = len(templates)

var ErrBadAction = errors.New("action must have exactly 4 cells")

// Action is a placement of four cells. The cells are kept sorted in
// row-major order, so two actions covering the same cells are ==.
type Action [PieceSize]Coord

// NewAction builds an Action from four coordinates, wrapping them onto the torus.
func NewAction(coords ...Coord) (Action, error) {
	var a Action
	if len(coords) != PieceSize {
		return a, fmt.Errorf("%w: got %d", ErrBadAction, len(coords))
	}
	for i, c := range coords {
		a[i] = NewCoord(c.R, c.C)
	}
	return a.canonical(), nil
}

// MustAction is NewAction for literals known to be well formed.
func MustAction(coords ...Coord) Action {
	a, err := NewAction(coords...)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Action) canonical() Action {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j].index() < a[j-1].index(); j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
	return a
}

func (a Action) Contains(c Coord) bool {
	c = NewCoord(c.R, c.C)
	for _, x := range a {
		if x == c {
			return true
		}
	}
	return false
}

// Piece identifies which tetromino the cells form on the torus.
func (a Action) Piece() (PieceType, bool) {
	a = a.canonical()
	for i := range templates {
		for pivot := 0; pivot < PieceSize; pivot++ {
			if place(&templates[i], a[0], pivot) == a {
				return templates[i].piece, true
			}
		}
	}
	return 0, false
}

func (a Action) String() string {
	parts := make([]string, len(a))
	for i, c := range a {
		parts[i] = c.String()
	}
	return "PLACE(" + strings.Join(parts, ", ") + ")"
}

// place puts the template's pivot-th cell on anchor.
func place(t *template, anchor Coord, pivot int) Action {
	var a Action
	p := t.cells[pivot]
	for i, o := range t.cells {
		a[i] = anchor.Add(o.dr-p.dr, o.dc-p.dc)
	}
	return a.canonical()
}

// PlacementsAt returns every placement that covers anchor, legal or not.
func PlacementsAt(anchor Coord) []Action {
	actions := make([]Action, 0, NumTemplates*PieceSize)
	for i := range templates {
		for pivot := 0; pivot < PieceSize; pivot++ {
			actions = append(actions, place(&templates[i], anchor, pivot))
		}
	}
	return actions
}
