package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalPlacement = errors.New("illegal placement")
	ErrNotTetromino     = fmt.Errorf("%w: cells do not form a tetromino", ErrIllegalPlacement)
	ErrOccupied         = fmt.Errorf("%w: cell already occupied", ErrIllegalPlacement)
	ErrNotAdjacent      = fmt.Errorf("%w: no cell touches own color", ErrIllegalPlacement)
)

// CheckPlacement validates a placement for color without touching the board.
// The adjacency rule is waived while color owns no cells.
func CheckPlacement(b Board, a Action, color Color) error {
	if !color.Valid() {
		return fmt.Errorf("%w: unknown color %d", ErrIllegalPlacement, color)
	}
	if _, ok := a.Piece(); !ok {
		return fmt.Errorf("%w: %v", ErrNotTetromino, a)
	}
	for _, c := range a {
		if !b.IsEmpty(c) {
			return fmt.Errorf("%w: %v", ErrOccupied, c)
		}
	}
	if b.Count(color) > 0 && !touches(&b, &a, color) {
		return fmt.Errorf("%w: %v", ErrNotAdjacent, a)
	}
	return nil
}

// IsLegal reports whether CheckPlacement accepts the placement.
func IsLegal(b Board, a Action, color Color) bool {
	return CheckPlacement(b, a, color) == nil
}

func fits(b *Board, a *Action) bool {
	for _, c := range a {
		if b.cells[c.index()] != empty {
			return false
		}
	}
	return true
}

func touches(b *Board, a *Action, color Color) bool {
	for _, c := range a {
		for _, n := range neighborIndex[c.index()] {
			if b.cells[n] == uint8(color) {
				return true
			}
		}
	}
	return false
}
