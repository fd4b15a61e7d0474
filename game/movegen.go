package game

// LegalMoves returns the legal placements for color, one per distinct
// resulting board. Placements that clear lines into an identical position are
// reported once. The order is deterministic for a given board.
//
// Candidates are grown from the empty neighbours of color's cells: every
// legal placement covers at least one of them, and trying each template cell
// on each such anchor reaches every placement that does.
func LegalMoves(b Board, color Color) []Action {
	if b.Count(color) == 0 {
		return scan(&b, color, false)
	}

	var moves []Action
	seen := make(map[Board]struct{})
	var anchored [NumCells]bool
	for i, v := range b.cells {
		if v != uint8(color) {
			continue
		}
		for _, n := range neighborIndex[i] {
			if b.cells[n] != empty || anchored[n] {
				continue
			}
			anchored[n] = true
			anchor := coordAt(n)
			for t := range templates {
				for pivot := 0; pivot < PieceSize; pivot++ {
					a := place(&templates[t], anchor, pivot)
					if !fits(&b, &a) {
						continue
					}
					next := b.Apply(a, color)
					if _, dup := seen[next]; dup {
						continue
					}
					seen[next] = struct{}{}
					moves = append(moves, a)
				}
			}
		}
	}
	return moves
}

// HasLegalMove reports whether color can place anything at all.
func HasLegalMove(b Board, color Color) bool {
	if b.Count(color) == 0 {
		for i := 0; i < NumCells; i++ {
			for t := range templates {
				a := place(&templates[t], coordAt(i), 0)
				if fits(&b, &a) {
					return true
				}
			}
		}
		return false
	}

	for i, v := range b.cells {
		if v != uint8(color) {
			continue
		}
		for _, n := range neighborIndex[i] {
			if b.cells[n] != empty {
				continue
			}
			for t := range templates {
				for pivot := 0; pivot < PieceSize; pivot++ {
					a := place(&templates[t], coordAt(n), pivot)
					if fits(&b, &a) {
						return true
					}
				}
			}
		}
	}
	return false
}

// scan tries every template at every cell. With adjacency set it applies the
// full placement rule, otherwise only the empty-cells rule.
func scan(b *Board, color Color, adjacency bool) []Action {
	var moves []Action
	seen := make(map[Board]struct{})
	for i := 0; i < NumCells; i++ {
		for t := range templates {
			a := place(&templates[t], coordAt(i), 0)
			if !fits(b, &a) || (adjacency && !touches(b, &a, color)) {
				continue
			}
			next := b.Apply(a, color)
			if _, dup := seen[next]; dup {
				continue
			}
			seen[next] = struct{}{}
			moves = append(moves, a)
		}
	}
	return moves
}

// scanMoves is the exhaustive reference generator.
func scanMoves(b Board, color Color) []Action {
	return scan(&b, color, b.Count(color) > 0)
}
