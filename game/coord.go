package game

import "fmt"

// Coord is a cell position. Both components are kept in [0, BoardN).
type Coord struct {
	R, C int
}

// NewCoord wraps r and c onto the torus.
func NewCoord(r, c int) Coord {
	return Coord{R: wrap(r), C: wrap(c)}
}

func coordAt(index int) Coord {
	return Coord{R: index / BoardN, C: index % BoardN}
}

func wrap(v int) int {
	v %= BoardN
	if v < 0 {
		v += BoardN
	}
	return v
}

func (c Coord) index() int {
	return c.R*BoardN + c.C
}

// Add returns the coordinate shifted by (dr, dc) with wraparound.
func (c Coord) Add(dr, dc int) Coord {
	return NewCoord(c.R+dr, c.C+dc)
}

// Neighbors returns the four orthogonal neighbours in up, down, left, right order.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(-1, 0),
		c.Add(1, 0),
		c.Add(0, -1),
		c.Add(0, 1),
	}
}

func (c Coord) String() string {
	return fmt.Sprintf("%d-%d", c.R, c.C)
}

// neighborIndex holds the neighbour indices of every cell.
var neighborIndex = func() [NumCells][4]int {
	var table [NumCells][4]int
	for i := 0; i < NumCells; i++ {
		for k, n := range coordAt(i).Neighbors() {
			table[i][k] = n.index()
		}
	}
	return table
}()
