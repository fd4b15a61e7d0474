package game

// MinHoleSize is the smallest empty region counted as a hole.
const MinHoleSize = 4

type disjointSet struct {
	parent [NumCells]int
	size   [NumCells]int
}

func newDisjointSet() *disjointSet {
	d := &disjointSet{}
	for i := range d.parent {
		d.parent[i] = i
		d.size[i] = 1
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSet) union(x, y int) {
	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return
	}
	if d.size[rx] < d.size[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	d.size[rx] += d.size[ry]
}

// EmptyRegions returns the sizes of the 4-connected empty regions of the
// board, wraparound included. The order of the sizes is unspecified.
func EmptyRegions(b Board) []int {
	d := newDisjointSet()
	for i, v := range b.cells {
		if v != empty {
			continue
		}
		// Down and right cover every edge of the torus once
		for _, n := range [2]int{neighborIndex[i][1], neighborIndex[i][3]} {
			if b.cells[n] == empty {
				d.union(i, n)
			}
		}
	}

	var sizes []int
	for i, v := range b.cells {
		if v == empty && d.find(i) == i {
			sizes = append(sizes, d.size[i])
		}
	}
	return sizes
}

// HoleCount is the number of empty regions with at least MinHoleSize cells.
func HoleCount(b Board) int {
	holes := 0
	for _, size := range EmptyRegions(b) {
		if size >= MinHoleSize {
			holes++
		}
	}
	return holes
}
