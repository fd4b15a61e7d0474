package searcher

import (
	"sort"
	"sync"

	"tetress/game"
)

const noParent = -1

// node is a search tree position. Nodes live in the tree's arena and refer to
// each other by index: a node owns its children, the parent is only a link back.
type node struct {
	board     game.Board
	toMove    game.Color
	move      game.Action // Move that produced the node, unset on the root
	parent    int
	children  []int
	expanded  bool
	wins      int
	losses    int
	draws     int
	visits    int
	heuristic float64
	score     float64
}

// Stats is a snapshot of a node's counters.
type Stats struct {
	Wins      int
	Losses    int
	Draws     int
	Visits    int
	Heuristic float64
	Score     float64
}

type ChildStats struct {
	Move game.Action
	Stats
}

func (n *node) stats() Stats {
	return Stats{
		Wins:      n.wins,
		Losses:    n.losses,
		Draws:     n.draws,
		Visits:    n.visits,
		Heuristic: n.heuristic,
		Score:     n.score,
	}
}

// tree is the arena. The mutex serialises every read and write of nodes.
type tree struct {
	sync.Mutex
	color game.Color // The searching color; every expansion generates its moves
	nodes []node
}

func newTree(board game.Board, color game.Color, evaluate game.Evaluate) *tree {
	return &tree{
		color: color,
		nodes: []node{{
			board:     board,
			toMove:    color,
			parent:    noParent,
			heuristic: evaluate(board, color),
		}},
	}
}

// selectLeaf descends from the root along the highest scores until it
// reaches a node that is unexpanded or has no children.
func (t *tree) selectLeaf() int {
	idx := 0
	for t.nodes[idx].expanded && len(t.nodes[idx].children) > 0 {
		idx = t.bestChild(idx)
	}
	return idx
}

// bestChild returns the first child with the maximum score.
func (t *tree) bestChild(idx int) int {
	children := t.nodes[idx].children
	best := children[0]
	for _, child := range children[1:] {
		if t.nodes[child].score > t.nodes[best].score {
			best = child
		}
	}
	return best
}

// expand adds up to width children, the placements of the searching color
// ranked by heuristic. It returns the number of children added.
func (t *tree) expand(idx, width int, evaluate game.Evaluate) int {
	if t.nodes[idx].expanded {
		return 0
	}
	t.nodes[idx].expanded = true

	board := t.nodes[idx].board
	moves := game.LegalMoves(board, t.color)
	candidates := make([]node, len(moves))
	for i, move := range moves {
		child := board.Apply(move, t.color)
		h := evaluate(child, t.color)
		candidates[i] = node{
			board:     child,
			toMove:    t.color.Other(),
			move:      move,
			parent:    idx,
			heuristic: h,
			score:     h,
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].heuristic > candidates[j].heuristic
	})
	if len(candidates) > width {
		candidates = candidates[:width]
	}

	children := make([]int, len(candidates))
	for i := range candidates {
		children[i] = len(t.nodes)
		t.nodes = append(t.nodes, candidates[i])
	}
	t.nodes[idx].children = children
	return len(children)
}

// backup records the playout result on the path from idx to the root. All
// counters are updated first so every rescored node sees its parent's new
// visit count.
func (t *tree) backup(idx int, result outcome, p policy) {
	for i := idx; i != noParent; i = t.nodes[i].parent {
		n := &t.nodes[i]
		n.visits++
		switch result {
		case win:
			n.wins++
		case loss:
			n.losses++
		default:
			n.draws++
		}
	}

	for i := idx; i != noParent; i = t.nodes[i].parent {
		n := &t.nodes[i]
		if n.parent == noParent {
			n.score = p.rootScore(n.wins, n.visits)
			continue
		}
		n.score = p.childScore(n.wins, n.visits, t.nodes[n.parent].visits, n.heuristic)
	}
}

func (t *tree) root() *node {
	return &t.nodes[0]
}

func (t *tree) childStats(idx int) []ChildStats {
	children := t.nodes[idx].children
	stats := make([]ChildStats, len(children))
	for i, child := range children {
		stats[i] = ChildStats{Move: t.nodes[child].move, Stats: t.nodes[child].stats()}
	}
	return stats
}
