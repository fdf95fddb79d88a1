package solver

import (
	"container/heap"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

// node is one search state. The move history is kept as a parent chain and
// rebuilt only for the goal.
type node struct {
	board    *board.Board
	key      string
	parent   *node
	move     board.Move
	g        int
	h        int
	priority int
	seq      int
	index    int
}

func (n *node) f() int { return n.g + n.h }

// path rebuilds the moves from the root to n
func (n *node) path() []board.Move {
	moves := make([]board.Move, n.g)
	for cur := n; cur.parent != nil; cur = cur.parent {
		moves[cur.g-1] = cur.move
	}
	return moves
}

// frontier is a min-heap on priority with insertion order breaking ties
type frontier []*node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*f = old[:n-1]
	return item
}

var _ heap.Interface = (*frontier)(nil)
