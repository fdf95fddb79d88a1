package solver

import (
	"container/heap"
	"math"
	"sort"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

// visitTiming says when a state joins the visited set
type visitTiming int

const (
	onDequeue visitTiming = iota
	onEnqueue
)

// policy is everything that distinguishes the heap-based strategies
type policy struct {
	priority func(n *node) int
	visit    visitTiming
}

var policies = map[Algorithm]policy{
	UCS:   {priority: func(n *node) int { return n.g }, visit: onDequeue},
	GBFS:  {priority: func(n *node) int { return n.h }, visit: onDequeue},
	AStar: {priority: func(n *node) int { return n.f() }, visit: onEnqueue},
}

// DepthLimit is the longest move history a branch may reach before it is
// no longer expanded.
func DepthLimit(b *board.Board) int {
	return b.Rows() * b.Cols() * 50
}

// search holds the bookkeeping shared by every strategy for one run
type search struct {
	h        Heuristic
	visited  map[string]struct{}
	limit    int
	explored int
	seq      int
	observe  Observer
}

func newSearch(start *board.Board, h Heuristic, observe Observer) *search {
	return &search{
		h:       h,
		visited: make(map[string]struct{}),
		limit:   DepthLimit(start),
		observe: observe,
	}
}

func (s *search) root(b *board.Board) *node {
	return s.newNode(b, nil, board.Move{})
}

func (s *search) newNode(b *board.Board, parent *node, m board.Move) *node {
	n := &node{board: b, key: b.Key(), parent: parent, move: m, h: s.h.Estimate(b), seq: s.seq}
	if parent != nil {
		n.g = parent.g + 1
	}
	s.seq++
	return n
}

func (s *search) seen(key string) bool {
	_, ok := s.visited[key]
	return ok
}

func (s *search) mark(key string) {
	s.visited[key] = struct{}{}
}

// examine counts n as explored and reports whether it is the goal
func (s *search) examine(n *node) bool {
	s.explored++
	if s.observe != nil {
		s.observe(s.explored, n.board)
	}
	return n.board.IsSolved()
}

// expand calls emit for every unvisited successor of n. Branches past the
// depth limit are pruned here.
func (s *search) expand(n *node, emit func(child *node)) {
	if n.g > s.limit {
		return
	}
	b := n.board
	for i := 0; i < b.NumVehicles(); i++ {
		for _, d := range b.ValidMoves(i) {
			next, err := b.ApplyMove(i, d)
			if err != nil {
				continue
			}
			if s.seen(next.Key()) {
				continue
			}
			emit(s.newNode(next, n, board.Move{Vehicle: i, Delta: d}))
		}
	}
}

// bestFirst is the heap-driven loop behind UCS, GBFS and A*. It returns the
// goal node or nil once the frontier is exhausted.
func (s *search) bestFirst(start *board.Board, p policy) *node {
	open := &frontier{}
	push := func(n *node) {
		n.priority = p.priority(n)
		if p.visit == onEnqueue {
			s.mark(n.key)
		}
		heap.Push(open, n)
	}

	push(s.root(start))
	for open.Len() > 0 {
		n := heap.Pop(open).(*node)
		if p.visit == onDequeue {
			// a state can be queued more than once before its first dequeue
			if s.seen(n.key) {
				continue
			}
			s.mark(n.key)
		}
		if s.examine(n) {
			return n
		}
		s.expand(n, push)
	}
	return nil
}

// fringe keeps a current and a next list instead of a heap. Each pass
// expands the states whose f fits under the threshold and defers the rest;
// the next pass raises the threshold to the smallest deferred f.
func (s *search) fringe(start *board.Board) *node {
	root := s.root(start)
	s.mark(root.key)
	threshold := root.f()
	current := []*node{root}

	for len(current) > 0 {
		sort.SliceStable(current, func(i, j int) bool { return current[i].f() < current[j].f() })

		var next []*node
		nextThreshold := math.MaxInt
		postpone := func(n *node) {
			next = append(next, n)
			if n.f() < nextThreshold {
				nextThreshold = n.f()
			}
		}

		for k := 0; k < len(current); k++ {
			n := current[k]
			if n.f() > threshold {
				postpone(n)
				continue
			}
			if s.examine(n) {
				return n
			}
			s.expand(n, func(child *node) {
				s.mark(child.key)
				if child.f() <= threshold {
					current = append(current, child)
				} else {
					postpone(child)
				}
			})
		}

		threshold = nextThreshold
		current = next
	}
	return nil
}
