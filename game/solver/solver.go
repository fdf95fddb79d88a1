package solver

import (
	"errors"
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

var ErrNoBoard = errors.New("no board to solve")

// Observer is called each time a state is taken off the frontier and
// goal-checked, with the running count.
type Observer func(explored int, b *board.Board)

// Option configures a single Solve call
type Option func(*options)

type options struct {
	observe Observer
}

// WithObserver reports search progress to fn
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observe = fn }
}

// Result is the outcome of one search
type Result struct {
	Algorithm     Algorithm     `json:"algorithm"`
	Heuristic     Heuristic     `json:"heuristic"`
	Moves         []board.Move  `json:"moves"`
	NodesExplored int           `json:"nodes_explored"`
	Elapsed       time.Duration `json:"elapsed"`
	Solved        bool          `json:"solved"`
}

// Solve runs the named strategy on b. heuristic must be "Manhattan" or
// "Blocking" for every strategy except UCS, which ignores it. An unsolvable
// board is not an error: the result has Solved false and no moves.
func Solve(b *board.Board, algorithm Algorithm, heuristic string, opts ...Option) (*Result, error) {
	if b == nil {
		return nil, ErrNoBoard
	}
	if _, ok := policies[algorithm]; !ok && algorithm != Fringe {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, algorithm)
	}

	h := HeuristicNone
	if algorithm.Informed() {
		var err error
		if h, err = ParseHeuristic(heuristic); err != nil {
			return nil, err
		}
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return run(b, algorithm, h, o), nil
}

func run(b *board.Board, algorithm Algorithm, h Heuristic, o options) *Result {
	start := time.Now()
	s := newSearch(b, h, o.observe)

	var goal *node
	if algorithm == Fringe {
		goal = s.fringe(b)
	} else {
		goal = s.bestFirst(b, policies[algorithm])
	}

	res := &Result{
		Algorithm:     algorithm,
		Heuristic:     h,
		Moves:         []board.Move{},
		NodesExplored: s.explored,
	}
	if goal != nil {
		res.Solved = true
		res.Moves = goal.path()
		if algorithm == GBFS {
			res.Moves = SplitSteps(res.Moves)
		}
	}
	res.Elapsed = time.Since(start)
	return res
}
