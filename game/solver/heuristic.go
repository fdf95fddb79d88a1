package solver

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

// NoPrimaryPenalty is returned by every heuristic for a board without a
// primary vehicle.
const NoPrimaryPenalty = 9999999

var ErrInvalidHeuristic = errors.New("invalid heuristic")

// Heuristic selects the estimate used to order informed searches
type Heuristic int

const (
	// HeuristicNone estimates 0 everywhere. Only uniform-cost search runs with it.
	HeuristicNone Heuristic = iota
	Manhattan
	Blocking
)

// ParseHeuristic resolves a heuristic name. Only the exact names "Manhattan"
// and "Blocking" are accepted.
func ParseHeuristic(name string) (Heuristic, error) {
	switch name {
	case "Manhattan":
		return Manhattan, nil
	case "Blocking":
		return Blocking, nil
	}
	return HeuristicNone, fmt.Errorf("%w: %q (want Manhattan or Blocking)", ErrInvalidHeuristic, name)
}

func (h Heuristic) String() string {
	switch h {
	case Manhattan:
		return "Manhattan"
	case Blocking:
		return "Blocking"
	}
	return "none"
}

// MarshalText encodes the heuristic by name
func (h Heuristic) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// Estimate evaluates the heuristic on b
func (h Heuristic) Estimate(b *board.Board) int {
	switch h {
	case Manhattan:
		return ManhattanDistance(b)
	case Blocking:
		return BlockingVehicles(b)
	}
	return 0
}

// ManhattanDistance counts the cells between the primary vehicle's leading
// edge and the exit boundary, never less than 0.
func ManhattanDistance(b *board.Board) int {
	p, ok := b.Primary()
	if !ok {
		return NoPrimaryPenalty
	}
	d := gap(p, b.Exit())
	if d < 0 {
		return 0
	}
	return d
}

// BlockingVehicles counts the distinct vehicles standing between the primary
// vehicle's leading edge and the exit boundary. It carries no distance term,
// so it can undercount the remaining moves and is not admissible.
func BlockingVehicles(b *board.Board) int {
	p, ok := b.Primary()
	if !ok {
		return NoPrimaryPenalty
	}
	exit := b.Exit()
	seen := make(map[byte]bool)
	visit := func(r, c int) {
		if !b.InBounds(r, c) {
			return
		}
		if id := b.At(r, c); id != board.Empty && id != p.ID {
			seen[id] = true
		}
	}
	switch exit.Side {
	case board.Right:
		for c := p.EndCol() + 1; c < exit.Col; c++ {
			visit(p.Row, c)
		}
	case board.Left:
		for c := p.Col - 1; c > exit.Col; c-- {
			visit(p.Row, c)
		}
	case board.Bottom:
		for r := p.EndRow() + 1; r < exit.Row; r++ {
			visit(r, p.Col)
		}
	case board.Top:
		for r := p.Row - 1; r > exit.Row; r-- {
			visit(r, p.Col)
		}
	}
	return len(seen)
}

// gap is the signed number of cells between the leading edge and the exit
func gap(p board.Vehicle, exit board.Exit) int {
	switch exit.Side {
	case board.Right:
		return exit.Col - p.EndCol() - 1
	case board.Left:
		return p.Col - exit.Col - 1
	case board.Bottom:
		return exit.Row - p.EndRow() - 1
	case board.Top:
		return p.Row - exit.Row - 1
	}
	return 0
}
