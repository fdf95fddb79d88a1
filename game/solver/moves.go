package solver

import (
	"fmt"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

// SplitSteps expands every multi-cell move into unit moves in the same
// direction.
func SplitSteps(moves []board.Move) []board.Move {
	out := make([]board.Move, 0, len(moves))
	for _, m := range moves {
		step, n := 1, m.Delta
		if n < 0 {
			step, n = -1, -n
		}
		for k := 0; k < n; k++ {
			out = append(out, board.Move{Vehicle: m.Vehicle, Delta: step})
		}
	}
	return out
}

// CombineConsecutive merges directly consecutive moves of the same vehicle.
// Runs that cancel out are dropped.
func CombineConsecutive(moves []board.Move) []board.Move {
	out := []board.Move{}
	if len(moves) == 0 {
		return out
	}
	cur := moves[0]
	for _, m := range moves[1:] {
		if m.Vehicle == cur.Vehicle {
			cur.Delta += m.Delta
			continue
		}
		if cur.Delta != 0 {
			out = append(out, cur)
		}
		cur = m
	}
	if cur.Delta != 0 {
		out = append(out, cur)
	}
	return out
}

// Replay applies moves in order and returns every board along the way,
// starting with b itself.
func Replay(b *board.Board, moves []board.Move) ([]*board.Board, error) {
	boards := make([]*board.Board, 0, len(moves)+1)
	boards = append(boards, b)
	cur := b
	for k, m := range moves {
		next, err := cur.ApplyMove(m.Vehicle, m.Delta)
		if err != nil {
			return boards, fmt.Errorf("move %d: %w", k+1, err)
		}
		boards = append(boards, next)
		cur = next
	}
	return boards, nil
}

// Direction names the way a move slides its vehicle
func Direction(b *board.Board, m board.Move) string {
	v := b.Vehicle(m.Vehicle)
	switch {
	case v.Orientation == board.Horizontal && m.Delta > 0:
		return "Right"
	case v.Orientation == board.Horizontal:
		return "Left"
	case m.Delta > 0:
		return "Down"
	default:
		return "Up"
	}
}

// Describe renders a move as "P - Right (2 steps)"
func Describe(b *board.Board, m board.Move) string {
	n := m.Delta
	if n < 0 {
		n = -n
	}
	unit := "steps"
	if n == 1 {
		unit = "step"
	}
	return fmt.Sprintf("%s - %s (%d %s)", b.Vehicle(m.Vehicle).Symbol(), Direction(b, m), n, unit)
}
