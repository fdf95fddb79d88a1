package main

import (
	"fmt"
	"io"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/board"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// Report prints a solve result board by board: the starting board, then each
// move and the board after it.
type Report struct {
	Board  *board.Board
	Result *solver.Result
	// Steps shows single-cell steps instead of merging consecutive moves of
	// one vehicle.
	Steps bool
}

// Moves returns the moves in display order
func (r *Report) Moves() []board.Move {
	if r.Steps {
		return solver.SplitSteps(r.Result.Moves)
	}
	return solver.CombineConsecutive(r.Result.Moves)
}

func (r *Report) Write(w io.Writer) error {
	res := r.Result
	strategy := res.Algorithm.Title()
	if res.Algorithm.Informed() {
		strategy += " (" + res.Heuristic.String() + ")"
	}

	fmt.Fprintf(w, "Algorithm: %s\n", strategy)
	fmt.Fprintf(w, "Board size: %d x %d\n", r.Board.Rows(), r.Board.Cols())
	fmt.Fprintf(w, "Number of Cars: %d\n", r.Board.NumVehicles()-1)
	fmt.Fprintf(w, "Nodes Explored: %d\n", res.NodesExplored)
	fmt.Fprintf(w, "Searching Time: %d ms\n\n", res.Elapsed.Round(time.Millisecond).Milliseconds())

	fmt.Fprintf(w, "Initial board state:\n%s\n\n", r.Board)

	if !res.Solved {
		_, err := fmt.Fprintln(w, "No solution found.")
		return err
	}
	if len(res.Moves) == 0 {
		_, err := fmt.Fprintln(w, "Already solved.")
		return err
	}

	moves := r.Moves()
	fmt.Fprintf(w, "Solution (%d moves):\n\n", len(moves))
	cur := r.Board
	for k, m := range moves {
		next, err := cur.ApplyMove(m.Vehicle, m.Delta)
		if err != nil {
			return fmt.Errorf("move %d: %w", k+1, err)
		}
		n := m.Delta
		if n < 0 {
			n = -n
		}
		unit := "spaces"
		if n == 1 {
			unit = "space"
		}
		fmt.Fprintf(w, "Move %d: piece %s %d %s %s\n%s\n\n",
			k+1, cur.Vehicle(m.Vehicle).Symbol(), n, unit, solver.Direction(cur, m), next)
		cur = next
	}
	return nil
}
