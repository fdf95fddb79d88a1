package solver

import (
	"errors"
	"testing"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

func TestHeuristics(t *testing.T) {
	tests := []struct {
		name          string
		board         *board.Board
		wantManhattan int
		wantBlocking  int
	}{
		{"blocked right exit", blockedBoard(t), 4, 2},
		{"chain", chainBoard(t), 4, 2},
		{"solved", load(t, board.Right, 0, "...PP", "AA..."), 0, 0},
		{"left exit", load(t, board.Left, 1,
			"B...",
			"B.PP",
			"....",
		), 2, 1},
		{"top exit", load(t, board.Top, 1,
			"....",
			"AA..",
			".P..",
			".P..",
		), 2, 1},
		{"bottom exit", load(t, board.Bottom, 0,
			"P..",
			"P..",
			"...",
			"AA.",
			"...",
		), 3, 1},
		{"same blocker counted once", load(t, board.Right, 0,
			"PP.AAA",
		), 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ManhattanDistance(tt.board); got != tt.wantManhattan {
				t.Errorf("Manhattan: expected %d, got %d", tt.wantManhattan, got)
			}
			if got := BlockingVehicles(tt.board); got != tt.wantBlocking {
				t.Errorf("Blocking: expected %d, got %d", tt.wantBlocking, got)
			}
			if got := Manhattan.Estimate(tt.board); got != tt.wantManhattan {
				t.Errorf("Manhattan.Estimate: expected %d, got %d", tt.wantManhattan, got)
			}
			if got := HeuristicNone.Estimate(tt.board); got != 0 {
				t.Errorf("HeuristicNone.Estimate: expected 0, got %d", got)
			}
		})
	}
}

func TestHeuristicsWithoutPrimary(t *testing.T) {
	empty := &board.Board{}
	if got := ManhattanDistance(empty); got != NoPrimaryPenalty {
		t.Errorf("Manhattan: expected %d, got %d", NoPrimaryPenalty, got)
	}
	if got := BlockingVehicles(empty); got != NoPrimaryPenalty {
		t.Errorf("Blocking: expected %d, got %d", NoPrimaryPenalty, got)
	}
}

func TestParseHeuristic(t *testing.T) {
	tests := []struct {
		in      string
		want    Heuristic
		wantErr bool
	}{
		{"Manhattan", Manhattan, false},
		{"Blocking", Blocking, false},
		{"manhattan", HeuristicNone, true},
		{"BLOCKING", HeuristicNone, true},
		{" Blocking", HeuristicNone, true},
		{"", HeuristicNone, true},
		{"none", HeuristicNone, true},
		{"Euclidean", HeuristicNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHeuristic(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHeuristic) {
					t.Errorf("Expected ErrInvalidHeuristic, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
