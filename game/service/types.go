package service

import (
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

// PuzzleInfo summarizes a library puzzle
type PuzzleInfo struct {
	Name      string     `json:"name"`
	Filename  string     `json:"filename"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Vehicles  int        `json:"vehicles"` // non-primary
	ExitSide  board.Side `json:"exit_side"`
	Manhattan int        `json:"manhattan"`
	Blocking  int        `json:"blocking"`
}

// PuzzleDetail is a puzzle with its text and parsed board
type PuzzleDetail struct {
	PuzzleInfo
	Text  string       `json:"text"`
	Board *board.Board `json:"board"`
}

// SolveRequest names a library puzzle or carries puzzle text inline
type SolveRequest struct {
	Puzzle    string `json:"puzzle,omitempty"`
	Text      string `json:"text,omitempty"`
	Algorithm string `json:"algorithm"`
	Heuristic string `json:"heuristic,omitempty"`
}

// MoveInfo is a move with its human description
type MoveInfo struct {
	Vehicle     int    `json:"vehicle"`
	Symbol      string `json:"symbol"`
	Delta       int    `json:"delta"`
	Direction   string `json:"direction"`
	Description string `json:"description"`
}

// RunInfo reports a finished run
type RunInfo struct {
	ID             string       `json:"id"`
	Puzzle         string       `json:"puzzle,omitempty"`
	Algorithm      string       `json:"algorithm"`
	Heuristic      string       `json:"heuristic"`
	Solved         bool         `json:"solved"`
	MoveCount      int          `json:"move_count"`
	Moves          []MoveInfo   `json:"moves"`
	NodesExplored  int          `json:"nodes_explored"`
	ElapsedMS      float64      `json:"elapsed_ms"`
	CreatedAt      time.Time    `json:"created_at"`
	LastAccessedAt time.Time    `json:"last_accessed_at"`
	Board          *board.Board `json:"board,omitempty"`
}

// ReplayOptions selects how moves are grouped in a replay
type ReplayOptions struct {
	// Combine merges consecutive moves of the same vehicle
	Combine bool `json:"combine"`
	// Steps splits every move into single-cell steps. Ignored when Combine is set.
	Steps bool `json:"steps"`
}

// Frame is the board after one move of a replay. Frame 0 is the start.
type Frame struct {
	Step   int       `json:"step"`
	Move   *MoveInfo `json:"move,omitempty"`
	Grid   []string  `json:"grid"`
	Render string    `json:"render"`
	Solved bool      `json:"solved"`
}

// ReplayResponse walks a run's solution board by board
type ReplayResponse struct {
	RunID  string  `json:"run_id"`
	Frames []Frame `json:"frames"`
}
