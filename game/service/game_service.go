package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/board"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

var (
	ErrPuzzleNotFound   = errors.New("puzzle not found")
	ErrInvalidPuzzle    = errors.New("invalid puzzle")
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrInvalidRequest   = errors.New("invalid request")
)

// SolverService defines every puzzle and solve operation exposed to transports
type SolverService interface {
	// Puzzle library
	ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error)
	GetPuzzle(ctx context.Context, name string) (*PuzzleDetail, error)
	SavePuzzle(ctx context.Context, name, text string) (*PuzzleInfo, error)

	// Solving
	Solve(ctx context.Context, req SolveRequest) (*RunInfo, error)

	// Run records
	GetRun(ctx context.Context, runID string) (*RunInfo, error)
	ListRuns(ctx context.Context) ([]*RunInfo, error)
	DeleteRun(ctx context.Context, runID string) error
	Replay(ctx context.Context, runID string, opts ReplayOptions) (*ReplayResponse, error)
}

// RunStore keeps finished solve runs
type RunStore interface {
	Create(run *Run) (*Run, error)
	Get(id string) (*Run, error)
	List() []*Run
	Delete(id string) error
}

// PuzzleLibrary loads and stores named puzzles
type PuzzleLibrary interface {
	LoadPuzzle(name string) (*Puzzle, error)
	ListPuzzles() ([]*PuzzleInfo, error)
	SavePuzzle(name, text string) (*Puzzle, error)
}

// Puzzle is a library entry: its source text and validated starting board
type Puzzle struct {
	Name  string
	Text  string
	Board *board.Board
}

// Run is one finished search. Only the outcome is kept, never search state.
type Run struct {
	ID             string
	PuzzleName     string
	PuzzleText     string
	Board          *board.Board
	Algorithm      solver.Algorithm
	Heuristic      solver.Heuristic
	Result         *solver.Result
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
