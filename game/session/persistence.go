package session

import (
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/board"
	"github.com/wricardo/mcp-training/rushhour/game/service"
)

// RunPersistence defines the interface for persisting runs
type RunPersistence interface {
	// Save persists a run to storage
	Save(run *service.Run) error

	// Load retrieves a run from storage by ID
	Load(id string) (*service.Run, error)

	// Delete removes a run from storage
	Delete(id string) error

	// ListAll returns all persisted run IDs
	ListAll() ([]string, error)

	// Exists checks if a run exists in storage
	Exists(id string) bool
}

// PersistedRunData represents the JSON structure for persisted runs. The
// starting board is rebuilt from PuzzleText on load.
type PersistedRunData struct {
	ID             string        `json:"id"`
	PuzzleName     string        `json:"puzzle_name,omitempty"`
	PuzzleText     string        `json:"puzzle_text"`
	Algorithm      string        `json:"algorithm"`
	Heuristic      string        `json:"heuristic"`
	Solved         bool          `json:"solved"`
	Moves          []board.Move  `json:"moves"`
	NodesExplored  int           `json:"nodes_explored"`
	Elapsed        time.Duration `json:"elapsed_ns"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
}
