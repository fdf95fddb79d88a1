package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/rushhour/game/board"
	"github.com/wricardo/mcp-training/rushhour/game/puzzle"
	"github.com/wricardo/mcp-training/rushhour/game/service"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// FilePersistence implements RunPersistence with one JSON file per run
type FilePersistence struct {
	runsDir string
}

// NewFilePersistence creates a new file-based run persistence layer
func NewFilePersistence(runsDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(runsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runs directory: %w", err)
	}

	return &FilePersistence{runsDir: runsDir}, nil
}

// Save persists a run to a JSON file
func (fp *FilePersistence) Save(run *service.Run) error {
	if run == nil {
		return fmt.Errorf("run cannot be nil")
	}
	if err := validateID(run.ID); err != nil {
		return err
	}

	data := PersistedRunData{
		ID:             run.ID,
		PuzzleName:     run.PuzzleName,
		PuzzleText:     run.PuzzleText,
		Algorithm:      string(run.Algorithm),
		Heuristic:      run.Heuristic.String(),
		Moves:          []board.Move{},
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
	}
	if run.Result != nil {
		data.Solved = run.Result.Solved
		data.Moves = run.Result.Moves
		data.NodesExplored = run.Result.NodesExplored
		data.Elapsed = run.Result.Elapsed
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run data: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(run.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}

	return nil
}

// Load retrieves a run from a JSON file and rebuilds its starting board
func (fp *FilePersistence) Load(id string) (*service.Run, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	jsonData, err := os.ReadFile(fp.getFilePath(id))
	if os.IsNotExist(err) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	var data PersistedRunData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run data: %w", err)
	}

	algo, err := solver.ParseAlgorithm(data.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", id, err)
	}
	h := solver.HeuristicNone
	if algo.Informed() {
		if h, err = solver.ParseHeuristic(data.Heuristic); err != nil {
			return nil, fmt.Errorf("run %s: %w", id, err)
		}
	}

	b, err := puzzle.LoadString(data.PuzzleText)
	if err != nil {
		return nil, fmt.Errorf("run %s: stored puzzle: %w", id, err)
	}

	moves := data.Moves
	if moves == nil {
		moves = []board.Move{}
	}

	return &service.Run{
		ID:         data.ID,
		PuzzleName: data.PuzzleName,
		PuzzleText: data.PuzzleText,
		Board:      b,
		Algorithm:  algo,
		Heuristic:  h,
		Result: &solver.Result{
			Algorithm:     algo,
			Heuristic:     h,
			Moves:         moves,
			NodesExplored: data.NodesExplored,
			Elapsed:       data.Elapsed,
			Solved:        data.Solved,
		},
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a run file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrRunNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove run file: %w", err)
	}

	return nil
}

// ListAll returns all persisted run IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.runsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			ids = append(ids, strings.TrimSuffix(name, ".json"))
		}
	}

	return ids, nil
}

// Exists checks if a run file exists
func (fp *FilePersistence) Exists(id string) bool {
	if validateID(id) != nil {
		return false
	}
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath lowercases the ID to match the in-memory keys
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.runsDir, strings.ToLower(id)+".json")
}

// validateID keeps ids from escaping the runs directory
func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidRunID, id)
	}
	return nil
}
