package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

func TestFilePersistence(t *testing.T) {
	tempDir := t.TempDir()

	persistence, err := NewFilePersistence(tempDir)
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	run := createTestRun(t, "test1")
	run.CreatedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	run.LastAccessedAt = run.CreatedAt.Add(time.Minute)

	t.Run("save and load run", func(t *testing.T) {
		if err := persistence.Save(run); err != nil {
			t.Fatalf("Failed to save run: %v", err)
		}
		if !persistence.Exists("test1") {
			t.Error("Run file should exist after save")
		}

		loaded, err := persistence.Load("test1")
		if err != nil {
			t.Fatalf("Failed to load run: %v", err)
		}
		if loaded.PuzzleName != run.PuzzleName || loaded.PuzzleText != run.PuzzleText {
			t.Errorf("Expected puzzle %q, got %q", run.PuzzleName, loaded.PuzzleName)
		}
		if loaded.Algorithm != solver.AStar || loaded.Heuristic != solver.Blocking {
			t.Errorf("Expected astar/Blocking, got %s/%s", loaded.Algorithm, loaded.Heuristic)
		}
		if diff := cmp.Diff(run.Result.Moves, loaded.Result.Moves); diff != "" {
			t.Errorf("Moves mismatch (-want +got):\n%s", diff)
		}
		if loaded.Result.NodesExplored != run.Result.NodesExplored {
			t.Errorf("Expected %d nodes, got %d", run.Result.NodesExplored, loaded.Result.NodesExplored)
		}
		if !loaded.Result.Solved {
			t.Error("Expected loaded run to be solved")
		}
		if !loaded.Board.Equal(run.Board) {
			t.Error("Expected rebuilt board to equal the original")
		}
		if !loaded.CreatedAt.Equal(run.CreatedAt) {
			t.Errorf("Expected CreatedAt %v, got %v", run.CreatedAt, loaded.CreatedAt)
		}
	})

	t.Run("uninformed run round trips", func(t *testing.T) {
		ucs := createTestRun(t, "ucs1")
		ucs.Algorithm = solver.UCS
		ucs.Heuristic = solver.HeuristicNone
		if err := persistence.Save(ucs); err != nil {
			t.Fatalf("Failed to save run: %v", err)
		}
		loaded, err := persistence.Load("ucs1")
		if err != nil {
			t.Fatalf("Failed to load run: %v", err)
		}
		if loaded.Heuristic != solver.HeuristicNone {
			t.Errorf("Expected no heuristic, got %s", loaded.Heuristic)
		}
	})

	t.Run("list all", func(t *testing.T) {
		os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0644)
		ids, err := persistence.ListAll()
		if err != nil {
			t.Fatalf("Failed to list runs: %v", err)
		}
		if diff := cmp.Diff([]string{"test1", "ucs1"}, ids); diff != "" {
			t.Errorf("IDs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("load non-existent run", func(t *testing.T) {
		_, err := persistence.Load("missing")
		if err != ErrRunNotFound {
			t.Errorf("Expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("load corrupt run", func(t *testing.T) {
		os.WriteFile(filepath.Join(tempDir, "corrupt.json"), []byte("{"), 0644)
		if _, err := persistence.Load("corrupt"); err == nil {
			t.Error("Expected error for corrupt run file")
		}
	})

	t.Run("reject path ids", func(t *testing.T) {
		_, err := persistence.Load("../test1")
		if !errors.Is(err, ErrInvalidRunID) {
			t.Errorf("Expected ErrInvalidRunID, got %v", err)
		}
		if persistence.Exists("../test1") {
			t.Error("Expected path id not to exist")
		}
	})

	t.Run("delete run", func(t *testing.T) {
		if err := persistence.Delete("test1"); err != nil {
			t.Fatalf("Failed to delete run: %v", err)
		}
		if persistence.Exists("test1") {
			t.Error("Run file should not exist after delete")
		}
		if err := persistence.Delete("test1"); err != ErrRunNotFound {
			t.Errorf("Expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("save nil run", func(t *testing.T) {
		if err := persistence.Save(nil); err == nil {
			t.Error("Expected error for nil run")
		}
	})
}
