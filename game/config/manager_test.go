package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

const beginnerPuzzle = `6 6
3
..C...
..C.D.
PPC.D.K
....D.
EE....
......
`

const leftPuzzle = `3 4
1
 B...
KB.PP
 ....
`

func writePuzzleFile(t *testing.T, dir, filename, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(text), 0644); err != nil {
		t.Fatalf("Failed to write puzzle file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager == nil {
			t.Error("Expected manager to be non-nil")
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		writePuzzleFile(t, dir, "beginner.txt", beginnerPuzzle)
		_, err := NewManager(filepath.Join(dir, "beginner.txt"))
		if err == nil {
			t.Error("Expected error for a file path")
		}
	})
}

func TestManager_LoadPuzzle(t *testing.T) {
	dir := t.TempDir()
	writePuzzleFile(t, dir, "beginner.txt", beginnerPuzzle)
	writePuzzleFile(t, dir, "broken.txt", "6 6\n0\nPP\n")
	writePuzzleFile(t, dir, "nocount.txt", "2 4\n5\nAA..\nPP..K\n")

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing puzzle", func(t *testing.T) {
		p, err := manager.LoadPuzzle("beginner")
		if err != nil {
			t.Fatalf("Failed to load puzzle: %v", err)
		}
		if p.Name != "beginner" {
			t.Errorf("Expected name 'beginner', got '%s'", p.Name)
		}
		if p.Board.NumVehicles() != 4 {
			t.Errorf("Expected 4 vehicles, got %d", p.Board.NumVehicles())
		}
		if p.Text != beginnerPuzzle {
			t.Error("Expected the file text to be kept")
		}
	})

	t.Run("load with .txt extension", func(t *testing.T) {
		p, err := manager.LoadPuzzle("beginner.txt")
		if err != nil {
			t.Fatalf("Failed to load puzzle with extension: %v", err)
		}
		if p.Name != "beginner" {
			t.Errorf("Expected name 'beginner', got '%s'", p.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		p1, _ := manager.LoadPuzzle("beginner")
		p2, err := manager.LoadPuzzle("beginner")
		if err != nil {
			t.Fatalf("Failed to load puzzle from cache: %v", err)
		}
		if p1 != p2 {
			t.Error("Expected puzzle to be loaded from cache")
		}
	})

	t.Run("load non-existent puzzle", func(t *testing.T) {
		_, err := manager.LoadPuzzle("non-existent")
		if !errors.Is(err, ErrPuzzleNotFound) {
			t.Errorf("Expected ErrPuzzleNotFound, got %v", err)
		}
	})

	t.Run("load malformed puzzle", func(t *testing.T) {
		_, err := manager.LoadPuzzle("broken")
		if !errors.Is(err, ErrInvalidPuzzle) {
			t.Errorf("Expected ErrInvalidPuzzle, got %v", err)
		}
	})

	t.Run("load puzzle with wrong vehicle count", func(t *testing.T) {
		_, err := manager.LoadPuzzle("nocount")
		if !errors.Is(err, ErrInvalidPuzzle) {
			t.Errorf("Expected ErrInvalidPuzzle, got %v", err)
		}
	})
}

func TestManager_RejectsNamesOutsideDirectory(t *testing.T) {
	root := t.TempDir()
	lib := filepath.Join(root, "lib")
	if err := os.Mkdir(lib, 0755); err != nil {
		t.Fatalf("Failed to create library dir: %v", err)
	}
	writePuzzleFile(t, root, "secret.txt", beginnerPuzzle)

	manager, err := NewManager(lib)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	names := []string{"../secret", "../secret.txt", "..", ".hidden", "sub/secret", `..\secret`, "", "  "}
	for _, name := range names {
		t.Run("load "+name, func(t *testing.T) {
			p, err := manager.LoadPuzzle(name)
			if !errors.Is(err, ErrInvalidName) {
				t.Errorf("Expected ErrInvalidName, got %v", err)
			}
			if p != nil {
				t.Errorf("Expected no puzzle, got %q", p.Text)
			}
		})
		t.Run("reload "+name, func(t *testing.T) {
			if _, err := manager.ReloadPuzzle(name); !errors.Is(err, ErrInvalidName) {
				t.Errorf("Expected ErrInvalidName, got %v", err)
			}
		})
	}

	t.Run("save outside directory is not written", func(t *testing.T) {
		_, err := manager.SavePuzzle("../escaped", leftPuzzle)
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("Expected ErrInvalidName, got %v", err)
		}
		if _, err := os.Stat(filepath.Join(root, "escaped.txt")); !os.IsNotExist(err) {
			t.Error("Puzzle should not be written outside the library")
		}
	})
}

func TestManager_ListPuzzles(t *testing.T) {
	dir := t.TempDir()
	writePuzzleFile(t, dir, "beginner.txt", beginnerPuzzle)
	writePuzzleFile(t, dir, "left.txt", leftPuzzle)
	writePuzzleFile(t, dir, "broken.txt", "not a puzzle")
	// Non-puzzle files are ignored
	writePuzzleFile(t, dir, "readme.md", "readme")

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	list, err := manager.ListPuzzles()
	if err != nil {
		t.Fatalf("Failed to list puzzles: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 puzzles, got %d", len(list))
	}
	if list[0].Name != "beginner" || list[1].Name != "left" {
		t.Errorf("Expected sorted names [beginner left], got [%s %s]", list[0].Name, list[1].Name)
	}
	if list[1].ExitSide != "LEFT" || list[1].Vehicles != 1 {
		t.Errorf("Unexpected info for left: %+v", list[1])
	}
}

func TestManager_SavePuzzle(t *testing.T) {
	dir := t.TempDir()
	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("valid puzzle", func(t *testing.T) {
		p, err := manager.SavePuzzle("saved", leftPuzzle)
		if err != nil {
			t.Fatalf("Failed to save puzzle: %v", err)
		}
		if p.Board == nil {
			t.Fatal("Expected a board")
		}
		data, err := os.ReadFile(filepath.Join(dir, "saved.txt"))
		if err != nil {
			t.Fatalf("Puzzle file not written: %v", err)
		}
		if string(data) != leftPuzzle {
			t.Errorf("Expected file contents to match, got %q", string(data))
		}
		cached, _ := manager.LoadPuzzle("saved")
		if cached != p {
			t.Error("Expected saved puzzle to be cached")
		}
	})

	t.Run("invalid puzzle is not written", func(t *testing.T) {
		_, err := manager.SavePuzzle("bad", "1 1\n0\nP\n")
		if !errors.Is(err, ErrInvalidPuzzle) {
			t.Errorf("Expected ErrInvalidPuzzle, got %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "bad.txt")); !os.IsNotExist(err) {
			t.Error("Invalid puzzle should not be written")
		}
	})
}

func TestManager_ReloadPuzzle(t *testing.T) {
	dir := t.TempDir()
	writePuzzleFile(t, dir, "changeable.txt", beginnerPuzzle)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	loaded, _ := manager.LoadPuzzle("changeable")
	if loaded.Board.Rows() != 6 {
		t.Errorf("Expected 6 rows, got %d", loaded.Board.Rows())
	}

	writePuzzleFile(t, dir, "changeable.txt", leftPuzzle)

	// cached copy is still served
	if p, _ := manager.LoadPuzzle("changeable"); p.Board.Rows() != 6 {
		t.Error("Expected cached puzzle before reload")
	}

	reloaded, err := manager.ReloadPuzzle("changeable")
	if err != nil {
		t.Fatalf("Failed to reload puzzle: %v", err)
	}
	if reloaded.Board.Rows() != 3 {
		t.Errorf("Expected reloaded puzzle with 3 rows, got %d", reloaded.Board.Rows())
	}

	writePuzzleFile(t, dir, "changeable.txt", beginnerPuzzle)
	manager.RefreshCache()
	if p, _ := manager.LoadPuzzle("changeable"); p.Board.Rows() != 6 {
		t.Error("Expected puzzle reread after RefreshCache")
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()
	writePuzzleFile(t, dir, "beginner.txt", beginnerPuzzle)
	writePuzzleFile(t, dir, "left.txt", leftPuzzle)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 40)
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := manager.LoadPuzzle("beginner"); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := manager.ListPuzzles(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent access error: %v", err)
	}
}
