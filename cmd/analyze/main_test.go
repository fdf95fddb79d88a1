package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPuzzle = `6 6
3
..C...
..C.D.
PPC.D.K
....D.
EE....
......
`

func TestPuzzlePath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"beginner", filepath.Join("puzzles", "beginner.txt")},
		{"beginner.txt", filepath.Join("puzzles", "beginner.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := puzzlePath("puzzles", tt.name); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "beginner.txt"), []byte(testPuzzle), 0644); err != nil {
		t.Fatalf("Failed to write puzzle: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.txt"), []byte("6 6\n"), 0644); err != nil {
		t.Fatalf("Failed to write puzzle: %v", err)
	}

	t.Run("whole directory", func(t *testing.T) {
		var buf bytes.Buffer
		if err := run(&buf, dir, nil); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"=== beginner ===", "Board size: 6 x 6", "Vehicles: 3", "Exit: RIGHT", "astar/Blocking", "fringe/Manhattan"} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected output to contain %q, got:\n%s", want, out)
			}
		}
		if !strings.Contains(out, "broken.txt") || !strings.Contains(out, "Error:") {
			t.Errorf("Expected broken puzzle to be reported, got:\n%s", out)
		}
	})

	t.Run("named puzzle", func(t *testing.T) {
		var buf bytes.Buffer
		if err := run(&buf, dir, []string{"beginner"}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if strings.Contains(buf.String(), "broken") {
			t.Error("Expected only the named puzzle")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if err := run(&bytes.Buffer{}, filepath.Join(dir, "nope"), nil); err == nil {
			t.Error("Expected error for missing directory")
		}
	})
}
