package analysis

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/rushhour/game/puzzle"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
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

const deadlockPuzzle = `3 4
2
..A.
PPA.K
BBB.
`

const solvedPuzzle = `2 3
1
.PPK
AA.
`

func writePuzzle(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("Failed to write puzzle: %v", err)
	}
	return path
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		text        string
		wantValid   bool
		wantWarning string
		wantError   string
	}{
		{name: "solvable", text: beginnerPuzzle, wantValid: true},
		{name: "deadlock", text: deadlockPuzzle, wantValid: true, wantWarning: "no solution"},
		{name: "solved", text: solvedPuzzle, wantValid: true, wantWarning: "already"},
		{name: "syntax", text: "6 6\n3\n", wantError: "syntax"},
		{name: "count", text: "2 4\n5\nAA..\nPP..K\n", wantError: "count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(writePuzzle(t, dir, tt.name+".txt", tt.text))
			if result.Valid != tt.wantValid {
				t.Fatalf("Expected valid=%v, got %v (errors: %v)", tt.wantValid, result.Valid, result.Errors)
			}
			if result.File != tt.name+".txt" {
				t.Errorf("Expected file %s.txt, got %s", tt.name, result.File)
			}
			if tt.wantWarning != "" {
				if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], tt.wantWarning) {
					t.Errorf("Expected warning containing %q, got %v", tt.wantWarning, result.Warnings)
				}
			} else if len(result.Warnings) != 0 {
				t.Errorf("Expected no warnings, got %v", result.Warnings)
			}
			if tt.wantError != "" {
				if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.wantError) {
					t.Errorf("Expected error containing %q, got %v", tt.wantError, result.Errors)
				}
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		result := Validate(filepath.Join(dir, "missing.txt"))
		if result.Valid {
			t.Error("Expected missing file to be invalid")
		}
	})
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writePuzzle(t, dir, "b.txt", beginnerPuzzle)
	writePuzzle(t, dir, "a.txt", deadlockPuzzle)
	writePuzzle(t, dir, "notes.md", "not a puzzle")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	results, err := ValidateDir(dir)
	if err != nil {
		t.Fatalf("ValidateDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].File != "a.txt" || results[1].File != "b.txt" {
		t.Errorf("Expected sorted files [a.txt b.txt], got [%s %s]", results[0].File, results[1].File)
	}

	if _, err := ValidateDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestStrategies(t *testing.T) {
	got := Strategies()
	if len(got) != 7 {
		t.Fatalf("Expected 7 strategies, got %d", len(got))
	}
	if got[0].String() != "ucs" {
		t.Errorf("Expected first strategy 'ucs', got '%s'", got[0])
	}
	if got[2].String() != "gbfs/Blocking" {
		t.Errorf("Expected 'gbfs/Blocking', got '%s'", got[2])
	}
}

func TestAnalyze(t *testing.T) {
	b, err := puzzle.LoadString(beginnerPuzzle)
	if err != nil {
		t.Fatalf("Failed to load puzzle: %v", err)
	}

	report, err := Analyze("beginner", b)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.Rows != 6 || report.Cols != 6 || report.Vehicles != 3 {
		t.Errorf("Unexpected dimensions: %+v", report)
	}
	if report.Manhattan != solver.ManhattanDistance(b) || report.Blocking != solver.BlockingVehicles(b) {
		t.Errorf("Expected heuristics %d/%d, got %d/%d",
			solver.ManhattanDistance(b), solver.BlockingVehicles(b), report.Manhattan, report.Blocking)
	}
	if len(report.Runs) != len(Strategies()) {
		t.Fatalf("Expected %d runs, got %d", len(Strategies()), len(report.Runs))
	}

	ucs := report.Runs[0]
	for _, run := range report.Runs {
		if !run.Solved {
			t.Errorf("Expected %s to solve the puzzle", run.Strategy)
		}
		// GBFS reports single-cell steps, so only compare optimal strategies
		if run.Strategy.Algorithm == solver.AStar && run.Moves < ucs.Moves {
			t.Errorf("Expected %s to need at least %d moves, got %d", run.Strategy, ucs.Moves, run.Moves)
		}
	}

	var buf bytes.Buffer
	if err := report.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"=== beginner ===", "Exit: RIGHT", "STRATEGY", "fringe/Blocking"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected report to contain %q, got:\n%s", want, out)
		}
	}
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := writePuzzle(t, dir, "stuck.txt", deadlockPuzzle)

	report, err := AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	if report.Name != "stuck" {
		t.Errorf("Expected name 'stuck', got '%s'", report.Name)
	}
	for _, run := range report.Runs {
		if run.Solved {
			t.Errorf("Expected %s to find no solution", run.Strategy)
		}
	}

	var buf bytes.Buffer
	report.Write(&buf)
	if !strings.Contains(buf.String(), "false") {
		t.Errorf("Expected unsolved rows, got:\n%s", buf.String())
	}

	if _, err := AnalyzeFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("Expected error for missing file")
	}
}
