package analysis

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/wricardo/mcp-training/rushhour/game/board"
	"github.com/wricardo/mcp-training/rushhour/game/puzzle"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// ValidationResult captures the outcome of validating a single puzzle file.
// Warnings never make a file invalid.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate parses and loads a puzzle file, then checks that it can be solved
func Validate(path string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(path),
		Valid:  true,
		Errors: []string{},
	}

	p, err := puzzle.ParseFile(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	b, err := p.Board()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if b.IsSolved() {
		result.Warnings = append(result.Warnings, "primary vehicle already reaches the exit")
		return result
	}

	res, err := solver.Solve(b, solver.UCS, "")
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if !res.Solved {
		result.Warnings = append(result.Warnings, fmt.Sprintf("no solution (%d states explored)", res.NodesExplored))
	}
	return result
}

// ValidateDir validates every .txt file in dir, sorted by name
func ValidateDir(dir string) ([]ValidationResult, error) {
	files, err := PuzzleFiles(dir)
	if err != nil {
		return nil, err
	}
	results := make([]ValidationResult, 0, len(files))
	for _, f := range files {
		results = append(results, Validate(f))
	}
	return results, nil
}

// PuzzleFiles lists the .txt files in dir, sorted by name
func PuzzleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Strategy is one algorithm and heuristic pairing to compare
type Strategy struct {
	Algorithm solver.Algorithm
	Heuristic string
}

func (s Strategy) String() string {
	if !s.Algorithm.Informed() {
		return string(s.Algorithm)
	}
	return string(s.Algorithm) + "/" + s.Heuristic
}

// Strategies is every algorithm paired with every heuristic it accepts
func Strategies() []Strategy {
	var out []Strategy
	for _, a := range solver.Algorithms {
		if !a.Informed() {
			out = append(out, Strategy{Algorithm: a})
			continue
		}
		for _, h := range []solver.Heuristic{solver.Manhattan, solver.Blocking} {
			out = append(out, Strategy{Algorithm: a, Heuristic: h.String()})
		}
	}
	return out
}

// StrategyRun is the outcome of one strategy on one puzzle
type StrategyRun struct {
	Strategy Strategy
	Solved   bool
	Moves    int
	Nodes    int
	Elapsed  time.Duration
}

// Report describes a puzzle and how each strategy fares on it
type Report struct {
	Name      string
	Rows      int
	Cols      int
	Vehicles  int
	ExitSide  board.Side
	Manhattan int
	Blocking  int
	Runs      []StrategyRun
}

// Analyze solves b with every strategy
func Analyze(name string, b *board.Board) (*Report, error) {
	r := &Report{
		Name:      name,
		Rows:      b.Rows(),
		Cols:      b.Cols(),
		Vehicles:  b.NumVehicles() - 1,
		ExitSide:  b.Exit().Side,
		Manhattan: solver.ManhattanDistance(b),
		Blocking:  solver.BlockingVehicles(b),
	}

	for _, s := range Strategies() {
		res, err := solver.Solve(b, s.Algorithm, s.Heuristic)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}
		r.Runs = append(r.Runs, StrategyRun{
			Strategy: s,
			Solved:   res.Solved,
			Moves:    len(res.Moves),
			Nodes:    res.NodesExplored,
			Elapsed:  res.Elapsed,
		})
	}
	return r, nil
}

// AnalyzeFile loads and analyzes a puzzle file
func AnalyzeFile(path string) (*Report, error) {
	b, err := puzzle.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Analyze(strings.TrimSuffix(filepath.Base(path), ".txt"), b)
}

// Write prints the report as a header and a table of strategy runs
func (r *Report) Write(w io.Writer) error {
	fmt.Fprintf(w, "=== %s ===\n", r.Name)
	fmt.Fprintf(w, "Board size: %d x %d\n", r.Rows, r.Cols)
	fmt.Fprintf(w, "Vehicles: %d (plus primary)\n", r.Vehicles)
	fmt.Fprintf(w, "Exit: %s\n", r.ExitSide)
	fmt.Fprintf(w, "Manhattan: %d, Blocking: %d\n\n", r.Manhattan, r.Blocking)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tSOLVED\tMOVES\tNODES\tTIME")
	for _, run := range r.Runs {
		moves := "-"
		if run.Solved {
			moves = fmt.Sprint(run.Moves)
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\t%d\t%s\n", run.Strategy, run.Solved, moves, run.Nodes, run.Elapsed.Round(time.Microsecond))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
