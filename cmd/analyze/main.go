// Command analyze prints quick, human-readable statistics about the puzzles
// in the project's puzzles directory. For each puzzle it shows the board
// size, vehicle count, exit side and both heuristic estimates at the start,
// then the move and node counts of every search strategy.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/rushhour/game/analysis"
)

func main() {
	dir := flag.String("dir", "puzzles", "Directory containing puzzle files")
	flag.Parse()

	if err := run(os.Stdout, *dir, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run analyzes the named puzzles in dir, or all of them when names is empty.
// A puzzle that fails to load is reported and skipped.
func run(w io.Writer, dir string, names []string) error {
	var files []string
	if len(names) == 0 {
		var err error
		if files, err = analysis.PuzzleFiles(dir); err != nil {
			return err
		}
	} else {
		for _, name := range names {
			files = append(files, puzzlePath(dir, name))
		}
	}

	for _, file := range files {
		report, err := analysis.AnalyzeFile(file)
		if err != nil {
			fmt.Fprintf(w, "=== %s ===\nError: %v\n\n", file, err)
			continue
		}
		if err := report.Write(w); err != nil {
			return err
		}
	}
	return nil
}

func puzzlePath(dir, name string) string {
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	return filepath.Join(dir, name)
}
