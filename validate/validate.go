// Command validate checks the puzzle files in the ../puzzles directory. For
// each file it checks:
//   - the header (rows, columns, vehicle count) and grid syntax
//   - the exit marker position and row indentation
//   - vehicle shapes, the primary vehicle and the declared vehicle count
//   - that the primary vehicle lines up with the exit
//   - solvability, reported as a warning when no solution exists
//
// A different directory may be given as the first argument.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wricardo/mcp-training/rushhour/game/analysis"
)

// printResults writes a concise report and reports whether every file was valid
func printResults(w io.Writer, results []analysis.ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintf(w, "✅ All %d puzzles are valid!\n", len(results))
	} else {
		fmt.Fprintln(w, "❌ Some puzzles have errors")
	}
	return allValid
}

// main validates every *.txt file in the puzzle directory and exits with a
// non-zero status if any are invalid.
func main() {
	puzzleDir := "../puzzles"
	if len(os.Args) > 1 {
		puzzleDir = os.Args[1]
	}

	results, err := analysis.ValidateDir(puzzleDir)
	if err != nil {
		fmt.Printf("Error finding puzzle files: %v\n", err)
		os.Exit(1)
	}

	if !printResults(os.Stdout, results) {
		os.Exit(1)
	}
}
