// Package analysis checks puzzle files and compares search strategies on them.
//
// Validate reports parse and load errors for a file and warns when the
// puzzle is already solved or has no solution. Analyze runs every algorithm
// with every heuristic it accepts and collects move and node counts:
//
//	report, err := analysis.AnalyzeFile("puzzles/beginner.txt")
//	if err != nil {
//		return err
//	}
//	report.Write(os.Stdout)
package analysis
