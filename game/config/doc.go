// Package config provides the puzzle library for the Rush Hour solver.
//
// The config package handles:
//   - Loading puzzle files from the puzzles directory
//   - Validating them through package puzzle and package board
//   - Caching parsed boards
//   - Listing and saving puzzles
//
// Puzzle Format:
//
// Puzzles are plain text files named <name>.txt:
//
//	6 6
//	3
//	..C...
//	..C.D.
//	PPC.D.K
//	....D.
//	EE....
//	......
//
// The first line holds the rows and columns, the second the number of
// vehicles other than P, then the grid with the exit K outside it.
//
// Usage:
//
//	manager, err := config.NewManager("puzzles")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	p, err := manager.LoadPuzzle("beginner")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	infos, err := manager.ListPuzzles()
package config
