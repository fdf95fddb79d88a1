// Package board models a Rush Hour grid: vehicles, the exit and the slide
// moves between configurations.
//
// Boards are immutable. Load validates a Layout and returns the starting
// board; ApplyMove returns a new board and leaves the receiver untouched.
// Boards derived from the same Load share one table of vehicle descriptors
// (symbol, orientation, length, fixed row or column) and each owns only its
// anchor positions and its cell string.
//
// Canonical Form:
//
// Key returns the flattened grid content. Two boards are equal when their
// keys are equal; the moves that produced them do not matter. Search code
// uses Key for visited-state deduplication.
//
// Exit Convention:
//
// The exit lies one step outside the grid. A RIGHT or BOTTOM exit uses cols
// or rows as its coordinate, a LEFT or TOP exit uses -1.
//
// Usage:
//
//	b, err := board.Load(board.Layout{
//		Rows: 6, Cols: 6, Vehicles: -1,
//		ExitSide: board.Right, ExitIndex: 2,
//		Grid: rows,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, d := range b.ValidMoves(0) {
//		next, _ := b.ApplyMove(0, d)
//		fmt.Println(next)
//	}
package board
