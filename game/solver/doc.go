// Package solver searches Rush Hour boards for a sequence of slides that
// drives the primary vehicle out through the exit.
//
// Strategies:
//
//   - UCS orders the frontier by moves taken and marks states visited when
//     they are dequeued. Its solutions use the fewest moves.
//   - GBFS orders by the heuristic alone, marks on dequeue, and returns its
//     solution split into single-cell steps.
//   - A* orders by moves plus heuristic and marks states when enqueued.
//   - Fringe keeps two plain lists and raises an f threshold pass by pass.
//
// All four share one expansion routine and one visited set keyed by
// board.Board.Key. A branch whose history grows past rows*cols*50 moves is
// not expanded further; the rest of the search carries on.
//
// Heuristics:
//
// Manhattan counts cells between the primary vehicle and the exit.
// Blocking counts distinct vehicles in that stretch. Blocking has no
// distance term and is not admissible, so A* and Fringe can return longer
// solutions with it.
//
// Usage:
//
//	res, err := solver.Solve(b, solver.AStar, "Blocking")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, m := range solver.CombineConsecutive(res.Moves) {
//		fmt.Println(solver.Describe(b, m))
//	}
package solver
