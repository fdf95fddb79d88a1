// Package api provides the HTTP REST API for the Rush Hour solver.
//
// Endpoints:
//
// Puzzle library:
//   - GET /api/puzzles - List puzzles with size, exit side and heuristic values
//   - POST /api/puzzles - Save a puzzle: {"name": "...", "text": "..."}
//   - GET /api/puzzles/{name} - Puzzle detail; ?format=text returns the file
//
// Solving:
//   - POST /api/solve - Run a search and record it as a run
//
// Runs:
//   - GET /api/runs - List runs (?puzzle=, ?sort=created|moves|nodes, ?order=asc|desc, ?limit=)
//   - GET /api/runs/{id} - Run with its moves
//   - DELETE /api/runs/{id} - Delete a run
//   - GET /api/runs/{id}/replay - Every board along the solution (?combine=true, ?steps=true)
//
// Other:
//   - GET /api/algorithms - Available strategies and heuristics
//   - GET /api/health - Liveness check
//   - GET /ws?run={id} or /ws?puzzle={name} - WebSocket subscription
//
// Solve requests name a library puzzle or carry the puzzle text inline:
//
//	{
//	  "puzzle": "beginner",          // or "text": "6 6\n3\n..."
//	  "algorithm": "astar",          // ucs, gbfs, astar, fringe
//	  "heuristic": "Blocking"        // Manhattan or Blocking; ignored by ucs
//	}
//
// After a successful solve the run is broadcast to WebSocket clients of the
// run and of the puzzle.
//
// Error Handling:
//
// Errors are returned as JSON with the HTTP status code:
//
//	{
//	  "error": "invalid heuristic: \"Euclid\" (want Manhattan or Blocking)",
//	  "code": 400
//	}
//
// Unknown puzzles and runs are 404, malformed requests and unknown algorithm
// or heuristic names are 400, puzzles that fail validation are 422.
package api
