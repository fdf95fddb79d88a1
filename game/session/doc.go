// Package session provides the run store for the Rush Hour solver.
//
// Every solve request produces a run: the puzzle it was run on, the
// strategy and heuristic, and the search outcome. The session package
// implements:
//   - Thread-safe run storage and retrieval
//   - UUID run identifiers
//   - Optional JSON file persistence, one file per run
//   - Expiry of idle runs from memory
//
// Persistence:
//
// Only the outcome of a search is stored, never its frontier. A persisted
// run keeps the puzzle text, and the starting board is rebuilt from it when
// the run is loaded back.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("runs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	runs := session.NewManagerWithPersistence(persistence)
//	if err := runs.LoadPersistedRuns(); err != nil {
//		log.Fatal(err)
//	}
//
//	run, err := runs.Get(runID)
package session
