// Package service provides the business logic layer for the Rush Hour solver.
//
// The service package implements:
//   - Puzzle library access (list, fetch, save)
//   - Solve orchestration over the search strategies in package solver
//   - Run records and their replay frames
//
// Core Interfaces:
//
// SolverService is the main service interface used by the HTTP and MCP
// transports. RunStore keeps finished runs and PuzzleLibrary loads named
// puzzles; package session and package config provide the implementations.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the search core. Algorithm and heuristic names are resolved before a
// puzzle is loaded, so a bad request never starts a search. Searches run
// synchronously on the calling goroutine.
//
// Usage:
//
//	runs := session.NewManager()
//	library, _ := config.NewManager("puzzles")
//	svc := service.NewSolverService(runs, library, logrus.StandardLogger())
//
//	run, err := svc.Solve(ctx, service.SolveRequest{
//		Puzzle:    "beginner",
//		Algorithm: "astar",
//		Heuristic: "Blocking",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	replay, err := svc.Replay(ctx, run.ID, service.ReplayOptions{Combine: true})
package service
