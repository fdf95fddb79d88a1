// Package mcp exposes the Rush Hour solver to AI agents over the Model
// Context Protocol.
//
// The Client registers MCP tools that proxy to the REST API in package api,
// so the same server state is shared by browsers, scripts and agents.
//
// MCP Tools:
//   - list_puzzles: List library puzzles
//   - get_puzzle: Show one puzzle
//   - solve_puzzle: Solve a library puzzle by name
//   - solve_inline: Solve puzzle text passed in the call
//   - get_run: Show a recorded run with its moves
//   - list_runs: List recorded runs
//   - replay_run: Show every board along a run's solution
//   - solver_instructions: Puzzle format, algorithms and heuristics
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST /mcp on the main server, answered with HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
