package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/rushhour/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// searches on hard puzzles can take a while
			Timeout: 2 * time.Minute,
		},
	}

	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Rush Hour Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Rush Hour Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Solve sliding-block Rush Hour puzzles with uniform cost search, greedy
best-first search, A* or fringe search, then inspect the recorded runs.

AVAILABLE TOOLS:
- list_puzzles: List library puzzles with size, exit side and heuristic values
- get_puzzle: Show one puzzle's board and source text
- solve_puzzle: Solve a library puzzle by name
- solve_inline: Solve puzzle text given directly
- get_run: Show a recorded run with its moves
- list_runs: List recorded runs
- replay_run: Show every board along a run's solution
- solver_instructions: Puzzle format, algorithms and heuristics`),
	)

	c.registerTools()
}

func (c *Client) registerTools() {
	algorithmProp := map[string]interface{}{
		"type":        "string",
		"enum":        []string{"ucs", "gbfs", "astar", "fringe"},
		"description": "Search strategy (default ucs)",
	}
	heuristicProp := map[string]interface{}{
		"type":        "string",
		"enum":        []string{"Manhattan", "Blocking"},
		"description": "Heuristic for gbfs, astar and fringe. Ignored by ucs.",
	}

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List all puzzles in the library",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_puzzle",
		Description: "Show a library puzzle",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle name, without the .txt extension",
				},
			},
			Required: []string{"name"},
		},
	}, c.handleGetPuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Solve a library puzzle and record the run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle name",
				},
				"algorithm": algorithmProp,
				"heuristic": heuristicProp,
			},
			Required: []string{"puzzle"},
		},
	}, c.handleSolvePuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_inline",
		Description: "Solve a puzzle given as text and record the run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle in the text format described by solver_instructions",
				},
				"algorithm": algorithmProp,
				"heuristic": heuristicProp,
			},
			Required: []string{"text"},
		},
	}, c.handleSolveInline)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Show a recorded run with its moves",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List recorded runs, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Only runs of this puzzle (optional)",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of runs (optional)",
				},
			},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "replay_run",
		Description: "Show every board along a run's solution",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"combine": map[string]interface{}{
					"type":        "boolean",
					"description": "Merge consecutive moves of the same vehicle",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleReplayRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solver_instructions",
		Description: "Explain the puzzle format, algorithms and heuristics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleSolverInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// Tool handlers

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                   `json:"count"`
		Puzzles []*service.PuzzleInfo `json:"puzzles"`
	}
	if err := c.apiCall(ctx, "GET", "/api/puzzles", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Puzzles (%d):\n\n", response.Count)
	for _, p := range response.Puzzles {
		sb.WriteString(formatPuzzleInfo(p))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetPuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := arguments(request)["name"].(string)
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}

	var detail service.PuzzleDetail
	if err := c.apiCall(ctx, "GET", "/api/puzzles/"+url.PathEscape(name), nil, &detail); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatPuzzleInfo(&detail.PuzzleInfo) + "\n" + detail.Text
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSolvePuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	req := service.SolveRequest{}
	req.Puzzle, _ = args["puzzle"].(string)
	req.Algorithm, _ = args["algorithm"].(string)
	req.Heuristic, _ = args["heuristic"].(string)
	if req.Puzzle == "" {
		return mcp.NewToolResultError("puzzle is required"), nil
	}
	return c.solve(ctx, req)
}

func (c *Client) handleSolveInline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	req := service.SolveRequest{}
	req.Text, _ = args["text"].(string)
	req.Algorithm, _ = args["algorithm"].(string)
	req.Heuristic, _ = args["heuristic"].(string)
	if strings.TrimSpace(req.Text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}
	return c.solve(ctx, req)
}

func (c *Client) solve(ctx context.Context, req service.SolveRequest) (*mcp.CallToolResult, error) {
	var run service.RunInfo
	if err := c.apiCall(ctx, "POST", "/api/solve", req, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatRun(&run)), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID, _ := arguments(request)["run_id"].(string)
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	var run service.RunInfo
	if err := c.apiCall(ctx, "GET", "/api/runs/"+url.PathEscape(runID), nil, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatRun(&run)), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	query := url.Values{}
	if name, _ := args["puzzle"].(string); name != "" {
		query.Set("puzzle", name)
	}
	if limit, ok := args["limit"].(float64); ok && limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", int(limit)))
	}
	path := "/api/runs"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var response struct {
		Count int                `json:"count"`
		Total int                `json:"total"`
		Runs  []*service.RunInfo `json:"runs"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Runs (%d of %d):\n\n", response.Count, response.Total)
	for _, r := range response.Runs {
		fmt.Fprintf(&sb, "- %s %s %s: %s, %d nodes, %.1fms\n",
			r.ID, puzzleLabel(r), strategyLabel(r), outcome(r), r.NodesExplored, r.ElapsedMS)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleReplayRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	runID, _ := args["run_id"].(string)
	if runID == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}
	path := "/api/runs/" + url.PathEscape(runID) + "/replay"
	if combine, _ := args["combine"].(bool); combine {
		path += "?combine=true"
	}

	var replay service.ReplayResponse
	if err := c.apiCall(ctx, "GET", path, nil, &replay); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatReplay(&replay)), nil
}

func (c *Client) handleSolverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Rush Hour Solver - Instructions

PUZZLE:
Vehicles sit on a rectangular grid. Each one occupies a straight run of
cells and slides only along its own orientation. Vehicles cannot overlap
or pass through each other. The puzzle is solved when the primary vehicle
P reaches the exit K on the border.

PUZZLE FORMAT:
  line 1: rows and columns, e.g. "6 6"
  line 2: number of vehicles other than P
  then one line per grid row: '.' is empty, a letter is a vehicle cell

The exit K is written outside the grid:
  right:  at the end of the primary's row      PPC.D.K
  left:   at the start of the row, with every other row indented by one space
  top:    on its own line above the grid, over the exit column
  bottom: on its own line below the grid

Example:
  6 6
  3
  ..C...
  ..C.D.
  PPC.D.K
  ....D.
  EE....
  ......

ALGORITHMS:
- ucs: uniform cost search. Fewest moves, where a move slides one vehicle
  any distance. Ignores the heuristic.
- gbfs: greedy best-first search on the heuristic alone. Fast, not optimal.
  Moves are reported one cell at a time.
- astar: A* on moves so far plus the heuristic.
- fringe: fringe search, an iterative-deepening variant of A* that keeps
  its frontier between passes.

HEURISTICS:
- Manhattan: cells between the primary vehicle's leading edge and the exit
- Blocking: number of distinct vehicles in that gap

MOVES:
Moves are described as "<vehicle> - <direction> (<n> steps)", for example
"C - Down (3 steps)". replay_run with combine=true merges consecutive
moves of the same vehicle.`

func formatPuzzleInfo(p *service.PuzzleInfo) string {
	return fmt.Sprintf("• %s: %dx%d, %d vehicles, exit %s, manhattan %d, blocking %d\n",
		p.Name, p.Rows, p.Cols, p.Vehicles, p.ExitSide, p.Manhattan, p.Blocking)
}

func puzzleLabel(r *service.RunInfo) string {
	if r.Puzzle == "" {
		return "(inline)"
	}
	return r.Puzzle
}

func strategyLabel(r *service.RunInfo) string {
	if r.Heuristic == "" || r.Heuristic == "none" {
		return r.Algorithm
	}
	return r.Algorithm + "/" + r.Heuristic
}

func outcome(r *service.RunInfo) string {
	if !r.Solved {
		return "no solution"
	}
	return fmt.Sprintf("%d moves", r.MoveCount)
}

func formatRun(r *service.RunInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Run %s\n", r.ID)
	fmt.Fprintf(&sb, "Puzzle: %s\n", puzzleLabel(r))
	fmt.Fprintf(&sb, "Strategy: %s\n", strategyLabel(r))
	if r.Solved {
		fmt.Fprintf(&sb, "✓ Solved in %d moves\n", r.MoveCount)
	} else {
		sb.WriteString("✗ No solution found\n")
	}
	fmt.Fprintf(&sb, "Nodes explored: %d\n", r.NodesExplored)
	fmt.Fprintf(&sb, "Time: %.2fms\n", r.ElapsedMS)

	if len(r.Moves) > 0 {
		sb.WriteString("\nMoves:\n")
		for i, m := range r.Moves {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, m.Description)
		}
	}
	return sb.String()
}

func formatReplay(replay *service.ReplayResponse) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Replay of run %s (%d boards)\n", replay.RunID, len(replay.Frames))
	for _, f := range replay.Frames {
		if f.Move == nil {
			sb.WriteString("\nInitial board:\n")
		} else {
			fmt.Fprintf(&sb, "\nStep %d: %s\n", f.Step, f.Move.Description)
		}
		sb.WriteString(f.Render)
		if !strings.HasSuffix(f.Render, "\n") {
			sb.WriteString("\n")
		}
		if f.Solved {
			sb.WriteString("[solved]\n")
		}
	}
	return sb.String()
}
