package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/rushhour/game/board"
	"github.com/wricardo/mcp-training/rushhour/game/puzzle"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

// solverServiceImpl implements the SolverService interface
type solverServiceImpl struct {
	runs    RunStore
	puzzles PuzzleLibrary
	log     logrus.FieldLogger
}

// NewSolverService creates a new solver service instance. A nil logger
// falls back to the logrus standard logger.
func NewSolverService(runs RunStore, puzzles PuzzleLibrary, logger logrus.FieldLogger) SolverService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &solverServiceImpl{
		runs:    runs,
		puzzles: puzzles,
		log:     logger,
	}
}

// ListPuzzles returns every valid puzzle in the library
func (s *solverServiceImpl) ListPuzzles(ctx context.Context) ([]*PuzzleInfo, error) {
	return s.puzzles.ListPuzzles()
}

// GetPuzzle returns a puzzle's text and board
func (s *solverServiceImpl) GetPuzzle(ctx context.Context, name string) (*PuzzleDetail, error) {
	p, err := s.loadPuzzle(name)
	if err != nil {
		return nil, err
	}
	return &PuzzleDetail{
		PuzzleInfo: *DescribePuzzle(p.Name, p.Board),
		Text:       p.Text,
		Board:      p.Board,
	}, nil
}

// SavePuzzle validates text and stores it under name
func (s *solverServiceImpl) SavePuzzle(ctx context.Context, name, text string) (*PuzzleInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: puzzle name %q", ErrInvalidRequest, name)
	}
	p, err := s.puzzles.SavePuzzle(name, text)
	if err != nil {
		return nil, err
	}
	s.log.WithField("puzzle", name).Info("puzzle saved")
	return DescribePuzzle(p.Name, p.Board), nil
}

// Solve runs one search and records it
func (s *solverServiceImpl) Solve(ctx context.Context, req SolveRequest) (*RunInfo, error) {
	hasName, hasText := strings.TrimSpace(req.Puzzle) != "", strings.TrimSpace(req.Text) != ""
	if hasName == hasText {
		return nil, fmt.Errorf("%w: provide either a puzzle name or puzzle text", ErrInvalidRequest)
	}

	algoName := req.Algorithm
	if algoName == "" {
		algoName = string(solver.UCS)
	}
	algo, err := solver.ParseAlgorithm(algoName)
	if err != nil {
		return nil, err
	}
	// reject a bad heuristic before touching the puzzle
	if algo.Informed() {
		if _, err := solver.ParseHeuristic(req.Heuristic); err != nil {
			return nil, err
		}
	}

	var p *Puzzle
	if hasName {
		if p, err = s.loadPuzzle(req.Puzzle); err != nil {
			return nil, err
		}
	} else {
		b, err := puzzle.LoadString(req.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
		}
		p = &Puzzle{Text: req.Text, Board: b}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := s.log.WithFields(logrus.Fields{
		"puzzle":    p.Name,
		"algorithm": algo,
		"heuristic": req.Heuristic,
	})
	logger.Debug("search started")

	res, err := solver.Solve(p.Board, algo, req.Heuristic)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"solved":  res.Solved,
		"moves":   len(res.Moves),
		"nodes":   res.NodesExplored,
		"elapsed": res.Elapsed,
	}).Info("search finished")

	now := time.Now()
	run, err := s.runs.Create(&Run{
		PuzzleName:     p.Name,
		PuzzleText:     p.Text,
		Board:          p.Board,
		Algorithm:      algo,
		Heuristic:      res.Heuristic,
		Result:         res,
		CreatedAt:      now,
		LastAccessedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	return ToRunInfo(run), nil
}

// GetRun returns a recorded run
func (s *solverServiceImpl) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, err
	}
	return ToRunInfo(run), nil
}

// ListRuns returns every recorded run, oldest first
func (s *solverServiceImpl) ListRuns(ctx context.Context) ([]*RunInfo, error) {
	runs := s.runs.List()
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.Before(runs[j].CreatedAt) })

	infos := make([]*RunInfo, 0, len(runs))
	for _, run := range runs {
		info := ToRunInfo(run)
		info.Moves = nil
		info.Board = nil
		infos = append(infos, info)
	}
	return infos, nil
}

// DeleteRun removes a recorded run
func (s *solverServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	if err := s.runs.Delete(runID); err != nil {
		return err
	}
	s.log.WithField("run", runID).Info("run deleted")
	return nil
}

// Replay rebuilds every board along a run's solution
func (s *solverServiceImpl) Replay(ctx context.Context, runID string, opts ReplayOptions) (*ReplayResponse, error) {
	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, err
	}
	b, err := runBoard(run)
	if err != nil {
		return nil, err
	}

	var moves []board.Move
	if run.Result != nil {
		moves = run.Result.Moves
	}
	switch {
	case opts.Combine:
		moves = solver.CombineConsecutive(moves)
	case opts.Steps:
		moves = solver.SplitSteps(moves)
	}

	states, err := solver.Replay(b, moves)
	if err != nil {
		return nil, fmt.Errorf("run %s does not replay: %w", runID, err)
	}

	resp := &ReplayResponse{RunID: run.ID, Frames: make([]Frame, 0, len(states))}
	for k, st := range states {
		f := Frame{Step: k, Grid: st.Grid(), Render: st.String(), Solved: st.IsSolved()}
		if k > 0 {
			mi := describeMove(b, moves[k-1])
			f.Move = &mi
		}
		resp.Frames = append(resp.Frames, f)
	}
	return resp, nil
}

func (s *solverServiceImpl) loadPuzzle(name string) (*Puzzle, error) {
	p, err := s.puzzles.LoadPuzzle(name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPuzzleNotFound) {
		return nil, err
	}
	// list the alternatives to make the error actionable
	available, listErr := s.puzzles.ListPuzzles()
	if listErr == nil && len(available) > 0 {
		names := make([]string, 0, len(available))
		for _, info := range available {
			names = append(names, info.Name)
		}
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrPuzzleNotFound, name, strings.Join(names, ", "))
	}
	return nil, fmt.Errorf("%w: %q", ErrPuzzleNotFound, name)
}

// runBoard returns the starting board of a run, rebuilding it from the
// stored text after a reload from disk.
func runBoard(run *Run) (*board.Board, error) {
	if run.Board != nil {
		return run.Board, nil
	}
	b, err := puzzle.LoadString(run.PuzzleText)
	if err != nil {
		return nil, fmt.Errorf("%w: stored puzzle for run %s: %v", ErrInvalidPuzzle, run.ID, err)
	}
	return b, nil
}

// DescribePuzzle summarizes a board for listings
func DescribePuzzle(name string, b *board.Board) *PuzzleInfo {
	return &PuzzleInfo{
		Name:      name,
		Filename:  name + ".txt",
		Rows:      b.Rows(),
		Cols:      b.Cols(),
		Vehicles:  b.NumVehicles() - 1,
		ExitSide:  b.Exit().Side,
		Manhattan: solver.ManhattanDistance(b),
		Blocking:  solver.BlockingVehicles(b),
	}
}

// ToRunInfo converts a stored run into its API form
func ToRunInfo(run *Run) *RunInfo {
	info := &RunInfo{
		ID:             run.ID,
		Puzzle:         run.PuzzleName,
		Algorithm:      string(run.Algorithm),
		Heuristic:      run.Heuristic.String(),
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
		Moves:          []MoveInfo{},
	}
	if run.Result != nil {
		info.Solved = run.Result.Solved
		info.MoveCount = len(run.Result.Moves)
		info.NodesExplored = run.Result.NodesExplored
		info.ElapsedMS = float64(run.Result.Elapsed) / float64(time.Millisecond)
	}
	b, err := runBoard(run)
	if err != nil {
		return info
	}
	info.Board = b
	if run.Result != nil {
		for _, m := range run.Result.Moves {
			info.Moves = append(info.Moves, describeMove(b, m))
		}
	}
	return info
}

func describeMove(b *board.Board, m board.Move) MoveInfo {
	return MoveInfo{
		Vehicle:     m.Vehicle,
		Symbol:      b.Vehicle(m.Vehicle).Symbol(),
		Delta:       m.Delta,
		Direction:   solver.Direction(b, m),
		Description: solver.Describe(b, m),
	}
}
