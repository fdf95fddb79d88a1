package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/rushhour/game/analysis"
	"github.com/wricardo/mcp-training/rushhour/game/service"
)

// Outcome is one strategy run on one puzzle as seen through the API
type Outcome struct {
	Puzzle   string
	Strategy analysis.Strategy
	RunID    string
	Solved   bool
	Moves    int
	Nodes    int
	Elapsed  float64
	Problems []string
}

// Sweeper solves every puzzle with every strategy and checks the answers
type Sweeper struct {
	client *Client
	log    logrus.FieldLogger
	// Keep leaves the runs on the server
	Keep bool
}

func NewSweeper(client *Client, logger logrus.FieldLogger) *Sweeper {
	return &Sweeper{client: client, log: logger}
}

// Run sweeps the named puzzles, or every library puzzle when names is empty
func (s *Sweeper) Run(ctx context.Context, names []string) ([]*Outcome, error) {
	if len(names) == 0 {
		puzzles, err := s.client.ListPuzzles(ctx)
		if err != nil {
			return nil, err
		}
		for _, p := range puzzles {
			names = append(names, p.Name)
		}
	}

	var outcomes []*Outcome
	for _, name := range names {
		results, err := s.sweepPuzzle(ctx, name)
		if err != nil {
			return outcomes, fmt.Errorf("%s: %w", name, err)
		}
		outcomes = append(outcomes, results...)
	}
	return outcomes, nil
}

func (s *Sweeper) sweepPuzzle(ctx context.Context, name string) ([]*Outcome, error) {
	var outcomes []*Outcome
	for _, strategy := range analysis.Strategies() {
		logger := s.log.WithFields(logrus.Fields{"puzzle": name, "strategy": strategy.String()})

		run, err := s.client.Solve(ctx, service.SolveRequest{
			Puzzle:    name,
			Algorithm: string(strategy.Algorithm),
			Heuristic: strategy.Heuristic,
		})
		if err != nil {
			return outcomes, err
		}

		o := &Outcome{
			Puzzle:   name,
			Strategy: strategy,
			RunID:    run.ID,
			Solved:   run.Solved,
			Moves:    run.MoveCount,
			Nodes:    run.NodesExplored,
			Elapsed:  run.ElapsedMS,
		}
		if run.Solved {
			if err := s.checkReplay(ctx, o); err != nil {
				return outcomes, err
			}
		}
		logger.WithFields(logrus.Fields{"solved": o.Solved, "moves": o.Moves, "nodes": o.Nodes}).Debug("run finished")

		if !s.Keep {
			if err := s.client.DeleteRun(ctx, run.ID); err != nil {
				logger.WithError(err).Warn("failed to delete run")
			}
		}
		outcomes = append(outcomes, o)
	}

	checkAgreement(outcomes)
	return outcomes, nil
}

// checkReplay walks the run's frames and confirms they end on a solved board
func (s *Sweeper) checkReplay(ctx context.Context, o *Outcome) error {
	replay, err := s.client.Replay(ctx, o.RunID)
	if err != nil {
		return err
	}
	if len(replay.Frames) != o.Moves+1 {
		o.Problems = append(o.Problems, fmt.Sprintf("replay has %d frames for %d moves", len(replay.Frames), o.Moves))
	}
	if n := len(replay.Frames); n == 0 || !replay.Frames[n-1].Solved {
		o.Problems = append(o.Problems, "replay does not end solved")
	}
	return nil
}

// checkAgreement flags strategies that disagree with uniform cost search,
// whose move count is minimal for every puzzle it solves.
func checkAgreement(outcomes []*Outcome) {
	var baseline *Outcome
	for _, o := range outcomes {
		if !o.Strategy.Algorithm.Informed() {
			baseline = o
			break
		}
	}
	if baseline == nil {
		return
	}
	for _, o := range outcomes {
		switch {
		case o == baseline:
		case o.Solved != baseline.Solved:
			o.Problems = append(o.Problems, fmt.Sprintf("solved=%t but %s solved=%t", o.Solved, baseline.Strategy, baseline.Solved))
		case o.Solved && o.Moves < baseline.Moves:
			o.Problems = append(o.Problems, fmt.Sprintf("%d moves beats the %d move optimum", o.Moves, baseline.Moves))
		}
	}
}

// WriteOutcomes prints a table of outcomes followed by any problems found.
// It reports whether the sweep was clean.
func WriteOutcomes(w io.Writer, outcomes []*Outcome) bool {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PUZZLE\tSTRATEGY\tSOLVED\tMOVES\tNODES\tMS")
	for _, o := range outcomes {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%d\t%.2f\n", o.Puzzle, o.Strategy, o.Solved, o.Moves, o.Nodes, o.Elapsed)
	}
	tw.Flush()

	clean := true
	for _, o := range outcomes {
		for _, p := range o.Problems {
			clean = false
			fmt.Fprintf(w, "⚠️  %s %s: %s\n", o.Puzzle, o.Strategy, p)
		}
	}
	if clean {
		fmt.Fprintf(w, "\n✅ %d runs checked, no problems\n", len(outcomes))
	}
	return clean
}
