// Command rushhour solves Rush Hour puzzle files from the command line.
//
//	rushhour solve --algorithm astar --heuristic Blocking puzzles/classic.txt
//	rushhour validate puzzles
//	rushhour analyze puzzles/beginner.txt
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/rushhour/game/analysis"
	"github.com/wricardo/mcp-training/rushhour/game/board"
	"github.com/wricardo/mcp-training/rushhour/game/puzzle"
	"github.com/wricardo/mcp-training/rushhour/game/solver"
)

var log = logrus.New()

func main() {
	log.SetOutput(os.Stderr)
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "rushhour",
		Usage: "solve Rush Hour puzzles",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "log search progress"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			solveCommand(),
			validateCommand(),
			analyzeCommand(),
		},
	}
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "solve a puzzle file and print every board along the way",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "astar", Usage: "ucs, gbfs, astar or fringe"},
			&cli.StringFlag{Name: "heuristic", Aliases: []string{"H"}, Value: "Blocking", Usage: "Manhattan or Blocking (ignored by ucs)"},
			&cli.BoolFlag{Name: "steps", Usage: "show one board per single-cell step"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "also write the report to this file"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("expected one puzzle file, got %d arguments", cmd.NArg())
			}
			algo, err := solver.ParseAlgorithm(cmd.String("algorithm"))
			if err != nil {
				return err
			}

			path := cmd.Args().First()
			b, err := puzzle.LoadFile(path)
			if err != nil {
				return err
			}

			logger := log.WithFields(logrus.Fields{"puzzle": filepath.Base(path), "algorithm": algo})
			res, err := solver.Solve(b, algo, cmd.String("heuristic"), solver.WithObserver(func(explored int, _ *board.Board) {
				if explored%10000 == 0 {
					logger.WithField("explored", explored).Debug("searching")
				}
			}))
			if err != nil {
				return err
			}

			report := &Report{Board: b, Result: res, Steps: cmd.Bool("steps")}
			if err := report.Write(cmd.Root().Writer); err != nil {
				return err
			}

			if out := cmd.String("output"); out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				if err := report.Write(f); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				fmt.Fprintf(cmd.Root().Writer, "Saved as '%s'.\n", out)
			}
			return nil
		},
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "check puzzle files or directories of puzzle files",
		ArgsUsage: "DIR|FILE...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files, err := expand(cmd.Args().Slice())
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			invalid := 0
			for _, f := range files {
				result := analysis.Validate(f)
				status := "ok"
				if !result.Valid {
					status = "INVALID"
					invalid++
				}
				fmt.Fprintf(w, "%-24s %s\n", result.File, status)
				for _, e := range result.Errors {
					fmt.Fprintf(w, "  error: %s\n", e)
				}
				for _, warning := range result.Warnings {
					fmt.Fprintf(w, "  warning: %s\n", warning)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d puzzles are invalid", invalid, len(files))
			}
			return nil
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "compare every search strategy on puzzle files",
		ArgsUsage: "DIR|FILE...",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files, err := expand(cmd.Args().Slice())
			if err != nil {
				return err
			}
			for _, f := range files {
				report, err := analysis.AnalyzeFile(f)
				if err != nil {
					return fmt.Errorf("%s: %w", f, err)
				}
				if err := report.Write(cmd.Root().Writer); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// expand replaces directory arguments with the puzzle files inside them
func expand(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least one puzzle file or directory")
	}
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := analysis.PuzzleFiles(arg)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no puzzle files in %s", strings.TrimRight(arg, "/"))
		}
		files = append(files, found...)
	}
	return files, nil
}
