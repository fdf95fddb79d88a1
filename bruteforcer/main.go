// Command bruteforcer drives a running solver server through its REST API.
// It solves every library puzzle with every algorithm and heuristic, replays
// each solution to confirm it ends on a solved board, and checks that no
// strategy finds a shorter solution than uniform cost search.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
)

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Solver server URL")
	puzzles := flag.String("puzzles", "", "Comma-separated puzzle names (default: every library puzzle)")
	keep := flag.Bool("keep", false, "Keep the runs on the server")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var names []string
	for _, n := range strings.Split(*puzzles, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}

	log.Infof("Connecting to solver server at %s", *serverURL)
	sweeper := NewSweeper(NewClient(*serverURL), log)
	sweeper.Keep = *keep

	outcomes, err := sweeper.Run(ctx, names)
	if err != nil {
		log.WithError(err).Error("sweep stopped")
	}
	if !WriteOutcomes(os.Stdout, outcomes) || err != nil {
		os.Exit(1)
	}
}
