package solver

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAlgorithm = errors.New("invalid algorithm")

// Algorithm names one of the search strategies
type Algorithm string

const (
	UCS    Algorithm = "ucs"
	GBFS   Algorithm = "gbfs"
	AStar  Algorithm = "astar"
	Fringe Algorithm = "fringe"
)

// Algorithms lists every strategy in a stable order
var Algorithms = []Algorithm{UCS, GBFS, AStar, Fringe}

// ParseAlgorithm resolves a strategy name or one of its common spellings
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ucs", "uniform-cost":
		return UCS, nil
	case "gbfs", "greedy":
		return GBFS, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	case "fringe":
		return Fringe, nil
	}
	return "", fmt.Errorf("%w: %q (want ucs, gbfs, astar or fringe)", ErrInvalidAlgorithm, name)
}

// Informed reports whether the strategy needs a heuristic
func (a Algorithm) Informed() bool {
	return a != UCS
}

// Title returns a display name
func (a Algorithm) Title() string {
	switch a {
	case UCS:
		return "Uniform Cost Search"
	case GBFS:
		return "Greedy Best-First Search"
	case AStar:
		return "A*"
	case Fringe:
		return "Fringe Search"
	}
	return string(a)
}
