package puzzle

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/rushhour/game/board"
)

var ErrSyntax = errors.New("puzzle syntax error")

// ParseError points at the line of a puzzle file that could not be read
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d: %s", ErrSyntax, e.Line, e.Msg)
	}
	return fmt.Sprintf("%v: %s", ErrSyntax, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

func syntaxErr(line int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Puzzle is a parsed puzzle file before board validation
type Puzzle struct {
	Rows      int
	Cols      int
	Vehicles  int
	ExitSide  board.Side
	ExitIndex int
	Grid      []string
}

// Layout converts the puzzle into board.Load input
func (p *Puzzle) Layout() board.Layout {
	return board.Layout{
		Rows:      p.Rows,
		Cols:      p.Cols,
		Vehicles:  p.Vehicles,
		ExitSide:  p.ExitSide,
		ExitIndex: p.ExitIndex,
		Grid:      append([]string(nil), p.Grid...),
	}
}

// Board validates the puzzle and builds its starting board
func (p *Puzzle) Board() (*board.Board, error) {
	return board.Load(p.Layout())
}

// Parse reads a puzzle in the text format:
//
//	A B        rows and columns
//	N          number of non-primary vehicles
//	grid rows  'A'-'Z' vehicles, '.' empty, 'P' the primary vehicle
//
// The exit is a 'K' drawn outside the grid: on its own line above or below
// it, at the end of a row, or at the start of a row with every other row
// indented by one space.
func Parse(r io.Reader) (*Puzzle, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read puzzle: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, syntaxErr(0, "file is empty")
	}

	p := &Puzzle{}
	var err error
	if p.Rows, p.Cols, err = parseDimensions(lines[0]); err != nil {
		return nil, err
	}
	if len(lines) < 2 {
		return nil, syntaxErr(0, "no number of non-primary vehicles found")
	}
	if p.Vehicles, err = parseCount(lines[1]); err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, syntaxErr(0, "no board configuration found")
	}

	rows := lines[2:]
	for i, row := range rows {
		n := i + 3
		if strings.TrimSpace(row) == "" {
			return nil, syntaxErr(n, "empty line in board configuration")
		}
		for _, ch := range row {
			if !(ch >= 'A' && ch <= 'Z') && ch != ' ' && ch != '.' {
				return nil, syntaxErr(n, "invalid character %q", ch)
			}
		}
		if strings.Count(row, string(board.ExitMarker)) > 1 {
			return nil, syntaxErr(n, "more than one exit (K) on the same line")
		}
	}

	if err := p.readGrid(rows); err != nil {
		return nil, err
	}
	return p, nil
}

func parseDimensions(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, syntaxErr(1, "expected two values A and B (board dimensions), found %d", len(fields))
	}
	rows, err1 := strconv.Atoi(fields[0])
	cols, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || rows < 1 || cols < 1 {
		return 0, 0, syntaxErr(1, "A and B must be positive integers, found %s and %s", fields[0], fields[1])
	}
	return rows, cols, nil
}

func parseCount(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 1 {
		return 0, syntaxErr(2, "expected one value N (number of non-primary vehicles), found %q", line)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, syntaxErr(2, "N must be a non-negative integer, found %s", fields[0])
	}
	return n, nil
}

// readGrid strips the exit marker and indentation from rows and records the
// exit side.
func (p *Puzzle) readGrid(rows []string) error {
	exitFound := false
	setExit := func(line int, side board.Side, index int) error {
		if exitFound {
			return syntaxErr(line, "more than one exit (K), only one is allowed")
		}
		exitFound = true
		p.ExitSide, p.ExitIndex = side, index
		return nil
	}

	first := 3
	if len(rows) > p.Rows && strings.TrimSpace(rows[0]) == string(board.ExitMarker) {
		if err := setExit(first, board.Top, strings.IndexByte(rows[0], board.ExitMarker)); err != nil {
			return err
		}
		rows = rows[1:]
		first++
	}
	if len(rows) > p.Rows && strings.TrimSpace(rows[len(rows)-1]) == string(board.ExitMarker) {
		if err := setExit(first+len(rows)-1, board.Bottom, strings.IndexByte(rows[len(rows)-1], board.ExitMarker)); err != nil {
			return syntaxErr(first+len(rows)-1, "exits (K) at both top and bottom, only one is allowed")
		}
		rows = rows[:len(rows)-1]
	}
	if len(rows) != p.Rows {
		return syntaxErr(0, "board configuration must have exactly %d rows, found %d", p.Rows, len(rows))
	}
	if exitFound && p.ExitIndex >= p.Cols {
		return syntaxErr(0, "exit (K) at column %d is outside the board", p.ExitIndex+1)
	}

	grid := make([]string, len(rows))
	indented := make([]bool, len(rows))
	for i, row := range rows {
		n := first + i
		switch {
		case strings.HasPrefix(row, "  "):
			return syntaxErr(n, "too many spaces at the beginning of the row, at most 1 is allowed")
		case strings.HasPrefix(row, " "):
			indented[i] = true
			row = row[1:]
		case row[0] == board.ExitMarker:
			if err := setExit(n, board.Left, i); err != nil {
				return err
			}
			row = row[1:]
		}

		if len(row) == p.Cols+1 && row[p.Cols] == board.ExitMarker {
			if err := setExit(n, board.Right, i); err != nil {
				return err
			}
			row = row[:p.Cols]
		}
		switch {
		case len(row) > p.Cols:
			return syntaxErr(n, "row has %d columns, expected %d or %d with an exit", len(row), p.Cols, p.Cols+1)
		case len(row) < p.Cols:
			return syntaxErr(n, "row must have %d columns, found %d", p.Cols, len(row))
		case strings.ContainsAny(row, " "+string(board.ExitMarker)):
			return syntaxErr(n, "exit (K) must be outside the board")
		}
		grid[i] = row
	}

	if !exitFound {
		return syntaxErr(0, "exit (K) not found in board configuration")
	}
	for i, in := range indented {
		isExitRow := p.ExitSide == board.Left && i == p.ExitIndex
		if p.ExitSide == board.Left && !in && !isExitRow {
			return syntaxErr(first+i, "rows must be indented by one space when the exit is on the left")
		}
		if p.ExitSide != board.Left && in {
			return syntaxErr(first+i, "unexpected indentation")
		}
	}

	p.Grid = grid
	return nil
}

// ParseString parses a puzzle held in memory
func ParseString(s string) (*Puzzle, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the puzzle file at path
func ParseFile(path string) (*Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// LoadString parses and validates a puzzle in one step
func LoadString(s string) (*board.Board, error) {
	p, err := ParseString(s)
	if err != nil {
		return nil, err
	}
	return p.Board()
}

// LoadFile parses and validates the puzzle file at path
func LoadFile(path string) (*board.Board, error) {
	p, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return p.Board()
}

// Format writes b in the puzzle text format
func Format(w io.Writer, b *board.Board) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n%d\n", b.Rows(), b.Cols(), b.NumVehicles()-1)
	for _, line := range b.Render() {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}

// FormatString returns b in the puzzle text format
func FormatString(b *board.Board) string {
	var buf bytes.Buffer
	_ = Format(&buf, b)
	return buf.String()
}
