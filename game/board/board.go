package board

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fleet holds the parts of each vehicle that never change after Load.
// Every board derived from the same Load shares one fleet.
type fleet struct {
	ids     []byte
	orient  []Orientation
	length  []int
	fixed   []int // row of a horizontal vehicle, column of a vertical one
	primary int
}

// Board is an immutable Rush Hour configuration. Moves produce new boards.
type Board struct {
	rows  int
	cols  int
	exit  Exit
	fleet *fleet
	pos   []int  // anchor along each vehicle's axis
	cells string // row-major grid content, also the canonical key
}

// Rows returns the grid height
func (b *Board) Rows() int { return b.rows }

// Cols returns the grid width
func (b *Board) Cols() int { return b.cols }

// Exit returns the exit descriptor
func (b *Board) Exit() Exit { return b.exit }

// NumVehicles returns how many vehicles are on the board
func (b *Board) NumVehicles() int { return len(b.pos) }

// PrimaryIndex returns the index of the primary vehicle, or -1 if there is none
func (b *Board) PrimaryIndex() int {
	if b.fleet == nil {
		return -1
	}
	return b.fleet.primary
}

// Vehicle returns vehicle i at its current position
func (b *Board) Vehicle(i int) Vehicle {
	v := Vehicle{
		ID:          b.fleet.ids[i],
		Orientation: b.fleet.orient[i],
		Length:      b.fleet.length[i],
		Primary:     i == b.fleet.primary,
	}
	if v.Orientation == Horizontal {
		v.Row, v.Col = b.fleet.fixed[i], b.pos[i]
	} else {
		v.Row, v.Col = b.pos[i], b.fleet.fixed[i]
	}
	return v
}

// Vehicles returns every vehicle in index order
func (b *Board) Vehicles() []Vehicle {
	out := make([]Vehicle, len(b.pos))
	for i := range b.pos {
		out[i] = b.Vehicle(i)
	}
	return out
}

// Primary returns the primary vehicle. ok is false for a board without one.
func (b *Board) Primary() (v Vehicle, ok bool) {
	p := b.PrimaryIndex()
	if p < 0 || p >= len(b.pos) {
		return Vehicle{}, false
	}
	return b.Vehicle(p), true
}

// IndexOf returns the index of the vehicle with the given symbol, or -1
func (b *Board) IndexOf(id byte) int {
	if b.fleet == nil {
		return -1
	}
	for i, v := range b.fleet.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// At returns the cell content at (r, c)
func (b *Board) At(r, c int) byte {
	return b.cells[r*b.cols+c]
}

// InBounds reports whether (r, c) is on the grid
func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.rows && c >= 0 && c < b.cols
}

// Key returns the canonical form: the flattened grid content
func (b *Board) Key() string { return b.cells }

// Equal reports whether both boards hold the same cells
func (b *Board) Equal(other *Board) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.rows == other.rows && b.cols == other.cols && b.cells == other.cells
}

// Grid returns the board as one string per row
func (b *Board) Grid() []string {
	out := make([]string, b.rows)
	for r := 0; r < b.rows; r++ {
		out[r] = b.cells[r*b.cols : (r+1)*b.cols]
	}
	return out
}

// Copy returns an independent clone. Boards are immutable, so only the
// per-board slices are duplicated.
func (b *Board) Copy() *Board {
	nb := *b
	nb.pos = append([]int(nil), b.pos...)
	return &nb
}

// IsSolved reports whether the primary vehicle's leading edge touches the
// exit boundary.
func (b *Board) IsSolved() bool {
	p, ok := b.Primary()
	if !ok {
		return false
	}
	switch b.exit.Side {
	case Right:
		return p.Row == b.exit.Row && p.EndCol()+1 == b.exit.Col
	case Left:
		return p.Row == b.exit.Row && p.Col-1 == b.exit.Col
	case Bottom:
		return p.Col == b.exit.Col && p.EndRow()+1 == b.exit.Row
	case Top:
		return p.Col == b.exit.Col && p.Row-1 == b.exit.Row
	}
	return false
}

// ValidMoves lists every displacement vehicle i can slide: the free run
// behind it nearest first, then the free run ahead of it nearest first.
func (b *Board) ValidMoves(i int) []int {
	if i < 0 || i >= len(b.pos) {
		return nil
	}
	var moves []int
	start, length := b.pos[i], b.fleet.length[i]
	for d := 1; b.free(i, start-d); d++ {
		moves = append(moves, -d)
	}
	for d := 1; b.free(i, start+length-1+d); d++ {
		moves = append(moves, d)
	}
	return moves
}

// free reports whether the cell at coordinate k on vehicle i's line is on
// the grid and empty.
func (b *Board) free(i, k int) bool {
	r, c := b.lineCell(i, k)
	return b.InBounds(r, c) && b.At(r, c) == Empty
}

func (b *Board) lineCell(i, k int) (int, int) {
	if b.fleet.orient[i] == Horizontal {
		return b.fleet.fixed[i], k
	}
	return k, b.fleet.fixed[i]
}

// ApplyMove returns a new board with vehicle i slid by delta. The receiver
// is not modified.
func (b *Board) ApplyMove(i, delta int) (*Board, error) {
	if i < 0 || i >= len(b.pos) {
		return nil, fmt.Errorf("%w: vehicle index %d out of range", ErrIllegalMove, i)
	}
	id := b.fleet.ids[i]
	if delta == 0 {
		return nil, fmt.Errorf("%w: vehicle %c: zero displacement", ErrIllegalMove, id)
	}
	start, length := b.pos[i], b.fleet.length[i]
	// every cell swept on the way must be free
	if delta > 0 {
		for k := start + length; k < start+length+delta; k++ {
			if !b.free(i, k) {
				return nil, fmt.Errorf("%w: vehicle %c: blocked sliding by %d", ErrIllegalMove, id, delta)
			}
		}
	} else {
		for k := start - 1; k >= start+delta; k-- {
			if !b.free(i, k) {
				return nil, fmt.Errorf("%w: vehicle %c: blocked sliding by %d", ErrIllegalMove, id, delta)
			}
		}
	}

	cells := []byte(b.cells)
	for k := start; k < start+length; k++ {
		r, c := b.lineCell(i, k)
		cells[r*b.cols+c] = Empty
	}
	for k := start + delta; k < start+delta+length; k++ {
		r, c := b.lineCell(i, k)
		cells[r*b.cols+c] = id
	}

	nb := &Board{
		rows:  b.rows,
		cols:  b.cols,
		exit:  b.exit,
		fleet: b.fleet,
		pos:   append([]int(nil), b.pos...),
		cells: string(cells),
	}
	nb.pos[i] += delta
	return nb, nil
}

// Render draws the grid with the exit marker outside the boundary, the way
// puzzle files show it.
func (b *Board) Render() []string {
	rows := b.Grid()
	var out []string
	switch b.exit.Side {
	case Top:
		out = append(out, strings.Repeat(" ", b.exit.Col)+string(ExitMarker))
		out = append(out, rows...)
	case Bottom:
		out = append(out, rows...)
		out = append(out, strings.Repeat(" ", b.exit.Col)+string(ExitMarker))
	case Left:
		for r, row := range rows {
			if r == b.exit.Row {
				out = append(out, string(ExitMarker)+row)
			} else {
				out = append(out, " "+row)
			}
		}
	case Right:
		for r, row := range rows {
			if r == b.exit.Row {
				out = append(out, row+string(ExitMarker))
			} else {
				out = append(out, row)
			}
		}
	default:
		out = rows
	}
	return out
}

func (b *Board) String() string {
	return strings.Join(b.Render(), "\n")
}

// MarshalJSON encodes the board as dimensions, exit, grid and vehicles
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rows     int       `json:"rows"`
		Cols     int       `json:"cols"`
		Exit     Exit      `json:"exit"`
		Grid     []string  `json:"grid"`
		Vehicles []Vehicle `json:"vehicles"`
		Solved   bool      `json:"solved"`
	}{b.rows, b.cols, b.exit, b.Grid(), b.Vehicles(), b.IsSolved()})
}
