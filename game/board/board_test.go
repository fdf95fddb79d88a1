package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// blockedLayout has the primary vehicle at row 2 columns 0-1 with C and D
// standing between it and the right-hand exit.
func blockedLayout() Layout {
	return Layout{
		Rows:      6,
		Cols:      6,
		Vehicles:  3,
		ExitSide:  Right,
		ExitIndex: 2,
		Grid: []string{
			"..C...",
			"..C.D.",
			"PPC.D.",
			"....D.",
			"EE....",
			"......",
		},
	}
}

func mustLoad(t *testing.T, l Layout) *Board {
	t.Helper()
	b, err := Load(l)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return b
}

func TestLoad(t *testing.T) {
	b := mustLoad(t, blockedLayout())

	if b.Rows() != 6 || b.Cols() != 6 {
		t.Errorf("Expected 6x6 board, got %dx%d", b.Rows(), b.Cols())
	}
	if b.NumVehicles() != 4 {
		t.Errorf("Expected 4 vehicles, got %d", b.NumVehicles())
	}
	if got := b.Exit(); got != (Exit{Row: 2, Col: 6, Side: Right}) {
		t.Errorf("Expected exit {2 6 RIGHT}, got %+v", got)
	}

	p, ok := b.Primary()
	if !ok {
		t.Fatal("Expected a primary vehicle")
	}
	if p.ID != 'P' || p.Row != 2 || p.Col != 0 || p.Length != 2 || p.Orientation != Horizontal {
		t.Errorf("Unexpected primary vehicle %+v", p)
	}

	c := b.Vehicle(b.IndexOf('C'))
	if c.Orientation != Vertical || c.Length != 3 || c.Row != 0 || c.Col != 2 {
		t.Errorf("Unexpected vehicle C %+v", c)
	}
	if b.IndexOf('Z') != -1 {
		t.Error("Expected -1 for an unknown symbol")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   error
	}{
		{
			name:   "single cell vehicle",
			layout: Layout{Rows: 2, Cols: 3, Vehicles: -1, ExitSide: Right, ExitIndex: 0, Grid: []string{"PP.", "..A"}},
			want:   ErrInvalidShape,
		},
		{
			name:   "bent vehicle",
			layout: Layout{Rows: 3, Cols: 3, Vehicles: -1, ExitSide: Right, ExitIndex: 2, Grid: []string{"AA.", "A..", "PP."}},
			want:   ErrInvalidShape,
		},
		{
			name:   "square block",
			layout: Layout{Rows: 3, Cols: 3, Vehicles: -1, ExitSide: Right, ExitIndex: 2, Grid: []string{"AA.", "AA.", "PP."}},
			want:   ErrInvalidShape,
		},
		{
			name:   "symbol in two groups",
			layout: Layout{Rows: 2, Cols: 5, Vehicles: -1, ExitSide: Right, ExitIndex: 1, Grid: []string{"AA.AA", "PP..."}},
			want:   ErrDuplicate,
		},
		{
			name:   "vehicle count mismatch",
			layout: Layout{Rows: 2, Cols: 4, Vehicles: 2, ExitSide: Right, ExitIndex: 1, Grid: []string{"AA..", "PP.."}},
			want:   ErrCountMismatch,
		},
		{
			name:   "no primary",
			layout: Layout{Rows: 2, Cols: 4, Vehicles: -1, ExitSide: Right, ExitIndex: 1, Grid: []string{"AA..", "BB.."}},
			want:   ErrMissingPrimary,
		},
		{
			name:   "exit on the wrong axis",
			layout: Layout{Rows: 2, Cols: 4, Vehicles: 0, ExitSide: Bottom, ExitIndex: 0, Grid: []string{"PP..", "...."}},
			want:   ErrExitMismatch,
		},
		{
			name:   "exit on another row",
			layout: Layout{Rows: 2, Cols: 4, Vehicles: 0, ExitSide: Right, ExitIndex: 1, Grid: []string{"PP..", "...."}},
			want:   ErrExitMismatch,
		},
		{
			name:   "short row",
			layout: Layout{Rows: 2, Cols: 4, Vehicles: 0, ExitSide: Right, ExitIndex: 0, Grid: []string{"PP..", "..."}},
			want:   ErrInvalidDimensions,
		},
		{
			name:   "lowercase symbol",
			layout: Layout{Rows: 2, Cols: 4, Vehicles: -1, ExitSide: Right, ExitIndex: 0, Grid: []string{"PP..", "aa.."}},
			want:   ErrInvalidCell,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Load(tt.layout)
			if err == nil {
				t.Fatalf("Expected error, got board:\n%s", b)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Errorf("Expected *LoadError, got %T", err)
			}
		})
	}
}

func TestValidMoves(t *testing.T) {
	b := mustLoad(t, blockedLayout())

	tests := []struct {
		id   byte
		want []int
	}{
		{'C', []int{1, 2, 3}},
		{'D', []int{-1, 1, 2}},
		{'P', nil},
		{'E', []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got := b.ValidMoves(b.IndexOf(tt.id))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ValidMoves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidMovesAreSound(t *testing.T) {
	b := mustLoad(t, blockedLayout())

	for i := 0; i < b.NumVehicles(); i++ {
		for _, d := range b.ValidMoves(i) {
			if d == 0 {
				t.Fatalf("Vehicle %d: zero displacement listed", i)
			}
			next, err := b.ApplyMove(i, d)
			if err != nil {
				t.Fatalf("Vehicle %d delta %d: %v", i, d, err)
			}
			v := next.Vehicle(i)
			if !next.InBounds(v.Row, v.Col) || !next.InBounds(v.EndRow(), v.EndCol()) {
				t.Errorf("Vehicle %d delta %d left the grid: %+v", i, d, v)
			}
			// the mover still covers exactly Length cells
			count := 0
			for _, ch := range []byte(next.Key()) {
				if ch == v.ID {
					count++
				}
			}
			if count != v.Length {
				t.Errorf("Vehicle %d delta %d: expected %d cells, got %d", i, d, v.Length, count)
			}

			back, err := next.ApplyMove(i, -d)
			if err != nil {
				t.Fatalf("Undo of vehicle %d delta %d: %v", i, d, err)
			}
			if back.Key() != b.Key() {
				t.Errorf("Undo of vehicle %d delta %d did not restore the board:\n%s", i, d, back)
			}
		}
	}
}

func TestApplyMove(t *testing.T) {
	b := mustLoad(t, blockedLayout())
	before := b.Key()

	t.Run("leaves receiver untouched", func(t *testing.T) {
		c := b.IndexOf('C')
		next, err := b.ApplyMove(c, 3)
		if err != nil {
			t.Fatalf("ApplyMove failed: %v", err)
		}
		if b.Key() != before {
			t.Error("Receiver was modified")
		}
		if got := next.Vehicle(c).Row; got != 3 {
			t.Errorf("Expected C anchored at row 3, got %d", got)
		}
		if b.Vehicle(c).Row != 0 {
			t.Error("Receiver's anchor was modified")
		}
		want := []string{
			"......",
			"....D.",
			"PP..D.",
			"..C.D.",
			"EEC...",
			"..C...",
		}
		if diff := cmp.Diff(want, next.Grid()); diff != "" {
			t.Errorf("Grid mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects illegal moves", func(t *testing.T) {
		tests := []struct {
			name    string
			vehicle int
			delta   int
		}{
			{"blocked", b.IndexOf('P'), 1},
			{"off grid", b.IndexOf('C'), -1},
			{"zero", b.IndexOf('D'), 0},
			{"past a blocker", b.IndexOf('E'), 5},
			{"bad index", 99, 1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := b.ApplyMove(tt.vehicle, tt.delta)
				if !errors.Is(err, ErrIllegalMove) {
					t.Errorf("Expected ErrIllegalMove, got %v", err)
				}
			})
		}
	})
}

func TestEqualIgnoresHistory(t *testing.T) {
	b := mustLoad(t, blockedLayout())
	c, d := b.IndexOf('C'), b.IndexOf('D')

	a1, _ := b.ApplyMove(c, 1)
	a2, _ := a1.ApplyMove(d, 2)
	b1, _ := b.ApplyMove(d, 2)
	b2, _ := b1.ApplyMove(c, 1)

	if !a2.Equal(b2) {
		t.Errorf("Expected equal boards:\n%s\n\n%s", a2, b2)
	}
	if a2.Equal(b) {
		t.Error("Expected moved board to differ from the start")
	}

	cp := b.Copy()
	if !cp.Equal(b) || cp == b {
		t.Error("Copy should be a distinct, equal board")
	}
}

func TestIsSolved(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   bool
	}{
		{"right edge", Layout{Rows: 1, Cols: 5, Vehicles: 0, ExitSide: Right, Grid: []string{"...PP"}}, true},
		{"right one short", Layout{Rows: 1, Cols: 5, Vehicles: 0, ExitSide: Right, Grid: []string{"..PP."}}, false},
		{"left edge", Layout{Rows: 1, Cols: 5, Vehicles: 0, ExitSide: Left, Grid: []string{"PP..."}}, true},
		{"left one short", Layout{Rows: 1, Cols: 5, Vehicles: 0, ExitSide: Left, Grid: []string{".PP.."}}, false},
		{"top edge", Layout{Rows: 4, Cols: 1, Vehicles: 0, ExitSide: Top, Grid: []string{"P", "P", ".", "."}}, true},
		{"top one short", Layout{Rows: 4, Cols: 1, Vehicles: 0, ExitSide: Top, Grid: []string{".", "P", "P", "."}}, false},
		{"bottom edge", Layout{Rows: 4, Cols: 1, Vehicles: 0, ExitSide: Bottom, Grid: []string{".", ".", "P", "P"}}, true},
		{"bottom one short", Layout{Rows: 4, Cols: 1, Vehicles: 0, ExitSide: Bottom, Grid: []string{".", "P", "P", "."}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustLoad(t, tt.layout)
			if got := b.IsSolved(); got != tt.want {
				t.Errorf("Expected IsSolved=%v, got %v", tt.want, got)
			}
		})
	}

	if (&Board{}).IsSolved() {
		t.Error("A board without a primary vehicle is never solved")
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   []string
	}{
		{
			name:   "right",
			layout: Layout{Rows: 2, Cols: 3, Vehicles: 0, ExitSide: Right, ExitIndex: 1, Grid: []string{"...", "PP."}},
			want:   []string{"...", "PP.K"},
		},
		{
			name:   "left",
			layout: Layout{Rows: 2, Cols: 3, Vehicles: 0, ExitSide: Left, ExitIndex: 0, Grid: []string{".PP", "..."}},
			want:   []string{"K.PP", " ..."},
		},
		{
			name:   "top",
			layout: Layout{Rows: 3, Cols: 3, Vehicles: 0, ExitSide: Top, ExitIndex: 1, Grid: []string{"...", ".P.", ".P."}},
			want:   []string{" K", "...", ".P.", ".P."},
		},
		{
			name:   "bottom",
			layout: Layout{Rows: 3, Cols: 3, Vehicles: 0, ExitSide: Bottom, ExitIndex: 2, Grid: []string{"..P", "..P", "..."}},
			want:   []string{"..P", "..P", "...", "  K"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustLoad(t, tt.layout)
			if diff := cmp.Diff(tt.want, b.Render()); diff != "" {
				t.Errorf("Render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
