package board

type cell struct{ r, c int }

// Load validates a layout and builds the starting board. Vehicles are indexed
// in the order their first cell appears scanning row by row.
func Load(l Layout) (*Board, error) {
	if l.Rows < 1 || l.Cols < 1 {
		return nil, loadErr(ErrInvalidDimensions, 0, "grid must be at least 1x1, got %dx%d", l.Rows, l.Cols)
	}
	if len(l.Grid) != l.Rows {
		return nil, loadErr(ErrInvalidDimensions, 0, "expected %d rows, got %d", l.Rows, len(l.Grid))
	}

	var order []byte
	groups := make(map[byte][]cell)
	for r, row := range l.Grid {
		if len(row) != l.Cols {
			return nil, loadErr(ErrInvalidDimensions, 0, "row %d has %d columns, expected %d", r+1, len(row), l.Cols)
		}
		for c := 0; c < len(row); c++ {
			ch := row[c]
			if ch == Empty {
				continue
			}
			if ch < 'A' || ch > 'Z' || ch == ExitMarker {
				return nil, loadErr(ErrInvalidCell, 0, "unexpected %q at row %d column %d", ch, r+1, c+1)
			}
			if _, seen := groups[ch]; !seen {
				order = append(order, ch)
			}
			groups[ch] = append(groups[ch], cell{r, c})
		}
	}

	f := &fleet{primary: -1}
	var pos []int
	for _, id := range order {
		cells := groups[id]
		if components(cells) > 1 {
			return nil, loadErr(ErrDuplicate, id, "appears in more than one group")
		}
		orient, err := shape(id, cells)
		if err != nil {
			return nil, err
		}
		if id == PrimaryID {
			f.primary = len(f.ids)
		}
		f.ids = append(f.ids, id)
		f.orient = append(f.orient, orient)
		f.length = append(f.length, len(cells))
		if orient == Horizontal {
			f.fixed = append(f.fixed, cells[0].r)
			pos = append(pos, cells[0].c)
		} else {
			f.fixed = append(f.fixed, cells[0].c)
			pos = append(pos, cells[0].r)
		}
	}

	if f.primary < 0 {
		return nil, loadErr(ErrMissingPrimary, 0, "no %c vehicle on the grid", PrimaryID)
	}
	if others := len(f.ids) - 1; l.Vehicles >= 0 && others != l.Vehicles {
		return nil, loadErr(ErrCountMismatch, 0, "expected %d non-primary vehicles, found %d", l.Vehicles, others)
	}

	exit, err := placeExit(l, f.orient[f.primary], f.fixed[f.primary])
	if err != nil {
		return nil, err
	}

	cells := make([]byte, 0, l.Rows*l.Cols)
	for _, row := range l.Grid {
		cells = append(cells, row...)
	}
	return &Board{
		rows:  l.Rows,
		cols:  l.Cols,
		exit:  exit,
		fleet: f,
		pos:   pos,
		cells: string(cells),
	}, nil
}

// shape infers orientation from the first two cells and checks the rest
// extend it contiguously. cells are in row-major order.
func shape(id byte, cells []cell) (Orientation, error) {
	if len(cells) < 2 {
		return 0, loadErr(ErrInvalidShape, id, "vehicles need at least 2 cells")
	}
	first, second := cells[0], cells[1]
	var orient Orientation
	switch {
	case second.r == first.r && second.c == first.c+1:
		orient = Horizontal
	case second.c == first.c && second.r == first.r+1:
		orient = Vertical
	default:
		return 0, loadErr(ErrInvalidShape, id, "cells are not adjacent")
	}
	for k, cl := range cells {
		want := cell{first.r, first.c + k}
		if orient == Vertical {
			want = cell{first.r + k, first.c}
		}
		if cl != want {
			return 0, loadErr(ErrInvalidShape, id, "cells are not in one straight line")
		}
	}
	return orient, nil
}

// components counts 4-connected groups among cells
func components(cells []cell) int {
	in := make(map[cell]bool, len(cells))
	for _, cl := range cells {
		in[cl] = true
	}
	seen := make(map[cell]bool, len(cells))
	n := 0
	for _, start := range cells {
		if seen[start] {
			continue
		}
		n++
		stack := []cell{start}
		seen[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range []cell{{cur.r - 1, cur.c}, {cur.r + 1, cur.c}, {cur.r, cur.c - 1}, {cur.r, cur.c + 1}} {
				if in[nb] && !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
	}
	return n
}

// placeExit converts the layout's exit into sentinel coordinates and checks
// it lines up with the primary vehicle.
func placeExit(l Layout, orient Orientation, fixed int) (Exit, error) {
	if !l.ExitSide.Valid() {
		return Exit{}, loadErr(ErrExitMismatch, 0, "unknown exit side %q", l.ExitSide)
	}
	if l.ExitSide.Axis() != orient {
		return Exit{}, loadErr(ErrExitMismatch, PrimaryID, "%s vehicle cannot leave through the %s side", orient, l.ExitSide)
	}
	if fixed != l.ExitIndex {
		line := "row"
		if orient == Vertical {
			line = "column"
		}
		return Exit{}, loadErr(ErrExitMismatch, PrimaryID, "exit is on %s %d but the vehicle is on %s %d", line, l.ExitIndex+1, line, fixed+1)
	}
	switch l.ExitSide {
	case Right:
		return Exit{Row: fixed, Col: l.Cols, Side: Right}, nil
	case Left:
		return Exit{Row: fixed, Col: -1, Side: Left}, nil
	case Bottom:
		return Exit{Row: l.Rows, Col: fixed, Side: Bottom}, nil
	default:
		return Exit{Row: -1, Col: fixed, Side: Top}, nil
	}
}
