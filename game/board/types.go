package board

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Orientation is the axis a vehicle slides along
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MarshalJSON encodes the orientation by name
func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Side identifies the grid boundary the exit sits on
type Side string

const (
	Top    Side = "TOP"
	Bottom Side = "BOTTOM"
	Left   Side = "LEFT"
	Right  Side = "RIGHT"
)

const (
	// Empty marks an unoccupied cell
	Empty byte = '.'
	// PrimaryID is the symbol of the vehicle that has to leave the grid
	PrimaryID byte = 'P'
	// ExitMarker is drawn one step outside the grid where the exit is
	ExitMarker byte = 'K'
)

// ParseSide converts a side name into a Side
func ParseSide(s string) (Side, error) {
	switch Side(strings.ToUpper(strings.TrimSpace(s))) {
	case Top:
		return Top, nil
	case Bottom:
		return Bottom, nil
	case Left:
		return Left, nil
	case Right:
		return Right, nil
	}
	return "", fmt.Errorf("unknown exit side %q", s)
}

// Axis returns the orientation a vehicle needs to drive through this side
func (s Side) Axis() Orientation {
	if s == Top || s == Bottom {
		return Vertical
	}
	return Horizontal
}

// Valid reports whether s is one of the four sides
func (s Side) Valid() bool {
	switch s {
	case Top, Bottom, Left, Right:
		return true
	}
	return false
}

// Exit is the boundary cell one step outside the grid. A far-side exit uses
// rows or cols as its coordinate, a near-side exit uses -1.
type Exit struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Side Side `json:"side"`
}

// Vehicle describes one vehicle at its current anchor (top-left cell)
type Vehicle struct {
	ID          byte        `json:"-"`
	Orientation Orientation `json:"orientation"`
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Length      int         `json:"length"`
	Primary     bool        `json:"primary"`
}

// Symbol returns the vehicle identifier as a string
func (v Vehicle) Symbol() string {
	return string(v.ID)
}

// EndRow returns the row of the last cell the vehicle covers
func (v Vehicle) EndRow() int {
	if v.Orientation == Vertical {
		return v.Row + v.Length - 1
	}
	return v.Row
}

// EndCol returns the column of the last cell the vehicle covers
func (v Vehicle) EndCol() int {
	if v.Orientation == Horizontal {
		return v.Col + v.Length - 1
	}
	return v.Col
}

// MarshalJSON includes the symbol as a string
func (v Vehicle) MarshalJSON() ([]byte, error) {
	type alias Vehicle
	return json.Marshal(struct {
		ID string `json:"id"`
		alias
	}{ID: v.Symbol(), alias: alias(v)})
}

// Move slides one vehicle by Delta cells. Positive is right or down.
type Move struct {
	Vehicle int `json:"vehicle"`
	Delta   int `json:"delta"`
}

// Layout is the input to Load: grid rows plus the exit placement and the
// expected number of non-primary vehicles.
type Layout struct {
	Rows int
	Cols int
	// Vehicles is the expected count of non-primary vehicles. Negative skips the check.
	Vehicles int
	ExitSide Side
	// ExitIndex is the row (LEFT/RIGHT) or column (TOP/BOTTOM) of the exit
	ExitIndex int
	Grid      []string
}
