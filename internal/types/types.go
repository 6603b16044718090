package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Direction is the beam's travel direction between cells.
type Direction string

const (
	Right Direction = "right"
	Left  Direction = "left"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Edge identifies the grid boundary a beam exits through.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
)

// Orientation of a mirror surface.
type Orientation string

const (
	Slash     Orientation = "/"
	Backslash Orientation = `\`
)

// Opposite returns the other orientation.
func (o Orientation) Opposite() Orientation {
	if o == Slash {
		return Backslash
	}
	return Slash
}

// CellKind enumerates the closed set of cell variants.
type CellKind string

const (
	Empty     CellKind = "empty"
	Mirror    CellKind = "mirror"
	Degrading CellKind = "degrading"
	Toggle    CellKind = "toggle"
	Flipping  CellKind = "flipping"
	Portal    CellKind = "portal"
)

// Cell is a tagged union over the six cell kinds. Orientation is set for the
// four mirror kinds, On is the toggle mirror's initial state, PortalID is 1-3
// for portals.
type Cell struct {
	Kind        CellKind
	Orientation Orientation
	On          bool
	PortalID    int
}

// Glyph returns the single-character export encoding of the cell.
func (c Cell) Glyph() string {
	switch c.Kind {
	case Empty:
		return "."
	case Mirror:
		return string(c.Orientation)
	case Degrading:
		if c.Orientation == Slash {
			return "~"
		}
		return "`"
	case Toggle:
		switch {
		case c.On && c.Orientation == Slash:
			return "+"
		case c.On:
			return "_"
		case c.Orientation == Slash:
			return "-"
		default:
			return "="
		}
	case Flipping:
		if c.Orientation == Slash {
			return "@"
		}
		return "#"
	case Portal:
		return strconv.Itoa(c.PortalID)
	}
	return "?"
}

// CellFromGlyph is the inverse of Glyph.
func CellFromGlyph(glyph string) (Cell, error) {
	switch glyph {
	case ".":
		return Cell{Kind: Empty}, nil
	case "/":
		return Cell{Kind: Mirror, Orientation: Slash}, nil
	case `\`:
		return Cell{Kind: Mirror, Orientation: Backslash}, nil
	case "~":
		return Cell{Kind: Degrading, Orientation: Slash}, nil
	case "`":
		return Cell{Kind: Degrading, Orientation: Backslash}, nil
	case "+":
		return Cell{Kind: Toggle, Orientation: Slash, On: true}, nil
	case "_":
		return Cell{Kind: Toggle, Orientation: Backslash, On: true}, nil
	case "-":
		return Cell{Kind: Toggle, Orientation: Slash}, nil
	case "=":
		return Cell{Kind: Toggle, Orientation: Backslash}, nil
	case "@":
		return Cell{Kind: Flipping, Orientation: Slash}, nil
	case "#":
		return Cell{Kind: Flipping, Orientation: Backslash}, nil
	case "1", "2", "3":
		id, _ := strconv.Atoi(glyph)
		return Cell{Kind: Portal, PortalID: id}, nil
	}
	return Cell{}, fmt.Errorf("unknown cell glyph %q", glyph)
}

// MarshalJSON encodes the cell as its glyph so serialized grids stay compact
// and human readable.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Glyph())
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var glyph string
	if err := json.Unmarshal(data, &glyph); err != nil {
		return err
	}
	cell, err := CellFromGlyph(glyph)
	if err != nil {
		return err
	}
	*c = cell
	return nil
}

// Coord addresses a cell by zero-based row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// MarshalText lets Coord serve as a JSON map key.
func (c Coord) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d", c.Row, c.Col)), nil
}

func (c *Coord) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d,%d", &c.Row, &c.Col)
	return err
}

// Grid is a fixed-size rectangular cell matrix. Dimensions never change after
// creation; per-run mirror state lives in the simulator, not here.
type Grid struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// NewGrid creates an all-empty grid.
func NewGrid(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return &Grid{Rows: rows, Cols: cols, Cells: cells}
}

func (g *Grid) At(row, col int) Cell {
	return g.Cells[row][col]
}

func (g *Grid) Set(row, col int, c Cell) {
	g.Cells[row][col] = c
}

// InBounds reports whether the position lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// PortalExit finds the cell paired with the portal at from. The pair is the
// other cell carrying the same id; ok is false for a malformed grid with no
// partner.
func (g *Grid) PortalExit(id int, from Coord) (Coord, bool) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if r == from.Row && c == from.Col {
				continue
			}
			cell := g.Cells[r][c]
			if cell.Kind == Portal && cell.PortalID == id {
				return Coord{Row: r, Col: c}, true
			}
		}
	}
	return Coord{}, false
}

// HasKind reports whether any cell of the given kind is present.
func (g *Grid) HasKind(kind CellKind) bool {
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell.Kind == kind {
				return true
			}
		}
	}
	return false
}

// CountKind returns the number of cells of the given kind.
func (g *Grid) CountKind(kind CellKind) int {
	n := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell.Kind == kind {
				n++
			}
		}
	}
	return n
}

// LaserStep records the beam's position and direction at entry to a cell.
// Revisits append new entries; the path is never deduplicated.
type LaserStep struct {
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
}

// ExitInfo names the boundary the beam left through. Position is the 1-based
// row number for left/right exits and the letter-coded column for top/bottom.
type ExitInfo struct {
	Edge     Edge   `json:"edge"`
	Position string `json:"position"`
}

// MirrorState holds the per-cell mutable facts of one simulation run: which
// degrading mirrors have fired, each toggle mirror's current on/off value and
// each flipping mirror's current orientation. A fresh copy is built per run.
type MirrorState struct {
	Degraded map[Coord]bool        `json:"degraded"`
	Toggle   map[Coord]bool        `json:"toggle"`
	Flip     map[Coord]Orientation `json:"flip"`
}

// NewMirrorState seeds run state from the grid's generation-time defaults.
func NewMirrorState(g *Grid) *MirrorState {
	s := &MirrorState{
		Degraded: make(map[Coord]bool),
		Toggle:   make(map[Coord]bool),
		Flip:     make(map[Coord]Orientation),
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			pos := Coord{Row: r, Col: c}
			switch cell.Kind {
			case Toggle:
				s.Toggle[pos] = cell.On
			case Flipping:
				s.Flip[pos] = cell.Orientation
			}
		}
	}
	return s
}

// Equal compares two states field by field.
func (s *MirrorState) Equal(other *MirrorState) bool {
	if len(s.Degraded) != len(other.Degraded) ||
		len(s.Toggle) != len(other.Toggle) ||
		len(s.Flip) != len(other.Flip) {
		return false
	}
	for pos, v := range s.Degraded {
		if other.Degraded[pos] != v {
			return false
		}
	}
	for pos, v := range s.Toggle {
		if ov, ok := other.Toggle[pos]; !ok || ov != v {
			return false
		}
	}
	for pos, v := range s.Flip {
		if ov, ok := other.Flip[pos]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Puzzle bundles a generated grid with its entry row and the simulated answer.
type Puzzle struct {
	Grid       *Grid    `json:"grid"`
	StartRow   int      `json:"startRow"`
	SizeClass  string   `json:"sizeClass,omitempty"`
	Answer     ExitInfo `json:"answer"`
	PathLength int      `json:"pathLength"`
	Bounces    int      `json:"bounces"`
	Teleports  int      `json:"teleports"`
}

// ToJSON converts the puzzle to JSON bytes.
func (p *Puzzle) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// FromJSON creates a Puzzle from JSON bytes.
func FromJSON(data []byte) (*Puzzle, error) {
	var p Puzzle
	err := json.Unmarshal(data, &p)
	return &p, err
}

// ColumnLetter converts a 1-based column number to its letter label
// (A..Z, AA, AB, ...).
func ColumnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
