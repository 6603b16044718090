// Package visualizer renders puzzles as fixed-width ASCII for terminals,
// clipboards and prompts.
package visualizer

import (
	"fmt"
	"strings"

	"laserbench/internal/types"
)

// Visualizer renders one puzzle.
type Visualizer struct {
	puzzle *types.Puzzle
}

func NewVisualizer(puzzle *types.Puzzle) *Visualizer {
	return &Visualizer{puzzle: puzzle}
}

// Ascii returns the export form of the grid: letter column headers, borders,
// 1-based row numbers and a '>' marking the entry row.
func (v *Visualizer) Ascii() string {
	grid := v.puzzle.Grid
	var b strings.Builder

	b.WriteString("    ")
	for c := 1; c <= grid.Cols; c++ {
		b.WriteString(types.ColumnLetter(c))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	border := "  +" + strings.Repeat("-", grid.Cols*2+1) + "+"
	b.WriteString(border)
	b.WriteString("\n")

	for r := 0; r < grid.Rows; r++ {
		arrow := " "
		if r == v.puzzle.StartRow {
			arrow = ">"
		}
		fmt.Fprintf(&b, "%2d|%s", r+1, arrow)
		for c := 0; c < grid.Cols; c++ {
			b.WriteString(grid.At(r, c).Glyph())
			b.WriteString(" ")
		}
		b.WriteString("|\n")
	}

	b.WriteString(border)
	return b.String()
}

// Print writes the grid and its metadata to stdout.
func (v *Visualizer) Print() {
	fmt.Println(v.Ascii())
	fmt.Printf("Entry: row %d  Bounces: %d", v.puzzle.StartRow+1, v.puzzle.Bounces)
	if v.puzzle.Teleports > 0 {
		fmt.Printf("  Teleports: %d", v.puzzle.Teleports)
	}
	fmt.Printf("\nAnswer: %s edge, position %s\n", v.puzzle.Answer.Edge, v.puzzle.Answer.Position)
}

// Rules returns the natural-language rule explanation for the grid.
// Paragraphs for the special cell kinds are included only when the grid
// actually contains them.
func (v *Visualizer) Rules() string {
	grid := v.puzzle.Grid
	var b strings.Builder
	n := 0
	rule := func(format string, args ...interface{}) {
		n++
		fmt.Fprintf(&b, "%d. ", n)
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n")
	}

	b.WriteString("You are solving a laser mirror puzzle. Trace the path of a laser beam through the grid.\n\n")
	b.WriteString("Rules:\n")
	rule("The laser enters from the LEFT edge at the row marked with the '>' arrow")
	rule("The laser travels in straight lines")
	rule("When the laser hits a mirror, it bounces 90 degrees:\n" +
		"   - '/' mirror: right goes up, left goes down, up goes right, down goes left\n" +
		"   - '\\' mirror: right goes down, left goes up, up goes left, down goes right")

	if grid.HasKind(types.Portal) {
		rule("When the laser hits a portal ('1', '2', or '3'), it teleports to the matching portal and continues in the SAME direction\n" +
			"   - Each number appears exactly twice on the grid (entry and exit)\n" +
			"   - The laser exits from the paired portal, not the one it entered")
	}
	if grid.HasKind(types.Degrading) {
		rule("Degrading mirrors ('~' acts like '/' and '`' acts like '\\'):\n" +
			"   - They reflect the laser the FIRST time they are hit (same behavior as regular mirrors)\n" +
			"   - After being hit once, they BREAK and become empty cells\n" +
			"   - If the laser reaches the same cell again, it passes straight through")
	}
	if grid.HasKind(types.Toggle) {
		rule("Toggle mirrors ('+' and '_' start ON, '-' and '=' start OFF):\n" +
			"   - '+' and '-' reflect like '/', '_' and '=' reflect like '\\'\n" +
			"   - ON state: reflects like a normal mirror; OFF state: the laser passes straight through\n" +
			"   - Each time the laser visits the cell (whether it reflected or not), the state FLIPS")
	}
	if grid.HasKind(types.Flipping) {
		rule("Flipping mirrors ('@' acts like '/' and '#' acts like '\\'):\n" +
			"   - They always reflect the laser using their CURRENT orientation\n" +
			"   - After each hit they ROTATE 90 degrees: '/' becomes '\\' and '\\' becomes '/'\n" +
			"   - The next hit uses the new orientation")
	}

	rule("The laser exits when it leaves the grid boundaries")
	rule("Empty cells '.' do not affect the laser - it passes straight through")

	b.WriteString("\nGrid coordinates:\n")
	b.WriteString("- Rows are numbered 1, 2, 3, ... from top to bottom\n")
	b.WriteString("- Columns are labeled A, B, C, ... from left to right\n")
	return b.String()
}
