package simulator

import (
	"testing"

	"laserbench/internal/types"
)

// gridFromRows builds a grid from glyph strings, one per row.
func gridFromRows(t *testing.T, rows []string) *types.Grid {
	t.Helper()
	grid := types.NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != grid.Cols {
			t.Fatalf("row %d has %d cells, want %d", r, len(row), grid.Cols)
		}
		for c, glyph := range row {
			cell, err := types.CellFromGlyph(string(glyph))
			if err != nil {
				t.Fatalf("row %d col %d: %v", r, c, err)
			}
			grid.Set(r, c, cell)
		}
	}
	return grid
}

func TestReflectionPairs(t *testing.T) {
	cases := []struct {
		orientation types.Orientation
		in, out     types.Direction
	}{
		{types.Slash, types.Right, types.Up},
		{types.Slash, types.Left, types.Down},
		{types.Slash, types.Up, types.Right},
		{types.Slash, types.Down, types.Left},
		{types.Backslash, types.Right, types.Down},
		{types.Backslash, types.Left, types.Up},
		{types.Backslash, types.Up, types.Left},
		{types.Backslash, types.Down, types.Right},
	}
	for _, tc := range cases {
		if got := reflect(tc.in, tc.orientation); got != tc.out {
			t.Errorf("reflect(%s, %q) = %s, want %s", tc.in, tc.orientation, got, tc.out)
		}
	}
}

func TestStraightPathExitsRight(t *testing.T) {
	grid := gridFromRows(t, []string{
		".....",
		".....",
		".....",
	})
	result, err := Simulate(grid, 1, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result.Exit.Edge != types.EdgeRight || result.Exit.Position != "2" {
		t.Fatalf("exit = %+v, want right edge position 2", result.Exit)
	}
	if result.Bounces != 0 || result.Teleports != 0 {
		t.Fatalf("bounces=%d teleports=%d, want 0/0", result.Bounces, result.Teleports)
	}
	if len(result.Path) != 5 {
		t.Fatalf("path length = %d, want 5", len(result.Path))
	}
}

func TestSingleSlashExitsTop(t *testing.T) {
	grid := types.NewGrid(5, 5)
	grid.Set(2, 2, types.Cell{Kind: types.Mirror, Orientation: types.Slash})

	result, err := Simulate(grid, 2, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result.Exit.Edge != types.EdgeTop || result.Exit.Position != "C" {
		t.Fatalf("exit = %+v, want top edge position C", result.Exit)
	}
	if result.Bounces != 1 {
		t.Fatalf("bounces = %d, want 1", result.Bounces)
	}
	want := []types.LaserStep{
		{Row: 2, Col: 0, Direction: types.Right},
		{Row: 2, Col: 1, Direction: types.Right},
		{Row: 2, Col: 2, Direction: types.Right},
		{Row: 1, Col: 2, Direction: types.Up},
		{Row: 0, Col: 2, Direction: types.Up},
	}
	if len(result.Path) != len(want) {
		t.Fatalf("path length = %d, want %d", len(result.Path), len(want))
	}
	for i, step := range want {
		if result.Path[i] != step {
			t.Errorf("step %d = %+v, want %+v", i, result.Path[i], step)
		}
	}
}

func TestDegradingMirrorFiresOnce(t *testing.T) {
	// The mirrors route the beam in a loop that crosses both degrading
	// mirrors twice; the second crossings pass straight through.
	grid := gridFromRows(t, []string{
		"/`",
		".~",
		`\/`,
	})
	result, err := Simulate(grid, 1, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result.Exit.Edge != types.EdgeTop || result.Exit.Position != "B" {
		t.Fatalf("exit = %+v, want top edge position B", result.Exit)
	}
	if result.Bounces != 5 {
		t.Fatalf("bounces = %d, want 5", result.Bounces)
	}
	if len(result.Path) != 9 {
		t.Fatalf("path length = %d, want 9", len(result.Path))
	}
	degraded := result.MirrorState.Degraded
	if len(degraded) != 2 || !degraded[types.Coord{Row: 1, Col: 1}] || !degraded[types.Coord{Row: 0, Col: 1}] {
		t.Fatalf("degraded = %v, want exactly (1,1) and (0,1)", degraded)
	}
}

func TestToggleMirrorParity(t *testing.T) {
	// Toggle at (1,1) starts OFF: first visit passes through, second visit
	// (arriving from above) reflects. Two visits return it to its initial
	// state.
	grid := gridFromRows(t, []string{
		`/\.`,
		`.-\`,
		`\./`,
	})
	result, err := Simulate(grid, 1, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result.Exit.Edge != types.EdgeLeft || result.Exit.Position != "2" {
		t.Fatalf("exit = %+v, want left edge position 2", result.Exit)
	}
	if result.Bounces != 6 {
		t.Fatalf("bounces = %d, want 6", result.Bounces)
	}
	togglePos := types.Coord{Row: 1, Col: 1}
	if on, ok := result.MirrorState.Toggle[togglePos]; !ok || on {
		t.Fatalf("toggle state = %v (present=%v), want OFF after an even visit count", on, ok)
	}
}

func TestFlippingMirrorAlternates(t *testing.T) {
	// Flipping mirror at (1,1) reflects as '/' on the first visit and as
	// '\' on the second, then is back to its initial orientation.
	grid := gridFromRows(t, []string{
		`/\`,
		".@",
		`\/`,
	})
	result, err := Simulate(grid, 1, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result.Exit.Edge != types.EdgeLeft || result.Exit.Position != "2" {
		t.Fatalf("exit = %+v, want left edge position 2", result.Exit)
	}
	if result.Bounces != 6 {
		t.Fatalf("bounces = %d, want 6", result.Bounces)
	}
	flipPos := types.Coord{Row: 1, Col: 1}
	if got := result.MirrorState.Flip[flipPos]; got != types.Slash {
		t.Fatalf("flip orientation = %q, want %q after two visits", got, types.Slash)
	}
}

func TestPortalTeleportKeepsDirection(t *testing.T) {
	grid := gridFromRows(t, []string{".1.1."})
	result, err := Simulate(grid, 0, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result.Exit.Edge != types.EdgeRight || result.Exit.Position != "1" {
		t.Fatalf("exit = %+v, want right edge position 1", result.Exit)
	}
	if result.Teleports != 1 {
		t.Fatalf("teleports = %d, want 1", result.Teleports)
	}
	if result.Bounces != 0 {
		t.Fatalf("teleport must not count as a bounce, got %d", result.Bounces)
	}
	want := []types.LaserStep{
		{Row: 0, Col: 0, Direction: types.Right},
		{Row: 0, Col: 1, Direction: types.Right},
		{Row: 0, Col: 4, Direction: types.Right},
	}
	if len(result.Path) != len(want) {
		t.Fatalf("path length = %d, want %d", len(result.Path), len(want))
	}
	for i, step := range want {
		if result.Path[i] != step {
			t.Errorf("step %d = %+v, want %+v", i, result.Path[i], step)
		}
	}
}

func TestUnpairedPortalIsTransparent(t *testing.T) {
	grid := gridFromRows(t, []string{".2."})
	result, err := Simulate(grid, 0, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result.Exit.Edge != types.EdgeRight || result.Teleports != 0 {
		t.Fatalf("result = %+v, want right exit with no teleports", result)
	}
	if len(result.Path) != 3 {
		t.Fatalf("path length = %d, want 3", len(result.Path))
	}
}

func TestPathCapStopsClosedOrbit(t *testing.T) {
	// Travelling left, the beam cycles endlessly between the portal pair
	// and the cell between them.
	grid := gridFromRows(t, []string{"1.1"})
	result, err := Simulate(grid, 0, types.Left)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if !result.Capped {
		t.Fatal("expected a capped run")
	}
	if len(result.Path) <= MaxPathLength {
		t.Fatalf("path length = %d, want > %d", len(result.Path), MaxPathLength)
	}
	if result.Exit.Edge != types.EdgeRight || result.Exit.Position != "1" {
		t.Fatalf("fallback exit = %+v, want {right 1}", result.Exit)
	}
}

func TestStartRowOutOfRange(t *testing.T) {
	grid := types.NewGrid(3, 3)
	if _, err := Simulate(grid, 3, types.Right); err == nil {
		t.Fatal("expected an error for start row outside the grid")
	}
	if _, err := Simulate(grid, -1, types.Right); err == nil {
		t.Fatal("expected an error for negative start row")
	}
}

func TestStateAtStepRoundTrip(t *testing.T) {
	grids := [][]string{
		{"/`", ".~", `\/`},
		{`/\.`, `.-\`, `\./`},
		{`/\`, ".@", `\/`},
	}
	for _, rows := range grids {
		grid := gridFromRows(t, rows)
		result, err := Simulate(grid, 1, types.Right)
		if err != nil {
			t.Fatalf("Simulate failed: %v", err)
		}
		replayed := StateAtStep(grid, result.Path, len(result.Path)-1, result.MirrorState)
		if !replayed.Equal(result.MirrorState) {
			t.Errorf("replay at final step = %+v, want %+v", replayed, result.MirrorState)
		}
	}
}

func TestStateAtStepIntermediate(t *testing.T) {
	grid := gridFromRows(t, []string{
		"/`",
		".~",
		`\/`,
	})
	result, err := Simulate(grid, 1, types.Right)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	// Before any mirror is reached nothing has degraded.
	state := StateAtStep(grid, result.Path, 0, result.MirrorState)
	if len(state.Degraded) != 0 {
		t.Fatalf("degraded at step 0 = %v, want empty", state.Degraded)
	}

	// Step 1 enters the first degrading mirror at (1,1).
	state = StateAtStep(grid, result.Path, 1, result.MirrorState)
	if len(state.Degraded) != 1 || !state.Degraded[types.Coord{Row: 1, Col: 1}] {
		t.Fatalf("degraded at step 1 = %v, want only (1,1)", state.Degraded)
	}
}
