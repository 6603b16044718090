// Package simulator replays a laser beam through a grid, applying each cell
// kind's transition rule until the beam leaves the bounds.
package simulator

import (
	"fmt"
	"strconv"

	"laserbench/internal/types"
)

// MaxPathLength bounds the step path. State-dependent cells and portals can
// produce closed orbits that never reach a boundary; once the path exceeds
// this many entries the run is aborted with a fallback exit.
const MaxPathLength = 1000

// Result is the outcome of one simulation run.
type Result struct {
	Path        []types.LaserStep  `json:"path"`
	Exit        types.ExitInfo     `json:"exit"`
	Bounces     int                `json:"bounces"`
	Teleports   int                `json:"teleports"`
	MirrorState *types.MirrorState `json:"mirrorState"`
	// Capped marks a run stopped by MaxPathLength. The exit is then the
	// fallback {right, 1}, not a real boundary crossing.
	Capped bool `json:"capped,omitempty"`
}

// Simulate fires a beam into the grid at column 0 of startRow, travelling in
// startDirection, and traces it until it exits or the path cap trips. Mirror
// state is created fresh for the run from the grid's generation-time defaults.
func Simulate(g *types.Grid, startRow int, startDirection types.Direction) (*Result, error) {
	if g == nil || g.Rows == 0 || g.Cols == 0 {
		return nil, fmt.Errorf("cannot simulate an empty grid")
	}
	if startRow < 0 || startRow >= g.Rows {
		return nil, fmt.Errorf("start row %d outside grid of %d rows", startRow, g.Rows)
	}

	state := types.NewMirrorState(g)
	row, col := startRow, 0
	direction := startDirection
	bounces, teleports := 0, 0
	var path []types.LaserStep

	done := func(exit types.ExitInfo, capped bool) *Result {
		return &Result{
			Path:        path,
			Exit:        exit,
			Bounces:     bounces,
			Teleports:   teleports,
			MirrorState: state,
			Capped:      capped,
		}
	}

	for {
		switch {
		case row < 0:
			return done(types.ExitInfo{Edge: types.EdgeTop, Position: types.ColumnLetter(col + 1)}, false), nil
		case row >= g.Rows:
			return done(types.ExitInfo{Edge: types.EdgeBottom, Position: types.ColumnLetter(col + 1)}, false), nil
		case col < 0:
			return done(types.ExitInfo{Edge: types.EdgeLeft, Position: strconv.Itoa(row + 1)}, false), nil
		case col >= g.Cols:
			return done(types.ExitInfo{Edge: types.EdgeRight, Position: strconv.Itoa(row + 1)}, false), nil
		}

		// Record entry before the cell acts on the beam.
		path = append(path, types.LaserStep{Row: row, Col: col, Direction: direction})

		cell := g.At(row, col)
		pos := types.Coord{Row: row, Col: col}

		switch cell.Kind {
		case types.Mirror:
			direction = reflect(direction, cell.Orientation)
			bounces++
		case types.Degrading:
			if !state.Degraded[pos] {
				direction = reflect(direction, cell.Orientation)
				bounces++
				state.Degraded[pos] = true
			}
		case types.Toggle:
			if state.Toggle[pos] {
				direction = reflect(direction, cell.Orientation)
				bounces++
			}
			state.Toggle[pos] = !state.Toggle[pos]
		case types.Flipping:
			current := state.Flip[pos]
			direction = reflect(direction, current)
			bounces++
			state.Flip[pos] = current.Opposite()
		case types.Portal:
			// An unpaired portal is transparent; the beam keeps going.
			if exit, ok := g.PortalExit(cell.PortalID, pos); ok {
				teleports++
				row, col = exit.Row, exit.Col
			}
		}

		row, col = advance(row, col, direction)

		if len(path) > MaxPathLength {
			return done(types.ExitInfo{Edge: types.EdgeRight, Position: "1"}, true), nil
		}
	}
}

// reflect applies the fixed reflection pairing. Both orientations partition
// the four directions into two swapped pairs.
func reflect(d types.Direction, o types.Orientation) types.Direction {
	if o == types.Slash {
		switch d {
		case types.Right:
			return types.Up
		case types.Left:
			return types.Down
		case types.Up:
			return types.Right
		case types.Down:
			return types.Left
		}
	}
	switch d {
	case types.Right:
		return types.Down
	case types.Left:
		return types.Up
	case types.Up:
		return types.Left
	case types.Down:
		return types.Right
	}
	return d
}

func advance(row, col int, d types.Direction) (int, int) {
	switch d {
	case types.Right:
		col++
	case types.Left:
		col--
	case types.Up:
		row--
	case types.Down:
		row++
	}
	return row, col
}

// StateAtStep reconstructs the mirror state as it stood after step stepIndex
// of a finished run, by replaying state mutations (not beam movement) from the
// grid's initial values. Degrading mirrors consult the final state so a cell
// only shows broken if the run actually fired it. Used by display layers for
// progressive reveal; reproduces the live run's state exactly.
func StateAtStep(g *types.Grid, path []types.LaserStep, stepIndex int, final *types.MirrorState) *types.MirrorState {
	state := types.NewMirrorState(g)
	for i := 0; i <= stepIndex && i < len(path); i++ {
		pos := types.Coord{Row: path[i].Row, Col: path[i].Col}
		switch g.At(pos.Row, pos.Col).Kind {
		case types.Degrading:
			if final != nil && final.Degraded[pos] {
				state.Degraded[pos] = true
			}
		case types.Toggle:
			state.Toggle[pos] = !state.Toggle[pos]
		case types.Flipping:
			state.Flip[pos] = state.Flip[pos].Opposite()
		}
	}
	return state
}
