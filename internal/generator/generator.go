// Package generator builds laser-mirror grids and searches for interesting
// puzzle candidates by scoring simulated runs.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"laserbench/internal/simulator"
	"laserbench/internal/types"
)

// MaxPortalPairs is the number of distinct portal ids available.
const MaxPortalPairs = 3

// PuzzleGenerator produces complete puzzles ready for presentation.
type PuzzleGenerator interface {
	Generate() (*types.Puzzle, error)
}

// ClassicGenerator implements PuzzleGenerator with a bounded best-of-N
// search: generate candidate grids, simulate each from a random start row and
// keep the highest scoring one.
type ClassicGenerator struct {
	sizeClass   string
	config      SizeConfig
	maxAttempts int
	rng         *rand.Rand
}

// NewClassicGenerator creates a generator for a named size class.
func NewClassicGenerator(sizeClass string) (*ClassicGenerator, error) {
	cfg, err := ConfigFor(sizeClass)
	if err != nil {
		return nil, err
	}
	return &ClassicGenerator{
		sizeClass:   sizeClass,
		config:      cfg,
		maxAttempts: 100,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// SetSeed pins the random source, for reproducible runs and tests.
func (g *ClassicGenerator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// SetMaxAttempts overrides the candidate search bound.
func (g *ClassicGenerator) SetMaxAttempts(attempts int) {
	g.maxAttempts = attempts
}

// SetMinBounces overrides the early-exit threshold of the size class.
func (g *ClassicGenerator) SetMinBounces(minBounces int) {
	g.config.MinBounces = minBounces
}

// Generate runs the candidate search. The score of a candidate is
// bounces + 2*teleports; the search exits early once the best score reaches
// twice the class's MinBounces. The first candidate always seeds the result,
// so even a run where nothing scores returns a structurally valid puzzle.
func (g *ClassicGenerator) Generate() (*types.Puzzle, error) {
	rows := g.randRange(g.config.Rows)
	cols := g.randRange(g.config.Cols)
	mirrorCount := g.randRange(g.config.Mirrors)

	var best *types.Puzzle
	bestScore := -1

	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		grid, err := GenerateGrid(g.rng, rows, cols, mirrorCount, g.config.PortalPairs, g.config.Distribution)
		if err != nil {
			return nil, err
		}
		startRow := g.rng.Intn(rows)
		result, err := simulator.Simulate(grid, startRow, types.Right)
		if err != nil {
			return nil, err
		}

		score := result.Bounces + 2*result.Teleports
		if score > bestScore {
			bestScore = score
			best = &types.Puzzle{
				Grid:       grid,
				StartRow:   startRow,
				SizeClass:  g.sizeClass,
				Answer:     result.Exit,
				PathLength: len(result.Path),
				Bounces:    result.Bounces,
				Teleports:  result.Teleports,
			}
		}

		if bestScore >= g.config.MinBounces*2 {
			break
		}
	}

	return best, nil
}

func (g *ClassicGenerator) randRange(r Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + g.rng.Intn(r.Max-r.Min+1)
}

// GenerateGrid places mirrorCount mirrors (split across the four kinds by the
// distribution) and portalPairs portal pairs into an empty rows x cols grid.
// Placement is rejection sampling into empty cells, so the capacity check up
// front is what keeps the loop finite.
func GenerateGrid(rng *rand.Rand, rows, cols, mirrorCount, portalPairs int, dist Distribution) (*types.Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", rows, cols)
	}
	if mirrorCount < 0 {
		return nil, errors.New("mirror count must not be negative")
	}
	if portalPairs < 0 || portalPairs > MaxPortalPairs {
		return nil, fmt.Errorf("portal pair count %d outside [0,%d]", portalPairs, MaxPortalPairs)
	}
	if dist.Normal < 0 || dist.Degrading < 0 || dist.Toggle < 0 || dist.Flipping < 0 || dist.total() != 100 {
		return nil, fmt.Errorf("mirror distribution %+v must be non-negative and sum to 100", dist)
	}
	if mirrorCount+2*portalPairs > rows*cols {
		return nil, fmt.Errorf("%d mirrors and %d portal pairs exceed %d cells",
			mirrorCount, portalPairs, rows*cols)
	}

	grid := types.NewGrid(rows, cols)

	// Truncate the first three shares and give the remainder to the flipping
	// kind so the total always matches mirrorCount exactly.
	normalCount := mirrorCount * dist.Normal / 100
	degradingCount := mirrorCount * dist.Degrading / 100
	toggleCount := mirrorCount * dist.Toggle / 100
	flippingCount := mirrorCount - normalCount - degradingCount - toggleCount

	placeCells(rng, grid, normalCount, func() types.Cell {
		return types.Cell{Kind: types.Mirror, Orientation: coinOrientation(rng)}
	})
	placeCells(rng, grid, degradingCount, func() types.Cell {
		return types.Cell{Kind: types.Degrading, Orientation: coinOrientation(rng)}
	})
	placeCells(rng, grid, toggleCount, func() types.Cell {
		return types.Cell{Kind: types.Toggle, Orientation: coinOrientation(rng), On: rng.Intn(2) == 0}
	})
	placeCells(rng, grid, flippingCount, func() types.Cell {
		return types.Cell{Kind: types.Flipping, Orientation: coinOrientation(rng)}
	})

	for id := 1; id <= portalPairs; id++ {
		placeCells(rng, grid, 2, func() types.Cell {
			return types.Cell{Kind: types.Portal, PortalID: id}
		})
	}

	return grid, nil
}

// placeCells drops count cells produced by build into uniformly random empty
// positions, retrying on collision.
func placeCells(rng *rand.Rand, grid *types.Grid, count int, build func() types.Cell) {
	placed := 0
	for placed < count {
		r := rng.Intn(grid.Rows)
		c := rng.Intn(grid.Cols)
		if grid.At(r, c).Kind != types.Empty {
			continue
		}
		grid.Set(r, c, build())
		placed++
	}
}

func coinOrientation(rng *rand.Rand) types.Orientation {
	if rng.Intn(2) == 0 {
		return types.Slash
	}
	return types.Backslash
}
