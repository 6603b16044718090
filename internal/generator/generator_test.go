package generator

import (
	"math/rand"
	"testing"

	"laserbench/internal/simulator"
	"laserbench/internal/types"
)

func TestGenerateGridCounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dist := Distribution{Normal: 25, Degrading: 25, Toggle: 25, Flipping: 25}
	grid, err := GenerateGrid(rng, 10, 10, 20, 2, dist)
	if err != nil {
		t.Fatalf("GenerateGrid failed: %v", err)
	}

	counts := map[types.CellKind]int{}
	portalIDs := map[int]int{}
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := grid.At(r, c)
			counts[cell.Kind]++
			if cell.Kind == types.Portal {
				portalIDs[cell.PortalID]++
			}
		}
	}

	want := map[types.CellKind]int{
		types.Empty:     76,
		types.Mirror:    5,
		types.Degrading: 5,
		types.Toggle:    5,
		types.Flipping:  5,
		types.Portal:    4,
	}
	for kind, n := range want {
		if counts[kind] != n {
			t.Errorf("%s count = %d, want %d", kind, counts[kind], n)
		}
	}
	for id := 1; id <= 2; id++ {
		if portalIDs[id] != 2 {
			t.Errorf("portal id %d placed %d times, want 2", id, portalIDs[id])
		}
	}
}

func TestGenerateGridRemainderGoesToFlipping(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	dist := Distribution{Normal: 33, Degrading: 33, Toggle: 33, Flipping: 1}
	grid, err := GenerateGrid(rng, 8, 8, 10, 0, dist)
	if err != nil {
		t.Fatalf("GenerateGrid failed: %v", err)
	}

	// 33% of 10 truncates to 3 for the first three kinds; the remainder of
	// 1 lands on flipping so the total stays exact.
	if n := grid.CountKind(types.Mirror); n != 3 {
		t.Errorf("normal count = %d, want 3", n)
	}
	if n := grid.CountKind(types.Degrading); n != 3 {
		t.Errorf("degrading count = %d, want 3", n)
	}
	if n := grid.CountKind(types.Toggle); n != 3 {
		t.Errorf("toggle count = %d, want 3", n)
	}
	if n := grid.CountKind(types.Flipping); n != 1 {
		t.Errorf("flipping count = %d, want 1", n)
	}
}

func TestGenerateGridRejectsOverfull(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dist := Distribution{Normal: 100}
	if _, err := GenerateGrid(rng, 2, 2, 3, 1, dist); err == nil {
		t.Fatal("expected an error when cells cannot hold mirrors plus portals")
	}
}

func TestGenerateGridRejectsBadDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cases := []Distribution{
		{Normal: 50, Degrading: 40},
		{Normal: 120, Degrading: -20},
	}
	for _, dist := range cases {
		if _, err := GenerateGrid(rng, 5, 5, 4, 0, dist); err == nil {
			t.Errorf("distribution %+v accepted, want error", dist)
		}
	}
}

func TestGenerateGridRejectsBadArguments(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dist := Distribution{Normal: 100}
	if _, err := GenerateGrid(rng, 0, 5, 1, 0, dist); err == nil {
		t.Error("zero rows accepted, want error")
	}
	if _, err := GenerateGrid(rng, 5, 5, -1, 0, dist); err == nil {
		t.Error("negative mirror count accepted, want error")
	}
	if _, err := GenerateGrid(rng, 5, 5, 1, MaxPortalPairs+1, dist); err == nil {
		t.Error("too many portal pairs accepted, want error")
	}
}

func TestClassicGeneratorProducesSolvablePuzzle(t *testing.T) {
	gen, err := NewClassicGenerator("small")
	if err != nil {
		t.Fatalf("NewClassicGenerator failed: %v", err)
	}
	gen.SetSeed(99)

	puzzle, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	cfg := SizeClasses["small"]
	if puzzle.Grid.Rows < cfg.Rows.Min || puzzle.Grid.Rows > cfg.Rows.Max {
		t.Errorf("rows = %d, want within [%d,%d]", puzzle.Grid.Rows, cfg.Rows.Min, cfg.Rows.Max)
	}
	if puzzle.Grid.Cols < cfg.Cols.Min || puzzle.Grid.Cols > cfg.Cols.Max {
		t.Errorf("cols = %d, want within [%d,%d]", puzzle.Grid.Cols, cfg.Cols.Min, cfg.Cols.Max)
	}
	if puzzle.StartRow < 0 || puzzle.StartRow >= puzzle.Grid.Rows {
		t.Errorf("start row %d outside grid", puzzle.StartRow)
	}
	if puzzle.SizeClass != "small" {
		t.Errorf("size class = %q, want small", puzzle.SizeClass)
	}

	// Replaying the stored start must reproduce the stored answer.
	result, err := simulator.Simulate(puzzle.Grid, puzzle.StartRow, types.Right)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if result.Exit != puzzle.Answer {
		t.Errorf("replayed exit = %+v, stored answer = %+v", result.Exit, puzzle.Answer)
	}
	if result.Bounces != puzzle.Bounces || len(result.Path) != puzzle.PathLength {
		t.Errorf("replayed bounces/path = %d/%d, stored %d/%d",
			result.Bounces, len(result.Path), puzzle.Bounces, puzzle.PathLength)
	}
}

func TestClassicGeneratorDeterministicWithSeed(t *testing.T) {
	run := func() *types.Puzzle {
		gen, err := NewClassicGenerator("medium")
		if err != nil {
			t.Fatalf("NewClassicGenerator failed: %v", err)
		}
		gen.SetSeed(1234)
		puzzle, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		return puzzle
	}

	a, b := run(), run()
	aJSON, err := a.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	bJSON, err := b.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if string(aJSON) != string(bJSON) {
		t.Error("same seed produced different puzzles")
	}
}

func TestConfigForUnknownClass(t *testing.T) {
	if _, err := ConfigFor("colossal"); err == nil {
		t.Fatal("expected an error for an unknown size class")
	}
	for _, name := range ClassNames {
		if _, err := ConfigFor(name); err != nil {
			t.Errorf("ConfigFor(%q) failed: %v", name, err)
		}
	}
}

func TestGenerateBatch(t *testing.T) {
	puzzles, err := GenerateBatch("small", 4, nil)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}
	if len(puzzles) != 4 {
		t.Fatalf("got %d puzzles, want 4", len(puzzles))
	}
	for i, p := range puzzles {
		if p == nil || p.Grid == nil {
			t.Fatalf("puzzle %d is incomplete", i)
		}
	}
}

func TestGenerateBatchRejectsBadInput(t *testing.T) {
	if _, err := GenerateBatch("small", 0, nil); err == nil {
		t.Error("zero count accepted, want error")
	}
	if _, err := GenerateBatch("colossal", 2, nil); err == nil {
		t.Error("unknown size class accepted, want error")
	}
}
