package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"laserbench/db"
	"laserbench/internal/benchmark"
	"laserbench/internal/generator"
	"laserbench/internal/types"
	"laserbench/internal/visualizer"
)

func main() {
	size := flag.String("size", "large", "puzzle size class (small, medium, large, extreme)")
	count := flag.Int("count", 1, "number of puzzles to generate")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	outDir := flag.String("out", "", "directory to write puzzle JSON files into")
	showRules := flag.Bool("rules", false, "print the rule explanation for each puzzle")
	upload := flag.Bool("upload", false, "upload generated puzzles to PocketBase")
	runBench := flag.Bool("benchmark", false, "run the LLM benchmark instead of generating")
	benchPuzzles := flag.Int("bench-puzzles", 10, "puzzles per model in benchmark mode")
	flag.Parse()

	if *runBench {
		runBenchmark(*size, *benchPuzzles)
		return
	}

	if *upload {
		if err := db.Connect(); err != nil {
			fmt.Printf("Error connecting to PocketBase: %v\n", err)
			os.Exit(1)
		}
	}

	start := time.Now()
	puzzles, err := generate(*size, *count, *seed)
	if err != nil {
		fmt.Printf("Error generating puzzles: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n✓ Generated %d %s puzzle(s) in %s\n\n", len(puzzles), *size, formatDuration(time.Since(start)))

	for i, puzzle := range puzzles {
		if len(puzzles) > 1 {
			fmt.Printf("━━━ Puzzle %d/%d ━━━\n", i+1, len(puzzles))
		}
		viz := visualizer.NewVisualizer(puzzle)
		viz.Print()
		if *showRules {
			fmt.Println()
			fmt.Println(viz.Rules())
		}
		fmt.Println(strings.Repeat("─", 50))

		if *outDir != "" {
			if err := savePuzzle(*outDir, puzzle, i); err != nil {
				fmt.Printf("Error writing puzzle file: %v\n", err)
			}
		}
		if *upload {
			id := newRecordID()
			if _, err := db.UploadPuzzle(id, puzzle); err != nil {
				fmt.Printf("Error uploading puzzle: %v\n", err)
			} else {
				fmt.Printf("Uploaded as %s\n", id)
			}
		}
	}
}

// generate uses a single seeded generator for one puzzle and the concurrent
// batch path (with a progress readout) for more.
func generate(size string, count int, seed int64) ([]*types.Puzzle, error) {
	if count <= 1 {
		gen, err := generator.NewClassicGenerator(size)
		if err != nil {
			return nil, err
		}
		if seed != 0 {
			gen.SetSeed(seed)
		}
		puzzle, err := gen.Generate()
		if err != nil {
			return nil, err
		}
		return []*types.Puzzle{puzzle}, nil
	}

	progress := make(chan generator.ProgressReport)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for report := range progress {
			fmt.Printf("\rGenerating puzzles... %s - %s", printProgressBar(report.Progress, 20), report.Message)
			if report.Completed {
				fmt.Println()
			}
		}
	}()

	puzzles, err := generator.GenerateBatch(size, count, progress)
	close(progress)
	<-done
	return puzzles, err
}

func runBenchmark(size string, numPuzzles int) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on the environment")
	}
	results, err := benchmark.Run(benchmark.Options{
		SizeClass:  size,
		NumPuzzles: numPuzzles,
	})
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}
	path, err := results.Save("results")
	if err != nil {
		fmt.Printf("Error saving results: %v\n", err)
	} else {
		fmt.Printf("Results saved to %s\n", path)
	}
	fmt.Println()
	fmt.Println("FINAL SUMMARY")
	fmt.Print(results.Summary())
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func printProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %.1f%%", bar, progress*100)
}

func newRecordID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 10)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func savePuzzle(dir string, puzzle *types.Puzzle, index int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := puzzle.ToJSON()
	if err != nil {
		return err
	}
	name := fmt.Sprintf("laser_%d_%s.json", index+1, time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), data, 0644)
}
