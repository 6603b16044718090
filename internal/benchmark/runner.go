// Package benchmark generates puzzle sets and measures how accurately LLM
// providers solve them.
package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"laserbench/internal/generator"
	"laserbench/internal/types"
	"laserbench/internal/visualizer"
)

// Options configures one benchmark run.
type Options struct {
	SizeClass  string
	NumPuzzles int
	Models     []ModelSpec
}

// PuzzleResult records one model's attempt at one puzzle.
type PuzzleResult struct {
	Expected   types.ExitInfo `json:"expected"`
	LLMAnswer  *Answer        `json:"llmAnswer"`
	Correct    bool           `json:"correct"`
	PathLength int            `json:"pathLength"`
}

// ModelResult aggregates a model's attempts.
type ModelResult struct {
	Provider Provider       `json:"provider"`
	ModelID  string         `json:"modelId"`
	Correct  int            `json:"correct"`
	Total    int            `json:"total"`
	Accuracy float64        `json:"accuracy"`
	Results  []PuzzleResult `json:"results"`
}

// Results maps model display names to their outcomes.
type Results map[string]*ModelResult

// Run generates the puzzle set once, then asks every configured model to
// solve the same puzzles.
func Run(opts Options) (Results, error) {
	if opts.NumPuzzles <= 0 {
		return nil, fmt.Errorf("puzzle count %d must be positive", opts.NumPuzzles)
	}
	models := opts.Models
	if len(models) == 0 {
		models = DefaultModels
	}

	gen, err := generator.NewClassicGenerator(opts.SizeClass)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"size":    opts.SizeClass,
		"puzzles": opts.NumPuzzles,
		"models":  len(models),
	}).Info("generating benchmark puzzle set")

	puzzles := make([]*types.Puzzle, opts.NumPuzzles)
	for i := range puzzles {
		p, err := gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate puzzle %d: %v", i+1, err)
		}
		puzzles[i] = p
	}

	client := NewClient()
	all := make(Results, len(models))

	for _, model := range models {
		log.WithField("model", model.Name).Info("testing model")
		mr := &ModelResult{
			Provider: model.Provider,
			ModelID:  model.ModelID,
			Total:    opts.NumPuzzles,
			Results:  make([]PuzzleResult, 0, opts.NumPuzzles),
		}

		for i, puzzle := range puzzles {
			viz := visualizer.NewVisualizer(puzzle)
			response, err := client.Complete(model, viz.Rules(), BuildPrompt(viz.Ascii()))
			if err != nil {
				log.WithFields(log.Fields{
					"model":  model.Name,
					"puzzle": i + 1,
				}).Warnf("request failed: %v", err)
			}
			mr.Results = append(mr.Results, Evaluate(puzzle, response))
			if mr.Results[i].Correct {
				mr.Correct++
			}
		}

		mr.Accuracy = float64(mr.Correct) / float64(mr.Total)
		log.WithFields(log.Fields{
			"model":    model.Name,
			"correct":  mr.Correct,
			"total":    mr.Total,
			"accuracy": fmt.Sprintf("%.1f%%", mr.Accuracy*100),
		}).Info("model finished")
		all[model.Name] = mr
	}

	return all, nil
}

// Evaluate scores a raw model response against the puzzle's simulated answer.
func Evaluate(puzzle *types.Puzzle, response string) PuzzleResult {
	parsed, ok := ParseAnswer(response)
	correct := false
	if ok {
		correct = parsed.Edge == string(puzzle.Answer.Edge) &&
			NormalizePosition(parsed.Position) == strings.ToUpper(puzzle.Answer.Position)
	}
	if !ok {
		parsed = nil
	}
	return PuzzleResult{
		Expected:   puzzle.Answer,
		LLMAnswer:  parsed,
		Correct:    correct,
		PathLength: puzzle.PathLength,
	}
}

// Save writes the results as a timestamped JSON file under dir and returns
// the path.
func (r Results) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results dir: %v", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("multi_provider_%s.json", time.Now().Format("20060102_150405")))
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results: %v", err)
	}
	return path, nil
}

// Summary renders a short per-model accuracy table.
func (r Results) Summary() string {
	var b strings.Builder
	for name, mr := range r {
		fmt.Fprintf(&b, "%s: %d/%d (%.1f%%)\n", name, mr.Correct, mr.Total, mr.Accuracy*100)
	}
	return b.String()
}
