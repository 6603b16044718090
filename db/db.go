// Package db stores generated puzzles in a PocketBase collection.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/habibrosyad/pocketbase-go-sdk"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"laserbench/internal/types"
)

// PuzzleRecord mirrors a row in the puzzles collection.
type PuzzleRecord struct {
	ID        string        `json:"id"`
	Puzzle    *types.Puzzle `json:"puzzle"`
	SizeClass string        `json:"sizeClass"`
	Bounces   int           `json:"bounces"`
	Teleports int           `json:"teleports"`
	Created   string        `json:"created"`
	Updated   string        `json:"updated"`
}

var client *pocketbase.Client

// Connect loads credentials from the environment (.env is honored when
// present) and authorizes against the PocketBase host. Re-authentication
// runs every 30 minutes until the process exits.
func Connect() error {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found")
	}

	host := os.Getenv("POCKETBASE_HOST")
	if host == "" {
		return fmt.Errorf("POCKETBASE_HOST not set")
	}
	email := os.Getenv("POCKETBASE_EMAIL")
	password := os.Getenv("POCKETBASE_PASSWORD")

	client = pocketbase.NewClient(host,
		pocketbase.WithSuperuserEmailPassword(email, password))

	if err := client.Authorize(); err != nil {
		return fmt.Errorf("authentication failed: %v", err)
	}

	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		for range ticker.C {
			if err := client.Authorize(); err != nil {
				log.Warnf("re-authentication failed: %v", err)
			} else {
				log.Info("re-authenticated with PocketBase")
			}
		}
	}()
	return nil
}

// UploadPuzzle stores a puzzle under the given record id.
func UploadPuzzle(id string, puzzle *types.Puzzle) (*pocketbase.ResponseCreate, error) {
	if client == nil {
		return nil, fmt.Errorf("db not connected")
	}
	if id == "" || len(id) > 15 {
		return nil, fmt.Errorf("invalid record id %q", id)
	}

	puzzleJSON, err := puzzle.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal puzzle: %v", err)
	}

	exists, err := PuzzleExists(id)
	if err != nil {
		return nil, fmt.Errorf("failed to check if puzzle exists: %v", err)
	}
	if exists {
		return nil, fmt.Errorf("puzzle with id %s already exists", id)
	}

	data := map[string]any{
		"id":        id,
		"puzzle":    string(puzzleJSON),
		"sizeClass": puzzle.SizeClass,
		"bounces":   puzzle.Bounces,
		"teleports": puzzle.Teleports,
	}
	record, err := client.Create("puzzles", data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload puzzle: %v", err)
	}
	return &record, nil
}

// GetPuzzle loads one stored puzzle by record id.
func GetPuzzle(id string) (*PuzzleRecord, error) {
	if client == nil {
		return nil, fmt.Errorf("db not connected")
	}
	record, err := client.One("puzzles", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle %s: %v", id, err)
	}

	puzzle, err := types.FromJSON([]byte(record["puzzle"].(string)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal puzzle data: %v", err)
	}

	rec := &PuzzleRecord{
		ID:        fmt.Sprintf("%v", record["id"]),
		Puzzle:    puzzle,
		SizeClass: fmt.Sprintf("%v", record["sizeClass"]),
		Created:   fmt.Sprintf("%v", record["created"]),
		Updated:   fmt.Sprintf("%v", record["updated"]),
	}
	rec.Bounces = puzzle.Bounces
	rec.Teleports = puzzle.Teleports
	return rec, nil
}

// ListPuzzles pages through stored puzzles. Supported filters: sizeClass,
// minBounces.
func ListPuzzles(page, perPage int, filters map[string]string, sortField, sortOrder string) (*pocketbase.ResponseList[map[string]any], error) {
	if client == nil {
		return nil, fmt.Errorf("db not connected")
	}

	var filterRules []string
	if sizeClass, ok := filters["sizeClass"]; ok {
		filterRules = append(filterRules, fmt.Sprintf("sizeClass = \"%s\"", sizeClass))
	}
	if minBounces, ok := filters["minBounces"]; ok {
		filterRules = append(filterRules, fmt.Sprintf("bounces >= %s", minBounces))
	}

	sort := sortField
	if sortOrder == "desc" {
		sort = "-" + sortField
	}

	params := pocketbase.ParamsList{
		Page:    page,
		Size:    perPage,
		Sort:    sort,
		Filters: strings.Join(filterRules, " && "),
	}
	result, err := client.List("puzzles", params)
	return &result, err
}

// PuzzleExists reports whether a record id is taken.
func PuzzleExists(id string) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("db not connected")
	}
	_, err := client.One("puzzles", id)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
