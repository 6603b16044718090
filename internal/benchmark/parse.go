package benchmark

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Answer is the exit claim extracted from a model response. Position arrives
// as either a number or a letter string depending on the exit edge.
type Answer struct {
	Edge     string      `json:"edge"`
	Position interface{} `json:"position"`
}

var (
	fencedAnswer = regexp.MustCompile("(?s)```json\\s*(\\{[^}]+\\})\\s*```")
	rawAnswer    = regexp.MustCompile(`\{"edge":\s*"[^"]+",\s*"position":\s*(?:\d+|"[^"]+")\}`)
)

// ParseAnswer extracts the JSON answer from a model response, preferring a
// fenced code block and falling back to a raw inline object.
func ParseAnswer(response string) (*Answer, bool) {
	if m := fencedAnswer.FindStringSubmatch(response); m != nil {
		var a Answer
		if err := json.Unmarshal([]byte(m[1]), &a); err == nil {
			return &a, true
		}
	}
	if m := rawAnswer.FindString(response); m != "" {
		var a Answer
		if err := json.Unmarshal([]byte(m), &a); err == nil {
			return &a, true
		}
	}
	return nil, false
}

// NormalizePosition renders a position claim comparably: numbers lose their
// fraction, letters are uppercased.
func NormalizePosition(pos interface{}) string {
	switch v := pos.(type) {
	case float64:
		return fmt.Sprintf("%d", int(v))
	case int:
		return fmt.Sprintf("%d", v)
	case string:
		return strings.ToUpper(v)
	case nil:
		return ""
	default:
		return strings.ToUpper(fmt.Sprintf("%v", v))
	}
}
