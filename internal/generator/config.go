package generator

import "fmt"

// Distribution apportions a mirror count across the four behavioral kinds,
// in percent. The four values must sum to 100.
type Distribution struct {
	Normal    int `json:"normal"`
	Degrading int `json:"degrading"`
	Toggle    int `json:"toggle"`
	Flipping  int `json:"flipping"`
}

func (d Distribution) total() int {
	return d.Normal + d.Degrading + d.Toggle + d.Flipping
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SizeConfig describes one puzzle size class. MinBounces is the early-exit
// threshold for the candidate search: the search stops once a candidate
// scores at least twice this value. The thresholds and distributions are
// tuning data, not protocol.
type SizeConfig struct {
	Rows         Range        `json:"rows"`
	Cols         Range        `json:"cols"`
	Mirrors      Range        `json:"mirrors"`
	PortalPairs  int          `json:"portalPairs"`
	Distribution Distribution `json:"distribution"`
	MinBounces   int          `json:"minBounces"`
}

// SizeClasses holds the built-in size classes. Only "extreme" uses the
// stateful mirror kinds and portals.
var SizeClasses = map[string]SizeConfig{
	"small": {
		Rows: Range{5, 6}, Cols: Range{6, 8}, Mirrors: Range{4, 6},
		Distribution: Distribution{Normal: 100}, MinBounces: 3,
	},
	"medium": {
		Rows: Range{7, 9}, Cols: Range{9, 12}, Mirrors: Range{7, 10},
		Distribution: Distribution{Normal: 100}, MinBounces: 5,
	},
	"large": {
		Rows: Range{10, 12}, Cols: Range{13, 16}, Mirrors: Range{18, 24},
		Distribution: Distribution{Normal: 100}, MinBounces: 8,
	},
	"extreme": {
		Rows: Range{15, 20}, Cols: Range{20, 26}, Mirrors: Range{35, 50},
		PortalPairs:  3,
		Distribution: Distribution{Normal: 25, Degrading: 25, Toggle: 25, Flipping: 25},
		MinBounces:   18,
	},
}

// ClassNames lists the size classes in ascending difficulty order.
var ClassNames = []string{"small", "medium", "large", "extreme"}

// ConfigFor looks up a size class by name.
func ConfigFor(sizeClass string) (SizeConfig, error) {
	cfg, ok := SizeClasses[sizeClass]
	if !ok {
		return SizeConfig{}, fmt.Errorf("unknown size class %q", sizeClass)
	}
	return cfg, nil
}
