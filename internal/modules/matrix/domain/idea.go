package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "banditboard/internal/platform/errors"
)

const (
	MinScale = 1
	MaxScale = 5
)

type Zone string

const (
	ZoneQuickWins     Zone = "QUICK_WINS"
	ZoneMajorProjects Zone = "MAJOR_PROJECTS"
	ZoneFillIns       Zone = "FILL_INS"
	ZoneIgnore        Zone = "IGNORE"
)

// Zones lists the quadrants in display order.
var Zones = []Zone{ZoneQuickWins, ZoneMajorProjects, ZoneFillIns, ZoneIgnore}

var zoneLabels = map[Zone]string{
	ZoneQuickWins:     "美味しい実験",
	ZoneMajorProjects: "大型案件",
	ZoneFillIns:       "余裕があれば",
	ZoneIgnore:        "やらない候補",
}

func (z Zone) Validate() error {
	if _, ok := zoneLabels[z]; !ok {
		return fmt.Errorf("%w: unknown zone %q", apperrors.ErrInvalidInput, string(z))
	}
	return nil
}

func (z Zone) Label() string {
	if label, ok := zoneLabels[z]; ok {
		return label
	}
	return string(z)
}

type Metrics struct {
	Score int
	Zone  Zone
}

// Classify scores an idea and places it in its quadrant. Impact 3..5 counts
// as high, cost 1..2 as low.
func Classify(impact, cost int) (Metrics, error) {
	if !inScale(impact) || !inScale(cost) {
		return Metrics{}, fmt.Errorf("%w: impact and cost must be within %d..%d (got %d, %d)", apperrors.ErrInvalidInput, MinScale, MaxScale, impact, cost)
	}
	score := impact + (6 - cost)
	var zone Zone
	switch {
	case impact >= 3 && cost <= 2:
		zone = ZoneQuickWins
	case impact >= 3:
		zone = ZoneMajorProjects
	case cost <= 2:
		zone = ZoneFillIns
	default:
		zone = ZoneIgnore
	}
	return Metrics{Score: score, Zone: zone}, nil
}

func inScale(v int) bool {
	return v >= MinScale && v <= MaxScale
}

type Idea struct {
	ID        string
	Title     string
	Memo      string
	Impact    int
	Cost      int
	Score     int
	Zone      Zone
	CreatedAt time.Time
}

func (i Idea) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("%w: id is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}
	if _, err := Classify(i.Impact, i.Cost); err != nil {
		return err
	}
	return nil
}

// Repair recomputes score and zone when the stored zone is missing or
// unrecognised, or when either derived field disagrees with impact/cost.
// repaired reports whether anything changed.
func (i Idea) Repair() (Idea, bool, error) {
	metrics, err := Classify(i.Impact, i.Cost)
	if err != nil {
		return i, false, err
	}
	if i.Zone.Validate() == nil && i.Zone == metrics.Zone && i.Score == metrics.Score {
		return i, false, nil
	}
	i.Score = metrics.Score
	i.Zone = metrics.Zone
	return i, true, nil
}

// SortForDisplay orders by score desc, then newest first. The id breaks the
// remaining ties so the order is total.
func SortForDisplay(ideas []Idea) {
	sort.SliceStable(ideas, func(a, b int) bool {
		x, y := ideas[a], ideas[b]
		if x.Score != y.Score {
			return x.Score > y.Score
		}
		if !x.CreatedAt.Equal(y.CreatedAt) {
			return x.CreatedAt.After(y.CreatedAt)
		}
		return x.ID < y.ID
	})
}
