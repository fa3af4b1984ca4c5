package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	apperrors "banditboard/internal/platform/errors"
)

// Metric ids of the three experiment counters.
const (
	MetricReach     = "reach"
	MetricResponses = "responses"
	MetricSales     = "sales"
)

type Experiment struct {
	ID             string
	IdeaTitle      string
	TestTitle      string
	Period         string
	Reach          float64
	Responses      float64
	Sales          float64
	Memo           string
	SuccessFactors string
	FailureFactors string
	Feedback       string
	CreatedAt      time.Time
}

// Values exposes the counters by metric id.
func (e Experiment) Values() map[string]float64 {
	return map[string]float64{
		MetricReach:     e.Reach,
		MetricResponses: e.Responses,
		MetricSales:     e.Sales,
	}
}

func (e Experiment) Validate() error {
	if strings.TrimSpace(e.IdeaTitle) == "" || strings.TrimSpace(e.TestTitle) == "" {
		return fmt.Errorf("%w: idea title and test title are required", apperrors.ErrInvalidInput)
	}
	for name, v := range e.Values() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", apperrors.ErrInvalidInput, name)
		}
	}
	return nil
}

// Patch is a partial update; nil fields are left alone.
type Patch struct {
	Period         *string
	Memo           *string
	SuccessFactors *string
	FailureFactors *string
	Feedback       *string
}

func (e Experiment) Apply(p Patch) Experiment {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&e.Period, p.Period)
	set(&e.Memo, p.Memo)
	set(&e.SuccessFactors, p.SuccessFactors)
	set(&e.FailureFactors, p.FailureFactors)
	set(&e.Feedback, p.Feedback)
	return e
}

// Rate is numerator/denominator as a percentage rounded to one decimal.
// ok is false when the denominator is zero.
func Rate(values map[string]float64, numeratorID, denominatorID string) (float64, bool) {
	den := values[denominatorID]
	if den == 0 {
		return 0, false
	}
	return math.Round(values[numeratorID]/den*1000) / 10, true
}

// FormatRate renders "12.5%" or "-" for an indeterminate rate.
func FormatRate(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v)
}

type RateCell struct {
	NumeratorID string
	Value       float64
	OK          bool
}

// Rates computes one cell per numerator. With no denominator configured
// there is nothing to divide by and the result is empty.
func Rates(values map[string]float64, denominatorID string, numeratorIDs []string) []RateCell {
	if denominatorID == "" {
		return nil
	}
	out := make([]RateCell, 0, len(numeratorIDs))
	for _, num := range numeratorIDs {
		v, ok := Rate(values, num, denominatorID)
		out = append(out, RateCell{NumeratorID: num, Value: v, OK: ok})
	}
	return out
}

type SortMode string

const (
	SortNewest       SortMode = "newest"
	SortSales        SortMode = "sales"
	SortResponseRate SortMode = "response_rate"
)

func ParseSortMode(raw string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return SortNewest, nil
	case SortNewest, SortSales, SortResponseRate:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: unknown sort %q", apperrors.ErrInvalidInput, raw)
	}
}

// responseRate is the sort key of SortResponseRate; reach 0 sorts as 0.
func responseRate(e Experiment) float64 {
	if e.Reach <= 0 {
		return 0
	}
	return e.Responses / e.Reach
}

// Select filters by exact idea title ("" or "all" keeps everything) and
// sorts descending by the chosen key. The input is not modified.
func Select(items []Experiment, ideaTitle string, mode SortMode) []Experiment {
	out := make([]Experiment, 0, len(items))
	for _, e := range items {
		if ideaTitle != "" && ideaTitle != "all" && e.IdeaTitle != ideaTitle {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(a, b int) bool {
		switch mode {
		case SortSales:
			return out[a].Sales > out[b].Sales
		case SortResponseRate:
			return responseRate(out[a]) > responseRate(out[b])
		default:
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
	})
	return out
}

// IdeaTitles lists distinct idea titles in order of first appearance.
func IdeaTitles(items []Experiment) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, e := range items {
		if _, ok := seen[e.IdeaTitle]; ok {
			continue
		}
		seen[e.IdeaTitle] = struct{}{}
		out = append(out, e.IdeaTitle)
	}
	return out
}
