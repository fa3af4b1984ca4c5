package domain

import (
	"fmt"
	"sort"
	"strings"

	apperrors "banditboard/internal/platform/errors"
)

type Trend string

const (
	TrendUpSharp Trend = "up-sharp"
	TrendUp      Trend = "up"
	TrendFlat    Trend = "flat"
	TrendDown    Trend = "down"
)

var trendLabels = map[Trend]string{
	TrendUpSharp: "急上昇",
	TrendUp:      "上昇",
	TrendFlat:    "横ばい",
	TrendDown:    "下降",
}

func (t Trend) Label() string {
	return trendLabels[t]
}

// ComputeTrend compares the metric between the two latest logs by date.
// ok is false with fewer than two logs.
func ComputeTrend(logs []DailyLog, metric string) (Trend, bool) {
	if len(logs) < 2 {
		return "", false
	}
	sorted := make([]DailyLog, len(logs))
	copy(sorted, logs)
	sortLogs(sorted)
	last := sorted[len(sorted)-1].Metrics[metric]
	prev := sorted[len(sorted)-2].Metrics[metric]

	if prev == 0 {
		if last > 0 {
			return TrendUpSharp, true
		}
		return TrendFlat, true
	}
	diff := (last - prev) / prev
	switch {
	case diff > 0.5:
		return TrendUpSharp, true
	case diff > 0.1:
		return TrendUp, true
	case diff < -0.1:
		return TrendDown, true
	default:
		return TrendFlat, true
	}
}

type Segment struct {
	ItemID    string
	IdeaTitle string
	Status    Status
	Resource  int
}

type ResourceSummary struct {
	Total      int
	Overfilled bool
	// Segments holds the allocating items with a non-zero share.
	Segments []Segment
}

func SummarizeResources(items []Item) ResourceSummary {
	var out ResourceSummary
	for _, it := range items {
		if !it.Status.Allocating() {
			continue
		}
		out.Total += it.Resource
		if it.Resource > 0 {
			out.Segments = append(out.Segments, Segment{ItemID: it.ID, IdeaTitle: it.IdeaTitle, Status: it.Status, Resource: it.Resource})
		}
	}
	out.Overfilled = out.Total > MaxResource
	return out
}

const testTitleRunes = 20

// Promotion seeds an experiment entry from a hypothesis and its logs.
type Promotion struct {
	IdeaTitle string
	TestTitle string
	Period    string
	Reach     float64
	Responses float64
	Sales     float64
	Memo      string
}

// Promote sums reach, responses and sales over every log and joins the log
// memos in date order, followed by the learning note.
func Promote(it Item) Promotion {
	p := Promotion{IdeaTitle: it.IdeaTitle, TestTitle: shorten(it.Hypothesis, testTitleRunes), Period: it.Duration}
	var memo strings.Builder
	for _, log := range it.SortedLogs() {
		p.Reach += log.Metrics["reach"]
		p.Responses += log.Metrics["responses"]
		p.Sales += log.Metrics["sales"]
		if strings.TrimSpace(log.Memo) != "" {
			memo.WriteString("[" + log.Date + "] " + log.Memo + "\n")
		}
	}
	if it.Learning != "" {
		memo.WriteString("\n[学びメモ] " + it.Learning)
	}
	p.Memo = strings.TrimSpace(memo.String())
	return p
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

type SortMode string

const (
	SortNewest   SortMode = "newest"
	SortResource SortMode = "resource"
)

const (
	FilterAll    = "all"
	FilterActive = "active"
)

func ParseSortMode(raw string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(raw))); mode {
	case "":
		return SortNewest, nil
	case SortNewest, SortResource:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: unknown sort %q", apperrors.ErrInvalidInput, raw)
	}
}

// ParseFilter accepts "all", "active" or a current status.
func ParseFilter(raw string) (string, error) {
	filter := strings.ToLower(strings.TrimSpace(raw))
	switch filter {
	case "", FilterAll:
		return FilterAll, nil
	case FilterActive:
		return filter, nil
	}
	if _, err := ParseStatus(filter); err != nil {
		return "", err
	}
	return filter, nil
}

// Select filters by "all", "active" or a single status and sorts
// descending by creation time or resource share.
func Select(items []Item, filter string, mode SortMode) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		switch filter {
		case "", FilterAll:
		case FilterActive:
			if !it.Status.Active() {
				continue
			}
		default:
			if string(it.Status) != filter {
				continue
			}
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if mode == SortResource {
			return out[a].Resource > out[b].Resource
		}
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out
}
