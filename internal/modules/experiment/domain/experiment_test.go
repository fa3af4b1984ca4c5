package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "banditboard/internal/platform/errors"
)

func TestRate(t *testing.T) {
	t.Parallel()
	values := map[string]float64{MetricReach: 200, MetricResponses: 25, MetricSales: 3}

	v, ok := Rate(values, MetricResponses, MetricReach)
	if !ok || v != 12.5 || FormatRate(v, ok) != "12.5%" {
		t.Fatalf("unexpected rate %v %v", v, ok)
	}
	v, ok = Rate(values, MetricSales, MetricReach)
	if !ok || v != 1.5 {
		t.Fatalf("unexpected sales rate %v", v)
	}
	v, ok = Rate(map[string]float64{MetricReach: 3, MetricResponses: 1}, MetricResponses, MetricReach)
	if !ok || v != 33.3 {
		t.Fatalf("expected one-decimal rounding, got %v", v)
	}
	v, ok = Rate(map[string]float64{MetricReach: 0, MetricResponses: 5}, MetricResponses, MetricReach)
	if ok || FormatRate(v, ok) != "-" {
		t.Fatalf("zero denominator must be indeterminate")
	}
}

func TestRatesWithoutDenominator(t *testing.T) {
	t.Parallel()
	if got := Rates(map[string]float64{MetricReach: 10}, "", []string{MetricResponses}); got != nil {
		t.Fatalf("expected no rates, got %+v", got)
	}
	got := Rates(map[string]float64{MetricReach: 10, MetricResponses: 5, MetricSales: 1}, MetricReach, []string{MetricResponses, MetricSales})
	want := []RateCell{{NumeratorID: MetricResponses, Value: 50, OK: true}, {NumeratorID: MetricSales, Value: 10, OK: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rates mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectSortsAndFilters(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []Experiment{
		{ID: "a", IdeaTitle: "X", Reach: 100, Responses: 10, Sales: 1, CreatedAt: base},
		{ID: "b", IdeaTitle: "Y", Reach: 0, Responses: 50, Sales: 9, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "c", IdeaTitle: "X", Reach: 10, Responses: 5, Sales: 4, CreatedAt: base.Add(time.Hour)},
	}
	ids := func(list []Experiment) []string {
		var out []string
		for _, e := range list {
			out = append(out, e.ID)
		}
		return out
	}

	cases := []struct {
		idea string
		mode SortMode
		want []string
	}{
		{idea: "all", mode: SortNewest, want: []string{"b", "c", "a"}},
		{idea: "", mode: SortSales, want: []string{"b", "c", "a"}},
		{idea: "all", mode: SortResponseRate, want: []string{"c", "a", "b"}},
		{idea: "X", mode: SortNewest, want: []string{"c", "a"}},
		{idea: "Z", mode: SortNewest, want: nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, ids(Select(items, tc.idea, tc.mode))); diff != "" {
			t.Fatalf("select(%q, %s) mismatch:\n%s", tc.idea, tc.mode, diff)
		}
	}
	if items[0].ID != "a" {
		t.Fatalf("select must not reorder its input")
	}
}

func TestIdeaTitlesFirstSeenOrder(t *testing.T) {
	t.Parallel()
	items := []Experiment{{IdeaTitle: "B"}, {IdeaTitle: "A"}, {IdeaTitle: "B"}}
	if diff := cmp.Diff([]string{"B", "A"}, IdeaTitles(items)); diff != "" {
		t.Fatalf("titles mismatch:\n%s", diff)
	}
}

func TestValidateAndParseSort(t *testing.T) {
	t.Parallel()
	if err := (Experiment{IdeaTitle: "x", TestTitle: " "}).Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected missing test title error, got %v", err)
	}
	if err := (Experiment{IdeaTitle: "x", TestTitle: "y", Reach: -1}).Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected negative metric error, got %v", err)
	}
	if mode, err := ParseSortMode(""); err != nil || mode != SortNewest {
		t.Fatalf("empty sort should default to newest")
	}
	if _, err := ParseSortMode("oldest"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid sort error, got %v", err)
	}
}
