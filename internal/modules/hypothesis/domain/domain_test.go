package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "banditboard/internal/platform/errors"
)

func TestMigrateStatusIsIdempotent(t *testing.T) {
	t.Parallel()
	cases := map[Status]Status{
		"running":        StatusTrial,
		"done":           StatusCompleted,
		StatusFocus:      StatusFocus,
		StatusNotStarted: StatusNotStarted,
		"paused":         "paused",
		"":               "",
	}
	for in, want := range cases {
		once, _ := MigrateStatus(in)
		twice, changed := MigrateStatus(once)
		if once != want || twice != want || changed {
			t.Fatalf("migrate(%q) = %q then %q (changed=%v), want %q", in, once, twice, changed, want)
		}
	}
}

func TestUnknownStatusIsKeptAsStored(t *testing.T) {
	t.Parallel()
	got, changed := MigrateStatus("someday")
	if got != "someday" || changed {
		t.Fatalf("unknown status rewritten to %q (changed=%v)", got, changed)
	}
	if got.Label() != "someday" || got.Active() || !got.Allocating() {
		t.Fatalf("unexpected behaviour for unknown status %q", got)
	}
	items := []Item{{ID: "a", Status: "someday"}, {ID: "b", Status: StatusTrial}}
	if sel := Select(items, FilterActive, SortNewest); len(sel) != 1 || sel[0].ID != "b" {
		t.Fatalf("unknown status must not count as active: %+v", sel)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	cases := []struct {
		start, end, want string
	}{
		{"2024-01-01", "2024-01-07", "2024/01/01～2024/01/07 (7日間)"},
		{"2024-03-05", "2024-03-05", "2024/03/05～2024/03/05 (1日間)"},
		{"2024-01-02", "2024-01-01", "2024/01/02～2024/01/01"},
		{"2024-01-01", "", "2024/01/01"},
		{"", "2024-12-31", "2024/12/31"},
		{"", "", ""},
	}
	for _, tc := range cases {
		got, err := FormatDuration(tc.start, tc.end)
		if err != nil {
			t.Fatalf("duration(%q, %q): %v", tc.start, tc.end, err)
		}
		if got != tc.want {
			t.Fatalf("duration(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
	if _, err := FormatDuration("2024/01/01", ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid date error, got %v", err)
	}
}

func logsWith(values ...float64) []DailyLog {
	out := make([]DailyLog, 0, len(values))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Stored newest first to check the date sort.
	for i := len(values) - 1; i >= 0; i-- {
		out = append(out, DailyLog{Date: base.AddDate(0, 0, i).Format(DateLayout), Metrics: map[string]float64{"responses": values[i]}})
	}
	return out
}

func TestComputeTrend(t *testing.T) {
	t.Parallel()
	cases := []struct {
		prev, last float64
		want       Trend
	}{
		{10, 20, TrendUpSharp},
		{10, 10, TrendFlat},
		{10, 7, TrendDown},
		{0, 5, TrendUpSharp},
		{0, 0, TrendFlat},
		{10, 16, TrendUpSharp},
		{10, 12, TrendUp},
		{10, 11, TrendFlat},
		{10, 9, TrendFlat},
		{10, 8, TrendDown},
	}
	for _, tc := range cases {
		got, ok := ComputeTrend(logsWith(3, tc.prev, tc.last), "responses")
		if !ok || got != tc.want {
			t.Fatalf("trend %v -> %v = %q, want %q", tc.prev, tc.last, got, tc.want)
		}
	}
	if _, ok := ComputeTrend(logsWith(4), "responses"); ok {
		t.Fatalf("a single log has no trend")
	}
	got, _ := ComputeTrend(logsWith(4, 9), "sales")
	if got != TrendFlat {
		t.Fatalf("missing metric counts as zero, got %q", got)
	}
}

func TestSummarizeResources(t *testing.T) {
	t.Parallel()
	items := []Item{
		{ID: "a", Status: StatusTrial, Resource: 40},
		{ID: "b", Status: StatusFocus, Resource: 70},
		{ID: "c", Status: StatusDrop, Resource: 50},
		{ID: "d", Status: StatusCompleted, Resource: 30},
		{ID: "e", Status: StatusNotStarted, Resource: 0},
	}
	got := SummarizeResources(items)
	if got.Total != 110 || !got.Overfilled {
		t.Fatalf("expected 110 overfilled, got %+v", got)
	}
	if len(got.Segments) != 2 || got.Segments[0].ItemID != "a" || got.Segments[1].ItemID != "b" {
		t.Fatalf("unexpected segments: %+v", got.Segments)
	}
	if SummarizeResources(items[:1]).Overfilled {
		t.Fatalf("40 must not be overfilled")
	}
}

func TestPromote(t *testing.T) {
	t.Parallel()
	it := Item{
		IdeaTitle:  "Newsletter",
		Hypothesis: "週一回のニュースレターで既存顧客の再購入が増える",
		Duration:   "2024/01/01～2024/01/07 (7日間)",
		Learning:   "件名が大事",
		Logs: []DailyLog{
			{Date: "2024-01-03", Metrics: map[string]float64{"reach": 50, "responses": 2}, Memo: "second send"},
			{Date: "2024-01-01", Metrics: map[string]float64{"reach": 100, "responses": 3, "sales": 20}, Memo: "first send"},
			{Date: "2024-01-02", Metrics: map[string]float64{}, Memo: "  "},
		},
	}
	want := Promotion{
		IdeaTitle: "Newsletter",
		TestTitle: "週一回のニュースレターで既存顧客の再購入...",
		Period:    "2024/01/01～2024/01/07 (7日間)",
		Reach:     150,
		Responses: 5,
		Sales:     20,
		Memo:      "[2024-01-01] first send\n[2024-01-03] second send\n\n[学びメモ] 件名が大事",
	}
	if diff := cmp.Diff(want, Promote(it)); diff != "" {
		t.Fatalf("promotion mismatch (-want +got):\n%s", diff)
	}
	if it.Logs[0].Date != "2024-01-03" {
		t.Fatalf("promote must not reorder the item logs")
	}

	totals := Promote(Item{Logs: []DailyLog{
		{Date: "2024-02-01", Metrics: map[string]float64{"reach": 100, "responses": 5}},
		{Date: "2024-02-02", Metrics: map[string]float64{"reach": 50, "responses": 0, "sales": 20}},
	}})
	if totals.Reach != 150 || totals.Responses != 5 || totals.Sales != 20 {
		t.Fatalf("promotion totals = %v/%v/%v, want 150/5/20", totals.Reach, totals.Responses, totals.Sales)
	}

	short := Promote(Item{Hypothesis: "short one"})
	if short.TestTitle != "short one" || short.Memo != "" {
		t.Fatalf("unexpected short promotion: %+v", short)
	}
}

func TestNewLogRules(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)
	isMetric := func(k string) bool { return k == "reach" || k == "responses" || k == "sales" }
	active := Item{Status: StatusFocus}

	log, err := active.NewLog("l1", "", map[string]float64{"reach": 10}, " ok ", now, isMetric)
	if err != nil {
		t.Fatalf("new log: %v", err)
	}
	if log.Date != "2024-02-10" || log.Memo != "ok" {
		t.Fatalf("unexpected log: %+v", log)
	}

	rejects := []struct {
		item    Item
		date    string
		metrics map[string]float64
		memo    string
	}{
		{item: Item{Status: StatusNotStarted}, memo: "x"},
		{item: Item{Status: StatusDrop}, memo: "x"},
		{item: active, date: "10/02/2024", memo: "x"},
		{item: active, metrics: map[string]float64{"clicks": 1}},
		{item: active, memo: "   "},
	}
	for _, tc := range rejects {
		if _, err := tc.item.NewLog("l", tc.date, tc.metrics, tc.memo, now, isMetric); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected rejection for %+v, got %v", tc, err)
		}
	}
}

func TestApplyPatch(t *testing.T) {
	t.Parallel()
	it, err := NewItem("h1", " Ads ", " Banner beats text ", time.Unix(0, 0))
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	if it.Status != StatusNotStarted || it.Effort != EffortNormal || it.Resource != 0 || it.IdeaTitle != "Ads" {
		t.Fatalf("unexpected defaults: %+v", it)
	}

	over := 101
	if _, err := it.Apply(Patch{Resource: &over}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected resource range error, got %v", err)
	}
	legacy := Status("running")
	if _, err := it.Apply(Patch{Status: &legacy}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("legacy statuses cannot be assigned, got %v", err)
	}

	start, end := "2024-01-01", "2024-01-07"
	share := 30
	status := StatusTrial
	updated, err := it.Apply(Patch{StartDate: &start, EndDate: &end, Resource: &share, Status: &status})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if updated.Duration != "2024/01/01～2024/01/07 (7日間)" || updated.Resource != 30 || updated.Status != StatusTrial {
		t.Fatalf("unexpected update: %+v", updated)
	}

	cleared := ""
	updated, _ = updated.Apply(Patch{EndDate: &cleared})
	if updated.Duration != "2024/01/01" {
		t.Fatalf("expected start-only duration, got %q", updated.Duration)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []Item{
		{ID: "a", Status: StatusTrial, Resource: 10, CreatedAt: base},
		{ID: "b", Status: StatusDrop, Resource: 60, CreatedAt: base.Add(time.Hour)},
		{ID: "c", Status: StatusSustain, Resource: 20, CreatedAt: base.Add(2 * time.Hour)},
	}
	ids := func(list []Item) []string {
		var out []string
		for _, it := range list {
			out = append(out, it.ID)
		}
		return out
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, ids(Select(items, FilterAll, SortNewest))); diff != "" {
		t.Fatalf("newest mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "a"}, ids(Select(items, FilterActive, SortResource))); diff != "" {
		t.Fatalf("active by resource mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, ids(Select(items, "drop", SortNewest))); diff != "" {
		t.Fatalf("status filter mismatch:\n%s", diff)
	}
	if _, err := ParseFilter("archived"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid filter, got %v", err)
	}
}
