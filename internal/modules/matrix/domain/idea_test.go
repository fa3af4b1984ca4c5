package domain_test

import (
	"errors"
	"testing"
	"time"

	"banditboard/internal/modules/matrix/domain"
	apperrors "banditboard/internal/platform/errors"
)

func TestClassifyCoversWholeGrid(t *testing.T) {
	t.Parallel()
	counts := map[domain.Zone]int{}
	for impact := 1; impact <= 5; impact++ {
		for cost := 1; cost <= 5; cost++ {
			m, err := domain.Classify(impact, cost)
			if err != nil {
				t.Fatalf("classify(%d,%d): %v", impact, cost, err)
			}
			if m.Score != impact+(6-cost) {
				t.Fatalf("classify(%d,%d): score %d", impact, cost, m.Score)
			}
			if m.Score < 2 || m.Score > 10 {
				t.Fatalf("classify(%d,%d): score %d out of range", impact, cost, m.Score)
			}
			want := expectedZone(impact, cost)
			if m.Zone != want {
				t.Fatalf("classify(%d,%d): expected %s, got %s", impact, cost, want, m.Zone)
			}
			counts[m.Zone]++
		}
	}
	if counts[domain.ZoneQuickWins] != 6 || counts[domain.ZoneMajorProjects] != 9 || counts[domain.ZoneFillIns] != 4 || counts[domain.ZoneIgnore] != 6 {
		t.Fatalf("unexpected partition sizes: %v", counts)
	}
}

func expectedZone(impact, cost int) domain.Zone {
	switch {
	case impact >= 3 && cost <= 2:
		return domain.ZoneQuickWins
	case impact >= 3 && cost >= 3:
		return domain.ZoneMajorProjects
	case impact <= 2 && cost <= 2:
		return domain.ZoneFillIns
	default:
		return domain.ZoneIgnore
	}
}

func TestClassifyExamples(t *testing.T) {
	t.Parallel()
	cases := []struct {
		impact, cost, score int
		zone                domain.Zone
	}{
		{5, 1, 10, domain.ZoneQuickWins},
		{1, 5, 2, domain.ZoneIgnore},
		{3, 3, 6, domain.ZoneMajorProjects},
		{2, 2, 6, domain.ZoneFillIns},
	}
	for _, tc := range cases {
		m, err := domain.Classify(tc.impact, tc.cost)
		if err != nil {
			t.Fatalf("classify: %v", err)
		}
		if m.Score != tc.score || m.Zone != tc.zone {
			t.Fatalf("classify(%d,%d): expected %d/%s, got %d/%s", tc.impact, tc.cost, tc.score, tc.zone, m.Score, m.Zone)
		}
	}
}

func TestClassifyRejectsOutOfRange(t *testing.T) {
	t.Parallel()
	for _, pair := range [][2]int{{0, 3}, {3, 6}, {-1, -1}} {
		if _, err := domain.Classify(pair[0], pair[1]); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("classify(%d,%d) should be invalid input, got %v", pair[0], pair[1], err)
		}
	}
}

func TestRepairReclassifiesUnknownZone(t *testing.T) {
	t.Parallel()
	idea := domain.Idea{ID: "a", Title: "t", Impact: 4, Cost: 1, Score: 3, Zone: "LEGACY"}
	repaired, changed, err := idea.Repair()
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if !changed || repaired.Zone != domain.ZoneQuickWins || repaired.Score != 9 {
		t.Fatalf("expected repaired quick win with score 9, got %+v (changed=%t)", repaired, changed)
	}

	again, changed, err := repaired.Repair()
	if err != nil || changed || again != repaired {
		t.Fatalf("repair must be idempotent, got %+v changed=%t err=%v", again, changed, err)
	}

	if _, _, err := (domain.Idea{Impact: 9, Cost: 1}).Repair(); err == nil {
		t.Fatalf("out-of-range idea cannot be repaired")
	}
}

func TestSortForDisplay(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ideas := []domain.Idea{
		{ID: "low", Score: 4, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "old", Score: 8, CreatedAt: base},
		{ID: "new", Score: 8, CreatedAt: base.Add(time.Hour)},
		{ID: "b-tie", Score: 8, CreatedAt: base},
	}
	domain.SortForDisplay(ideas)
	got := []string{ideas[0].ID, ideas[1].ID, ideas[2].ID, ideas[3].ID}
	want := []string{"new", "b-tie", "old", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestFilterToggle(t *testing.T) {
	t.Parallel()
	f := domain.DefaultFilters()
	for _, z := range domain.Zones {
		if !f.Allows(z) {
			t.Fatalf("default filters should allow %s", z)
		}
	}
	f, err := f.Toggle(domain.ZoneIgnore)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if f.Allows(domain.ZoneIgnore) || !f.Allows(domain.ZoneFillIns) {
		t.Fatalf("toggle should only flip IGNORE: %+v", f)
	}
	if _, err := f.Toggle("NOPE"); err == nil {
		t.Fatalf("unknown zone must be rejected")
	}
}
