package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	confidenceout "banditboard/internal/modules/confidence/adapter/out"
	"banditboard/internal/modules/confidence/dto"
	confidencein "banditboard/internal/modules/confidence/port/in"
	"banditboard/internal/modules/confidence/service"
	"banditboard/internal/modules/confidence/usecase"
	"banditboard/internal/platform/clock"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/kv"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newInteractor(store kv.Store) confidencein.Usecase {
	return usecase.NewInteractor(service.NewConfidenceService(clock.Fixed{At: now}, confidenceout.NewKVRecordStore(store), nil))
}

func TestSyncUpdateAndReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newInteractor(store)

	created, err := uc.Sync(ctx, dto.SyncInput{Titles: []string{"Newsletter", "Webinar"}})
	if err != nil || created != 2 {
		t.Fatalf("sync: created=%d err=%v", created, err)
	}
	created, _ = uc.Sync(ctx, dto.SyncInput{Titles: []string{"Newsletter"}})
	if created != 0 {
		t.Fatalf("repeated title must not create a record, got %d", created)
	}

	conf := 70
	impact := "plus-small"
	memo := "  good replies  "
	out, err := uc.Update(ctx, dto.UpdateInput{IdeaTitle: "Webinar", Confidence: &conf, Impact: &impact, Memo: &memo})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Confidence != 70 || out.ImpactLabel != "少しプラス (+5-10%)" || out.Memo != "good replies" {
		t.Fatalf("unexpected update result: %+v", out)
	}

	reloaded := newInteractor(store)
	list, err := reloaded.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Confidence != 50 || list[1].Confidence != 70 {
		t.Fatalf("unexpected persisted records: %+v", list)
	}
	if !list[1].UpdatedAt.Equal(now) {
		t.Fatalf("expected updatedAt %v, got %v", now, list[1].UpdatedAt)
	}
}

func TestUpdateErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newInteractor(kv.NewMemoryStore())
	conf := 10
	if _, err := uc.Update(ctx, dto.UpdateInput{IdeaTitle: "ghost", Confidence: &conf}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, _ = uc.Sync(ctx, dto.SyncInput{Titles: []string{"A"}})
	bad := -1
	if _, err := uc.Update(ctx, dto.UpdateInput{IdeaTitle: "A", Confidence: &bad}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := uc.Get(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	got, err := uc.Get(ctx, "A")
	if err != nil || got.Confidence != 50 {
		t.Fatalf("failed update must leave record untouched: %+v %v", got, err)
	}
}
