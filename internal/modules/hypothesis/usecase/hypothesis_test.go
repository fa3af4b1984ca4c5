package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	hypothesisout "banditboard/internal/modules/hypothesis/adapter/out"
	"banditboard/internal/modules/hypothesis/dto"
	hypothesisin "banditboard/internal/modules/hypothesis/port/in"
	"banditboard/internal/modules/hypothesis/service"
	"banditboard/internal/modules/hypothesis/usecase"
	kpiout "banditboard/internal/modules/kpi/adapter/out"
	kpidto "banditboard/internal/modules/kpi/dto"
	kpiin "banditboard/internal/modules/kpi/port/in"
	kpiservice "banditboard/internal/modules/kpi/service"
	kpiusecase "banditboard/internal/modules/kpi/usecase"
	"banditboard/internal/platform/clock"
	"banditboard/internal/platform/confirm"
	apperrors "banditboard/internal/platform/errors"
	"banditboard/internal/platform/id"
	"banditboard/internal/platform/kv"
)

var start = time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

func newUsecases(store kv.Store, answer bool, logger *zap.Logger) (hypothesisin.Usecase, kpiin.Usecase) {
	kpi := kpiusecase.NewInteractor(kpiservice.NewKPIService(kpiout.NewKVConfigStore(store), logger))
	svc := service.NewHypothesisService(&clock.Step{Start: start, Every: time.Minute}, &id.Sequence{Prefix: "hyp"}, hypothesisout.NewKVItemStore(store), logger)
	return usecase.NewInteractor(svc, kpi, confirm.Static{Answer: answer}, hypothesisout.NewVaultNoteWriter()), kpi
}

func mustAdd(t *testing.T, uc hypothesisin.Usecase, idea, hypothesis string) dto.ItemOutput {
	t.Helper()
	out, err := uc.Add(context.Background(), dto.AddInput{IdeaTitle: idea, Hypothesis: hypothesis})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return out
}

func mustUpdate(t *testing.T, uc hypothesisin.Usecase, input dto.UpdateInput) dto.ItemOutput {
	t.Helper()
	out, err := uc.Update(context.Background(), input)
	if err != nil {
		t.Fatalf("update %s: %v", input.ID, err)
	}
	return out
}

func str(s string) *string { return &s }
func num(n int) *int        { return &n }

func TestResourcesExcludeDroppedAndCompleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := newUsecases(kv.NewMemoryStore(), true, nil)
	a := mustAdd(t, uc, "Ads", "Banner")
	b := mustAdd(t, uc, "Blog", "SEO")
	c := mustAdd(t, uc, "Events", "Meetup")
	mustUpdate(t, uc, dto.UpdateInput{ID: a.ID, Status: str("trial"), Resource: num(40)})
	mustUpdate(t, uc, dto.UpdateInput{ID: b.ID, Status: str("focus"), Resource: num(70)})
	mustUpdate(t, uc, dto.UpdateInput{ID: c.ID, Status: str("drop"), Resource: num(50)})

	res, err := uc.Resources(ctx)
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	if res.Total != 110 || !res.Overfilled || len(res.Segments) != 2 {
		t.Fatalf("unexpected resources: %+v", res)
	}

	if _, err := uc.Update(ctx, dto.UpdateInput{ID: a.ID, Resource: num(150)}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected range error, got %v", err)
	}
	mustUpdate(t, uc, dto.UpdateInput{ID: b.ID, Status: str("completed")})
	res, _ = uc.Resources(ctx)
	if res.Total != 40 || res.Overfilled {
		t.Fatalf("completed items must leave the total: %+v", res)
	}

	active, _ := uc.List(ctx, dto.ListInput{Status: "active", Sort: "resource"})
	if len(active) != 1 || active[0].ID != a.ID {
		t.Fatalf("unexpected active list: %+v", active)
	}
	all, _ := uc.List(ctx, dto.ListInput{})
	if len(all) != 3 || all[0].ID != c.ID {
		t.Fatalf("newest item should be first: %+v", all)
	}
}

func TestLogsTrendAndPromote(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, kpi := newUsecases(kv.NewMemoryStore(), true, nil)
	item := mustAdd(t, uc, "Newsletter", "Weekly issue lifts repeat orders")

	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Memo: "too early"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("not-started items take no logs, got %v", err)
	}
	mustUpdate(t, uc, dto.UpdateInput{ID: item.ID, Status: str("trial"), Learning: str("subject lines matter"), StartDate: str("2024-04-01"), EndDate: str("2024-04-07")})

	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Date: "2024-04-02", Metrics: map[string]float64{"reach": 100, "responses": 3, "sales": 20}, Memo: "first send"}); err != nil {
		t.Fatalf("log 1: %v", err)
	}
	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Date: "2024-04-01", Metrics: map[string]float64{"Reach": 50, "responses": 2}}); err != nil {
		t.Fatalf("log 2: %v", err)
	}
	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Metrics: map[string]float64{"clicks": 1}}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown metric must be rejected, got %v", err)
	}

	trend, err := uc.Trend(ctx, item.ID)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if !trend.OK || trend.Metric != "responses" || trend.Trend != "up" {
		t.Fatalf("expected responses 2 -> 3 to be up-sharp or up, got %+v", trend)
	}

	if _, err := kpi.Update(ctx, kpidto.UpdateInput{ID: "sales", Role: str("numerator")}); err != nil {
		t.Fatalf("kpi: %v", err)
	}
	if _, err := kpi.Update(ctx, kpidto.UpdateInput{ID: "responses", Role: str("none")}); err != nil {
		t.Fatalf("kpi: %v", err)
	}
	trend, _ = uc.Trend(ctx, item.ID)
	if trend.Metric != "sales" || trend.Trend != "up-sharp" {
		t.Fatalf("expected sales 0 -> 20 to be up-sharp, got %+v", trend)
	}

	seed, err := uc.Promote(ctx, item.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if seed.Reach != 150 || seed.Responses != 5 || seed.Sales != 20 {
		t.Fatalf("unexpected aggregation: %+v", seed)
	}
	if seed.Memo != "[2024-04-02] first send\n\n[学びメモ] subject lines matter" {
		t.Fatalf("unexpected memo: %q", seed.Memo)
	}
	if seed.TestTitle != "Weekly issue lifts r..." || seed.Period != "2024/04/01～2024/04/07 (7日間)" {
		t.Fatalf("unexpected seed: %+v", seed)
	}
	after, _ := uc.Get(ctx, item.ID)
	if len(after.Logs) != 2 || after.Status != "trial" {
		t.Fatalf("promote must leave the item unchanged: %+v", after)
	}
}

func TestLegacyBoardIsMigratedAndRewritten(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	legacy := `[
		{"id":"1","ideaTitle":"A","hypothesis":"h1","duration":"","effort":"normal","kpi":"","status":"running","learning":"","createdAt":1},
		{"id":"2","ideaTitle":"B","hypothesis":"h2","duration":"","effort":"huge","resourceAllocation":20,"kpi":"","status":"done","learning":"","createdAt":2},
		{"id":"3","ideaTitle":"C","hypothesis":"h3","duration":"","effort":"tiny","kpi":"","status":"someday","learning":"","createdAt":3}
	]`
	_ = store.Set(ctx, kv.KeyHypotheses, []byte(legacy))
	uc, _ := newUsecases(store, true, nil)

	items, err := uc.List(ctx, dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	statuses := map[string]string{}
	for _, it := range items {
		statuses[it.ID] = it.Status
	}
	if statuses["1"] != "trial" || statuses["2"] != "completed" || statuses["3"] != "someday" {
		t.Fatalf("unexpected migration: %v", statuses)
	}

	raw, _, _ := store.Get(ctx, kv.KeyHypotheses)
	var doc struct {
		Version int `json:"version"`
		Items   []struct {
			Status string `json:"status"`
			Effort string `json:"effort"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("stored board is not a versioned document: %v", err)
	}
	if doc.Version != 1 || len(doc.Items) != 3 || doc.Items[0].Status != "trial" || doc.Items[1].Effort != "normal" {
		t.Fatalf("unexpected rewritten board: %+v", doc)
	}

	again, _ := newUsecases(store, true, nil)
	reloaded, _ := again.List(ctx, dto.ListInput{})
	if len(reloaded) != 3 {
		t.Fatalf("migrated board must reload, got %d", len(reloaded))
	}
}

func TestDeleteAndResetNeedConfirmation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc, _ := newUsecases(store, true, nil)
	first := mustAdd(t, uc, "A", "one")
	mustAdd(t, uc, "B", "two")

	declined, _ := newUsecases(store, false, nil)
	if err := declined.Delete(ctx, first.ID); !errors.Is(err, apperrors.ErrNotConfirmed) {
		t.Fatalf("expected not confirmed, got %v", err)
	}
	if err := declined.Reset(ctx); !errors.Is(err, apperrors.ErrNotConfirmed) {
		t.Fatalf("expected not confirmed, got %v", err)
	}
	if err := uc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Delete(ctx, first.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := uc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok, _ := store.Get(ctx, kv.KeyHypotheses); ok {
		t.Fatalf("reset must remove the stored board")
	}
}

func TestExportNoteKeepsUserText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	uc, _ := newUsecases(kv.NewMemoryStore(), true, nil)
	item := mustAdd(t, uc, "Webinar", "Live demo converts")
	mustUpdate(t, uc, dto.UpdateInput{ID: item.ID, Status: str("focus")})
	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Date: "2024-04-03", Metrics: map[string]float64{"reach": 40}, Memo: "dry run"}); err != nil {
		t.Fatalf("log: %v", err)
	}

	out, err := uc.ExportNote(ctx, dto.NoteInput{ItemID: item.ID, Dir: dir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	content, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	text := string(content)
	for _, want := range []string{"schema_version: 1", "idea: Webinar", "status: focus", "| 2024-04-03 | 40 |  |  | dry run |", "## Notes"} {
		if !strings.Contains(text, want) {
			t.Fatalf("note missing %q:\n%s", want, text)
		}
	}

	edited := strings.Replace(text, "## Notes\n", "## Notes\n\nmy own thoughts\n", 1)
	if err := os.WriteFile(out.Path, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit note: %v", err)
	}
	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Date: "2024-04-04", Memo: "real run"}); err != nil {
		t.Fatalf("log: %v", err)
	}
	again, err := uc.ExportNote(ctx, dto.NoteInput{ItemID: item.ID, Dir: dir})
	if err != nil || again.Path != out.Path {
		t.Fatalf("re-export: %v (%s vs %s)", err, again.Path, out.Path)
	}
	content, _ = os.ReadFile(out.Path)
	text = string(content)
	if !strings.Contains(text, "my own thoughts") || !strings.Contains(text, "real run") || strings.Count(text, "banditboard:logs:start") != 1 {
		t.Fatalf("re-export lost user text or duplicated the block:\n%s", text)
	}
}

func TestWriteFailureIsLogged(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	store.FailWrites = errors.New("disk full")
	core, logs := observer.New(zapcore.ErrorLevel)
	uc, _ := newUsecases(store, true, zap.New(core))

	out := mustAdd(t, uc, "A", "kept anyway")
	got, err := uc.Get(context.Background(), out.ID)
	if err != nil || got.Hypothesis != "kept anyway" {
		t.Fatalf("in-memory state must hold the item: %+v %v", got, err)
	}
	if logs.FilterMessage("persist hypotheses").Len() != 1 {
		t.Fatalf("expected logged write failure, got %v", logs.All())
	}
}

type metricGate struct {
	kpiin.Usecase
	asked []string
	err   error
}

func (g *metricGate) IsMetric(ctx context.Context, id string) (bool, error) {
	g.asked = append(g.asked, id)
	if g.err != nil {
		return false, g.err
	}
	return g.Usecase.IsMetric(ctx, id)
}

func TestAddLogAsksKPIPortForMetricKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	_, kpi := newUsecases(store, true, nil)
	gate := &metricGate{Usecase: kpi}
	svc := service.NewHypothesisService(&clock.Step{Start: start, Every: time.Minute}, &id.Sequence{Prefix: "hyp"}, hypothesisout.NewKVItemStore(store), nil)
	uc := usecase.NewInteractor(svc, gate, confirm.Static{Answer: true}, hypothesisout.NewVaultNoteWriter())

	item := mustAdd(t, uc, "Flyer", "Flyers bring walk-ins")
	mustUpdate(t, uc, dto.UpdateInput{ID: item.ID, Status: str("trial")})

	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Metrics: map[string]float64{" Reach ": 10}}); err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(gate.asked) != 1 || gate.asked[0] != "reach" {
		t.Fatalf("keys should be normalised before the lookup: %v", gate.asked)
	}

	gate.err = errors.New("kpi store offline")
	if _, err := uc.AddLog(ctx, dto.LogInput{ItemID: item.ID, Metrics: map[string]float64{"reach": 1}}); !errors.Is(err, gate.err) {
		t.Fatalf("lookup failure should surface, got %v", err)
	}
}
