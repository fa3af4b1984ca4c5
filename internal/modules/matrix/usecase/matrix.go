package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"banditboard/internal/modules/matrix/domain"
	"banditboard/internal/modules/matrix/dto"
	matrixin "banditboard/internal/modules/matrix/port/in"
	"banditboard/internal/modules/matrix/service"
	"banditboard/internal/platform/confirm"
	apperrors "banditboard/internal/platform/errors"
)

type Interactor struct {
	svc     *service.MatrixService
	confirm confirm.Confirmer
}

func NewInteractor(svc *service.MatrixService, confirmer confirm.Confirmer) matrixin.Usecase {
	if confirmer == nil {
		confirmer = confirm.Static{Answer: false}
	}
	return &Interactor{svc: svc, confirm: confirmer}
}

func (i *Interactor) AddIdea(ctx context.Context, input dto.AddIdeaInput) (dto.IdeaOutput, error) {
	idea, err := i.svc.AddIdea(ctx, input.Title, input.Memo, input.Impact, input.Cost)
	if err != nil {
		return dto.IdeaOutput{}, err
	}
	return toOutput(idea), nil
}

func (i *Interactor) DeleteIdea(ctx context.Context, id string) error {
	return i.svc.DeleteIdea(ctx, id)
}

func (i *Interactor) ResetIdeas(ctx context.Context) error {
	ok, err := i.confirm.Confirm(ctx, "Delete every idea?")
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotConfirmed
	}
	return i.svc.ClearIdeas(ctx)
}

func (i *Interactor) ListIdeas(ctx context.Context, input dto.ListInput) ([]dto.IdeaOutput, error) {
	ideas, err := i.svc.Ideas(ctx)
	if err != nil {
		return nil, err
	}
	filters := i.svc.Filters(ctx)
	domain.SortForDisplay(ideas)
	out := make([]dto.IdeaOutput, 0, len(ideas))
	for _, idea := range ideas {
		if !input.All && !filters.Allows(idea.Zone) {
			continue
		}
		out = append(out, toOutput(idea))
	}
	return out, nil
}

func (i *Interactor) Filters(ctx context.Context) ([]dto.FilterOutput, error) {
	return filterOutputs(i.svc.Filters(ctx)), nil
}

func (i *Interactor) ToggleFilter(ctx context.Context, zone string) ([]dto.FilterOutput, error) {
	filters, err := i.svc.ToggleFilter(ctx, domain.Zone(strings.ToUpper(strings.TrimSpace(zone))))
	if err != nil {
		return nil, err
	}
	return filterOutputs(filters), nil
}

func (i *Interactor) Title(ctx context.Context) (string, error) {
	return i.svc.Title(ctx), nil
}

func (i *Interactor) SetTitle(ctx context.Context, title string) error {
	i.svc.SetTitle(ctx, strings.TrimSpace(title))
	return nil
}

func (i *Interactor) Export(ctx context.Context) (dto.ExportOutput, error) {
	ideas, err := i.svc.Ideas(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	doc := domain.Transfer{Items: toRecords(ideas), Title: i.svc.Title(ctx)}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return dto.ExportOutput{}, fmt.Errorf("encode export: %w", err)
	}
	return dto.ExportOutput{Payload: payload, Items: len(ideas)}, nil
}

// PreviewImport renders a unified diff between the stored ideas and the
// incoming document, one idea per line.
func (i *Interactor) PreviewImport(ctx context.Context, input dto.ImportInput) (string, error) {
	parsed, err := domain.ParseTransfer(input.Payload)
	if err != nil {
		return "", err
	}
	ideas, err := i.svc.Ideas(ctx)
	if err != nil {
		return "", err
	}
	incoming := make([]domain.Idea, 0, len(parsed.Items))
	for _, record := range parsed.Items {
		incoming = append(incoming, domain.FromRecord(record))
	}
	diff := difflib.UnifiedDiff{
		A:        previewLines(ideas),
		B:        previewLines(incoming),
		FromFile: "current",
		ToFile:   "import",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("render import diff: %w", err)
	}
	if parsed.HasTitle {
		if current := i.svc.Title(ctx); current != parsed.Title {
			text += fmt.Sprintf("title: %q -> %q\n", current, parsed.Title)
		}
	}
	return text, nil
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	parsed, err := domain.ParseTransfer(input.Payload)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	incoming := make([]domain.Idea, 0, len(parsed.Items))
	for _, record := range parsed.Items {
		idea := domain.FromRecord(record)
		if err := idea.Validate(); err != nil {
			return dto.ImportOutput{}, fmt.Errorf("%w: idea %q: %v", apperrors.ErrInvalidImport, record.Title, err)
		}
		incoming = append(incoming, idea)
	}

	ok, err := i.confirm.Confirm(ctx, fmt.Sprintf("Replace the current ideas with %d imported ideas?", len(incoming)))
	if err != nil {
		return dto.ImportOutput{}, err
	}
	if !ok {
		return dto.ImportOutput{}, apperrors.ErrNotConfirmed
	}

	repaired, err := i.svc.ReplaceIdeas(ctx, incoming)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	out := dto.ImportOutput{Items: len(incoming), Repaired: repaired, Title: i.svc.Title(ctx)}
	if parsed.HasTitle {
		i.svc.SetTitle(ctx, parsed.Title)
		out.Title = parsed.Title
		out.TitleChanged = true
	}
	return out, nil
}

func (i *Interactor) Matrix(ctx context.Context) (dto.MatrixOutput, error) {
	ideas, err := i.svc.Ideas(ctx)
	if err != nil {
		return dto.MatrixOutput{}, err
	}
	filters := i.svc.Filters(ctx)
	domain.SortForDisplay(ideas)
	out := dto.MatrixOutput{Title: i.svc.Title(ctx)}
	for _, idea := range ideas {
		if !filters.Allows(idea.Zone) {
			continue
		}
		row, col := idea.Impact-1, idea.Cost-1
		out.Cells[row][col] = append(out.Cells[row][col], dto.MatrixCell{Title: idea.Title, Zone: string(idea.Zone), Score: idea.Score})
	}
	return out, nil
}

func toOutput(idea domain.Idea) dto.IdeaOutput {
	return dto.IdeaOutput{
		ID:        idea.ID,
		Title:     idea.Title,
		Memo:      idea.Memo,
		Impact:    idea.Impact,
		Cost:      idea.Cost,
		Score:     idea.Score,
		Zone:      string(idea.Zone),
		ZoneLabel: idea.Zone.Label(),
		CreatedAt: idea.CreatedAt,
	}
}

func toRecords(ideas []domain.Idea) []domain.IdeaRecord {
	out := make([]domain.IdeaRecord, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, domain.ToRecord(idea))
	}
	return out
}

func filterOutputs(filters domain.FilterState) []dto.FilterOutput {
	out := make([]dto.FilterOutput, 0, len(domain.Zones))
	for _, zone := range domain.Zones {
		out = append(out, dto.FilterOutput{Zone: string(zone), Label: zone.Label(), Enabled: filters.Allows(zone)})
	}
	return out
}

func previewLines(ideas []domain.Idea) []string {
	lines := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		lines = append(lines, fmt.Sprintf("%s impact=%d cost=%d %s\n", idea.Title, idea.Impact, idea.Cost, idea.ID))
	}
	return lines
}
