package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "banditboard/internal/platform/errors"
)

const DefaultConfidence = 50

type Impact string

const (
	ImpactPlusLarge  Impact = "plus-large"
	ImpactPlusSmall  Impact = "plus-small"
	ImpactNeutral    Impact = "neutral"
	ImpactMinusSmall Impact = "minus-small"
	ImpactMinusLarge Impact = "minus-large"
)

// Impacts lists the options from most to least favourable.
var Impacts = []Impact{ImpactPlusLarge, ImpactPlusSmall, ImpactNeutral, ImpactMinusSmall, ImpactMinusLarge}

var impactLabels = map[Impact]string{
	ImpactPlusLarge:  "かなりプラス (++20%)",
	ImpactPlusSmall:  "少しプラス (+5-10%)",
	ImpactNeutral:    "ほぼ変わらない",
	ImpactMinusSmall: "少しマイナス (-5-10%)",
	ImpactMinusLarge: "かなりマイナス (-20%)",
}

func (i Impact) Validate() error {
	if _, ok := impactLabels[i]; !ok {
		return fmt.Errorf("%w: unknown impact %q", apperrors.ErrInvalidInput, string(i))
	}
	return nil
}

// Label is informational only; it never changes the confidence value.
func (i Impact) Label() string {
	if label, ok := impactLabels[i]; ok {
		return label
	}
	return string(i)
}

type Record struct {
	IdeaTitle  string
	Confidence int
	LastImpact Impact
	Memo       string
	UpdatedAt  time.Time
}

func NewRecord(title string, now time.Time) Record {
	return Record{IdeaTitle: title, Confidence: DefaultConfidence, LastImpact: ImpactNeutral, UpdatedAt: now}
}

func ValidateConfidence(v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: confidence must be within 0..100 (got %d)", apperrors.ErrInvalidInput, v)
	}
	return nil
}

// Patch is a partial update; nil fields are left alone.
type Patch struct {
	Confidence *int
	Impact     *Impact
	Memo       *string
}

func (r Record) Apply(patch Patch, now time.Time) (Record, error) {
	if patch.Confidence != nil {
		if err := ValidateConfidence(*patch.Confidence); err != nil {
			return r, err
		}
		r.Confidence = *patch.Confidence
	}
	if patch.Impact != nil {
		if err := patch.Impact.Validate(); err != nil {
			return r, err
		}
		r.LastImpact = *patch.Impact
	}
	if patch.Memo != nil {
		r.Memo = strings.TrimSpace(*patch.Memo)
	}
	r.UpdatedAt = now
	return r, nil
}

// Sync appends a default record for every title not yet tracked, preserving
// order of first appearance. Existing records are never removed.
func Sync(records []Record, titles []string, now time.Time) ([]Record, int) {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.IdeaTitle] = struct{}{}
	}
	created := 0
	for _, title := range titles {
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		records = append(records, NewRecord(title, now))
		created++
	}
	return records, created
}

// RecordJSON is the persisted shape.
type RecordJSON struct {
	IdeaTitle         string `json:"ideaTitle"`
	CurrentConfidence int    `json:"currentConfidence"`
	LastImpact        string `json:"lastImpact"`
	Memo              string `json:"memo"`
	UpdatedAt         int64  `json:"updatedAt"`
}

func ToJSON(r Record) RecordJSON {
	return RecordJSON{
		IdeaTitle:         r.IdeaTitle,
		CurrentConfidence: r.Confidence,
		LastImpact:        string(r.LastImpact),
		Memo:              r.Memo,
		UpdatedAt:         r.UpdatedAt.UnixMilli(),
	}
}

// FromJSON clamps the confidence and resets unknown impacts to neutral.
func FromJSON(j RecordJSON) Record {
	r := Record{
		IdeaTitle:  j.IdeaTitle,
		Confidence: min(max(j.CurrentConfidence, 0), 100),
		LastImpact: Impact(j.LastImpact),
		Memo:       j.Memo,
		UpdatedAt:  time.UnixMilli(j.UpdatedAt).UTC(),
	}
	if r.LastImpact.Validate() != nil {
		r.LastImpact = ImpactNeutral
	}
	return r
}
