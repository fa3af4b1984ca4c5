package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	apperrors "banditboard/internal/platform/errors"
)

// IdeaRecord is the persisted and exported shape of an idea.
type IdeaRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Memo      string `json:"memo"`
	Impact    int    `json:"impact"`
	Cost      int    `json:"cost"`
	Score     int    `json:"score"`
	Zone      string `json:"zone"`
	CreatedAt int64  `json:"createdAt"`
}

func ToRecord(i Idea) IdeaRecord {
	return IdeaRecord{
		ID:        i.ID,
		Title:     i.Title,
		Memo:      i.Memo,
		Impact:    i.Impact,
		Cost:      i.Cost,
		Score:     i.Score,
		Zone:      string(i.Zone),
		CreatedAt: i.CreatedAt.UnixMilli(),
	}
}

func FromRecord(r IdeaRecord) Idea {
	return Idea{
		ID:        r.ID,
		Title:     r.Title,
		Memo:      r.Memo,
		Impact:    r.Impact,
		Cost:      r.Cost,
		Score:     r.Score,
		Zone:      Zone(r.Zone),
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// Transfer is the export/import document.
type Transfer struct {
	Items []IdeaRecord `json:"items"`
	Title string       `json:"title"`
}

// ParsedTransfer is an import document after shape detection. HasTitle is
// false for the legacy bare-array form.
type ParsedTransfer struct {
	Items    []IdeaRecord
	Title    string
	HasTitle bool
}

// ParseTransfer accepts {items:[...], title} or a bare array of ideas.
func ParseTransfer(payload []byte) (ParsedTransfer, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return ParsedTransfer{}, fmt.Errorf("%w: empty document", apperrors.ErrInvalidImport)
	}
	if trimmed[0] == '[' {
		var items []IdeaRecord
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ParsedTransfer{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidImport, err)
		}
		return ParsedTransfer{Items: items}, nil
	}

	var doc struct {
		Items *json.RawMessage `json:"items"`
		Title string           `json:"title"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return ParsedTransfer{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidImport, err)
	}
	if doc.Items == nil {
		return ParsedTransfer{}, fmt.Errorf("%w: missing items array", apperrors.ErrInvalidImport)
	}
	var items []IdeaRecord
	if err := json.Unmarshal(*doc.Items, &items); err != nil || items == nil {
		return ParsedTransfer{}, fmt.Errorf("%w: items must be an array", apperrors.ErrInvalidImport)
	}
	return ParsedTransfer{Items: items, Title: doc.Title, HasTitle: doc.Title != ""}, nil
}
