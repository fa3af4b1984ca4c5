package dto

import "time"

type AddInput struct {
	IdeaTitle  string
	Hypothesis string
}

// UpdateInput carries a partial update; nil fields are left alone.
type UpdateInput struct {
	ID         string
	Hypothesis *string
	Effort     *string
	KPI        *string
	Learning   *string
	Status     *string
	Resource   *int
	StartDate  *string
	EndDate    *string
}

type LogInput struct {
	ItemID string
	// Date is YYYY-MM-DD; empty means today.
	Date    string
	Metrics map[string]float64
	Memo    string
}

type ListInput struct {
	// Status is "all", "active" or a single status.
	Status string
	Sort   string
}

type LogOutput struct {
	ID        string
	Date      string
	Metrics   map[string]float64
	Memo      string
	CreatedAt time.Time
}

type ItemOutput struct {
	ID          string
	IdeaTitle   string
	Hypothesis  string
	Duration    string
	StartDate   string
	EndDate     string
	Effort      string
	EffortLabel string
	Resource    int
	KPI         string
	Status      string
	StatusLabel string
	Learning    string
	Logs        []LogOutput
	CreatedAt   time.Time
}

type TrendOutput struct {
	ItemID string
	Metric string
	// OK is false when fewer than two logs exist.
	OK    bool
	Trend string
	Label string
}

type SegmentOutput struct {
	ItemID    string
	IdeaTitle string
	Status    string
	Resource  int
}

type ResourcesOutput struct {
	Total      int
	Overfilled bool
	Segments   []SegmentOutput
}

type PromotionOutput struct {
	IdeaTitle string
	TestTitle string
	Period    string
	Reach     float64
	Responses float64
	Sales     float64
	Memo      string
}

type NoteInput struct {
	ItemID string
	Dir    string
}

type NoteOutput struct {
	Path string
}
