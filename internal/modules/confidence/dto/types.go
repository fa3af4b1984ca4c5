package dto

import "time"

type RecordOutput struct {
	IdeaTitle   string
	Confidence  int
	Impact      string
	ImpactLabel string
	Memo        string
	UpdatedAt   time.Time
}

type SyncInput struct {
	Titles []string
}

type UpdateInput struct {
	IdeaTitle  string
	Confidence *int
	Impact     *string
	Memo       *string
}
