package domain

import "time"

// Record is the persisted shape of an experiment.
type Record struct {
	ID             string  `json:"id"`
	IdeaTitle      string  `json:"ideaTitle"`
	TestTitle      string  `json:"testTitle"`
	Period         string  `json:"period"`
	Reach          float64 `json:"reach"`
	Responses      float64 `json:"responses"`
	Sales          float64 `json:"sales"`
	Memo           string  `json:"memo"`
	SuccessFactors string  `json:"successFactors"`
	FailureFactors string  `json:"failureFactors"`
	Feedback       string  `json:"feedback"`
	CreatedAt      int64   `json:"createdAt"`
}

func ToRecord(e Experiment) Record {
	return Record{
		ID:             e.ID,
		IdeaTitle:      e.IdeaTitle,
		TestTitle:      e.TestTitle,
		Period:         e.Period,
		Reach:          e.Reach,
		Responses:      e.Responses,
		Sales:          e.Sales,
		Memo:           e.Memo,
		SuccessFactors: e.SuccessFactors,
		FailureFactors: e.FailureFactors,
		Feedback:       e.Feedback,
		CreatedAt:      e.CreatedAt.UnixMilli(),
	}
}

func FromRecord(r Record) Experiment {
	return Experiment{
		ID:             r.ID,
		IdeaTitle:      r.IdeaTitle,
		TestTitle:      r.TestTitle,
		Period:         r.Period,
		Reach:          r.Reach,
		Responses:      r.Responses,
		Sales:          r.Sales,
		Memo:           r.Memo,
		SuccessFactors: r.SuccessFactors,
		FailureFactors: r.FailureFactors,
		Feedback:       r.Feedback,
		CreatedAt:      time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// Sheet is a tabular export: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}
