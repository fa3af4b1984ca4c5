package dto

import "time"

type AddInput struct {
	IdeaTitle string
	TestTitle string
	Period    string
	Reach     float64
	Responses float64
	Sales     float64
	Memo      string
}

type UpdateInput struct {
	ID             string
	Period         *string
	Memo           *string
	SuccessFactors *string
	FailureFactors *string
	Feedback       *string
}

type ListInput struct {
	// IdeaTitle filters by exact title; "" or "all" lists everything.
	IdeaTitle string
	Sort      string
}

type RateOutput struct {
	Metric  string
	Label   string
	Value   float64
	OK      bool
	Display string
}

type ExperimentOutput struct {
	ID             string
	IdeaTitle      string
	TestTitle      string
	Period         string
	Reach          float64
	Responses      float64
	Sales          float64
	Memo           string
	SuccessFactors string
	FailureFactors string
	Feedback       string
	CreatedAt      time.Time
	Rates          []RateOutput
}

type AddOutput struct {
	Experiment ExperimentOutput
	// NewlyTracked counts confidence records created by this change.
	NewlyTracked int
}

type ExportInput struct {
	Path string
	ListInput
}

type ExportOutput struct {
	Path string
	Rows int
}
