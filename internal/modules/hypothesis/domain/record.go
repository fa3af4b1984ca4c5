package domain

import "time"

// DocumentVersion is written into every stored board.
const DocumentVersion = 1

type LogRecord struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Metrics   map[string]float64 `json:"metrics"`
	Memo      string             `json:"memo"`
	CreatedAt int64              `json:"createdAt"`
}

type ItemRecord struct {
	ID                 string      `json:"id"`
	IdeaTitle          string      `json:"ideaTitle"`
	Hypothesis         string      `json:"hypothesis"`
	Duration           string      `json:"duration"`
	StartDate          string      `json:"startDate,omitempty"`
	EndDate            string      `json:"endDate,omitempty"`
	Effort             string      `json:"effort"`
	ResourceAllocation *int        `json:"resourceAllocation,omitempty"`
	KPI                string      `json:"kpi"`
	Status             string      `json:"status"`
	Learning           string      `json:"learning"`
	DailyLogs          []LogRecord `json:"dailyLogs,omitempty"`
	CreatedAt          int64       `json:"createdAt"`
}

// Document is the stored board. Older versions wrote the bare item array.
type Document struct {
	Version int          `json:"version"`
	Items   []ItemRecord `json:"items"`
}

func ToRecord(it Item) ItemRecord {
	resource := it.Resource
	r := ItemRecord{
		ID:                 it.ID,
		IdeaTitle:          it.IdeaTitle,
		Hypothesis:         it.Hypothesis,
		Duration:           it.Duration,
		StartDate:          it.StartDate,
		EndDate:            it.EndDate,
		Effort:             string(it.Effort),
		ResourceAllocation: &resource,
		KPI:                it.KPI,
		Status:             string(it.Status),
		Learning:           it.Learning,
		CreatedAt:          it.CreatedAt.UnixMilli(),
	}
	for _, log := range it.Logs {
		r.DailyLogs = append(r.DailyLogs, LogRecord{
			ID:        log.ID,
			Date:      log.Date,
			Metrics:   log.Metrics,
			Memo:      log.Memo,
			CreatedAt: log.CreatedAt.UnixMilli(),
		})
	}
	return r
}

// FromRecord keeps the stored status as is; see MigrateStatus. Missing or
// out-of-range fields fall back to their defaults.
func FromRecord(r ItemRecord) Item {
	it := Item{
		ID:         r.ID,
		IdeaTitle:  r.IdeaTitle,
		Hypothesis: r.Hypothesis,
		Duration:   r.Duration,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Effort:     Effort(r.Effort),
		KPI:        r.KPI,
		Status:     Status(r.Status),
		Learning:   r.Learning,
		CreatedAt:  time.UnixMilli(r.CreatedAt).UTC(),
	}
	if _, err := ParseEffort(r.Effort); err != nil {
		it.Effort = EffortNormal
	}
	if r.ResourceAllocation != nil {
		it.Resource = min(max(*r.ResourceAllocation, MinResource), MaxResource)
	}
	for _, log := range r.DailyLogs {
		metrics := log.Metrics
		if metrics == nil {
			metrics = map[string]float64{}
		}
		it.Logs = append(it.Logs, DailyLog{
			ID:        log.ID,
			Date:      log.Date,
			Metrics:   metrics,
			Memo:      log.Memo,
			CreatedAt: time.UnixMilli(log.CreatedAt).UTC(),
		})
	}
	return it
}
