package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "banditboard/internal/platform/errors"
)

const (
	MinResource = 0
	MaxResource = 100
)

type DailyLog struct {
	ID        string
	Date      string
	Metrics   map[string]float64
	Memo      string
	CreatedAt time.Time
}

type Item struct {
	ID         string
	IdeaTitle  string
	Hypothesis string
	Duration   string
	StartDate  string
	EndDate    string
	Effort     Effort
	Resource   int
	KPI        string
	Status     Status
	Learning   string
	Logs       []DailyLog
	CreatedAt  time.Time
}

func NewItem(id, ideaTitle, hypothesis string, now time.Time) (Item, error) {
	ideaTitle = strings.TrimSpace(ideaTitle)
	hypothesis = strings.TrimSpace(hypothesis)
	if ideaTitle == "" || hypothesis == "" {
		return Item{}, fmt.Errorf("%w: idea title and hypothesis are required", apperrors.ErrInvalidInput)
	}
	return Item{
		ID:         id,
		IdeaTitle:  ideaTitle,
		Hypothesis: hypothesis,
		Effort:     EffortNormal,
		Status:     StatusNotStarted,
		CreatedAt:  now,
	}, nil
}

func ValidateResource(v int) error {
	if v < MinResource || v > MaxResource {
		return fmt.Errorf("%w: resource allocation must be within %d..%d (got %d)", apperrors.ErrInvalidInput, MinResource, MaxResource, v)
	}
	return nil
}

// Patch is a partial update; nil fields are left alone. Changing either date
// recomputes the duration label.
type Patch struct {
	Hypothesis *string
	Effort     *Effort
	KPI        *string
	Learning   *string
	Status     *Status
	Resource   *int
	StartDate  *string
	EndDate    *string
}

func (it Item) Apply(p Patch) (Item, error) {
	if p.Hypothesis != nil {
		text := strings.TrimSpace(*p.Hypothesis)
		if text == "" {
			return it, fmt.Errorf("%w: hypothesis is required", apperrors.ErrInvalidInput)
		}
		it.Hypothesis = text
	}
	if p.Effort != nil {
		effort, err := ParseEffort(string(*p.Effort))
		if err != nil {
			return it, err
		}
		it.Effort = effort
	}
	if p.KPI != nil {
		it.KPI = strings.TrimSpace(*p.KPI)
	}
	if p.Learning != nil {
		it.Learning = strings.TrimSpace(*p.Learning)
	}
	if p.Status != nil {
		status, err := ParseStatus(string(*p.Status))
		if err != nil {
			return it, err
		}
		it.Status = status
	}
	if p.Resource != nil {
		if err := ValidateResource(*p.Resource); err != nil {
			return it, err
		}
		it.Resource = *p.Resource
	}
	if p.StartDate != nil || p.EndDate != nil {
		start, end := it.StartDate, it.EndDate
		if p.StartDate != nil {
			start = strings.TrimSpace(*p.StartDate)
		}
		if p.EndDate != nil {
			end = strings.TrimSpace(*p.EndDate)
		}
		duration, err := FormatDuration(start, end)
		if err != nil {
			return it, err
		}
		it.StartDate, it.EndDate, it.Duration = start, end, duration
	}
	return it, nil
}

// NewLog builds a daily log for an active item. Metric keys are checked by
// isMetric; a log with neither metrics nor memo is rejected.
func (it Item) NewLog(id, date string, metrics map[string]float64, memo string, now time.Time, isMetric func(string) bool) (DailyLog, error) {
	if !it.Status.Active() {
		return DailyLog{}, fmt.Errorf("%w: %q is %s; only trial, focus or sustain items take logs", apperrors.ErrInvalidInput, it.Hypothesis, it.Status)
	}
	date = strings.TrimSpace(date)
	if date == "" {
		date = now.Format(DateLayout)
	}
	if _, err := ParseDate(date); err != nil {
		return DailyLog{}, err
	}
	clean := make(map[string]float64, len(metrics))
	for key, v := range metrics {
		if !isMetric(key) {
			return DailyLog{}, fmt.Errorf("%w: unknown metric %q", apperrors.ErrInvalidInput, key)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return DailyLog{}, fmt.Errorf("%w: metric %s must be a number", apperrors.ErrInvalidInput, key)
		}
		clean[key] = v
	}
	memo = strings.TrimSpace(memo)
	if len(clean) == 0 && memo == "" {
		return DailyLog{}, fmt.Errorf("%w: a log needs at least one metric or a memo", apperrors.ErrInvalidInput)
	}
	return DailyLog{ID: id, Date: date, Metrics: clean, Memo: memo, CreatedAt: now}, nil
}

// SortedLogs returns the logs by date ascending, keeping entry order for
// the same date.
func (it Item) SortedLogs() []DailyLog {
	logs := make([]DailyLog, len(it.Logs))
	copy(logs, it.Logs)
	sortLogs(logs)
	return logs
}
