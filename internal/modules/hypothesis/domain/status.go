package domain

import (
	"fmt"
	"strings"

	apperrors "banditboard/internal/platform/errors"
)

type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusTrial      Status = "trial"
	StatusFocus      Status = "focus"
	StatusSustain    Status = "sustain"
	StatusDrop       Status = "drop"
	StatusCompleted  Status = "completed"

	// Legacy statuses only appear in stored data and are migrated on load.
	statusLegacyRunning Status = "running"
	statusLegacyDone    Status = "done"
)

// Statuses lists the current scheme in lifecycle order.
var Statuses = []Status{StatusNotStarted, StatusTrial, StatusFocus, StatusSustain, StatusDrop, StatusCompleted}

var statusLabels = map[Status]string{
	StatusNotStarted: "未着手",
	StatusTrial:      "Trial (試行)",
	StatusFocus:      "Focus (注力)",
	StatusSustain:    "Sustain (維持)",
	StatusDrop:       "Drop (撤退)",
	StatusCompleted:  "完了",
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := statusLabels[s]; !ok {
		return "", fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, raw)
	}
	return s, nil
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Active statuses accept daily logs.
func (s Status) Active() bool {
	return s == StatusTrial || s == StatusFocus || s == StatusSustain
}

// Allocating statuses count toward the resource total.
func (s Status) Allocating() bool {
	return s != StatusDrop && s != StatusCompleted
}

// MigrateStatus rewrites the legacy running and done statuses. Any other
// value, including one this build does not know, is kept as stored.
func MigrateStatus(s Status) (Status, bool) {
	switch s {
	case statusLegacyRunning:
		return StatusTrial, true
	case statusLegacyDone:
		return StatusCompleted, true
	}
	return s, false
}

type Effort string

const (
	EffortTiny   Effort = "tiny"
	EffortSmall  Effort = "small"
	EffortNormal Effort = "normal"
	EffortHeavy  Effort = "heavy"
)

var effortLabels = map[Effort]string{
	EffortTiny:   "とても小さい",
	EffortSmall:  "小さい",
	EffortNormal: "ふつう",
	EffortHeavy:  "重め",
}

func ParseEffort(raw string) (Effort, error) {
	e := Effort(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := effortLabels[e]; !ok {
		return "", fmt.Errorf("%w: unknown effort %q", apperrors.ErrInvalidInput, raw)
	}
	return e, nil
}

func (e Effort) Label() string {
	if label, ok := effortLabels[e]; ok {
		return label
	}
	return string(e)
}
