package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	apperrors "banditboard/internal/platform/errors"
)

const DateLayout = "2006-01-02"

func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, raw)
	}
	return t, nil
}

func slashed(date string) string {
	return strings.ReplaceAll(date, "-", "/")
}

// FormatDuration renders "2024/01/01～2024/01/07 (7日間)". The day count is
// inclusive and omitted when it is not positive. A single date is rendered
// alone and no dates give an empty string.
func FormatDuration(start, end string) (string, error) {
	switch {
	case start != "" && end != "":
		s, err := ParseDate(start)
		if err != nil {
			return "", err
		}
		e, err := ParseDate(end)
		if err != nil {
			return "", err
		}
		days := int(math.Ceil(e.Sub(s).Hours()/24)) + 1
		label := slashed(start) + "～" + slashed(end)
		if days > 0 {
			label += fmt.Sprintf(" (%d日間)", days)
		}
		return label, nil
	case start != "":
		if _, err := ParseDate(start); err != nil {
			return "", err
		}
		return slashed(start), nil
	case end != "":
		if _, err := ParseDate(end); err != nil {
			return "", err
		}
		return slashed(end), nil
	default:
		return "", nil
	}
}

func sortLogs(logs []DailyLog) {
	sort.SliceStable(logs, func(a, b int) bool {
		return logs[a].Date < logs[b].Date
	})
}
