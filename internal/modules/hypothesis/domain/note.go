package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	NoteBlockStart = "<!-- banditboard:logs:start -->"
	NoteBlockEnd   = "<!-- banditboard:logs:end -->"
	NoteSchema     = 1
)

// NoteMeta is the YAML header of an exported hypothesis note.
type NoteMeta struct {
	Schema     int    `yaml:"schema_version"`
	ID         string `yaml:"id"`
	IdeaTitle  string `yaml:"idea"`
	Hypothesis string `yaml:"hypothesis"`
	Status     string `yaml:"status"`
	Effort     string `yaml:"effort"`
	Resource   int    `yaml:"resource_allocation"`
	KPI        string `yaml:"kpi,omitempty"`
	StartDate  string `yaml:"start_date,omitempty"`
	EndDate    string `yaml:"end_date,omitempty"`
	Duration   string `yaml:"duration,omitempty"`
	Trend      string `yaml:"trend,omitempty"`
	LogCount   int    `yaml:"log_count"`
	CreatedAt  string `yaml:"created_at"`
	ExportedAt string `yaml:"exported_at"`
}

// Note is the exported document: a header plus the generated log block.
type Note struct {
	Meta  NoteMeta
	Block string
}

// BuildNote renders the item for export. metrics orders the log table
// columns; trendMetric selects the series the trend is computed on.
func BuildNote(it Item, metrics []string, trendMetric string, now time.Time) Note {
	meta := NoteMeta{
		Schema:     NoteSchema,
		ID:         it.ID,
		IdeaTitle:  it.IdeaTitle,
		Hypothesis: it.Hypothesis,
		Status:     string(it.Status),
		Effort:     string(it.Effort),
		Resource:   it.Resource,
		KPI:        it.KPI,
		StartDate:  it.StartDate,
		EndDate:    it.EndDate,
		Duration:   it.Duration,
		LogCount:   len(it.Logs),
		CreatedAt:  it.CreatedAt.Format(time.RFC3339),
		ExportedAt: now.Format(time.RFC3339),
	}
	if trend, ok := ComputeTrend(it.Logs, trendMetric); ok {
		meta.Trend = string(trend)
	}

	var b strings.Builder
	b.WriteString("## Daily logs\n\n")
	logs := it.SortedLogs()
	if len(logs) == 0 {
		b.WriteString("_No logs yet._\n")
	} else {
		if len(metrics) == 0 {
			metrics = metricKeys(logs)
		}
		b.WriteString("| date | " + strings.Join(metrics, " | ") + " | memo |\n")
		b.WriteString("|---" + strings.Repeat("|---", len(metrics)) + "|---|\n")
		for _, log := range logs {
			cells := make([]string, 0, len(metrics))
			for _, key := range metrics {
				if v, ok := log.Metrics[key]; ok {
					cells = append(cells, strconv.FormatFloat(v, 'f', -1, 64))
				} else {
					cells = append(cells, "")
				}
			}
			memo := strings.ReplaceAll(log.Memo, "\n", " ")
			b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", log.Date, strings.Join(cells, " | "), memo))
		}
	}
	if it.Learning != "" {
		b.WriteString("\n## 学びメモ\n\n" + it.Learning + "\n")
	}
	return Note{Meta: meta, Block: b.String()}
}

func metricKeys(logs []DailyLog) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, log := range logs {
		for key := range log.Metrics {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}
