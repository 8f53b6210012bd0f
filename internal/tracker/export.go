// ABOUTME: Export and import functionality for recovery data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/harperreed/recovery/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for recovery data.
type ExportData struct {
	Version    string               `json:"version" yaml:"version"`
	ExportedAt time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool       string               `json:"tool" yaml:"tool"`
	Metrics    []models.DailyMetric `json:"metrics" yaml:"metrics"`
	Injuries   []models.Injury      `json:"injuries" yaml:"injuries"`
}

// ImportSummary counts what an import changed.
type ImportSummary struct {
	MetricsAdded     int
	MetricsReplaced  int
	InjuriesAdded    int
	InjuriesReplaced int
}

// Export returns every record for export.
func (t *Tracker) Export() *ExportData {
	snap := t.Snapshot()
	return &ExportData{
		Version:    "1.0",
		ExportedAt: t.now(),
		Tool:       "recovery",
		Metrics:    snap.Metrics(),
		Injuries:   snap.Injuries(),
	}
}

// ExportJSON exports all data as JSON.
func (t *Tracker) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(t.Export(), "", "  ")
}

// ExportYAML exports all data as YAML.
func (t *Tracker) ExportYAML() ([]byte, error) {
	return yaml.Marshal(t.Export())
}

// ExportMarkdown exports data as Markdown tables, optionally limited to dates on or after since.
func (t *Tracker) ExportMarkdown(since *models.Date) string {
	data := t.Export()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Recovery Export - %s\n\n", data.ExportedAt.Format(models.DateLayout)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	sb.WriteString("## Daily Metrics\n\n")
	sb.WriteString("| Date | Sleep | Hours | Stress | Energy | Nutrition | Hydration | Mood | Motivation | Notes |\n")
	sb.WriteString("|------|-------|-------|--------|--------|-----------|-----------|------|------------|-------|\n")
	for _, m := range data.Metrics {
		if since != nil && m.Date.Before(*since) {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %.1f | %d | %d | %d | %d | %d | %d | %s |\n",
			m.Date, m.Sleep.Quality, m.Sleep.DurationHours, m.Stress, m.Energy,
			m.Nutrition, m.Hydration, m.Mood, m.Motivation, markdownCell(deref(m.Notes))))
	}

	sb.WriteString("\n## Injuries\n\n")
	sb.WriteString("| Occurred | Body Part | Type | Severity | Status | Resolved | Description |\n")
	sb.WriteString("|----------|-----------|------|----------|--------|----------|-------------|\n")
	for _, in := range data.Injuries {
		if since != nil && in.DateOccurred.Before(*since) && in.Status == models.StatusResolved {
			continue
		}
		resolved := ""
		if in.DateResolved != nil {
			resolved = string(*in.DateResolved)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s |\n",
			in.DateOccurred, markdownCell(in.BodyPart), in.Type, in.Severity, in.Status, resolved, markdownCell(in.Description)))
	}

	return sb.String()
}

// ImportJSON imports data from JSON bytes.
func (t *Tracker) ImportJSON(data []byte) (ImportSummary, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return ImportSummary{}, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return t.Import(&exportData)
}

// Import merges exported data: metrics replace by date, injuries replace by ID and keep their IDs.
// Nothing is changed if any record is invalid.
func (t *Tracker) Import(data *ExportData) (ImportSummary, error) {
	for _, m := range data.Metrics {
		if err := m.Validate(); err != nil {
			return ImportSummary{}, fmt.Errorf("import metric %s: %w", m.Date, err)
		}
	}
	for _, in := range data.Injuries {
		if err := in.Validate(); err != nil {
			return ImportSummary{}, fmt.Errorf("import injury %s: %w", in.ID, err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var summary ImportSummary
	for _, m := range data.Metrics {
		if i := t.indexOfDate(m.Date); i >= 0 {
			t.metrics[i] = m.Clone()
			summary.MetricsReplaced++
			continue
		}
		t.metrics = append(t.metrics, m.Clone())
		summary.MetricsAdded++
	}
	sortMetrics(t.metrics)

	for _, in := range data.Injuries {
		stored := in.Clone()
		if stored.ID == uuid.Nil {
			stored.ID = t.newID()
		}
		if i := t.indexOfInjury(stored.ID); i >= 0 {
			t.injuries[i] = stored
			summary.InjuriesReplaced++
			continue
		}
		t.injuries = append(t.injuries, stored)
		summary.InjuriesAdded++
	}

	t.persist()
	return summary, nil
}

var markdownCellReplacer = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
	"\r", "<br>",
)

// markdownCell escapes free text so it stays inside a single table cell.
func markdownCell(s string) string {
	return markdownCellReplacer.Replace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
