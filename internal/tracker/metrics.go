// ABOUTME: Daily metric operations on the tracker.
// ABOUTME: One record per date, kept newest first; every mutation persists both collections.
package tracker

import (
	"slices"
	"strings"

	"github.com/harperreed/recovery/internal/models"
)

// UpsertDailyMetric stores m, replacing any record with the same date.
// Unpadded dates are normalized to YYYY-MM-DD. It returns false and stores
// nothing when m.Date is not a calendar date.
func (t *Tracker) UpsertDailyMetric(m models.DailyMetric) (models.DailyMetric, bool) {
	date, ok := m.Date.Normalize()
	if !ok {
		t.logger.Warn("rejected daily metric with invalid date", "date", m.Date)
		return models.DailyMetric{}, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stored := m.Clone()
	stored.Date = date
	if i := t.indexOfDate(date); i >= 0 {
		t.metrics[i] = stored
	} else {
		t.metrics = append(t.metrics, stored)
	}
	sortMetrics(t.metrics)
	t.persist()

	return stored.Clone(), true
}

// PatchDailyMetric merges patch into the record for date.
// It returns false and changes nothing when no record exists for date.
func (t *Tracker) PatchDailyMetric(date models.Date, patch models.DailyMetricPatch) (models.DailyMetric, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.indexOfDate(date)
	if i < 0 {
		return models.DailyMetric{}, false
	}
	patch.Apply(&t.metrics[i])
	t.persist()

	return t.metrics[i].Clone(), true
}

// Metric returns the record for date.
func (t *Tracker) Metric(date models.Date) (models.DailyMetric, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	i := t.indexOfDate(date)
	if i < 0 {
		return models.DailyMetric{}, false
	}
	return t.metrics[i].Clone(), true
}

// Metrics returns every record, newest first.
func (t *Tracker) Metrics() []models.DailyMetric {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneAll(t.metrics)
}

// Recent returns up to n records, newest first.
func (t *Tracker) Recent(n int) []models.DailyMetric {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return cloneAll(t.metrics[:min(max(n, 0), len(t.metrics))])
}

// indexOfDate returns the position of date in t.metrics or -1. Caller must hold t.mu.
func (t *Tracker) indexOfDate(date models.Date) int {
	return slices.IndexFunc(t.metrics, func(m models.DailyMetric) bool {
		return m.Date == date
	})
}

// sortMetrics orders records newest first.
func sortMetrics(metrics []models.DailyMetric) {
	slices.SortStableFunc(metrics, func(a, b models.DailyMetric) int {
		return strings.Compare(string(b.Date), string(a.Date))
	})
}
