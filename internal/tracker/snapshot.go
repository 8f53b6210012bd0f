// ABOUTME: Immutable point-in-time view of the tracker's collections.
// ABOUTME: Lets several analytics calls read one consistent state.
package tracker

import (
	"slices"

	"github.com/harperreed/recovery/internal/models"
)

// Snapshot is a read-only copy of the tracker state.
type Snapshot struct {
	metrics  []models.DailyMetric
	injuries []models.Injury
}

// NewSnapshot builds a snapshot from raw collections. Metrics are sorted newest first.
func NewSnapshot(metrics []models.DailyMetric, injuries []models.Injury) *Snapshot {
	s := &Snapshot{
		metrics:  cloneAll(metrics),
		injuries: cloneAll(injuries),
	}
	sortMetrics(s.metrics)
	return s
}

// Snapshot copies the current state.
func (t *Tracker) Snapshot() *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return &Snapshot{
		metrics:  cloneAll(t.metrics),
		injuries: cloneAll(t.injuries),
	}
}

// Metric returns the record for date.
func (s *Snapshot) Metric(date models.Date) (models.DailyMetric, bool) {
	i := slices.IndexFunc(s.metrics, func(m models.DailyMetric) bool { return m.Date == date })
	if i < 0 {
		return models.DailyMetric{}, false
	}
	return s.metrics[i].Clone(), true
}

// Recent returns up to n records, newest first.
func (s *Snapshot) Recent(n int) []models.DailyMetric {
	return cloneAll(s.metrics[:min(max(n, 0), len(s.metrics))])
}

// Metrics returns every record, newest first.
func (s *Snapshot) Metrics() []models.DailyMetric {
	return cloneAll(s.metrics)
}

// Injuries returns every injury in insertion order.
func (s *Snapshot) Injuries() []models.Injury {
	return cloneAll(s.injuries)
}

// ActiveInjuries returns injuries whose status is active or recovering.
func (s *Snapshot) ActiveInjuries() []models.Injury {
	return activeInjuries(s.injuries)
}
