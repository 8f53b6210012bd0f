// ABOUTME: JSON codec for the persisted collections.
// ABOUTME: Decoding rejects records that cannot be keyed so Load can fall back to the seed.
package tracker

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/harperreed/recovery/internal/models"
)

func encodeMetrics(metrics []models.DailyMetric) ([]byte, error) {
	if metrics == nil {
		metrics = []models.DailyMetric{}
	}
	return json.Marshal(metrics)
}

// decodeMetrics parses a metrics blob. A later record for a date replaces an earlier one.
func decodeMetrics(data []byte) ([]models.DailyMetric, error) {
	var raw []models.DailyMetric
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}

	byDate := make(map[models.Date]int, len(raw))
	out := make([]models.DailyMetric, 0, len(raw))
	for _, m := range raw {
		if !m.Date.Valid() {
			return nil, fmt.Errorf("metric with invalid date %q", m.Date)
		}
		if i, ok := byDate[m.Date]; ok {
			out[i] = m
			continue
		}
		byDate[m.Date] = len(out)
		out = append(out, m)
	}
	sortMetrics(out)
	return out, nil
}

func encodeInjuries(injuries []models.Injury) ([]byte, error) {
	if injuries == nil {
		injuries = []models.Injury{}
	}
	return json.Marshal(injuries)
}

func decodeInjuries(data []byte) ([]models.Injury, error) {
	var raw []models.Injury
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal injuries: %w", err)
	}

	seen := make(map[uuid.UUID]bool, len(raw))
	out := make([]models.Injury, 0, len(raw))
	for _, in := range raw {
		if in.ID == uuid.Nil {
			return nil, fmt.Errorf("injury without id")
		}
		if seen[in.ID] {
			return nil, fmt.Errorf("duplicate injury id %s", in.ID)
		}
		seen[in.ID] = true
		out = append(out, in)
	}
	return out, nil
}
