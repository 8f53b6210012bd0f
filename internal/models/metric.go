// ABOUTME: DailyMetric model for self-reported daily wellness inputs.
// ABOUTME: One record per calendar date; includes partial-update patch type.
package models

import (
	"errors"
	"fmt"
)

// Self-reported ratings use a 1-10 scale.
const (
	MinRating = 1
	MaxRating = 10
)

// ErrInvalidMetric is wrapped by DailyMetric validation failures.
var ErrInvalidMetric = errors.New("invalid daily metric")

// Sleep describes the previous night's sleep.
type Sleep struct {
	Quality       int     `json:"quality" yaml:"quality"`
	DurationHours float64 `json:"duration_hours" yaml:"duration_hours"`
	BedTime       *string `json:"bed_time,omitempty" yaml:"bed_time,omitempty"`
	WakeTime      *string `json:"wake_time,omitempty" yaml:"wake_time,omitempty"`
}

// DailyMetric is the unique-per-date container of an athlete's wellness inputs.
type DailyMetric struct {
	Date       Date    `json:"date" yaml:"date"`
	Sleep      Sleep   `json:"sleep" yaml:"sleep"`
	Stress     int     `json:"stress" yaml:"stress"`
	Energy     int     `json:"energy" yaml:"energy"`
	Nutrition  int     `json:"nutrition" yaml:"nutrition"`
	Hydration  int     `json:"hydration" yaml:"hydration"`
	Mood       int     `json:"mood" yaml:"mood"`
	Motivation int     `json:"motivation" yaml:"motivation"`
	Notes      *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewDailyMetric creates a record for date with every rating at the scale midpoint.
func NewDailyMetric(date Date) *DailyMetric {
	return &DailyMetric{
		Date:       date,
		Sleep:      Sleep{Quality: 5, DurationHours: 8},
		Stress:     5,
		Energy:     5,
		Nutrition:  5,
		Hydration:  5,
		Mood:       5,
		Motivation: 5,
	}
}

// WithSleep sets sleep quality and duration.
func (m *DailyMetric) WithSleep(quality int, hours float64) *DailyMetric {
	m.Sleep.Quality = quality
	m.Sleep.DurationHours = hours
	return m
}

// WithNotes sets notes on the record.
func (m *DailyMetric) WithNotes(notes string) *DailyMetric {
	m.Notes = &notes
	return m
}

// Clone returns a deep copy so callers cannot alias stored pointers.
func (m DailyMetric) Clone() DailyMetric {
	out := m
	out.Sleep.BedTime = clonePtr(m.Sleep.BedTime)
	out.Sleep.WakeTime = clonePtr(m.Sleep.WakeTime)
	out.Notes = clonePtr(m.Notes)
	return out
}

// Validate checks the date and that every rating is within 1-10.
func (m *DailyMetric) Validate() error {
	if !m.Date.Valid() {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidMetric, m.Date)
	}
	if m.Sleep.DurationHours < 0 || m.Sleep.DurationHours > 24 {
		return fmt.Errorf("%w: sleep duration %.1f outside 0-24 hours", ErrInvalidMetric, m.Sleep.DurationHours)
	}
	ratings := []struct {
		name  string
		value int
	}{
		{"sleep quality", m.Sleep.Quality},
		{"stress", m.Stress},
		{"energy", m.Energy},
		{"nutrition", m.Nutrition},
		{"hydration", m.Hydration},
		{"mood", m.Mood},
		{"motivation", m.Motivation},
	}
	for _, r := range ratings {
		if r.value < MinRating || r.value > MaxRating {
			return fmt.Errorf("%w: %s %d outside %d-%d", ErrInvalidMetric, r.name, r.value, MinRating, MaxRating)
		}
	}
	return nil
}

// DailyMetricPatch is a partial update; nil fields are left unchanged.
type DailyMetricPatch struct {
	SleepQuality *int     `json:"sleep_quality,omitempty"`
	SleepHours   *float64 `json:"sleep_hours,omitempty"`
	BedTime      *string  `json:"bed_time,omitempty"`
	WakeTime     *string  `json:"wake_time,omitempty"`
	Stress       *int     `json:"stress,omitempty"`
	Energy       *int     `json:"energy,omitempty"`
	Nutrition    *int     `json:"nutrition,omitempty"`
	Hydration    *int     `json:"hydration,omitempty"`
	Mood         *int     `json:"mood,omitempty"`
	Motivation   *int     `json:"motivation,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p DailyMetricPatch) IsEmpty() bool {
	return p == DailyMetricPatch{}
}

// Apply merges the patch into m. The date is never changed.
func (p DailyMetricPatch) Apply(m *DailyMetric) {
	setIf(&m.Sleep.Quality, p.SleepQuality)
	setIf(&m.Sleep.DurationHours, p.SleepHours)
	if p.BedTime != nil {
		m.Sleep.BedTime = clonePtr(p.BedTime)
	}
	if p.WakeTime != nil {
		m.Sleep.WakeTime = clonePtr(p.WakeTime)
	}
	setIf(&m.Stress, p.Stress)
	setIf(&m.Energy, p.Energy)
	setIf(&m.Nutrition, p.Nutrition)
	setIf(&m.Hydration, p.Hydration)
	setIf(&m.Mood, p.Mood)
	setIf(&m.Motivation, p.Motivation)
	if p.Notes != nil {
		m.Notes = clonePtr(p.Notes)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
