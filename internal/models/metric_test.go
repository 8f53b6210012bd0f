// ABOUTME: Tests for DailyMetric, Date, and DailyMetricPatch.
// ABOUTME: Validates constructors, validation ranges, and patch merging.
package models

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2025-01-01", "2025-01-01", false},
		{"2024-02-29", "2024-02-29", false},
		{"2025-02-29", "", true},
		{"01-01-2025", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateNormalize(t *testing.T) {
	tests := []struct {
		input  Date
		want   Date
		wantOK bool
	}{
		{"2025-03-03", "2025-03-03", true},
		{"2025-3-3", "2025-03-03", true},
		{" 2025-12-1 ", "2025-12-01", true},
		{"2025-02-30", "", false},
		{"03/03/2025", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			got, ok := tt.input.Normalize()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDateAddDays(t *testing.T) {
	tests := []struct {
		start Date
		days  int
		want  Date
	}{
		{"2025-01-01", -1, "2024-12-31"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2025-03-01", -1, "2025-02-28"},
		{"2025-06-15", 0, "2025-06-15"},
		{"2025-12-31", 1, "2026-01-01"},
	}

	for _, tt := range tests {
		if got := tt.start.AddDays(tt.days); got != tt.want {
			t.Errorf("%s.AddDays(%d) = %s, want %s", tt.start, tt.days, got, tt.want)
		}
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2025, 1, 1, 23, 30, 0, 0, time.UTC).In(loc)

	if got := DateOf(ts); got != "2025-01-02" {
		t.Errorf("DateOf = %s, want 2025-01-02", got)
	}
}

func TestNewDailyMetric(t *testing.T) {
	m := NewDailyMetric("2025-01-01").WithSleep(8, 7.5).WithNotes("long run")

	if m.Date != "2025-01-01" {
		t.Errorf("Date = %s, want 2025-01-01", m.Date)
	}
	if m.Sleep.Quality != 8 || m.Sleep.DurationHours != 7.5 {
		t.Errorf("Sleep = %+v, want quality 8 / 7.5h", m.Sleep)
	}
	if m.Notes == nil || *m.Notes != "long run" {
		t.Errorf("Notes = %v, want 'long run'", m.Notes)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDailyMetricValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *DailyMetric)
	}{
		{"bad date", func(m *DailyMetric) { m.Date = "yesterday" }},
		{"quality zero", func(m *DailyMetric) { m.Sleep.Quality = 0 }},
		{"stress eleven", func(m *DailyMetric) { m.Stress = 11 }},
		{"negative sleep", func(m *DailyMetric) { m.Sleep.DurationHours = -1 }},
		{"motivation zero", func(m *DailyMetric) { m.Motivation = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewDailyMetric("2025-01-01")
			tt.mutate(m)
			err := m.Validate()
			if !errors.Is(err, ErrInvalidMetric) {
				t.Errorf("Validate() = %v, want ErrInvalidMetric", err)
			}
		})
	}
}

func TestDailyMetricPatchApply(t *testing.T) {
	m := NewDailyMetric("2025-01-01")
	quality := 9
	hours := 6.5
	notes := "travel day"

	patch := DailyMetricPatch{SleepQuality: &quality, SleepHours: &hours, Notes: &notes}
	patch.Apply(m)

	if m.Sleep.Quality != 9 || m.Sleep.DurationHours != 6.5 {
		t.Errorf("Sleep = %+v, want quality 9 / 6.5h", m.Sleep)
	}
	if m.Stress != 5 {
		t.Errorf("Stress = %d, want unchanged 5", m.Stress)
	}
	if m.Notes == nil || *m.Notes != "travel day" {
		t.Errorf("Notes = %v, want 'travel day'", m.Notes)
	}

	notes = "mutated"
	if *m.Notes != "travel day" {
		t.Error("Apply should copy pointer values, not alias them")
	}
}

func TestDailyMetricPatchIsEmpty(t *testing.T) {
	if !(DailyMetricPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	v := 3
	if (DailyMetricPatch{Mood: &v}).IsEmpty() {
		t.Error("patch with mood should not be empty")
	}
}

func TestDailyMetricClone(t *testing.T) {
	m := NewDailyMetric("2025-01-01").WithNotes("original")
	c := m.Clone()
	*c.Notes = "changed"

	if *m.Notes != "original" {
		t.Errorf("Clone shares Notes pointer: got %q", *m.Notes)
	}
}
