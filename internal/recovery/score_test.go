// ABOUTME: Tests for score calculation and trend generation.
// ABOUTME: Includes randomized range and monotonicity checks.
package recovery

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/tracker"
)

func fullMarks(date models.Date) models.DailyMetric {
	m := models.NewDailyMetric(date).WithSleep(10, 8)
	m.Stress = 1
	m.Energy = 10
	m.Nutrition = 10
	m.Hydration = 10
	m.Mood = 10
	m.Motivation = 10
	return *m
}

func randomMetric(f *gofakeit.Faker) models.DailyMetric {
	m := models.NewDailyMetric("2025-01-01").WithSleep(f.IntRange(1, 10), f.Float64Range(0, 12))
	m.Stress = f.IntRange(1, 10)
	m.Energy = f.IntRange(1, 10)
	m.Nutrition = f.IntRange(1, 10)
	m.Hydration = f.IntRange(1, 10)
	m.Mood = f.IntRange(1, 10)
	m.Motivation = f.IntRange(1, 10)
	return *m
}

func TestScoreFullMarks(t *testing.T) {
	tr := tracker.New(nil)
	tr.Load()
	tr.UpsertDailyMetric(fullMarks("2025-01-01"))

	got := ScoreOn(tr, "2025-01-01")

	if got.Score != 10 {
		t.Errorf("expected score 10, got %d", got.Score)
	}
	if !got.HasData {
		t.Error("expected HasData")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		metric func() *models.DailyMetric
		want   int
	}{
		{"nil", func() *models.DailyMetric { return nil }, 0},
		{"defaults", func() *models.DailyMetric { return models.NewDailyMetric("2025-01-01") }, 6},
		{"worst", func() *models.DailyMetric {
			m := models.NewDailyMetric("2025-01-01").WithSleep(1, 0)
			m.Stress, m.Energy, m.Nutrition, m.Hydration, m.Mood = 10, 1, 1, 1, 1
			return m
		}, 1},
		{"oversleep capped", func() *models.DailyMetric {
			m := fullMarks("2025-01-01")
			m.Sleep.DurationHours = 14
			return &m
		}, 10},
		{"motivation ignored", func() *models.DailyMetric {
			m := models.NewDailyMetric("2025-01-01")
			m.Motivation = 1
			return m
		}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.metric()); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBreakdown(t *testing.T) {
	m := models.NewDailyMetric("2025-01-01").WithSleep(6, 4)
	m.Stress = 4

	c := Breakdown(*m)

	want := Components{Sleep: 2.8, Stress: 0.9, Energy: 0.75, Nutrition: 0.5, Hydration: 0.25, Mood: 0.25}
	approx := cmp.Comparer(func(a, b float64) bool { return a-b < 1e-9 && b-a < 1e-9 })
	if diff := cmp.Diff(want, c, approx); diff != "" {
		t.Errorf("Breakdown mismatch (-want +got):\n%s", diff)
	}
	if total := c.Total(); total < 5.449 || total > 5.451 {
		t.Errorf("Total() = %f, want 5.45", total)
	}
}

func TestScoreInRange(t *testing.T) {
	f := gofakeit.New(42)
	for i := 0; i < 500; i++ {
		m := randomMetric(f)
		got := Score(&m)
		if got < 0 || got > MaxScore {
			t.Fatalf("Score(%+v) = %d, outside 0-%d", m, got, MaxScore)
		}
	}
}

func TestScoreMonotonic(t *testing.T) {
	fields := []struct {
		name       string
		bump       func(*models.DailyMetric) bool
		increasing bool
	}{
		{"quality", func(m *models.DailyMetric) bool { return bumpInt(&m.Sleep.Quality) }, true},
		{"energy", func(m *models.DailyMetric) bool { return bumpInt(&m.Energy) }, true},
		{"nutrition", func(m *models.DailyMetric) bool { return bumpInt(&m.Nutrition) }, true},
		{"hydration", func(m *models.DailyMetric) bool { return bumpInt(&m.Hydration) }, true},
		{"mood", func(m *models.DailyMetric) bool { return bumpInt(&m.Mood) }, true},
		{"stress", func(m *models.DailyMetric) bool { return bumpInt(&m.Stress) }, false},
		{"duration", func(m *models.DailyMetric) bool {
			if m.Sleep.DurationHours >= 8 {
				return false
			}
			m.Sleep.DurationHours = min(m.Sleep.DurationHours+0.5, 8)
			return true
		}, true},
	}

	f := gofakeit.New(7)
	for _, field := range fields {
		t.Run(field.name, func(t *testing.T) {
			for i := 0; i < 300; i++ {
				base := randomMetric(f)
				bumped := base.Clone()
				if !field.bump(&bumped) {
					continue
				}
				before, after := Score(&base), Score(&bumped)
				if field.increasing && after < before {
					t.Fatalf("raising %s lowered score %d -> %d for %+v", field.name, before, after, base)
				}
				if !field.increasing && after > before {
					t.Fatalf("raising %s raised score %d -> %d for %+v", field.name, before, after, base)
				}
			}
		})
	}
}

func bumpInt(v *int) bool {
	if *v >= models.MaxRating {
		return false
	}
	*v++
	return true
}

func TestScoreOnMissingDay(t *testing.T) {
	snap := tracker.NewSnapshot(nil, nil)

	got := ScoreOn(snap, "2025-01-01")

	if diff := cmp.Diff(DayScore{Date: "2025-01-01"}, got); diff != "" {
		t.Errorf("ScoreOn mismatch (-want +got):\n%s", diff)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct{ score, want int }{{0, 0}, {7, 70}, {10, 100}}
	for _, tt := range tests {
		if got := Percent(tt.score); got != tt.want {
			t.Errorf("Percent(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestTrendOnlyToday(t *testing.T) {
	today := models.Date("2025-03-10")
	m := fullMarks(today)
	snap := tracker.NewSnapshot([]models.DailyMetric{m}, nil)

	got := Trend(snap, 5, today)

	want := []int{0, 0, 0, 0, Score(&m)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Trend mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendLengthOnEmptyStore(t *testing.T) {
	snap := tracker.NewSnapshot(nil, nil)
	for _, n := range []int{1, 2, 7, 30, 365} {
		got := Trend(snap, n, "2025-03-10")
		if len(got) != n {
			t.Fatalf("Trend(%d) returned %d values", n, len(got))
		}
		for i, s := range got {
			if s != 0 {
				t.Fatalf("Trend(%d)[%d] = %d, want 0", n, i, s)
			}
		}
	}
}

func TestTrendNonPositive(t *testing.T) {
	snap := tracker.NewSnapshot(nil, nil)
	for _, n := range []int{0, -3} {
		if got := Trend(snap, n, "2025-03-10"); got != nil {
			t.Errorf("Trend(%d) = %v, want nil", n, got)
		}
	}
}

func TestTrendDaysOrderAndPresence(t *testing.T) {
	snap := tracker.NewSnapshot([]models.DailyMetric{
		*models.NewDailyMetric("2025-03-08"),
		*models.NewDailyMetric("2025-03-10"),
	}, nil)

	got := TrendDays(snap, 4, "2025-03-10")

	want := []DayScore{
		{Date: "2025-03-07"},
		{Date: "2025-03-08", Score: 6, HasData: true},
		{Date: "2025-03-09"},
		{Date: "2025-03-10", Score: 6, HasData: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TrendDays mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendAcrossMonthBoundary(t *testing.T) {
	snap := tracker.NewSnapshot([]models.DailyMetric{fullMarks("2025-02-28")}, nil)

	got := Trend(snap, 3, "2025-03-01")

	if diff := cmp.Diff([]int{0, 10, 0}, got); diff != "" {
		t.Errorf("Trend mismatch (-want +got):\n%s", diff)
	}
}
