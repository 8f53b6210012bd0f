// ABOUTME: Recovery score calculation from a single day's wellness inputs.
// ABOUTME: Pure functions over daily metrics; scores are integers on a 0-10 scale.
package recovery

import (
	"math"

	"github.com/harperreed/recovery/internal/models"
)

// MaxScore is the top of the canonical score scale.
const MaxScore = 10

// Component weights. They sum to 1.0 of the 0-10 scale.
const (
	weightSleepQuality  = 0.3
	weightSleepDuration = 0.2
	weightStress        = 0.15
	weightEnergy        = 0.15
	weightNutrition     = 0.10
	weightHydration     = 0.05
	weightMood          = 0.05

	// targetSleepHours earns the full duration component.
	targetSleepHours = 8.0
)

// Source is a read-only view of daily metrics, newest first.
type Source interface {
	Metric(date models.Date) (models.DailyMetric, bool)
	Recent(n int) []models.DailyMetric
}

// Components is the weighted contribution of each input to the score.
type Components struct {
	Sleep     float64 `json:"sleep"`
	Stress    float64 `json:"stress"`
	Energy    float64 `json:"energy"`
	Nutrition float64 `json:"nutrition"`
	Hydration float64 `json:"hydration"`
	Mood      float64 `json:"mood"`
}

// Total sums the components.
func (c Components) Total() float64 {
	return c.Sleep + c.Stress + c.Energy + c.Nutrition + c.Hydration + c.Mood
}

// Breakdown returns the weighted components for m. Motivation is not scored.
func Breakdown(m models.DailyMetric) Components {
	duration := math.Min(math.Max(m.Sleep.DurationHours/targetSleepHours, 0), 1)
	return Components{
		Sleep:     float64(m.Sleep.Quality)*weightSleepQuality + duration*10*weightSleepDuration,
		Stress:    float64(10-m.Stress) * weightStress,
		Energy:    float64(m.Energy) * weightEnergy,
		Nutrition: float64(m.Nutrition) * weightNutrition,
		Hydration: float64(m.Hydration) * weightHydration,
		Mood:      float64(m.Mood) * weightMood,
	}
}

// Score returns the rounded recovery score for m, or 0 when m is nil.
func Score(m *models.DailyMetric) int {
	if m == nil {
		return 0
	}
	score := int(math.Round(Breakdown(*m).Total()))
	return min(max(score, 0), MaxScore)
}

// DayScore pairs a day's score with whether a record existed for it.
type DayScore struct {
	Date    models.Date `json:"date"`
	Score   int         `json:"score"`
	HasData bool        `json:"has_data"`
}

// ScoreOn scores the record for date. A day without a record scores 0 with HasData false.
func ScoreOn(src Source, date models.Date) DayScore {
	m, ok := src.Metric(date)
	if !ok {
		return DayScore{Date: date}
	}
	return DayScore{Date: date, Score: Score(&m), HasData: true}
}

// Percent converts a 0-10 score to the 0-100 display scale.
func Percent(score int) int {
	return score * 100 / MaxScore
}
