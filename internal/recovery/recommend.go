// ABOUTME: Rule-based recommendations from the most recent daily metrics.
// ABOUTME: Rules fire on rolling averages and results are ordered by priority.
package recovery

import (
	"slices"

	"github.com/harperreed/recovery/internal/models"
)

// Window is the number of most recent records the recommendation rules average over.
const Window = 3

// Averages holds the means of the inputs the rules look at.
type Averages struct {
	Days          int     `json:"days"`
	SleepQuality  float64 `json:"sleep_quality"`
	SleepDuration float64 `json:"sleep_duration"`
	Stress        float64 `json:"stress"`
	Hydration     float64 `json:"hydration"`
	Nutrition     float64 `json:"nutrition"`
}

// RollingAverages averages the newest n records. ok is false when there are none.
func RollingAverages(src Source, n int) (Averages, bool) {
	recent := src.Recent(n)
	if len(recent) == 0 {
		return Averages{}, false
	}

	var a Averages
	for _, m := range recent {
		a.SleepQuality += float64(m.Sleep.Quality)
		a.SleepDuration += m.Sleep.DurationHours
		a.Stress += float64(m.Stress)
		a.Hydration += float64(m.Hydration)
		a.Nutrition += float64(m.Nutrition)
	}
	count := float64(len(recent))
	a.Days = len(recent)
	a.SleepQuality /= count
	a.SleepDuration /= count
	a.Stress /= count
	a.Hydration /= count
	a.Nutrition /= count
	return a, true
}

type rule struct {
	fires func(Averages) bool
	rec   models.Recommendation
}

// rules are evaluated in order; the stable sort keeps this order within a priority.
var rules = []rule{
	{
		fires: func(a Averages) bool { return a.SleepQuality < 7 || a.SleepDuration < 7 },
		rec: models.Recommendation{
			Type:        models.RecommendSleep,
			Priority:    models.PriorityHigh,
			Title:       "Improve Sleep Quality",
			Description: "Your recent sleep quality or duration is below optimal levels. Better sleep is the foundation of recovery.",
			ActionItems: []string{
				"Aim for 7-9 hours of sleep per night",
				"Keep a consistent bedtime and wake time",
				"Avoid screens for an hour before bed",
				"Keep your bedroom cool and dark",
			},
		},
	},
	{
		fires: func(a Averages) bool { return a.Stress > 6 },
		rec: models.Recommendation{
			Type:        models.RecommendStress,
			Priority:    models.PriorityHigh,
			Title:       "Manage Stress Levels",
			Description: "Elevated stress slows recovery and affects performance.",
			ActionItems: []string{
				"Practice 10 minutes of breathing exercises or meditation",
				"Schedule a lighter training day",
				"Take short breaks during work",
			},
		},
	},
	{
		fires: func(a Averages) bool { return a.Hydration < 7 },
		rec: models.Recommendation{
			Type:        models.RecommendHydration,
			Priority:    models.PriorityMedium,
			Title:       "Increase Hydration",
			Description: "Your hydration has been below target. Fluids support muscle repair and energy.",
			ActionItems: []string{
				"Drink a glass of water when you wake up",
				"Carry a water bottle through the day",
				"Replace electrolytes after long sessions",
			},
		},
	},
	{
		fires: func(a Averages) bool { return a.Nutrition < 7 },
		rec: models.Recommendation{
			Type:        models.RecommendNutrition,
			Priority:    models.PriorityMedium,
			Title:       "Optimize Nutrition",
			Description: "Recent nutrition ratings suggest room for improvement in fueling recovery.",
			ActionItems: []string{
				"Eat protein within an hour after training",
				"Include vegetables with every meal",
				"Plan meals ahead on heavy training days",
			},
		},
	},
}

// Recommendations evaluates the rules over the Window most recent records.
// An empty source yields no recommendations.
func Recommendations(src Source) []models.Recommendation {
	avg, ok := RollingAverages(src, Window)
	if !ok {
		return []models.Recommendation{}
	}
	return evaluate(avg)
}

func evaluate(avg Averages) []models.Recommendation {
	out := []models.Recommendation{}
	for _, r := range rules {
		if r.fires(avg) {
			rec := r.rec
			rec.ActionItems = slices.Clone(r.rec.ActionItems)
			out = append(out, rec)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Recommendation) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})
	return out
}
