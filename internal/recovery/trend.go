// ABOUTME: Trailing score trend over a fixed window of calendar days.
// ABOUTME: Always returns exactly n entries, oldest first, with missing days scored 0.
package recovery

import "github.com/harperreed/recovery/internal/models"

// TrendDays returns one DayScore per day for the n days ending on today, oldest first.
// It returns nil when n < 1.
func TrendDays(src Source, n int, today models.Date) []DayScore {
	if n < 1 {
		return nil
	}
	days := make([]DayScore, n)
	for i := range days {
		days[i] = ScoreOn(src, today.AddDays(i-(n-1)))
	}
	return days
}

// Trend returns the scores for the n days ending on today, oldest first.
func Trend(src Source, n int, today models.Date) []int {
	days := TrendDays(src, n, today)
	if days == nil {
		return nil
	}
	scores := make([]int, len(days))
	for i, d := range days {
		scores[i] = d.Score
	}
	return scores
}
