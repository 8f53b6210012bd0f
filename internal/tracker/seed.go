// ABOUTME: Built-in sample data for development and demos.
// ABOUTME: A fixed week of wellness inputs plus two injuries, dated relative to a given day.
package tracker

import (
	"github.com/google/uuid"
	"github.com/harperreed/recovery/internal/models"
)

// sampleWeek holds ratings for the seven days ending on the seed date, oldest first.
var sampleWeek = []struct {
	quality   int
	hours     float64
	stress    int
	energy    int
	nutrition int
	hydration int
	mood      int
	motiv     int
	notes     string
}{
	{7, 7.5, 4, 7, 8, 7, 7, 8, "Easy recovery run"},
	{6, 6.5, 6, 6, 7, 6, 6, 7, "Late meeting, short night"},
	{8, 8.0, 3, 8, 8, 8, 8, 9, ""},
	{5, 6.0, 7, 5, 6, 5, 5, 6, "Heavy leg session"},
	{7, 7.0, 5, 7, 7, 7, 7, 7, ""},
	{8, 8.5, 3, 8, 9, 8, 8, 8, "Rest day"},
	{6, 7.0, 5, 7, 7, 6, 7, 8, "Tempo intervals"},
}

// SampleSeed returns the built-in sample data set with the last record on today.
func SampleSeed(today models.Date) Seed {
	metrics := make([]models.DailyMetric, 0, len(sampleWeek))
	for i, d := range sampleWeek {
		m := models.NewDailyMetric(today.AddDays(i - len(sampleWeek) + 1)).WithSleep(d.quality, d.hours)
		m.Stress = d.stress
		m.Energy = d.energy
		m.Nutrition = d.nutrition
		m.Hydration = d.hydration
		m.Mood = d.mood
		m.Motivation = d.motiv
		if d.notes != "" {
			m.WithNotes(d.notes)
		}
		metrics = append(metrics, *m)
	}
	sortMetrics(metrics)

	resolved := today.AddDays(-20)

	hamstring := models.NewInjury(models.InjuryAcute, models.SeverityModerate, "left hamstring").
		WithOccurred(today.AddDays(-10)).
		WithDescription("Grade 1 strain during sprint drills").
		WithTreatment("ice after sessions", "eccentric strengthening")
	hamstring.ID = uuid.MustParse("6f1c2b1e-5d0a-4c1e-9a77-2f3b8e4d1a01")
	hamstring.Status = models.StatusRecovering
	hamstring.CreatedAt = hamstring.DateOccurred.Time()

	shin := models.NewInjury(models.InjuryOveruse, models.SeverityMinor, "right shin").
		WithOccurred(today.AddDays(-45)).
		WithDescription("Shin splints after mileage increase").
		WithTreatment("reduced volume")
	shin.ID = uuid.MustParse("0b7d9c42-8e13-4f65-b2a9-6c5e1d3f7b02")
	shin.Status = models.StatusResolved
	shin.DateResolved = &resolved
	shin.CreatedAt = shin.DateOccurred.Time()

	return Seed{
		Metrics:  metrics,
		Injuries: []models.Injury{*hamstring, *shin},
	}
}
