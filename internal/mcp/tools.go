// ABOUTME: MCP tool implementations for recovery tracking.
// ABOUTME: Daily metric logging, scoring, trends, recommendations, and injury management.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/recovery"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultTrendDays is used when get_trend is called without a window.
const DefaultTrendDays = 7

// maxTrendDays bounds get_trend so a client cannot request an unbounded series.
const maxTrendDays = 365

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_daily_metric",
		Description: "Record or replace the wellness check-in for a day (ratings 1-10, sleep hours)",
	}, s.handleLogDailyMetric)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_daily_metric",
		Description: "Change some fields of an existing day's check-in",
	}, s.handleUpdateDailyMetric)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_daily_metric",
		Description: "Get the check-in recorded for a day",
	}, s.handleGetDailyMetric)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recovery_score",
		Description: "Get the 0-10 recovery score and its components for a day",
	}, s.handleGetRecoveryScore)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_trend",
		Description: "Get daily recovery scores for the trailing N days, oldest first",
	}, s.handleGetTrend)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recommendations",
		Description: "Get prioritized recovery recommendations from the last three check-ins",
	}, s.handleGetRecommendations)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "report_injury",
		Description: "Report a new injury",
	}, s.handleReportInjury)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_injury",
		Description: "Update an injury's status, dates, or treatment by ID or ID prefix",
	}, s.handleUpdateInjury)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_injuries",
		Description: "List injuries; only active and recovering ones unless include_resolved is set",
	}, s.handleListInjuries)
}

// Tool input/output types

type logDailyMetricInput struct {
	Date         string  `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
	SleepQuality int     `json:"sleep_quality" jsonschema:"Sleep quality 1-10"`
	SleepHours   float64 `json:"sleep_hours" jsonschema:"Hours slept"`
	BedTime      string  `json:"bed_time,omitempty" jsonschema:"Bed time, e.g. 22:30"`
	WakeTime     string  `json:"wake_time,omitempty" jsonschema:"Wake time, e.g. 06:45"`
	Stress       int     `json:"stress" jsonschema:"Stress 1-10, higher is worse"`
	Energy       int     `json:"energy" jsonschema:"Energy 1-10"`
	Nutrition    int     `json:"nutrition" jsonschema:"Nutrition quality 1-10"`
	Hydration    int     `json:"hydration" jsonschema:"Hydration 1-10"`
	Mood         int     `json:"mood" jsonschema:"Mood 1-10"`
	Motivation   int     `json:"motivation" jsonschema:"Motivation 1-10"`
	Notes        string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type updateDailyMetricInput struct {
	Date         string   `json:"date" jsonschema:"Day to update as YYYY-MM-DD"`
	SleepQuality *int     `json:"sleep_quality,omitempty" jsonschema:"Sleep quality 1-10"`
	SleepHours   *float64 `json:"sleep_hours,omitempty" jsonschema:"Hours slept"`
	BedTime      *string  `json:"bed_time,omitempty" jsonschema:"Bed time"`
	WakeTime     *string  `json:"wake_time,omitempty" jsonschema:"Wake time"`
	Stress       *int     `json:"stress,omitempty" jsonschema:"Stress 1-10"`
	Energy       *int     `json:"energy,omitempty" jsonschema:"Energy 1-10"`
	Nutrition    *int     `json:"nutrition,omitempty" jsonschema:"Nutrition 1-10"`
	Hydration    *int     `json:"hydration,omitempty" jsonschema:"Hydration 1-10"`
	Mood         *int     `json:"mood,omitempty" jsonschema:"Mood 1-10"`
	Motivation   *int     `json:"motivation,omitempty" jsonschema:"Motivation 1-10"`
	Notes        *string  `json:"notes,omitempty" jsonschema:"Notes"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type metricOutput struct {
	Found   bool                `json:"found"`
	Metric  *models.DailyMetric `json:"metric,omitempty"`
	Score   int                 `json:"score"`
	Message string              `json:"message"`
	Warning string              `json:"warning,omitempty"`
}

type scoreOutput struct {
	Date       string              `json:"date"`
	Score      int                 `json:"score"`
	Percent    int                 `json:"percent"`
	HasData    bool                `json:"has_data"`
	Components recovery.Components `json:"components"`
}

type trendInput struct {
	Days int `json:"days,omitempty" jsonschema:"Number of days ending today (default 7)"`
}

type trendOutput struct {
	Scores []int               `json:"scores"`
	Days   []recovery.DayScore `json:"days"`
}

type recommendationsOutput struct {
	Averages        *recovery.Averages      `json:"averages,omitempty"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Message         string                  `json:"message"`
}

type reportInjuryInput struct {
	Type         string   `json:"type" jsonschema:"acute, chronic, or overuse"`
	Severity     string   `json:"severity" jsonschema:"minor, moderate, or severe"`
	BodyPart     string   `json:"body_part" jsonschema:"Affected body part"`
	DateOccurred string   `json:"date_occurred,omitempty" jsonschema:"Day it happened as YYYY-MM-DD, defaults to today"`
	Description  string   `json:"description,omitempty" jsonschema:"What happened"`
	Treatment    []string `json:"treatment,omitempty" jsonschema:"Treatment steps"`
	Notes        string   `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type updateInjuryInput struct {
	ID           string   `json:"id" jsonschema:"Injury ID or unique prefix"`
	Status       string   `json:"status,omitempty" jsonschema:"active, recovering, or resolved"`
	Severity     string   `json:"severity,omitempty" jsonschema:"minor, moderate, or severe"`
	DateResolved string   `json:"date_resolved,omitempty" jsonschema:"Day it resolved as YYYY-MM-DD"`
	Description  string   `json:"description,omitempty" jsonschema:"New description"`
	Treatment    []string `json:"treatment,omitempty" jsonschema:"Replacement treatment steps"`
	Notes        string   `json:"notes,omitempty" jsonschema:"New notes"`
}

type listInjuriesInput struct {
	IncludeResolved bool `json:"include_resolved,omitempty" jsonschema:"Also list resolved injuries"`
}

// injuryView is the wire form of an injury with a string ID.
type injuryView struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Severity     string   `json:"severity"`
	BodyPart     string   `json:"body_part"`
	DateOccurred string   `json:"date_occurred"`
	DateResolved string   `json:"date_resolved,omitempty"`
	Status       string   `json:"status"`
	Description  string   `json:"description"`
	Treatment    []string `json:"treatment"`
	Notes        string   `json:"notes,omitempty"`
}

type injuryOutput struct {
	Injury  injuryView `json:"injury"`
	Message string     `json:"message"`
	Warning string     `json:"warning,omitempty"`
}

type injuriesOutput struct {
	Injuries []injuryView `json:"injuries"`
	Count    int          `json:"count"`
}

func newInjuryView(in models.Injury) injuryView {
	v := injuryView{
		ID:           in.ID.String(),
		Type:         string(in.Type),
		Severity:     string(in.Severity),
		BodyPart:     in.BodyPart,
		DateOccurred: string(in.DateOccurred),
		Status:       string(in.Status),
		Description:  in.Description,
		Treatment:    append([]string{}, in.Treatment...),
	}
	if in.DateResolved != nil {
		v.DateResolved = string(*in.DateResolved)
	}
	if in.Notes != nil {
		v.Notes = *in.Notes
	}
	return v
}

func injuryViews(injuries []models.Injury) []injuryView {
	out := make([]injuryView, 0, len(injuries))
	for _, in := range injuries {
		out = append(out, newInjuryView(in))
	}
	return out
}

// dateOrToday parses s, returning today when s is empty.
func (s *Server) dateOrToday(value string) (models.Date, error) {
	if strings.TrimSpace(value) == "" {
		return s.today(), nil
	}
	return models.ParseDate(value)
}

// Tool handlers

func (s *Server) handleLogDailyMetric(ctx context.Context, req *mcp.CallToolRequest, input logDailyMetricInput) (*mcp.CallToolResult, metricOutput, error) {
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, metricOutput{}, err
	}

	m := models.NewDailyMetric(date).WithSleep(input.SleepQuality, input.SleepHours)
	if input.BedTime != "" {
		m.Sleep.BedTime = &input.BedTime
	}
	if input.WakeTime != "" {
		m.Sleep.WakeTime = &input.WakeTime
	}
	m.Stress = input.Stress
	m.Energy = input.Energy
	m.Nutrition = input.Nutrition
	m.Hydration = input.Hydration
	m.Mood = input.Mood
	m.Motivation = input.Motivation
	if input.Notes != "" {
		m.WithNotes(input.Notes)
	}
	if err := m.Validate(); err != nil {
		return nil, metricOutput{}, err
	}

	stored, ok := s.tracker.UpsertDailyMetric(*m)
	if !ok {
		return nil, metricOutput{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", m.Date)
	}
	score := recovery.Score(&stored)

	return nil, metricOutput{
		Found:   true,
		Metric:  &stored,
		Score:   score,
		Message: fmt.Sprintf("Logged %s (recovery score %d/10)", stored.Date, score),
		Warning: s.persistWarning(),
	}, nil
}

func (s *Server) handleUpdateDailyMetric(ctx context.Context, req *mcp.CallToolRequest, input updateDailyMetricInput) (*mcp.CallToolResult, metricOutput, error) {
	date, err := models.ParseDate(input.Date)
	if err != nil {
		return nil, metricOutput{}, err
	}

	patch := models.DailyMetricPatch{
		SleepQuality: input.SleepQuality,
		SleepHours:   input.SleepHours,
		BedTime:      input.BedTime,
		WakeTime:     input.WakeTime,
		Stress:       input.Stress,
		Energy:       input.Energy,
		Nutrition:    input.Nutrition,
		Hydration:    input.Hydration,
		Mood:         input.Mood,
		Motivation:   input.Motivation,
		Notes:        input.Notes,
	}
	if patch.IsEmpty() {
		return nil, metricOutput{}, fmt.Errorf("no fields to update")
	}

	// Validate the merged result before touching the tracker.
	if current, ok := s.tracker.Metric(date); ok {
		patch.Apply(&current)
		if err := current.Validate(); err != nil {
			return nil, metricOutput{}, err
		}
	}

	updated, ok := s.tracker.PatchDailyMetric(date, patch)
	if !ok {
		return nil, metricOutput{
			Found:   false,
			Message: fmt.Sprintf("No check-in recorded for %s; nothing updated", date),
		}, nil
	}

	score := recovery.Score(&updated)
	return nil, metricOutput{
		Found:   true,
		Metric:  &updated,
		Score:   score,
		Message: fmt.Sprintf("Updated %s (recovery score %d/10)", date, score),
		Warning: s.persistWarning(),
	}, nil
}

func (s *Server) handleGetDailyMetric(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, metricOutput, error) {
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, metricOutput{}, err
	}

	m, ok := s.tracker.Metric(date)
	if !ok {
		return nil, metricOutput{
			Found:   false,
			Message: fmt.Sprintf("No check-in recorded for %s", date),
		}, nil
	}

	return nil, metricOutput{
		Found:   true,
		Metric:  &m,
		Score:   recovery.Score(&m),
		Message: fmt.Sprintf("Check-in for %s", date),
	}, nil
}

func (s *Server) handleGetRecoveryScore(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, scoreOutput, error) {
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, scoreOutput{}, err
	}

	day := recovery.ScoreOn(s.tracker, date)
	out := scoreOutput{
		Date:    string(day.Date),
		Score:   day.Score,
		Percent: recovery.Percent(day.Score),
		HasData: day.HasData,
	}
	if m, ok := s.tracker.Metric(date); ok {
		out.Components = recovery.Breakdown(m)
	}
	return nil, out, nil
}

func (s *Server) handleGetTrend(ctx context.Context, req *mcp.CallToolRequest, input trendInput) (*mcp.CallToolResult, trendOutput, error) {
	n := input.Days
	if n <= 0 {
		n = DefaultTrendDays
	}
	if n > maxTrendDays {
		return nil, trendOutput{}, fmt.Errorf("days must be at most %d", maxTrendDays)
	}

	snap := s.tracker.Snapshot()
	days := recovery.TrendDays(snap, n, s.today())
	scores := make([]int, len(days))
	for i, d := range days {
		scores[i] = d.Score
	}
	return nil, trendOutput{Scores: scores, Days: days}, nil
}

func (s *Server) handleGetRecommendations(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, recommendationsOutput, error) {
	snap := s.tracker.Snapshot()
	recs := recovery.Recommendations(snap)

	out := recommendationsOutput{Recommendations: recs}
	if avg, ok := recovery.RollingAverages(snap, recovery.Window); ok {
		out.Averages = &avg
	}
	switch {
	case out.Averages == nil:
		out.Message = "No check-ins recorded yet."
	case len(recs) == 0:
		out.Message = "Recovery inputs look good. Keep it up."
	default:
		out.Message = fmt.Sprintf("%d recommendation(s) from the last %d check-in(s)", len(recs), out.Averages.Days)
	}
	return nil, out, nil
}

func (s *Server) handleReportInjury(ctx context.Context, req *mcp.CallToolRequest, input reportInjuryInput) (*mcp.CallToolResult, injuryOutput, error) {
	injuryType, err := models.ParseInjuryType(input.Type)
	if err != nil {
		return nil, injuryOutput{}, err
	}
	severity, err := models.ParseSeverity(input.Severity)
	if err != nil {
		return nil, injuryOutput{}, err
	}
	occurred, err := s.dateOrToday(input.DateOccurred)
	if err != nil {
		return nil, injuryOutput{}, err
	}

	in := models.NewInjury(injuryType, severity, strings.TrimSpace(input.BodyPart)).
		WithOccurred(occurred).
		WithDescription(input.Description).
		WithTreatment(input.Treatment...)
	if input.Notes != "" {
		in.WithNotes(input.Notes)
	}
	if err := in.Validate(); err != nil {
		return nil, injuryOutput{}, err
	}

	stored := s.tracker.AddInjury(*in)
	return nil, injuryOutput{
		Injury:  newInjuryView(stored),
		Message: fmt.Sprintf("Reported %s %s injury (ID: %s)", stored.Severity, stored.BodyPart, stored.ID.String()[:8]),
		Warning: s.persistWarning(),
	}, nil
}

func (s *Server) handleUpdateInjury(ctx context.Context, req *mcp.CallToolRequest, input updateInjuryInput) (*mcp.CallToolResult, injuryOutput, error) {
	found, err := s.tracker.FindInjury(input.ID)
	if err != nil {
		return nil, injuryOutput{}, err
	}

	var patch models.InjuryPatch
	if input.Status != "" {
		status, err := models.ParseInjuryStatus(input.Status)
		if err != nil {
			return nil, injuryOutput{}, err
		}
		patch.Status = &status
	}
	if input.Severity != "" {
		severity, err := models.ParseSeverity(input.Severity)
		if err != nil {
			return nil, injuryOutput{}, err
		}
		patch.Severity = &severity
	}
	if input.DateResolved != "" {
		resolved, err := models.ParseDate(input.DateResolved)
		if err != nil {
			return nil, injuryOutput{}, err
		}
		patch.DateResolved = &resolved
	}
	if input.Description != "" {
		patch.Description = &input.Description
	}
	if input.Treatment != nil {
		patch.Treatment = input.Treatment
	}
	if input.Notes != "" {
		patch.Notes = &input.Notes
	}

	merged := found.Clone()
	patch.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return nil, injuryOutput{}, err
	}

	updated, ok := s.tracker.PatchInjury(found.ID, patch)
	if !ok {
		return nil, injuryOutput{}, fmt.Errorf("injury %s disappeared during update", found.ID)
	}
	return nil, injuryOutput{
		Injury:  newInjuryView(updated),
		Message: fmt.Sprintf("Updated %s injury (status: %s)", updated.BodyPart, updated.Status),
		Warning: s.persistWarning(),
	}, nil
}

func (s *Server) handleListInjuries(ctx context.Context, req *mcp.CallToolRequest, input listInjuriesInput) (*mcp.CallToolResult, injuriesOutput, error) {
	injuries := s.tracker.ActiveInjuries()
	if input.IncludeResolved {
		injuries = s.tracker.Injuries()
	}
	views := injuryViews(injuries)
	return nil, injuriesOutput{Injuries: views, Count: len(views)}, nil
}
