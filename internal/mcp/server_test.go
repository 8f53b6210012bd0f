// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Calls tool and resource handlers directly against an in-memory tracker.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/storage"
	"github.com/harperreed/recovery/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const testToday = models.Date("2025-03-10")

// setupTestServer creates a server over a fresh in-memory tracker.
func setupTestServer(t *testing.T, opts ...tracker.Option) (*Server, *tracker.Tracker, *storage.Memory) {
	t.Helper()

	mem := storage.NewMemory()
	tr := tracker.New(mem, opts...)
	tr.Load()

	server, err := NewServer(tr, WithToday(func() models.Date { return testToday }))
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, tr, mem
}

func validLogInput(date string) logDailyMetricInput {
	return logDailyMetricInput{
		Date:         date,
		SleepQuality: 8,
		SleepHours:   8,
		Stress:       3,
		Energy:       8,
		Nutrition:    8,
		Hydration:    8,
		Mood:         8,
		Motivation:   8,
	}
}

func TestNewServer(t *testing.T) {
	server, _, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.tracker == nil {
		t.Error("Expected non-nil tracker")
	}
}

func TestHandleLogDailyMetric(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		input     logDailyMetricInput
		wantErr   bool
		errSubstr string
		wantDate  models.Date
	}{
		{
			name:     "explicit date",
			input:    validLogInput("2025-03-09"),
			wantDate: "2025-03-09",
		},
		{
			name:     "defaults to today",
			input:    validLogInput(""),
			wantDate: testToday,
		},
		{
			name: "with times and notes",
			input: func() logDailyMetricInput {
				in := validLogInput("2025-03-08")
				in.BedTime = "22:30"
				in.WakeTime = "06:30"
				in.Notes = "long run"
				return in
			}(),
			wantDate: "2025-03-08",
		},
		{
			name:      "invalid date",
			input:     validLogInput("March 9"),
			wantErr:   true,
			errSubstr: "March 9",
		},
		{
			name: "rating out of range",
			input: func() logDailyMetricInput {
				in := validLogInput("2025-03-09")
				in.Stress = 0
				return in
			}(),
			wantErr:   true,
			errSubstr: "stress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, tr, _ := setupTestServer(t)

			_, output, err := server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				if len(tr.Metrics()) != 0 {
					t.Error("Expected nothing stored on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !output.Found || output.Metric == nil {
				t.Fatal("Expected stored metric in output")
			}
			if output.Metric.Date != tt.wantDate {
				t.Errorf("Date = %s, want %s", output.Metric.Date, tt.wantDate)
			}
			if _, ok := tr.Metric(tt.wantDate); !ok {
				t.Error("Expected metric in tracker")
			}
			if output.Warning != "" {
				t.Errorf("Unexpected warning: %s", output.Warning)
			}
		})
	}
}

func TestHandleLogDailyMetricReplaces(t *testing.T) {
	server, tr, _ := setupTestServer(t)
	ctx := context.Background()

	first := validLogInput("2025-03-09")
	second := validLogInput("2025-03-09")
	second.Stress = 9

	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, first)
	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, second)

	if n := len(tr.Metrics()); n != 1 {
		t.Fatalf("Expected 1 metric, got %d", n)
	}
	m, _ := tr.Metric("2025-03-09")
	if m.Stress != 9 {
		t.Errorf("Stress = %d, want 9", m.Stress)
	}
}

func TestHandleLogDailyMetricPersistWarning(t *testing.T) {
	server, tr, mem := setupTestServer(t)
	mem.FailWith(errors.New("disk gone"))

	_, output, err := server.handleLogDailyMetric(context.Background(), &mcp.CallToolRequest{}, validLogInput("2025-03-09"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output.Warning, "disk gone") {
		t.Errorf("Expected persistence warning, got %q", output.Warning)
	}
	if _, ok := tr.Metric("2025-03-09"); !ok {
		t.Error("Expected metric kept in memory")
	}
}

func TestHandleUpdateDailyMetric(t *testing.T) {
	server, tr, _ := setupTestServer(t)
	ctx := context.Background()
	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, validLogInput("2025-03-09"))

	stress := 7
	notes := "work deadline"
	_, output, err := server.handleUpdateDailyMetric(ctx, &mcp.CallToolRequest{}, updateDailyMetricInput{
		Date:   "2025-03-09",
		Stress: &stress,
		Notes:  &notes,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !output.Found {
		t.Fatal("Expected Found")
	}

	m, _ := tr.Metric("2025-03-09")
	if m.Stress != 7 || m.Notes == nil || *m.Notes != notes {
		t.Errorf("Patch not applied: %+v", m)
	}
	if m.Energy != 8 {
		t.Errorf("Energy changed to %d", m.Energy)
	}
}

func TestHandleUpdateDailyMetricMissing(t *testing.T) {
	server, tr, _ := setupTestServer(t)
	stress := 7

	_, output, err := server.handleUpdateDailyMetric(context.Background(), &mcp.CallToolRequest{}, updateDailyMetricInput{
		Date:   "2025-03-09",
		Stress: &stress,
	})
	if err != nil {
		t.Fatalf("Missing day should not be an error: %v", err)
	}
	if output.Found {
		t.Error("Expected Found=false")
	}
	if len(tr.Metrics()) != 0 {
		t.Error("Expected no metric created")
	}
}

func TestHandleUpdateDailyMetricRejects(t *testing.T) {
	server, tr, _ := setupTestServer(t)
	ctx := context.Background()
	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, validLogInput("2025-03-09"))

	if _, _, err := server.handleUpdateDailyMetric(ctx, &mcp.CallToolRequest{}, updateDailyMetricInput{Date: "2025-03-09"}); err == nil {
		t.Error("Expected error for empty update")
	}

	bad := 11
	if _, _, err := server.handleUpdateDailyMetric(ctx, &mcp.CallToolRequest{}, updateDailyMetricInput{Date: "2025-03-09", Mood: &bad}); err == nil {
		t.Error("Expected error for out of range mood")
	}
	m, _ := tr.Metric("2025-03-09")
	if m.Mood != 8 {
		t.Errorf("Mood = %d, invalid patch should not apply", m.Mood)
	}
}

func TestHandleGetDailyMetric(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	_, output, err := server.handleGetDailyMetric(ctx, &mcp.CallToolRequest{}, dateInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Found || output.Metric != nil {
		t.Error("Expected not found on empty tracker")
	}

	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, validLogInput(""))
	_, output, _ = server.handleGetDailyMetric(ctx, &mcp.CallToolRequest{}, dateInput{})
	if !output.Found || output.Metric.Date != testToday {
		t.Errorf("Expected today's metric, got %+v", output)
	}
}

func TestHandleGetRecoveryScore(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	_, empty, err := server.handleGetRecoveryScore(ctx, &mcp.CallToolRequest{}, dateInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if empty.Score != 0 || empty.HasData {
		t.Errorf("Expected zero score without data, got %+v", empty)
	}

	in := validLogInput("")
	in.SleepQuality, in.Stress, in.Energy, in.Nutrition, in.Hydration, in.Mood = 10, 1, 10, 10, 10, 10
	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, in)

	_, output, _ := server.handleGetRecoveryScore(ctx, &mcp.CallToolRequest{}, dateInput{Date: string(testToday)})
	if output.Score != 10 || output.Percent != 100 || !output.HasData {
		t.Errorf("Expected full score, got %+v", output)
	}
	if output.Components.Total() < 9.8 {
		t.Errorf("Expected components to sum near 10, got %f", output.Components.Total())
	}
}

func TestHandleGetTrend(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()
	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, validLogInput(""))

	tests := []struct {
		name    string
		days    int
		wantLen int
		wantErr bool
	}{
		{"default", 0, DefaultTrendDays, false},
		{"five", 5, 5, false},
		{"one", 1, 1, false},
		{"too many", maxTrendDays + 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleGetTrend(ctx, &mcp.CallToolRequest{}, trendInput{Days: tt.days})
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(output.Scores) != tt.wantLen || len(output.Days) != tt.wantLen {
				t.Fatalf("Expected %d entries, got %d scores and %d days", tt.wantLen, len(output.Scores), len(output.Days))
			}
			for i, s := range output.Scores[:tt.wantLen-1] {
				if s != 0 {
					t.Errorf("Scores[%d] = %d, want 0", i, s)
				}
			}
			last := output.Days[tt.wantLen-1]
			if last.Date != testToday || !last.HasData || last.Score == 0 {
				t.Errorf("Expected today's score last, got %+v", last)
			}
		})
	}
}

func TestHandleGetRecommendations(t *testing.T) {
	server, _, _ := setupTestServer(t)
	ctx := context.Background()

	_, empty, err := server.handleGetRecommendations(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(empty.Recommendations) != 0 || empty.Averages != nil {
		t.Errorf("Expected no recommendations on empty tracker, got %+v", empty)
	}

	in := validLogInput("")
	in.Hydration = 3
	in.Stress = 9
	server.handleLogDailyMetric(ctx, &mcp.CallToolRequest{}, in)

	_, output, _ := server.handleGetRecommendations(ctx, &mcp.CallToolRequest{}, struct{}{})
	if len(output.Recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d", len(output.Recommendations))
	}
	if output.Recommendations[0].Type != models.RecommendStress || output.Recommendations[1].Type != models.RecommendHydration {
		t.Errorf("Unexpected order: %+v", output.Recommendations)
	}
	if output.Averages == nil || output.Averages.Days != 1 {
		t.Errorf("Expected averages over 1 day, got %+v", output.Averages)
	}
}

func TestHandleReportInjury(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		input     reportInjuryInput
		wantErr   bool
		errSubstr string
	}{
		{
			name: "valid",
			input: reportInjuryInput{
				Type:         "acute",
				Severity:     "moderate",
				BodyPart:     "left ankle",
				DateOccurred: "2025-03-01",
				Description:  "rolled on trail",
				Treatment:    []string{"ice", "compression"},
			},
		},
		{
			name:  "case insensitive enums and default date",
			input: reportInjuryInput{Type: "Overuse", Severity: "MINOR", BodyPart: "knee"},
		},
		{
			name:      "bad type",
			input:     reportInjuryInput{Type: "sudden", Severity: "minor", BodyPart: "knee"},
			wantErr:   true,
			errSubstr: "unknown type",
		},
		{
			name:      "bad severity",
			input:     reportInjuryInput{Type: "acute", Severity: "huge", BodyPart: "knee"},
			wantErr:   true,
			errSubstr: "unknown severity",
		},
		{
			name:      "missing body part",
			input:     reportInjuryInput{Type: "acute", Severity: "minor", BodyPart: "  "},
			wantErr:   true,
			errSubstr: "body part",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, tr, _ := setupTestServer(t)

			_, output, err := server.handleReportInjury(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Expected error containing %q, got %q", tt.errSubstr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if output.Injury.ID == "" || output.Injury.Status != string(models.StatusActive) {
				t.Errorf("Unexpected injury: %+v", output.Injury)
			}
			if len(tr.ActiveInjuries()) != 1 {
				t.Error("Expected one active injury")
			}
		})
	}
}

func TestHandleReportInjuryDefaultsToToday(t *testing.T) {
	server, _, _ := setupTestServer(t)

	_, output, err := server.handleReportInjury(context.Background(), &mcp.CallToolRequest{}, reportInjuryInput{
		Type: "acute", Severity: "minor", BodyPart: "wrist",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Injury.DateOccurred != string(testToday) {
		t.Errorf("DateOccurred = %s, want %s", output.Injury.DateOccurred, testToday)
	}
}

func TestHandleUpdateInjury(t *testing.T) {
	server, tr, _ := setupTestServer(t)
	ctx := context.Background()

	_, reported, _ := server.handleReportInjury(ctx, &mcp.CallToolRequest{}, reportInjuryInput{
		Type: "acute", Severity: "moderate", BodyPart: "calf", DateOccurred: "2025-03-01",
	})
	prefix := reported.Injury.ID[:8]

	_, output, err := server.handleUpdateInjury(ctx, &mcp.CallToolRequest{}, updateInjuryInput{
		ID:           prefix,
		Status:       "resolved",
		DateResolved: "2025-03-09",
		Treatment:    []string{"physio"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Injury.Status != "resolved" || output.Injury.DateResolved != "2025-03-09" {
		t.Errorf("Unexpected injury: %+v", output.Injury)
	}
	if len(tr.ActiveInjuries()) != 0 {
		t.Error("Expected resolved injury to leave the active list")
	}
}

func TestHandleUpdateInjuryErrors(t *testing.T) {
	server, tr, _ := setupTestServer(t)
	ctx := context.Background()

	_, reported, _ := server.handleReportInjury(ctx, &mcp.CallToolRequest{}, reportInjuryInput{
		Type: "acute", Severity: "moderate", BodyPart: "calf", DateOccurred: "2025-03-05",
	})

	tests := []struct {
		name    string
		input   updateInjuryInput
		wantErr error
	}{
		{"unknown id", updateInjuryInput{ID: "ffffffff", Status: "resolved"}, tracker.ErrInjuryNotFound},
		{"bad status", updateInjuryInput{ID: reported.Injury.ID, Status: "healed"}, models.ErrInvalidInjury},
		{"resolved before occurred", updateInjuryInput{ID: reported.Injury.ID, DateResolved: "2025-03-01"}, models.ErrInvalidInjury},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleUpdateInjury(ctx, &mcp.CallToolRequest{}, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	in := tr.Injuries()[0]
	if in.Status != models.StatusActive || in.DateResolved != nil {
		t.Errorf("Failed updates changed the injury: %+v", in)
	}
}

func TestHandleListInjuries(t *testing.T) {
	server, _, _ := setupTestServer(t, tracker.WithSeed(tracker.SampleSeed(testToday)))
	ctx := context.Background()

	_, active, err := server.handleListInjuries(ctx, &mcp.CallToolRequest{}, listInjuriesInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if active.Count != 1 || active.Injuries[0].Status == string(models.StatusResolved) {
		t.Errorf("Expected one open injury, got %+v", active)
	}

	_, all, _ := server.handleListInjuries(ctx, &mcp.CallToolRequest{}, listInjuriesInput{IncludeResolved: true})
	if all.Count != 2 {
		t.Errorf("Expected 2 injuries, got %d", all.Count)
	}
}

func readResource(t *testing.T, fn func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error), uri string) map[string]any {
	t.Helper()

	result, err := fn(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource handler failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("Expected 1 content, got %d", len(result.Contents))
	}
	content := result.Contents[0]
	if content.URI != uri {
		t.Errorf("URI = %s, want %s", content.URI, uri)
	}
	if content.MIMEType != "application/json" {
		t.Errorf("MIMEType = %s", content.MIMEType)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(content.Text), &data); err != nil {
		t.Fatalf("Failed to parse resource JSON: %v", err)
	}
	return data
}

func TestTodayResource(t *testing.T) {
	server, _, _ := setupTestServer(t, tracker.WithSeed(tracker.SampleSeed(testToday)))

	data := readResource(t, server.handleTodayResource, todayURI)

	if data["date"] != string(testToday) {
		t.Errorf("date = %v", data["date"])
	}
	if data["has_data"] != true {
		t.Error("Expected has_data for seeded today")
	}
	if data["metric"] == nil {
		t.Error("Expected today's metric")
	}
	if data["active_injuries"] != float64(1) {
		t.Errorf("active_injuries = %v, want 1", data["active_injuries"])
	}
	if _, ok := data["recommendations"].([]any); !ok {
		t.Errorf("Expected recommendations array, got %T", data["recommendations"])
	}
}

func TestTodayResourceEmpty(t *testing.T) {
	server, _, _ := setupTestServer(t)

	data := readResource(t, server.handleTodayResource, todayURI)

	if data["has_data"] != false || data["score"] != float64(0) {
		t.Errorf("Expected empty today, got %v", data)
	}
	if data["metric"] != nil {
		t.Errorf("Expected null metric, got %v", data["metric"])
	}
}

func TestTrendResource(t *testing.T) {
	server, _, _ := setupTestServer(t, tracker.WithSeed(tracker.SampleSeed(testToday)))

	data := readResource(t, server.handleTrendResource, trendURI)

	scores, ok := data["scores"].([]any)
	if !ok || len(scores) != DefaultTrendDays {
		t.Fatalf("Expected %d scores, got %v", DefaultTrendDays, data["scores"])
	}
	if data["days_logged"] != float64(7) {
		t.Errorf("days_logged = %v, want 7", data["days_logged"])
	}
}

func TestActiveInjuriesResource(t *testing.T) {
	server, _, _ := setupTestServer(t, tracker.WithSeed(tracker.SampleSeed(testToday)))

	data := readResource(t, server.handleActiveInjuriesResource, activeInjuriesURI)

	if data["count"] != float64(1) {
		t.Errorf("count = %v, want 1", data["count"])
	}
	injuries := data["injuries"].([]any)
	first := injuries[0].(map[string]any)
	if first["body_part"] != "left hamstring" {
		t.Errorf("body_part = %v", first["body_part"])
	}
}
