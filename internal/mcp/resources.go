// ABOUTME: MCP resource implementations for recovery data.
// ABOUTME: Provides recovery://today, recovery://trend, and recovery://injuries/active resources.
package mcp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/harperreed/recovery/internal/models"
	"github.com/harperreed/recovery/internal/recovery"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI          = "recovery://today"
	trendURI          = "recovery://trend"
	activeInjuriesURI = "recovery://injuries/active"
)

func (s *Server) registerResources() {
	// recovery://today - today's check-in, score and recommendations
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Recovery",
		Description: "Today's check-in, recovery score, and current recommendations",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// recovery://trend - trailing week of scores
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         trendURI,
		Name:        "Recovery Trend",
		Description: "Daily recovery scores for the last 7 days, oldest first",
		MIMEType:    "application/json",
	}, s.handleTrendResource)

	// recovery://injuries/active - open injuries
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         activeInjuriesURI,
		Name:        "Active Injuries",
		Description: "Injuries that are active or recovering",
		MIMEType:    "application/json",
	}, s.handleActiveInjuriesResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	snap := s.tracker.Snapshot()
	today := s.today()
	day := recovery.ScoreOn(snap, today)

	var metric *models.DailyMetric
	if m, ok := snap.Metric(today); ok {
		metric = &m
	}

	result := map[string]any{
		"date":            today,
		"metric":          metric,
		"score":           day.Score,
		"percent":         recovery.Percent(day.Score),
		"has_data":        day.HasData,
		"recommendations": recovery.Recommendations(snap),
		"active_injuries": len(snap.ActiveInjuries()),
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleTrendResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	days := recovery.TrendDays(s.tracker.Snapshot(), DefaultTrendDays, s.today())

	logged := 0
	scores := make([]int, len(days))
	for i, d := range days {
		scores[i] = d.Score
		if d.HasData {
			logged++
		}
	}

	result := map[string]any{
		"days":        days,
		"scores":      scores,
		"days_logged": logged,
	}
	return jsonResource(trendURI, result)
}

func (s *Server) handleActiveInjuriesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	views := injuryViews(s.tracker.ActiveInjuries())
	result := map[string]any{
		"injuries": views,
		"count":    len(views),
	}
	return jsonResource(activeInjuriesURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
