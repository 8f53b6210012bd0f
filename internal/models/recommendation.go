// ABOUTME: Recommendation model produced fresh by the recommendation engine.
// ABOUTME: Recommendations are never persisted.
package models

// RecommendationType names the area a recommendation addresses.
type RecommendationType string

const (
	RecommendSleep     RecommendationType = "sleep"
	RecommendNutrition RecommendationType = "nutrition"
	RecommendHydration RecommendationType = "hydration"
	RecommendStress    RecommendationType = "stress"
	RecommendRest      RecommendationType = "rest"
	RecommendActivity  RecommendationType = "activity"
)

// Priority orders recommendations; higher ranks sort first.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns 2 for high, 1 for medium and 0 for low or unknown.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Recommendation is one actionable suggestion.
type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Priority    Priority           `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	ActionItems []string           `json:"action_items"`
}
