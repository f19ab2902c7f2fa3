/**
 * @description
 * Auto-response rules matched against inbound chat messages.
 */
package domain

import "time"

// MatchType is the closed set of keyword matching strategies.
type MatchType string

const (
	MatchContains   MatchType = "contains"
	MatchExact      MatchType = "exact"
	MatchStartsWith MatchType = "starts_with"
	MatchEndsWith   MatchType = "ends_with"
)

// AutoResponseRule defines one automated reply trigger. Rules are evaluated
// in priority order (highest first); among equal priorities the rule created
// earliest wins.
type AutoResponseRule struct {
	ID               string    `json:"id"`
	TriggerKeywords  []string  `json:"trigger_keywords"`
	MatchType        MatchType `json:"match_type"`
	Priority         int       `json:"priority"`
	IsActive         bool      `json:"is_active"`
	ResponseTemplate string    `json:"response_template"`
	CreatedAt        time.Time `json:"created_at"`
}
