/**
 * @description
 * Auto-response rule matching for inbound chat messages. Pure selector:
 * at most one rule is chosen, first match wins in priority order.
 */
package billing

import (
	"sort"
	"strings"

	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

// Match selects the auto-response rule triggered by an inbound message, or
// nil when none applies.
//
// Inactive rules are ignored. Candidates are evaluated by priority
// descending, ties broken by earliest CreatedAt, so the outcome is
// deterministic. Within a rule, the first keyword that matches suffices;
// no further rules are evaluated after a hit. Keyword comparison is
// case-insensitive on the trimmed message.
func Match(messageText string, rules []domain.AutoResponseRule) *domain.AutoResponseRule {
	candidates := make([]domain.AutoResponseRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			candidates = append(candidates, r)
		}
	}

	// The linear scan is intentional: priority and tie-break ordering are
	// semantically essential, and rule sets stay small.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	message := strings.ToLower(strings.TrimSpace(messageText))

	for i := range candidates {
		if ruleMatches(candidates[i], message) {
			return &candidates[i]
		}
	}
	return nil
}

func ruleMatches(rule domain.AutoResponseRule, message string) bool {
	for _, keyword := range rule.TriggerKeywords {
		kw := strings.ToLower(strings.TrimSpace(keyword))
		if kw == "" {
			continue
		}
		switch rule.MatchType {
		case domain.MatchContains:
			if strings.Contains(message, kw) {
				return true
			}
		case domain.MatchExact:
			if message == kw {
				return true
			}
		case domain.MatchStartsWith:
			if strings.HasPrefix(message, kw) {
				return true
			}
		case domain.MatchEndsWith:
			if strings.HasSuffix(message, kw) {
				return true
			}
		}
	}
	return false
}
