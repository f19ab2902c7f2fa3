/**
 * @description
 * Client status engine. Derives a client's active/inactive status from its
 * payment history and due day. Pure function, no side effects; callers
 * re-evaluate it whenever the due day or a payment status changes.
 */
package billing

import (
	"time"

	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

// DetermineStatus computes a client's status at the given instant.
//
// A client is active when the current cycle is covered, or when the previous
// cycle is covered and the current day-of-month has not yet passed the
// client's due day. The latter is the one-cycle grace window: a client who
// paid last cycle stays active up to and including the due day of the new
// cycle.
func DetermineStatus(client domain.Client, payments []domain.Payment, now time.Time) domain.ClientStatus {
	currentMonth := int(now.Month())
	currentYear := now.Year()

	previousMonth := currentMonth - 1
	previousYear := currentYear
	if previousMonth == 0 {
		previousMonth = 12
		previousYear--
	}

	if hasCoveringPayment(payments, currentMonth, currentYear) {
		return domain.StatusActive
	}
	if hasCoveringPayment(payments, previousMonth, previousYear) && now.Day() <= client.DueDay {
		return domain.StatusActive
	}
	return domain.StatusInactive
}

// hasCoveringPayment tests for the existence of any covering row for the
// cycle. Existence, not recency, is what matters: duplicate rows for the
// same cycle do not change the outcome.
func hasCoveringPayment(payments []domain.Payment, month, year int) bool {
	for _, p := range payments {
		if p.Month == month && p.Year == year && p.Status.Covers() {
			return true
		}
	}
	return false
}
