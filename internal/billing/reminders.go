/**
 * @description
 * Reminder plan computation for one client and one billing cycle.
 * Pure function over already-loaded data: the caller persists the returned
 * messages and owns all store interaction.
 */
package billing

import (
	"time"

	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

// ValidateOffsets checks a user's configured reminder offsets. Offsets are
// day counts relative to the due date and must be positive; the sign is
// applied by the plan, not by configuration.
func ValidateOffsets(settings domain.BillingSettings) error {
	for _, d := range settings.SendBeforeDays {
		if d < 1 {
			return domain.ErrInvalidOffset
		}
	}
	for _, d := range settings.SendAfterDays {
		if d < 1 {
			return domain.ErrInvalidOffset
		}
	}
	return nil
}

// ComputeReminders builds the set of reminder messages for a client for the
// calendar month containing now.
//
// The due date is date(currentYear, currentMonth, dueDay) in now's location;
// a due day beyond the month's length rolls into the next month, mirroring
// the calendar normalization the rest of the system relies on.
//
// Cutoff rules, compared on civil dates:
//   - before-offsets are emitted only when the reminder date is strictly in
//     the future (no back-filling);
//   - the on-due reminder is emitted when the due date is today or later;
//   - after-offsets are always emitted, even when already past, since an
//     elapsed grace period is still actionable.
func ComputeReminders(client domain.Client, settings domain.BillingSettings, now time.Time) ([]domain.ScheduledMessage, error) {
	if client.DueDay < 1 || client.DueDay > 31 {
		return nil, domain.ErrInvalidDueDay
	}

	today := CivilDate(now)
	dueDate := time.Date(now.Year(), now.Month(), client.DueDay, 0, 0, 0, 0, now.Location())

	var messages []domain.ScheduledMessage

	for _, days := range settings.SendBeforeDays {
		reminderDate := dueDate.AddDate(0, 0, -days)
		if !reminderDate.After(today) {
			continue
		}
		messages = append(messages, reminder(client.ID, reminderDate, settings.TemplateBeforeID, -days))
	}

	if settings.SendOnDueDate && !dueDate.Before(today) {
		messages = append(messages, reminder(client.ID, dueDate, settings.TemplateOnDueID, 0))
	}

	for _, days := range settings.SendAfterDays {
		reminderDate := dueDate.AddDate(0, 0, days)
		messages = append(messages, reminder(client.ID, reminderDate, settings.TemplateAfterID, days))
	}

	return messages, nil
}

func reminder(clientID string, at time.Time, templateID *string, offset int) domain.ScheduledMessage {
	return domain.ScheduledMessage{
		ClientID:    clientID,
		MessageType: domain.MessageTypePaymentReminder,
		ScheduledAt: at,
		TemplateID:  templateID,
		DaysOffset:  offset,
	}
}
