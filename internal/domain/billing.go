/**
 * @description
 * Billing configuration and scheduled reminder models.
 * BillingSettings is read-only to the scheduler; ScheduledMessage rows are
 * append-only from the engine's perspective and are consumed by a
 * downstream dispatcher.
 */
package domain

import "time"

// MessageType identifies the kind of scheduled outbound message.
type MessageType string

const MessageTypePaymentReminder MessageType = "payment_reminder"

// BillingSettings holds a user's reminder configuration. One row per user.
type BillingSettings struct {
	UserID           string  `json:"user_id"`
	SendBeforeDays   []int   `json:"send_before_days"`
	SendOnDueDate    bool    `json:"send_on_due_date"`
	SendAfterDays    []int   `json:"send_after_days"`
	TemplateBeforeID *string `json:"template_before_id,omitempty"`
	TemplateOnDueID  *string `json:"template_on_due_id,omitempty"`
	TemplateAfterID  *string `json:"template_after_id,omitempty"`
	IsActive         bool    `json:"is_active"`
}

// ScheduledMessage is one reminder queued for a client.
// DaysOffset is relative to the due date: negative = before, 0 = on the due
// date, positive = after.
type ScheduledMessage struct {
	ID          string      `json:"id"`
	ClientID    string      `json:"client_id"`
	MessageType MessageType `json:"message_type"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	TemplateID  *string     `json:"template_id,omitempty"`
	DaysOffset  int         `json:"days_offset"`
}
