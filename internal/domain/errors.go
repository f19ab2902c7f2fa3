/**
 * @description
 * Sentinel errors shared across layers. The API layer maps these to HTTP
 * status codes with errors.Is.
 */
package domain

import "errors"

var (
	// ErrBillingSettingsNotFound means the user never configured billing
	// reminders. Requires user action, not a retry.
	ErrBillingSettingsNotFound = errors.New("billing settings not found")

	// ErrBillingSettingsInactive means reminders are configured but switched
	// off for the user.
	ErrBillingSettingsInactive = errors.New("billing settings are inactive")

	// ErrInvalidDueDay means a client's due day falls outside 1-31.
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidOffset means a configured before/after offset is not a
	// positive day count.
	ErrInvalidOffset = errors.New("reminder offsets must be positive day counts")

	// ErrClientNotFound means the requested client does not exist.
	ErrClientNotFound = errors.New("client not found")
)
