/**
 * @description
 * This file defines the core client model and its status enumeration.
 * Client status is derived data: it is recomputed from payment history
 * by the billing engine and written back, never edited directly.
 */
package domain

import "fmt"

// ClientStatus is the closed set of statuses a client can hold.
type ClientStatus string

const (
	StatusActive   ClientStatus = "active"
	StatusInactive ClientStatus = "inactive"
)

// Valid reports whether the status is one of the known values.
func (s ClientStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// ParseClientStatus converts a raw string into a ClientStatus, rejecting
// anything outside the closed set.
func ParseClientStatus(raw string) (ClientStatus, error) {
	s := ClientStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown client status %q", raw)
	}
	return s, nil
}

// Client represents a billed customer owned by a user account.
// DueDay is the day-of-month (1-31) the recurring payment is expected.
type Client struct {
	ID     string       `json:"id"`
	UserID string       `json:"user_id"`
	Name   string       `json:"name"`
	Phone  string       `json:"phone"`
	DueDay int          `json:"due_day"`
	Status ClientStatus `json:"status"`
}
