/**
 * @description
 * Payment records, one per (client, month, year) billing cycle.
 */
package domain

import "time"

// PaymentStatus is the closed set of states a payment can be in.
type PaymentStatus string

const (
	PaymentPaid        PaymentStatus = "paid"
	PaymentPaidOnTrust PaymentStatus = "paid_on_trust"
	PaymentUnpaid      PaymentStatus = "unpaid"
)

// Covers reports whether the payment status settles its billing cycle.
// A payment taken on trust counts the same as a confirmed one.
func (s PaymentStatus) Covers() bool {
	return s == PaymentPaid || s == PaymentPaidOnTrust
}

// Payment represents one billing cycle's payment record for a client.
// At most one row is expected per (client, month, year); the engine only
// tests for the existence of a covering row, so duplicates do not change
// the outcome.
type Payment struct {
	ID       string        `json:"id"`
	ClientID string        `json:"client_id"`
	Month    int           `json:"month"` // 1-12
	Year     int           `json:"year"`
	Status   PaymentStatus `json:"status"`
	PaidAt   *time.Time    `json:"paid_at,omitempty"`
}
