/**
 * @description
 * Clock abstraction so all time-dependent decision logic is reproducible
 * in tests. Production code injects SystemClock; tests inject a fixed one.
 */
package billing

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the wall clock.
func SystemClock() Clock { return systemClock{} }

// CivilDate truncates an instant to midnight of its calendar day, keeping
// the location. Due-day comparisons are civil-date based, not UTC-instant
// based.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
