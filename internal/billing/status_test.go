package billing

import (
	"testing"
	"time"

	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func payment(month, year int, status domain.PaymentStatus) domain.Payment {
	return domain.Payment{ClientID: "client-1", Month: month, Year: year, Status: status}
}

func TestDetermineStatus_CurrentMonthPaid(t *testing.T) {
	client := domain.Client{ID: "client-1", DueDay: 10}
	payments := []domain.Payment{payment(6, 2025, domain.PaymentPaid)}

	// Paid this cycle keeps the client active regardless of the due day.
	got := DetermineStatus(client, payments, date(2025, time.June, 25))
	if got != domain.StatusActive {
		t.Fatalf("expected active, got %q", got)
	}
}

func TestDetermineStatus_CurrentMonthPaidOnTrust(t *testing.T) {
	client := domain.Client{ID: "client-1", DueDay: 10}
	payments := []domain.Payment{payment(6, 2025, domain.PaymentPaidOnTrust)}

	got := DetermineStatus(client, payments, date(2025, time.June, 25))
	if got != domain.StatusActive {
		t.Fatalf("expected active for paid_on_trust, got %q", got)
	}
}

func TestDetermineStatus_GraceWindowBoundary(t *testing.T) {
	client := domain.Client{ID: "client-1", DueDay: 10}
	payments := []domain.Payment{payment(5, 2025, domain.PaymentPaid)}

	tests := []struct {
		name string
		now  time.Time
		want domain.ClientStatus
	}{
		{name: "on due day", now: date(2025, time.June, 10), want: domain.StatusActive},
		{name: "day after due day", now: date(2025, time.June, 11), want: domain.StatusInactive},
		{name: "before due day", now: date(2025, time.June, 1), want: domain.StatusActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetermineStatus(client, payments, tt.now)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetermineStatus_JanuaryLooksAtPreviousDecember(t *testing.T) {
	client := domain.Client{ID: "client-1", DueDay: 15}
	payments := []domain.Payment{payment(12, 2024, domain.PaymentPaid)}

	got := DetermineStatus(client, payments, date(2025, time.January, 10))
	if got != domain.StatusActive {
		t.Fatalf("expected December payment to cover January grace window, got %q", got)
	}

	got = DetermineStatus(client, payments, date(2025, time.January, 16))
	if got != domain.StatusInactive {
		t.Fatalf("expected inactive after January due day, got %q", got)
	}
}

func TestDetermineStatus_NoCoveringPayments(t *testing.T) {
	client := domain.Client{ID: "client-1", DueDay: 28}
	payments := []domain.Payment{
		payment(6, 2025, domain.PaymentUnpaid),
		payment(5, 2025, domain.PaymentUnpaid),
		payment(3, 2025, domain.PaymentPaid), // too old to matter
	}

	got := DetermineStatus(client, payments, date(2025, time.June, 5))
	if got != domain.StatusInactive {
		t.Fatalf("expected inactive, got %q", got)
	}
}

func TestDetermineStatus_DuplicateRowsForSameCycle(t *testing.T) {
	client := domain.Client{ID: "client-1", DueDay: 10}
	payments := []domain.Payment{
		payment(6, 2025, domain.PaymentUnpaid),
		payment(6, 2025, domain.PaymentPaid),
	}

	// Existence of any covering row decides, not the latest row.
	got := DetermineStatus(client, payments, date(2025, time.June, 20))
	if got != domain.StatusActive {
		t.Fatalf("expected active with any covering duplicate row, got %q", got)
	}
}

func TestDetermineStatus_EmptyHistory(t *testing.T) {
	client := domain.Client{ID: "client-1", DueDay: 10}

	got := DetermineStatus(client, nil, date(2025, time.June, 1))
	if got != domain.StatusInactive {
		t.Fatalf("expected inactive with no payments, got %q", got)
	}
}
