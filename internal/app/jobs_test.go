package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/yagomat/supra-client-nexus-sub001/internal/config"
	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

type schedulerStub struct {
	results map[string]*ScheduleResult
	errs    map[string]error
	calls   []string
}

func (s *schedulerStub) ScheduleReminders(ctx context.Context, userID string) (*ScheduleResult, error) {
	s.calls = append(s.calls, userID)
	if err := s.errs[userID]; err != nil {
		return nil, err
	}
	if r, ok := s.results[userID]; ok {
		return r, nil
	}
	return &ScheduleResult{}, nil
}

type jobsRepoStub struct {
	userIDs    []string
	userIDsErr error
	clients    map[string][]domain.Client
	payments   map[string][]domain.Payment

	statusUpdates map[string]domain.ClientStatus
}

func (s *jobsRepoStub) ListUserIDsWithActiveBillingSettings(ctx context.Context) ([]string, error) {
	if s.userIDsErr != nil {
		return nil, s.userIDsErr
	}
	return s.userIDs, nil
}

func (s *jobsRepoStub) ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	return s.clients[userID], nil
}

func (s *jobsRepoStub) ListPaymentsByClient(ctx context.Context, clientID string) ([]domain.Payment, error) {
	return s.payments[clientID], nil
}

func (s *jobsRepoStub) UpdateClientStatus(ctx context.Context, clientID string, status domain.ClientStatus) error {
	if s.statusUpdates == nil {
		s.statusUpdates = make(map[string]domain.ClientStatus)
	}
	s.statusUpdates[clientID] = status
	return nil
}

type producerStub struct {
	published []string
	err       error
}

func (p *producerStub) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, routingKey)
	return nil
}

func newTestJobs(scheduler ReminderScheduler, repo JobsRepository, producer EventPublisher, now time.Time) *Jobs {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewJobs(scheduler, repo, producer, fixedClock{now: now}, logger, config.Config{EventsExchange: "billing.events"})
}

func TestRunReminderScheduling_ContinuesPastFailingUser(t *testing.T) {
	scheduler := &schedulerStub{
		results: map[string]*ScheduleResult{
			"user-2": {ScheduledCount: 3, ConsideredClients: 1},
		},
		errs: map[string]error{"user-1": domain.ErrBillingSettingsInactive},
	}
	repo := &jobsRepoStub{userIDs: []string{"user-1", "user-2"}}
	producer := &producerStub{}
	jobs := newTestJobs(scheduler, repo, producer, time.Now())

	jobs.RunReminderScheduling()

	if len(scheduler.calls) != 2 {
		t.Fatalf("expected both users attempted, got %v", scheduler.calls)
	}
	if len(producer.published) != 1 || producer.published[0] != "billing.reminders.scheduled" {
		t.Fatalf("expected one batch event for user-2, got %v", producer.published)
	}
}

func TestRunReminderScheduling_NoEventWhenNothingScheduled(t *testing.T) {
	scheduler := &schedulerStub{
		results: map[string]*ScheduleResult{"user-1": {ScheduledCount: 0, ConsideredClients: 2}},
	}
	repo := &jobsRepoStub{userIDs: []string{"user-1"}}
	producer := &producerStub{}
	jobs := newTestJobs(scheduler, repo, producer, time.Now())

	jobs.RunReminderScheduling()

	if len(producer.published) != 0 {
		t.Fatalf("expected no events for empty batches, got %v", producer.published)
	}
}

func TestRunReminderScheduling_NilProducer(t *testing.T) {
	scheduler := &schedulerStub{
		results: map[string]*ScheduleResult{"user-1": {ScheduledCount: 2, ConsideredClients: 1}},
	}
	repo := &jobsRepoStub{userIDs: []string{"user-1"}}
	jobs := newTestJobs(scheduler, repo, nil, time.Now())

	// Must not panic without a broker configured.
	jobs.RunReminderScheduling()

	if len(scheduler.calls) != 1 {
		t.Fatalf("expected one scheduling call, got %v", scheduler.calls)
	}
}

func TestRunReminderScheduling_ListUsersFailure(t *testing.T) {
	scheduler := &schedulerStub{}
	repo := &jobsRepoStub{userIDsErr: errors.New("db unavailable")}
	jobs := newTestJobs(scheduler, repo, nil, time.Now())

	jobs.RunReminderScheduling()

	if len(scheduler.calls) != 0 {
		t.Fatal("expected no scheduling calls when listing users fails")
	}
}

func TestRefreshClientStatuses_PersistsOnlyChanges(t *testing.T) {
	now := time.Date(2025, time.June, 15, 8, 0, 0, 0, time.UTC)
	repo := &jobsRepoStub{
		userIDs: []string{"user-1"},
		clients: map[string][]domain.Client{
			"user-1": {
				// Stale active: no covering payment, past the due day.
				{ID: "stale-active", UserID: "user-1", DueDay: 10, Status: domain.StatusActive},
				// Correctly active: paid this month.
				{ID: "fresh-active", UserID: "user-1", DueDay: 10, Status: domain.StatusActive},
			},
		},
		payments: map[string][]domain.Payment{
			"fresh-active": {{ClientID: "fresh-active", Month: 6, Year: 2025, Status: domain.PaymentPaid}},
		},
	}
	jobs := newTestJobs(&schedulerStub{}, repo, nil, now)

	jobs.RefreshClientStatuses()

	if len(repo.statusUpdates) != 1 {
		t.Fatalf("expected exactly one status update, got %v", repo.statusUpdates)
	}
	if repo.statusUpdates["stale-active"] != domain.StatusInactive {
		t.Fatalf("expected stale-active demoted to inactive, got %v", repo.statusUpdates)
	}
}
