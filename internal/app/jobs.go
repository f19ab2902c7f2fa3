/**
 * @description
 * Scheduled job implementations for the billing service.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yagomat/supra-client-nexus-sub001/internal/billing"
	"github.com/yagomat/supra-client-nexus-sub001/internal/config"
	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

// ReminderScheduler defines the scheduling operation the jobs drive.
type ReminderScheduler interface {
	ScheduleReminders(ctx context.Context, userID string) (*ScheduleResult, error)
}

// JobsRepository defines database operations needed by the jobs.
type JobsRepository interface {
	ListUserIDsWithActiveBillingSettings(ctx context.Context) ([]string, error)
	ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error)
	ListPaymentsByClient(ctx context.Context, clientID string) ([]domain.Payment, error)
	UpdateClientStatus(ctx context.Context, clientID string, status domain.ClientStatus) error
}

// EventPublisher defines the interface for publishing events to the
// downstream reminder dispatcher.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// ReminderBatchEvent is published after each user's scheduling run so the
// dispatcher can pick up the new reminders.
type ReminderBatchEvent struct {
	BatchID           string    `json:"batch_id"`
	UserID            string    `json:"user_id"`
	ScheduledCount    int       `json:"scheduled_count"`
	ConsideredClients int       `json:"considered_clients"`
	ExcludedClients   []string  `json:"excluded_clients,omitempty"`
	ScheduledAt       time.Time `json:"scheduled_at"`
}

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	scheduler ReminderScheduler
	repo      JobsRepository
	producer  EventPublisher
	clock     billing.Clock
	logger    *slog.Logger
	config    config.Config
}

// NewJobs creates a new Jobs runner. producer may be nil when no broker is
// configured.
func NewJobs(scheduler ReminderScheduler, repo JobsRepository, producer EventPublisher, clock billing.Clock, logger *slog.Logger, cfg config.Config) *Jobs {
	return &Jobs{
		scheduler: scheduler,
		repo:      repo,
		producer:  producer,
		clock:     clock,
		logger:    logger,
		config:    cfg,
	}
}

// RunReminderScheduling runs the reminder scheduler for every user with
// active billing settings. One user's failure does not stop the others.
func (j *Jobs) RunReminderScheduling() {
	j.logger.Info("starting reminder scheduling job")
	ctx := context.Background()

	userIDs, err := j.repo.ListUserIDsWithActiveBillingSettings(ctx)
	if err != nil {
		j.logger.Error("failed to list users with active billing settings", "error", err)
		return
	}

	if len(userIDs) == 0 {
		j.logger.Info("no users with active billing settings")
		return
	}

	totalScheduled := 0
	for _, userID := range userIDs {
		result, err := j.scheduler.ScheduleReminders(ctx, userID)
		if err != nil {
			j.logger.Error("reminder scheduling failed for user", "user_id", userID, "error", err)
			continue
		}

		j.logger.Info("scheduled reminders for user",
			"user_id", userID,
			"scheduled_count", result.ScheduledCount,
			"considered_clients", result.ConsideredClients,
			"excluded_clients", len(result.ExcludedClients))
		totalScheduled += result.ScheduledCount

		if j.producer != nil && result.ScheduledCount > 0 {
			event := ReminderBatchEvent{
				BatchID:           uuid.NewString(),
				UserID:            userID,
				ScheduledCount:    result.ScheduledCount,
				ConsideredClients: result.ConsideredClients,
				ExcludedClients:   result.ExcludedClients,
				ScheduledAt:       j.clock.Now(),
			}
			if err := j.producer.Publish(ctx, j.config.EventsExchange, "billing.reminders.scheduled", event); err != nil {
				j.logger.Error("failed to publish reminder batch event", "user_id", userID, "error", err)
			}
		}
	}

	j.logger.Info("reminder scheduling job finished", "users", len(userIDs), "total_scheduled", totalScheduled)
}

// RefreshClientStatuses recomputes the derived status for every client of
// every user with active billing settings, persisting only changes. Covers
// payment edits made outside the synchronous recompute path.
func (j *Jobs) RefreshClientStatuses() {
	j.logger.Info("starting client status refresh job")
	ctx := context.Background()

	userIDs, err := j.repo.ListUserIDsWithActiveBillingSettings(ctx)
	if err != nil {
		j.logger.Error("failed to list users with active billing settings", "error", err)
		return
	}

	now := j.clock.Now()
	updated := 0
	for _, userID := range userIDs {
		clients, err := j.repo.ListClientsByUser(ctx, userID)
		if err != nil {
			j.logger.Error("failed to list clients for user", "user_id", userID, "error", err)
			continue
		}

		for _, client := range clients {
			payments, err := j.repo.ListPaymentsByClient(ctx, client.ID)
			if err != nil {
				j.logger.Error("failed to list payments for client", "client_id", client.ID, "error", err)
				continue
			}

			status := billing.DetermineStatus(client, payments, now)
			if status == client.Status {
				continue
			}
			if err := j.repo.UpdateClientStatus(ctx, client.ID, status); err != nil {
				j.logger.Error("failed to update client status", "client_id", client.ID, "error", err)
				continue
			}
			updated++
		}
	}

	j.logger.Info("client status refresh job finished", "users", len(userIDs), "updated", updated)
}
