/**
 * @description
 * This file contains the core business logic for the billing service.
 * The Service layer loads a snapshot from the repository, hands it to the
 * pure decision functions in internal/billing, and writes the results back.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yagomat/supra-client-nexus-sub001/internal/billing"
	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

// Repository defines the interface for database operations that the service needs.
type Repository interface {
	GetBillingSettings(ctx context.Context, userID string) (*domain.BillingSettings, error)
	ListActiveClientsByUser(ctx context.Context, userID string) ([]domain.Client, error)
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	ListPaymentsByClient(ctx context.Context, clientID string) ([]domain.Payment, error)
	UpdateClientStatus(ctx context.Context, clientID string, status domain.ClientStatus) error
	InsertScheduledMessage(ctx context.Context, msg *domain.ScheduledMessage) error
	ListActiveAutoResponseRules(ctx context.Context) ([]domain.AutoResponseRule, error)
}

// DuplicateChecker is the hook that lets the external trigger policy decide
// whether a reminder for (client, offset, cycle) was already scheduled.
// With a nil checker the scheduler is append-only and re-running it within
// one cycle duplicates rows.
type DuplicateChecker interface {
	AlreadyScheduled(ctx context.Context, clientID string, daysOffset int, cycle time.Time) (bool, error)
}

// ScheduleResult reports the outcome of one scheduling run.
type ScheduleResult struct {
	ScheduledCount    int      `json:"scheduled_count"`
	ConsideredClients int      `json:"considered_clients"`
	ExcludedClients   []string `json:"excluded_clients,omitempty"`
}

// Service provides the billing lifecycle operations.
type Service struct {
	repo   Repository
	clock  billing.Clock
	dup    DuplicateChecker
	logger *slog.Logger
}

// NewService creates a new billing service. dup may be nil to disable
// duplicate suppression.
func NewService(repo Repository, clock billing.Clock, dup DuplicateChecker, logger *slog.Logger) *Service {
	return &Service{repo: repo, clock: clock, dup: dup, logger: logger}
}

// ScheduleReminders computes and persists the reminder messages for all
// active clients of a user for the current billing cycle.
//
// Missing or inactive billing settings abort the run with a configuration
// error. A client with a malformed due day is excluded and reported, the
// rest of the batch continues. A store write failure aborts the remaining
// batch; rows already inserted are not rolled back.
func (s *Service) ScheduleReminders(ctx context.Context, userID string) (*ScheduleResult, error) {
	settings, err := s.repo.GetBillingSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !settings.IsActive {
		return nil, domain.ErrBillingSettingsInactive
	}
	if err := billing.ValidateOffsets(*settings); err != nil {
		return nil, err
	}

	clients, err := s.repo.ListActiveClientsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	cycle := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	result := &ScheduleResult{ConsideredClients: len(clients)}

	for _, client := range clients {
		messages, err := billing.ComputeReminders(client, *settings, now)
		if err != nil {
			s.logger.Warn("excluding client from reminder run", "client_id", client.ID, "error", err)
			result.ExcludedClients = append(result.ExcludedClients, client.ID)
			continue
		}

		for i := range messages {
			if s.dup != nil {
				exists, err := s.dup.AlreadyScheduled(ctx, client.ID, messages[i].DaysOffset, cycle)
				if err != nil {
					return nil, fmt.Errorf("checking for duplicate reminder: %w", err)
				}
				if exists {
					continue
				}
			}
			if err := s.repo.InsertScheduledMessage(ctx, &messages[i]); err != nil {
				return nil, fmt.Errorf("inserting reminder for client %s: %w", client.ID, err)
			}
			result.ScheduledCount++
		}
	}

	return result, nil
}

// RecomputeClientStatus re-derives a client's status from its payment
// history and persists it when it changed. Called whenever a due-day edit
// or a payment status change occurs. Last write wins; no locking.
func (s *Service) RecomputeClientStatus(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.ListPaymentsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	status := billing.DetermineStatus(*client, payments, s.clock.Now())
	if status != client.Status {
		if err := s.repo.UpdateClientStatus(ctx, clientID, status); err != nil {
			return nil, fmt.Errorf("updating status for client %s: %w", clientID, err)
		}
		client.Status = status
	}

	return client, nil
}

// MatchIncomingMessage selects the auto-response rule triggered by an
// inbound message, or nil when none applies. Called by the transport layer
// per inbound chat message.
func (s *Service) MatchIncomingMessage(ctx context.Context, messageText string) (*domain.AutoResponseRule, error) {
	rules, err := s.repo.ListActiveAutoResponseRules(ctx)
	if err != nil {
		return nil, err
	}
	return billing.Match(messageText, rules), nil
}

// IsConfigurationError reports whether the error means the user has to fix
// their billing configuration before the run can succeed.
func IsConfigurationError(err error) bool {
	return errors.Is(err, domain.ErrBillingSettingsNotFound) ||
		errors.Is(err, domain.ErrBillingSettingsInactive) ||
		errors.Is(err, domain.ErrInvalidOffset)
}
