/**
 * @description
 * This file implements the data access layer for the billing service.
 * It contains all the SQL queries and logic for interacting with the database.
 */
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yagomat/supra-client-nexus-sub001/internal/domain"
)

// Repository handles database operations for the billing service.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetBillingSettings retrieves the billing settings for a user.
func (r *Repository) GetBillingSettings(ctx context.Context, userID string) (*domain.BillingSettings, error) {
	var settings domain.BillingSettings
	var before, after []int32
	query := `
        SELECT user_id, send_before_days, send_on_due_date, send_after_days,
               template_before_id, template_on_due_id, template_after_id, is_active
        FROM billing_settings
        WHERE user_id = $1
    `
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&before,
		&settings.SendOnDueDate,
		&after,
		&settings.TemplateBeforeID,
		&settings.TemplateOnDueID,
		&settings.TemplateAfterID,
		&settings.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBillingSettingsNotFound
		}
		return nil, err
	}
	settings.SendBeforeDays = toIntSlice(before)
	settings.SendAfterDays = toIntSlice(after)
	return &settings, nil
}

// ListActiveClientsByUser fetches all of a user's clients with status 'active'.
func (r *Repository) ListActiveClientsByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `
        SELECT id, user_id, name, phone, due_day, status
        FROM clients
        WHERE user_id = $1 AND status = 'active'
        ORDER BY name
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClients(rows)
}

// ListClientsByUser fetches all of a user's clients regardless of status.
func (r *Repository) ListClientsByUser(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `
        SELECT id, user_id, name, phone, due_day, status
        FROM clients
        WHERE user_id = $1
        ORDER BY name
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClients(rows)
}

// GetClient retrieves a single client by ID.
func (r *Repository) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	var c domain.Client
	query := `
        SELECT id, user_id, name, phone, due_day, status
        FROM clients
        WHERE id = $1
    `
	err := r.db.QueryRow(ctx, query, clientID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Phone, &c.DueDay, &c.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListPaymentsByClient fetches a client's full payment history.
func (r *Repository) ListPaymentsByClient(ctx context.Context, clientID string) ([]domain.Payment, error) {
	var payments []domain.Payment
	query := `
        SELECT id, client_id, month, year, status, paid_at
        FROM payments
        WHERE client_id = $1
        ORDER BY year, month
    `
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Month, &p.Year, &p.Status, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}

// UpdateClientStatus writes a client's derived status back.
func (r *Repository) UpdateClientStatus(ctx context.Context, clientID string, status domain.ClientStatus) error {
	query := `UPDATE clients SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, string(status), clientID)
	return err
}

// InsertScheduledMessage appends one reminder row, filling the generated ID
// back into the message.
func (r *Repository) InsertScheduledMessage(ctx context.Context, msg *domain.ScheduledMessage) error {
	query := `
        INSERT INTO scheduled_messages (client_id, message_type, scheduled_at, template_id, days_offset)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query,
		msg.ClientID,
		string(msg.MessageType),
		msg.ScheduledAt,
		msg.TemplateID,
		msg.DaysOffset,
	).Scan(&msg.ID)
}

// AlreadyScheduled reports whether a reminder with the given offset already
// exists for the client within the billing cycle starting at cycle. Plugs
// into the scheduler's duplicate-check hook.
func (r *Repository) AlreadyScheduled(ctx context.Context, clientID string, daysOffset int, cycle time.Time) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS (
            SELECT 1 FROM scheduled_messages
            WHERE client_id = $1
              AND days_offset = $2
              AND scheduled_at >= $3
              AND scheduled_at < $3 + INTERVAL '1 month'
        )
    `
	err := r.db.QueryRow(ctx, query, clientID, daysOffset, cycle).Scan(&exists)
	return exists, err
}

// ListActiveAutoResponseRules fetches active rules already ordered the way
// the matcher evaluates them: priority descending, earliest created first.
func (r *Repository) ListActiveAutoResponseRules(ctx context.Context) ([]domain.AutoResponseRule, error) {
	var rules []domain.AutoResponseRule
	query := `
        SELECT id, trigger_keywords, match_type, priority, is_active, response_template, created_at
        FROM auto_response_rules
        WHERE is_active = TRUE
        ORDER BY priority DESC, created_at ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rule domain.AutoResponseRule
		if err := rows.Scan(
			&rule.ID, &rule.TriggerKeywords, &rule.MatchType, &rule.Priority,
			&rule.IsActive, &rule.ResponseTemplate, &rule.CreatedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// ListUserIDsWithActiveBillingSettings lists users the daily jobs run for.
func (r *Repository) ListUserIDsWithActiveBillingSettings(ctx context.Context) ([]string, error) {
	var userIDs []string
	query := `SELECT user_id FROM billing_settings WHERE is_active = TRUE`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}

func scanClients(rows pgx.Rows) ([]domain.Client, error) {
	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.DueDay, &c.Status); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func toIntSlice(in []int32) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
