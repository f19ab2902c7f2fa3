/**
 * @description
 * Cron scheduler setup for scheduled jobs.
 */
package app

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/yagomat/supra-client-nexus-sub001/internal/config"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *Jobs
	logger *slog.Logger
	config config.Config
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(jobs *Jobs, logger *slog.Logger, cfg config.Config) *Scheduler {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelInfo))
	c := cron.New(cron.WithChain(cron.Recover(cronLogger)))

	return &Scheduler{
		cron:   c,
		jobs:   jobs,
		logger: logger,
		config: cfg,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.config.StatusRefreshJobSchedule, s.jobs.RefreshClientStatuses); err != nil {
		s.logger.Error("failed to schedule client status refresh job", "error", err)
	} else {
		s.logger.Info("scheduled client status refresh job", "schedule", s.config.StatusRefreshJobSchedule)
	}

	if _, err := s.cron.AddFunc(s.config.ReminderJobSchedule, s.jobs.RunReminderScheduling); err != nil {
		s.logger.Error("failed to schedule reminder job", "error", err)
	} else {
		s.logger.Info("scheduled reminder job", "schedule", s.config.ReminderJobSchedule)
	}

	s.cron.Start()
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
