package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/forumhub/backend/usecase/maintenance"
)

// Scheduler runs the administrative maintenance jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	jobs   *maintenance.UseCase
	logger *zap.Logger
}

// SchedulerConfig carries the cron expressions for each job.
type SchedulerConfig struct {
	PhoneFormatSpec string
	TestCleanupSpec string
	JobTimeout      time.Duration
}

func NewScheduler(jobs *maintenance.UseCase, cfg SchedulerConfig, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 5 * time.Minute
	}

	s := &Scheduler{
		cron:   cron.New(),
		jobs:   jobs,
		logger: logger,
	}

	if cfg.PhoneFormatSpec != "" {
		if _, err := s.cron.AddFunc(cfg.PhoneFormatSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
			defer cancel()
			if n, err := s.jobs.UpdatePhoneNumberFormats(ctx); err != nil {
				s.logger.Error("phone format job failed", zap.Error(err))
			} else {
				s.logger.Info("phone format job finished", zap.Int("updated", n))
			}
		}); err != nil {
			return nil, err
		}
	}

	if cfg.TestCleanupSpec != "" {
		if _, err := s.cron.AddFunc(cfg.TestCleanupSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
			defer cancel()
			if n, err := s.jobs.CleanupTestUsers(ctx); err != nil {
				s.logger.Error("test cleanup job failed", zap.Error(err))
			} else {
				s.logger.Info("test cleanup job finished", zap.Int("deleted", n))
			}
		}); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}
