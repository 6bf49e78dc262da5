package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"boardcamp-backend/internal/jobs"
	"boardcamp-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// cronLogger routes cron's internal logging through the application logger
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// NewScheduler creates a new scheduler with the provided job runner. Specs
// are evaluated in the rental timezone with seconds precision. A run that is
// still in progress when its next tick fires causes that tick to be skipped.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(jobRunner.Config().RentalLocation()),
		cron.WithSeconds(),
		cron.WithLogger(cronLogger{}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{})),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.DatabaseHealth, s.jobs.CheckDatabaseHealth); err != nil {
		logger.Error("Failed to register CheckDatabaseHealth job", "spec", cfg.DatabaseHealth, "error", err)
		return fmt.Errorf("register %s job: %w", jobs.JobDatabaseHealth, err)
	}

	if _, err := s.cron.AddFunc(cfg.OverdueReport, s.jobs.ReportOverdueRentals); err != nil {
		logger.Error("Failed to register ReportOverdueRentals job", "spec", cfg.OverdueReport, "error", err)
		return fmt.Errorf("register %s job: %w", jobs.JobOverdueReport, err)
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
