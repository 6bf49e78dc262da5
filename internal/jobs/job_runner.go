package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"boardcamp-backend/internal/config"
	"boardcamp-backend/internal/events"
	"boardcamp-backend/internal/logger"
	"boardcamp-backend/internal/repository"
	"boardcamp-backend/internal/service"
)

const (
	JobOverdueReport  = "overdue-report"
	JobDatabaseHealth = "database-health"
	JobAll            = "all"
)

// HealthReporter receives the outcome of every database health check
type HealthReporter interface {
	SetServing(serving bool)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals   service.RentalService
	publisher events.Publisher
	pinger    repository.Pinger
	health    HealthReporter
	config    *config.Config

	// dbUp holds 1 while the last health check succeeded
	dbUp atomic.Int32
}

// NewJobRunner creates a new job runner with all dependencies. health may be
// nil when no gRPC server is running.
func NewJobRunner(rentals service.RentalService, publisher events.Publisher, pinger repository.Pinger, health HealthReporter, cfg *config.Config) *JobRunner {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	jr := &JobRunner{
		rentals:   rentals,
		publisher: publisher,
		pinger:    pinger,
		health:    health,
		config:    cfg,
	}
	jr.dbUp.Store(-1)
	return jr
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	start := time.Now()
	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunOnce runs the named job synchronously (for manual execution)
func (jr *JobRunner) RunOnce(name string) error {
	switch name {
	case JobOverdueReport:
		jr.ReportOverdueRentals()
	case JobDatabaseHealth:
		jr.CheckDatabaseHealth()
	case JobAll:
		jr.CheckDatabaseHealth()
		jr.ReportOverdueRentals()
	default:
		return fmt.Errorf("unknown job %q, expected one of %s, %s, %s", name, JobOverdueReport, JobDatabaseHealth, JobAll)
	}
	return nil
}

// CheckDatabaseHealth pings the record store and reports the result to the
// health server. Only transitions are logged at info.
func (jr *JobRunner) CheckDatabaseHealth() {
	jr.runWithRecovery("CheckDatabaseHealth", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := jr.pinger.PingContext(ctx)
		up := int32(0)
		if err == nil {
			up = 1
		}
		if jr.health != nil {
			jr.health.SetServing(err == nil)
		}

		if prev := jr.dbUp.Swap(up); prev != up {
			if err != nil {
				logger.Error("Database is unreachable", "error", err)
			} else {
				logger.Info("Database is reachable")
			}
		}
	})
}
