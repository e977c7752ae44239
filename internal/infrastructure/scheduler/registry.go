// Package scheduler maintains one active timer per tenant schedule.
// Timers are in-memory per process; at boot they are re-derived from
// the persisted schedule rows.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/shared"
)

// standardParser accepts the standard 5-field cron format
var standardParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// JobFunc is invoked when a tenant's timer fires
type JobFunc func(ctx context.Context, tenantID uuid.UUID)

// Registry owns the per-tenant timers. Register atomically replaces
// any existing timer for the tenant; a job body runs to completion
// before its timer re-arms, so one tenant's runs never overlap from
// the scheduler's side.
type Registry struct {
	logger *zap.Logger
	job    JobFunc

	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	stopped bool
	wg      sync.WaitGroup
}

// entry is one tenant's armed schedule
type entry struct {
	schedule cron.Schedule
	location *time.Location
	stop     chan struct{}
}

// NewRegistry creates a timer registry that runs job on each fire
func NewRegistry(job JobFunc, logger *zap.Logger) *Registry {
	return &Registry{
		logger:  logger,
		job:     job,
		entries: make(map[uuid.UUID]*entry),
	}
}

// ValidateCron checks a cron expression against the 5-field format.
// Descriptors like @daily are rejected, same as the timer parser.
func ValidateCron(cronExpr string) error {
	if _, err := standardParser.Parse(cronExpr); err != nil {
		return shared.ErrInvalidCron
	}
	return nil
}

// ValidateTimezone checks an IANA timezone name
func ValidateTimezone(timezone string) error {
	if _, err := time.LoadLocation(timezone); err != nil {
		return shared.ErrInvalidTimezone
	}
	return nil
}

// ValidateSpec checks a cron expression and timezone without arming a timer
func ValidateSpec(cronExpr, timezone string) error {
	if err := ValidateCron(cronExpr); err != nil {
		return err
	}
	return ValidateTimezone(timezone)
}

// NextRun computes the next fire time after from for a cron spec
func NextRun(cronExpr, timezone string, from time.Time) (time.Time, error) {
	schedule, err := standardParser.Parse(cronExpr)
	if err != nil {
		return time.Time{}, shared.ErrInvalidCron
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Time{}, shared.ErrInvalidTimezone
	}
	return schedule.Next(from.In(loc)), nil
}

// Register arms a timer for the tenant, replacing any existing one
func (r *Registry) Register(tenantID uuid.UUID, cronExpr, timezone string) error {
	schedule, err := standardParser.Parse(cronExpr)
	if err != nil {
		return shared.ErrInvalidCron
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return shared.ErrInvalidTimezone
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return shared.NewDomainError("SCHEDULER_STOPPED", "Scheduler is shut down")
	}

	if existing, ok := r.entries[tenantID]; ok {
		close(existing.stop)
	}

	e := &entry{
		schedule: schedule,
		location: loc,
		stop:     make(chan struct{}),
	}
	r.entries[tenantID] = e

	r.wg.Add(1)
	go r.run(tenantID, e)

	r.logger.Info("schedule registered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("cron", cronExpr),
		zap.String("timezone", timezone),
	)
	return nil
}

// Cancel disarms the tenant's timer. An in-flight job completes normally.
func (r *Registry) Cancel(tenantID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[tenantID]; ok {
		close(existing.stop)
		delete(r.entries, tenantID)
		r.logger.Info("schedule cancelled", zap.String("tenant_id", tenantID.String()))
	}
}

// ActiveCount returns the number of armed timers
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Registered reports whether the tenant currently has an armed timer
func (r *Registry) Registered(tenantID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[tenantID]
	return ok
}

// Stop disarms all timers and waits for in-flight jobs to complete
func (r *Registry) Stop() {
	r.mu.Lock()
	r.stopped = true
	for tenantID, e := range r.entries {
		close(e.stop)
		delete(r.entries, tenantID)
	}
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("scheduler stopped")
}

// run arms the timer loop for one tenant. The job runs to completion
// before the next occurrence is armed.
func (r *Registry) run(tenantID uuid.UUID, e *entry) {
	defer r.wg.Done()

	for {
		next := e.schedule.Next(time.Now().In(e.location))
		timer := time.NewTimer(time.Until(next))

		select {
		case <-e.stop:
			timer.Stop()
			return
		case <-timer.C:
			r.job(context.Background(), tenantID)
		}
	}
}
