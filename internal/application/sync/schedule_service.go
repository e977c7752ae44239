package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/sync"
)

// CronPlanner validates recurrence specs and computes occurrences
type CronPlanner interface {
	Validate(cronExpr, timezone string) error
	Next(cronExpr, timezone string, from time.Time) (time.Time, error)
}

// Registrar owns the live per-tenant timers
type Registrar interface {
	Register(tenantID uuid.UUID, cronExpr, timezone string) error
	Cancel(tenantID uuid.UUID)
}

// UpdateScheduleInput carries a schedule update request
type UpdateScheduleInput struct {
	CronExpr        string
	Timezone        string
	Enabled         bool
	SyncProducts    bool
	NotifyOnSuccess bool
	NotifyOnError   bool
}

// ScheduleService manages the per-tenant sync schedules. Malformed
// cron expressions and timezones are rejected here, at write time, so
// they never reach the timer registry.
type ScheduleService struct {
	scheduleRepo domain.ScheduleRepository
	planner      CronPlanner
	registrar    Registrar
	logger       *zap.Logger
}

// NewScheduleService creates a schedule service
func NewScheduleService(
	scheduleRepo domain.ScheduleRepository,
	planner CronPlanner,
	registrar Registrar,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		planner:      planner,
		registrar:    registrar,
		logger:       logger,
	}
}

// GetSchedule returns the tenant's schedule, creating the disabled
// default row on first access
func (s *ScheduleService) GetSchedule(ctx context.Context, tenantID uuid.UUID) (*domain.SyncSchedule, error) {
	schedule, err := s.scheduleRepo.FindByTenant(ctx, tenantID)
	if err == nil {
		return schedule, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	schedule = domain.NewDefaultSchedule(tenantID)
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// UpdateSchedule validates and persists a schedule change, then arms
// or disarms the tenant's timer accordingly
func (s *ScheduleService) UpdateSchedule(ctx context.Context, tenantID uuid.UUID, input UpdateScheduleInput) (*domain.SyncSchedule, error) {
	if err := s.planner.Validate(input.CronExpr, input.Timezone); err != nil {
		return nil, err
	}

	schedule, err := s.GetSchedule(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	schedule.UpdateSpec(input.CronExpr, input.Timezone, input.Enabled)
	schedule.SetToggles(input.SyncProducts, input.NotifyOnSuccess, input.NotifyOnError)

	if schedule.Armed() {
		next, err := s.planner.Next(input.CronExpr, input.Timezone, time.Now())
		if err != nil {
			return nil, err
		}
		schedule.NextRunAt = &next
	} else {
		schedule.NextRunAt = nil
	}

	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	if schedule.Armed() {
		if err := s.registrar.Register(tenantID, input.CronExpr, input.Timezone); err != nil {
			return nil, err
		}
	} else {
		s.registrar.Cancel(tenantID)
	}

	return schedule, nil
}

// RegisterAll re-derives timers from the persisted schedules. Called
// once at boot; in-memory timer state does not survive a restart.
func (s *ScheduleService) RegisterAll(ctx context.Context) error {
	schedules, err := s.scheduleRepo.FindAllEnabled(ctx)
	if err != nil {
		return err
	}

	registered := 0
	for i := range schedules {
		schedule := &schedules[i]
		if !schedule.SyncProducts {
			continue
		}
		if err := s.registrar.Register(schedule.TenantID, schedule.CronExpr, schedule.Timezone); err != nil {
			s.logger.Error("failed to register schedule at boot",
				zap.String("tenant_id", schedule.TenantID.String()),
				zap.String("cron", schedule.CronExpr),
				zap.Error(err),
			)
			continue
		}
		registered++
	}

	s.logger.Info("schedules registered at boot",
		zap.Int("registered", registered),
		zap.Int("total", len(schedules)),
	)
	return nil
}
