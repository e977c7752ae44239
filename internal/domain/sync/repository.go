package sync

import (
	"context"

	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// ScheduleRepository defines the interface for sync schedule persistence
type ScheduleRepository interface {
	// FindByTenant finds the schedule row for a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*SyncSchedule, error)

	// FindAllEnabled finds all enabled schedules across tenants
	FindAllEnabled(ctx context.Context) ([]SyncSchedule, error)

	// Save creates or updates a schedule
	Save(ctx context.Context, schedule *SyncSchedule) error
}

// LogRepository defines the interface for sync log persistence.
// Rows are append-only: Create inserts the placeholder, Update is
// called exactly once to finalize it.
type LogRepository interface {
	// Create inserts the placeholder row for a starting run
	Create(ctx context.Context, log *SyncLog) error

	// Update finalizes the row for a completed run
	Update(ctx context.Context, log *SyncLog) error

	// FindByID finds a sync log by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*SyncLog, error)

	// FindByTenant lists sync logs for a tenant, newest first
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]SyncLog, int64, error)

	// FindLatest returns the most recent sync log for a tenant
	FindLatest(ctx context.Context, tenantID uuid.UUID) (*SyncLog, error)
}
