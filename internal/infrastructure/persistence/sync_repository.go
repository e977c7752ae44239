package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catsync/backend/internal/domain/shared"
	"github.com/catsync/backend/internal/domain/sync"
)

// GormScheduleRepository implements ScheduleRepository using GORM
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewGormScheduleRepository creates a new GormScheduleRepository
func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// FindByTenant finds the schedule row for a tenant
func (r *GormScheduleRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*sync.SyncSchedule, error) {
	var schedule sync.SyncSchedule
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// FindAllEnabled finds all enabled schedules across tenants
func (r *GormScheduleRepository) FindAllEnabled(ctx context.Context) ([]sync.SyncSchedule, error) {
	var schedules []sync.SyncSchedule
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("created_at ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Save creates or updates a schedule
func (r *GormScheduleRepository) Save(ctx context.Context, schedule *sync.SyncSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// Ensure GormScheduleRepository implements ScheduleRepository
var _ sync.ScheduleRepository = (*GormScheduleRepository)(nil)

// GormSyncLogRepository implements LogRepository using GORM
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Create inserts the placeholder row for a starting run
func (r *GormSyncLogRepository) Create(ctx context.Context, log *sync.SyncLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// Update finalizes the row for a completed run
func (r *GormSyncLogRepository) Update(ctx context.Context, log *sync.SyncLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// FindByID finds a sync log by ID within a tenant
func (r *GormSyncLogRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*sync.SyncLog, error) {
	var log sync.SyncLog
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// FindByTenant lists sync logs for a tenant, newest first
func (r *GormSyncLogRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sync.SyncLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&sync.SyncLog{}).
		Where("tenant_id = ?", tenantID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []sync.SyncLog
	if err := query.
		Order("started_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// FindLatest returns the most recent sync log for a tenant
func (r *GormSyncLogRepository) FindLatest(ctx context.Context, tenantID uuid.UUID) (*sync.SyncLog, error) {
	var log sync.SyncLog
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("started_at DESC").
		First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// Ensure GormSyncLogRepository implements LogRepository
var _ sync.LogRepository = (*GormSyncLogRepository)(nil)
