package sync

import (
	"time"

	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// DefaultCronExpr runs a sync every day at 03:00
const DefaultCronExpr = "0 3 * * *"

// SyncSchedule holds the recurring sync configuration for one tenant.
// There is exactly one schedule row per tenant, created lazily.
type SyncSchedule struct {
	shared.TenantEntity
	CronExpr        string `gorm:"type:varchar(100);not null"`
	Timezone        string `gorm:"type:varchar(64);not null;default:'UTC'"`
	Enabled         bool   `gorm:"not null;default:false"`
	SyncProducts    bool   `gorm:"not null;default:true"`
	NotifyOnSuccess bool   `gorm:"not null;default:false"`
	NotifyOnError   bool   `gorm:"not null;default:true"`
	LastRunAt       *time.Time
	NextRunAt       *time.Time
	TotalRuns       int64 `gorm:"not null;default:0"`
	SuccessRuns     int64 `gorm:"not null;default:0"`
	FailedRuns      int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SyncSchedule) TableName() string {
	return "sync_schedules"
}

// NewDefaultSchedule creates the lazily-initialized schedule for a tenant
func NewDefaultSchedule(tenantID uuid.UUID) *SyncSchedule {
	return &SyncSchedule{
		TenantEntity:  shared.NewTenantEntity(tenantID),
		CronExpr:      DefaultCronExpr,
		Timezone:      "UTC",
		Enabled:       false,
		SyncProducts:  true,
		NotifyOnError: true,
	}
}

// UpdateSpec replaces the recurrence spec. Validation of the cron
// expression and timezone happens at the application layer before the
// row is written; malformed specs never reach the scheduler.
func (s *SyncSchedule) UpdateSpec(cronExpr, timezone string, enabled bool) {
	s.CronExpr = cronExpr
	s.Timezone = timezone
	s.Enabled = enabled
	s.Touch()
}

// SetToggles updates the feature and notification toggles
func (s *SyncSchedule) SetToggles(syncProducts, notifyOnSuccess, notifyOnError bool) {
	s.SyncProducts = syncProducts
	s.NotifyOnSuccess = notifyOnSuccess
	s.NotifyOnError = notifyOnError
	s.Touch()
}

// Armed reports whether the schedule should have a live timer
func (s *SyncSchedule) Armed() bool {
	return s.Enabled && s.SyncProducts
}

// ShouldNotify reports whether the notification preferences allow an
// event for the given run outcome. PARTIAL counts as an error outcome.
func (s *SyncSchedule) ShouldNotify(status LogStatus) bool {
	if status == LogStatusSuccess {
		return s.NotifyOnSuccess
	}
	return s.NotifyOnError
}

// RecordRun updates the aggregate run counters after a completed run
func (s *SyncSchedule) RecordRun(status LogStatus, nextRun *time.Time) {
	now := time.Now()
	s.LastRunAt = &now
	s.NextRunAt = nextRun
	s.TotalRuns++
	if status == LogStatusSuccess {
		s.SuccessRuns++
	} else {
		s.FailedRuns++
	}
	s.Touch()
}
