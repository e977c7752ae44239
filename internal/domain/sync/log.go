package sync

import (
	"time"

	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// LogStatus represents the outcome of a sync run
type LogStatus string

const (
	LogStatusRunning LogStatus = "RUNNING"
	LogStatusSuccess LogStatus = "SUCCESS"
	LogStatusFailed  LogStatus = "FAILED"
	LogStatusPartial LogStatus = "PARTIAL"
)

// SyncType distinguishes how a run was triggered
type SyncType string

const (
	SyncTypeScheduled SyncType = "scheduled"
	SyncTypeManual    SyncType = "manual"
)

// SyncLog is the immutable audit record of one sync attempt. A
// placeholder row is created when the run starts and finalized exactly
// once when it completes; finalized rows are never updated again.
type SyncLog struct {
	shared.TenantEntity
	SyncType    SyncType  `gorm:"type:varchar(20);not null"`
	Status      LogStatus `gorm:"type:varchar(20);not null;default:'RUNNING'"`
	ItemsTotal  int       `gorm:"not null;default:0"`
	ItemsSynced int       `gorm:"not null;default:0"`
	ItemsFailed int       `gorm:"not null;default:0"`
	ErrorLog    string    `gorm:"type:text"`
	StartedAt   time.Time `gorm:"not null"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (SyncLog) TableName() string {
	return "sync_logs"
}

// NewSyncLog creates the placeholder row for a starting run
func NewSyncLog(tenantID uuid.UUID, syncType SyncType) *SyncLog {
	return &SyncLog{
		TenantEntity: shared.NewTenantEntity(tenantID),
		SyncType:     syncType,
		Status:       LogStatusRunning,
		StartedAt:    time.Now(),
	}
}

// Finalize records the totals and derives the final status:
// SUCCESS iff no item failed; FAILED iff nothing synced while items
// existed; PARTIAL otherwise.
func (l *SyncLog) Finalize(total, synced, failed int, errorLog string) {
	now := time.Now()
	l.ItemsTotal = total
	l.ItemsSynced = synced
	l.ItemsFailed = failed
	l.ErrorLog = errorLog
	l.CompletedAt = &now

	switch {
	case failed == 0:
		l.Status = LogStatusSuccess
	case synced == 0 && total > 0:
		l.Status = LogStatusFailed
	default:
		l.Status = LogStatusPartial
	}
}

// Fail finalizes a run that aborted before processing any item
func (l *SyncLog) Fail(errorLog string) {
	now := time.Now()
	l.Status = LogStatusFailed
	l.ErrorLog = errorLog
	l.CompletedAt = &now
}

// Duration returns the wall-clock duration of the run
func (l *SyncLog) Duration() time.Duration {
	if l.CompletedAt == nil {
		return 0
	}
	return l.CompletedAt.Sub(l.StartedAt)
}
