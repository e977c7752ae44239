package sync

import (
	"time"

	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// EventTypeSyncCompleted is published after every finalized sync run
const EventTypeSyncCompleted = "sync.completed"

// SyncCompletedEvent carries the outcome of a finished sync run. The
// webhook dispatch handler consumes it to notify external endpoints.
type SyncCompletedEvent struct {
	shared.BaseDomainEvent
	SyncLogID   uuid.UUID     `json:"sync_log_id"`
	StoreName   string        `json:"store_name"`
	SyncType    SyncType      `json:"sync_type"`
	Status      LogStatus     `json:"status"`
	ItemsTotal  int           `json:"items_total"`
	ItemsSynced int           `json:"items_synced"`
	ItemsFailed int           `json:"items_failed"`
	ErrorLog    string        `json:"error_log,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// NewSyncCompletedEvent creates a SyncCompletedEvent from a finalized log
func NewSyncCompletedEvent(storeName string, log *SyncLog) *SyncCompletedEvent {
	return &SyncCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSyncCompleted, log.TenantID),
		SyncLogID:       log.ID,
		StoreName:       storeName,
		SyncType:        log.SyncType,
		Status:          log.Status,
		ItemsTotal:      log.ItemsTotal,
		ItemsSynced:     log.ItemsSynced,
		ItemsFailed:     log.ItemsFailed,
		ErrorLog:        log.ErrorLog,
		Duration:        log.Duration(),
	}
}

// Succeeded returns true when the run finished without item failures
func (e *SyncCompletedEvent) Succeeded() bool {
	return e.Status == LogStatusSuccess
}
