package sync

import (
	gosync "sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/catsync/backend/internal/domain/sync"
)

// RunRecord is one entry of the in-memory run history
type RunRecord struct {
	TenantID    uuid.UUID        `json:"tenant_id"`
	SyncLogID   uuid.UUID        `json:"sync_log_id"`
	SyncType    domain.SyncType  `json:"sync_type"`
	Status      domain.LogStatus `json:"status"`
	ItemsTotal  int              `json:"items_total"`
	ItemsSynced int              `json:"items_synced"`
	ItemsFailed int              `json:"items_failed"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt time.Time        `json:"completed_at"`
}

// History is a fixed-capacity ring of recent run records, newest first
// on read. It backs the sync status surface without a database query.
type History struct {
	mu   gosync.Mutex
	buf  []RunRecord
	next int
	full bool
}

// NewHistory creates a run history with the given capacity
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 50
	}
	return &History{buf: make([]RunRecord, capacity)}
}

// Add records a completed run
func (h *History) Add(rec RunRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf[h.next] = rec
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

// Recent returns up to limit records, newest first
func (h *History) Recent(limit int) []RunRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	size := h.next
	if h.full {
		size = len(h.buf)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	result := make([]RunRecord, 0, limit)
	for i := 0; i < limit; i++ {
		idx := (h.next - 1 - i + len(h.buf)) % len(h.buf)
		result = append(result, h.buf[idx])
	}
	return result
}
