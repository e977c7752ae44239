package settings

import (
	"context"
	"time"
)

// SystemSettings is the singleton configuration row controlling the
// read-time composition behavior. When the row is absent, readers fall
// back to Default().
type SystemSettings struct {
	ID               int  `gorm:"primaryKey"`
	AffiliateVisible bool `gorm:"not null;default:true"`
	Maintenance      bool `gorm:"not null;default:false"`
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (SystemSettings) TableName() string {
	return "system_settings"
}

// SingletonID is the fixed primary key of the settings row
const SingletonID = 1

// Default returns the fallback used when no settings row exists
func Default() SystemSettings {
	return SystemSettings{
		ID:               SingletonID,
		AffiliateVisible: true,
		Maintenance:      false,
	}
}

// Repository defines the interface for settings persistence
type Repository interface {
	// Get returns the singleton row, or Default() when absent
	Get(ctx context.Context) (SystemSettings, error)

	// Save upserts the singleton row
	Save(ctx context.Context, s SystemSettings) error
}

// Snapshot is an immutable view of the settings handed to read paths.
// Composition and category resolution receive a snapshot explicitly
// instead of reading a mutable global.
type Snapshot struct {
	AffiliateVisible bool
	Maintenance      bool
	TakenAt          time.Time
}

// SnapshotProvider yields a recent settings snapshot
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}
