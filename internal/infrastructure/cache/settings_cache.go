package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/settings"
)

const settingsKey = "catsync:settings"

// SettingsCache serves settings snapshots to the read paths. Lookups go
// redis first, then the repository; a short in-process copy covers
// redis outages so composition reads keep working.
type SettingsCache struct {
	repo   settings.Repository
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	mu    sync.Mutex
	local settings.Snapshot
	ok    bool
}

// NewSettingsCache creates a settings snapshot cache. client may be nil
// when redis is not configured; the repository is then hit directly.
func NewSettingsCache(repo settings.Repository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *SettingsCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SettingsCache{
		repo:   repo,
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Snapshot returns a recent settings snapshot
func (c *SettingsCache) Snapshot(ctx context.Context) (settings.Snapshot, error) {
	if snap, ok := c.fromLocal(); ok {
		return snap, nil
	}

	if snap, ok := c.fromRedis(ctx); ok {
		c.storeLocal(snap)
		return snap, nil
	}

	s, err := c.repo.Get(ctx)
	if err != nil {
		// Serve the stale local copy rather than failing the read
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.ok {
			return c.local, nil
		}
		return settings.Snapshot{}, err
	}

	snap := settings.Snapshot{
		AffiliateVisible: s.AffiliateVisible,
		Maintenance:      s.Maintenance,
		TakenAt:          time.Now(),
	}
	c.toRedis(ctx, snap)
	c.storeLocal(snap)
	return snap, nil
}

// Invalidate drops cached copies after a settings write
func (c *SettingsCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.ok = false
	c.mu.Unlock()

	if c.client != nil {
		if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
			c.logger.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}
}

func (c *SettingsCache) fromLocal() (settings.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ok && time.Since(c.local.TakenAt) < c.ttl {
		return c.local, true
	}
	return settings.Snapshot{}, false
}

func (c *SettingsCache) storeLocal(snap settings.Snapshot) {
	c.mu.Lock()
	c.local = snap
	c.ok = true
	c.mu.Unlock()
}

func (c *SettingsCache) fromRedis(ctx context.Context) (settings.Snapshot, bool) {
	if c.client == nil {
		return settings.Snapshot{}, false
	}

	data, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("settings cache read failed", zap.Error(err))
		}
		return settings.Snapshot{}, false
	}

	var snap settings.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return settings.Snapshot{}, false
	}
	return snap, true
}

func (c *SettingsCache) toRedis(ctx context.Context, snap settings.Snapshot) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, settingsKey, data, c.ttl).Err(); err != nil {
		c.logger.Warn("settings cache write failed", zap.Error(err))
	}
}

// Ensure SettingsCache implements SnapshotProvider
var _ settings.SnapshotProvider = (*SettingsCache)(nil)
