package admin

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/settings"
)

// Invalidator drops cached settings copies after a write
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// UpdateSettingsInput carries the editable settings fields. Pointers
// distinguish "leave unchanged" from an explicit false.
type UpdateSettingsInput struct {
	AffiliateVisible *bool
	Maintenance      *bool
}

// SettingsService manages the platform-wide settings row
type SettingsService struct {
	repo        settings.Repository
	invalidator Invalidator
	logger      *zap.Logger
}

// NewSettingsService creates a settings service
func NewSettingsService(repo settings.Repository, invalidator Invalidator, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Get returns the current settings
func (s *SettingsService) Get(ctx context.Context) (settings.SystemSettings, error) {
	return s.repo.Get(ctx)
}

// Update applies the given changes and invalidates cached snapshots so
// composition reads pick the new values up promptly
func (s *SettingsService) Update(ctx context.Context, input UpdateSettingsInput) (settings.SystemSettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return settings.SystemSettings{}, err
	}

	if input.AffiliateVisible != nil {
		current.AffiliateVisible = *input.AffiliateVisible
	}
	if input.Maintenance != nil {
		current.Maintenance = *input.Maintenance
	}
	current.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, current); err != nil {
		return settings.SystemSettings{}, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}

	s.logger.Info("system settings updated",
		zap.Bool("affiliate_visible", current.AffiliateVisible),
		zap.Bool("maintenance", current.Maintenance),
	)
	return current, nil
}
