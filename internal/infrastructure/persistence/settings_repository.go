package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/catsync/backend/internal/domain/settings"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Get returns the singleton row, or the default when the row is absent
func (r *GormSettingsRepository) Get(ctx context.Context) (settings.SystemSettings, error) {
	var s settings.SystemSettings
	if err := r.db.WithContext(ctx).
		First(&s, "id = ?", settings.SingletonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.Default(), nil
		}
		return settings.SystemSettings{}, err
	}
	return s, nil
}

// Save upserts the singleton row
func (r *GormSettingsRepository) Save(ctx context.Context, s settings.SystemSettings) error {
	s.ID = settings.SingletonID
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"affiliate_visible", "maintenance", "updated_at"}),
	}).Create(&s).Error
}

// Ensure GormSettingsRepository implements Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
