package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catsync/backend/internal/domain/shared"
	"github.com/catsync/backend/internal/domain/webhook"
)

// GormWebhookRepository implements webhook.Repository using GORM
type GormWebhookRepository struct {
	db *gorm.DB
}

// NewGormWebhookRepository creates a new GormWebhookRepository
func NewGormWebhookRepository(db *gorm.DB) *GormWebhookRepository {
	return &GormWebhookRepository{db: db}
}

// FindByID finds a webhook by ID within a tenant
func (r *GormWebhookRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*webhook.Webhook, error) {
	var wh webhook.Webhook
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wh, nil
}

// FindByTenant lists all webhooks for a tenant
func (r *GormWebhookRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]webhook.Webhook, error) {
	var webhooks []webhook.Webhook
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		Find(&webhooks).Error; err != nil {
		return nil, err
	}
	return webhooks, nil
}

// FindEnabled lists enabled webhooks for a tenant
func (r *GormWebhookRepository) FindEnabled(ctx context.Context, tenantID uuid.UUID) ([]webhook.Webhook, error) {
	var webhooks []webhook.Webhook
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND enabled = ?", tenantID, true).
		Order("created_at ASC").
		Find(&webhooks).Error; err != nil {
		return nil, err
	}
	return webhooks, nil
}

// Save creates or updates a webhook
func (r *GormWebhookRepository) Save(ctx context.Context, wh *webhook.Webhook) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

// Delete deletes a webhook and its delivery logs in one transaction
func (r *GormWebhookRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_id = ? AND webhook_id = ?", tenantID, id).
			Delete(&webhook.WebhookLog{}).Error; err != nil {
			return err
		}

		result := tx.
			Where("tenant_id = ? AND id = ?", tenantID, id).
			Delete(&webhook.Webhook{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormWebhookRepository implements Repository
var _ webhook.Repository = (*GormWebhookRepository)(nil)

// GormWebhookLogRepository implements webhook.LogRepository using GORM
type GormWebhookLogRepository struct {
	db *gorm.DB
}

// NewGormWebhookLogRepository creates a new GormWebhookLogRepository
func NewGormWebhookLogRepository(db *gorm.DB) *GormWebhookLogRepository {
	return &GormWebhookLogRepository{db: db}
}

// Create inserts a delivery attempt record
func (r *GormWebhookLogRepository) Create(ctx context.Context, log *webhook.WebhookLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByWebhook lists delivery logs for a webhook, newest first
func (r *GormWebhookLogRepository) FindByWebhook(ctx context.Context, tenantID, webhookID uuid.UUID, filter shared.Filter) ([]webhook.WebhookLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&webhook.WebhookLog{}).
		Where("tenant_id = ? AND webhook_id = ?", tenantID, webhookID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []webhook.WebhookLog
	if err := query.
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Ensure GormWebhookLogRepository implements LogRepository
var _ webhook.LogRepository = (*GormWebhookLogRepository)(nil)
