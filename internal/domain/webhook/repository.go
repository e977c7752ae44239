package webhook

import (
	"context"

	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// Repository defines the interface for webhook persistence
type Repository interface {
	// FindByID finds a webhook by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Webhook, error)

	// FindByTenant lists all webhooks for a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Webhook, error)

	// FindEnabled lists enabled webhooks for a tenant
	FindEnabled(ctx context.Context, tenantID uuid.UUID) ([]Webhook, error)

	// Save creates or updates a webhook
	Save(ctx context.Context, webhook *Webhook) error

	// Delete deletes a webhook and cascades to its delivery logs
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// LogRepository defines the interface for delivery log persistence.
// Rows are write-once.
type LogRepository interface {
	// Create inserts a delivery attempt record
	Create(ctx context.Context, log *WebhookLog) error

	// FindByWebhook lists delivery logs for a webhook, newest first
	FindByWebhook(ctx context.Context, tenantID, webhookID uuid.UUID, filter shared.Filter) ([]WebhookLog, int64, error)
}
