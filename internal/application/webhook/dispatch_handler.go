package webhook

import (
	"context"

	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/shared"
	"github.com/catsync/backend/internal/domain/sync"
	domain "github.com/catsync/backend/internal/domain/webhook"
)

// DispatchHandler consumes sync completion events and fans them out to
// the tenant's matching webhooks. It runs on the in-process event bus,
// outside the request cycle; failures are recorded per delivery and
// never reach the sync job.
type DispatchHandler struct {
	service     *WebhookService
	webhookRepo domain.Repository
	logger      *zap.Logger
}

// NewDispatchHandler creates the event handler for webhook fan-out
func NewDispatchHandler(service *WebhookService, webhookRepo domain.Repository, logger *zap.Logger) *DispatchHandler {
	return &DispatchHandler{
		service:     service,
		webhookRepo: webhookRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *DispatchHandler) EventTypes() []string {
	return []string{sync.EventTypeSyncCompleted}
}

// Handle delivers the sync outcome to every webhook whose trigger
// flags match it
func (h *DispatchHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*sync.SyncCompletedEvent)
	if !ok {
		return nil
	}

	webhooks, err := h.webhookRepo.FindEnabled(ctx, completed.TenantID())
	if err != nil {
		h.logger.Error("failed to load webhooks for dispatch",
			zap.String("tenant_id", completed.TenantID().String()),
			zap.Error(err),
		)
		return err
	}

	n := domain.Notification{
		StoreName:   completed.StoreName,
		SyncType:    string(completed.SyncType),
		Status:      string(completed.Status),
		ItemsTotal:  completed.ItemsTotal,
		ItemsSynced: completed.ItemsSynced,
		ItemsFailed: completed.ItemsFailed,
		ErrorLog:    completed.ErrorLog,
		Duration:    completed.Duration,
		OccurredAt:  completed.OccurredAt(),
	}

	for i := range webhooks {
		wh := &webhooks[i]
		if !wh.ShouldTrigger(completed.Succeeded()) {
			continue
		}
		h.service.Deliver(ctx, wh, n)
	}
	return nil
}

// Ensure DispatchHandler implements EventHandler
var _ shared.EventHandler = (*DispatchHandler)(nil)
