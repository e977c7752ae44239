package webhook

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/webhook"
)

// CreateInput carries a webhook creation request
type CreateInput struct {
	Name             string
	URL              string
	Provider         domain.Provider
	AuthType         domain.AuthType
	AuthToken        string
	TriggerOnSuccess bool
	TriggerOnError   bool
}

// UpdateInput carries a webhook update request
type UpdateInput struct {
	Name             string
	URL              string
	Provider         domain.Provider
	Enabled          bool
	TriggerOnSuccess bool
	TriggerOnError   bool
	AuthType         domain.AuthType
	AuthToken        string
}

// WebhookService manages tenant webhooks and performs deliveries.
// Every delivery attempt, including manual tests, writes exactly one
// log row and bumps the rolling counters.
type WebhookService struct {
	webhookRepo domain.Repository
	logRepo     domain.LogRepository
	dispatcher  domain.Dispatcher
	logger      *zap.Logger
}

// NewWebhookService creates a webhook service
func NewWebhookService(
	webhookRepo domain.Repository,
	logRepo domain.LogRepository,
	dispatcher domain.Dispatcher,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		webhookRepo: webhookRepo,
		logRepo:     logRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Create validates and stores a new webhook
func (s *WebhookService) Create(ctx context.Context, tenantID uuid.UUID, input CreateInput) (*domain.Webhook, error) {
	wh, err := domain.NewWebhook(tenantID, input.Name, input.URL, input.Provider)
	if err != nil {
		return nil, err
	}
	wh.TriggerOnSuccess = input.TriggerOnSuccess
	wh.TriggerOnError = input.TriggerOnError

	if input.AuthType != "" && input.AuthType != domain.AuthTypeNone {
		if err := wh.SetAuth(input.AuthType, input.AuthToken); err != nil {
			return nil, err
		}
	}

	if err := s.webhookRepo.Save(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

// Update replaces the configuration of an existing webhook
func (s *WebhookService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateInput) (*domain.Webhook, error) {
	wh, err := s.webhookRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := wh.Update(input.Name, input.URL, input.Provider, input.Enabled, input.TriggerOnSuccess, input.TriggerOnError); err != nil {
		return nil, err
	}

	authType := input.AuthType
	if authType == "" {
		authType = domain.AuthTypeNone
	}
	if err := wh.SetAuth(authType, input.AuthToken); err != nil {
		return nil, err
	}

	if err := s.webhookRepo.Save(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

// Delete removes a webhook and its delivery logs
func (s *WebhookService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.webhookRepo.Delete(ctx, tenantID, id)
}

// Get returns one webhook
func (s *WebhookService) Get(ctx context.Context, tenantID, id uuid.UUID) (*domain.Webhook, error) {
	return s.webhookRepo.FindByID(ctx, tenantID, id)
}

// List returns all webhooks for a tenant
func (s *WebhookService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.Webhook, error) {
	return s.webhookRepo.FindByTenant(ctx, tenantID)
}

// ListLogs returns the delivery logs for a webhook, newest first
func (s *WebhookService) ListLogs(ctx context.Context, tenantID, webhookID uuid.UUID, filter shared.Filter) (shared.Paginated[domain.WebhookLog], error) {
	if _, err := s.webhookRepo.FindByID(ctx, tenantID, webhookID); err != nil {
		return shared.Paginated[domain.WebhookLog]{}, err
	}
	logs, total, err := s.logRepo.FindByWebhook(ctx, tenantID, webhookID, filter)
	if err != nil {
		return shared.Paginated[domain.WebhookLog]{}, err
	}
	return shared.NewPaginated(logs, total, filter.Page, filter.PageSize), nil
}

// Test delivers a synthetic notification through the regular
// render, deliver and log path
func (s *WebhookService) Test(ctx context.Context, tenantID, id uuid.UUID) (*domain.WebhookLog, error) {
	wh, err := s.webhookRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	n := domain.Notification{
		StoreName:   "Test delivery",
		SyncType:    "test",
		Status:      "SUCCESS",
		ItemsTotal:  1,
		ItemsSynced: 1,
		Duration:    time.Second,
		OccurredAt:  time.Now(),
	}

	return s.Deliver(ctx, wh, n), nil
}

// Deliver performs one delivery attempt and records its outcome. The
// returned log is already persisted; persistence problems are logged
// and never interrupt the caller.
func (s *WebhookService) Deliver(ctx context.Context, wh *domain.Webhook, n domain.Notification) *domain.WebhookLog {
	log := s.dispatcher.Dispatch(ctx, wh, n)

	if err := s.logRepo.Create(ctx, log); err != nil {
		s.logger.Error("failed to persist webhook delivery log",
			zap.String("webhook_id", wh.ID.String()),
			zap.Error(err),
		)
	}

	wh.RecordDelivery(log.Status)
	if err := s.webhookRepo.Save(ctx, wh); err != nil {
		s.logger.Error("failed to update webhook counters",
			zap.String("webhook_id", wh.ID.String()),
			zap.Error(err),
		)
	}

	return log
}
