package webhook

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/webhook"
)

// MockWebhookRepository is a mock implementation of Repository
type MockWebhookRepository struct {
	mock.Mock
}

func (m *MockWebhookRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Webhook, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Webhook, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) FindEnabled(ctx context.Context, tenantID uuid.UUID) ([]domain.Webhook, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Webhook), args.Error(1)
}

func (m *MockWebhookRepository) Save(ctx context.Context, webhook *domain.Webhook) error {
	args := m.Called(ctx, webhook)
	return args.Error(0)
}

func (m *MockWebhookRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLogRepository is a mock implementation of LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, log *domain.WebhookLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLogRepository) FindByWebhook(ctx context.Context, tenantID, webhookID uuid.UUID, filter shared.Filter) ([]domain.WebhookLog, int64, error) {
	args := m.Called(ctx, tenantID, webhookID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.WebhookLog), args.Get(1).(int64), args.Error(2)
}

// MockDispatcher is a mock implementation of Dispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, wh *domain.Webhook, n domain.Notification) *domain.WebhookLog {
	args := m.Called(ctx, wh, n)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Webhook, domain.Notification) *domain.WebhookLog); ok {
		return fn(ctx, wh, n)
	}
	return args.Get(0).(*domain.WebhookLog)
}
