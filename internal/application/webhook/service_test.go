package webhook

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/webhook"
)

func newWebhookService(t *testing.T) (*WebhookService, *MockWebhookRepository, *MockLogRepository, *MockDispatcher) {
	t.Helper()
	webhookRepo := new(MockWebhookRepository)
	logRepo := new(MockLogRepository)
	dispatcher := new(MockDispatcher)
	service := NewWebhookService(webhookRepo, logRepo, dispatcher, zap.NewNop())
	return service, webhookRepo, logRepo, dispatcher
}

func successLog(wh *domain.Webhook) *domain.WebhookLog {
	log := domain.NewWebhookLog(wh.TenantID, wh.ID)
	log.Status = domain.DeliveryStatusSuccess
	log.ResponseCode = 200
	return log
}

func failedLog(wh *domain.Webhook) *domain.WebhookLog {
	log := domain.NewWebhookLog(wh.TenantID, wh.ID)
	log.Status = domain.DeliveryStatusFailed
	log.ResponseCode = 500
	log.ErrorMessage = "HTTP 500"
	return log
}

func TestWebhookService_Create(t *testing.T) {
	service, webhookRepo, _, _ := newWebhookService(t)
	tenantID := uuid.New()

	webhookRepo.On("Save", mock.Anything, mock.AnythingOfType("*webhook.Webhook")).Return(nil)

	wh, err := service.Create(context.Background(), tenantID, CreateInput{
		Name:             "deploy hook",
		URL:              "https://hooks.example.com/x",
		Provider:         domain.ProviderSlack,
		TriggerOnSuccess: false,
		TriggerOnError:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, tenantID, wh.TenantID)
	assert.Equal(t, domain.ProviderSlack, wh.Provider)
	assert.False(t, wh.TriggerOnSuccess)
	assert.True(t, wh.TriggerOnError)
	assert.True(t, wh.Enabled)
}

func TestWebhookService_Create_RejectsBadURL(t *testing.T) {
	service, webhookRepo, _, _ := newWebhookService(t)

	_, err := service.Create(context.Background(), uuid.New(), CreateInput{
		Name:     "bad",
		URL:      "not-a-url",
		Provider: domain.ProviderGeneric,
	})
	assert.ErrorIs(t, err, shared.ErrInvalidWebhookURL)
	webhookRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWebhookService_Update(t *testing.T) {
	service, webhookRepo, _, _ := newWebhookService(t)
	tenantID := uuid.New()
	wh, err := domain.NewWebhook(tenantID, "old", "https://old.example.com", domain.ProviderGeneric)
	require.NoError(t, err)

	webhookRepo.On("FindByID", mock.Anything, tenantID, wh.ID).Return(wh, nil)
	webhookRepo.On("Save", mock.Anything, wh).Return(nil)

	updated, err := service.Update(context.Background(), tenantID, wh.ID, UpdateInput{
		Name:             "new",
		URL:              "https://new.example.com",
		Provider:         domain.ProviderDiscord,
		Enabled:          false,
		TriggerOnSuccess: true,
		TriggerOnError:   false,
		AuthType:         domain.AuthTypeBearer,
		AuthToken:        "tok",
	})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, domain.ProviderDiscord, updated.Provider)
	assert.False(t, updated.Enabled)
	assert.Equal(t, domain.AuthTypeBearer, updated.AuthType)
}

func TestWebhookService_Test_RunsFullDeliveryPath(t *testing.T) {
	service, webhookRepo, logRepo, dispatcher := newWebhookService(t)
	tenantID := uuid.New()
	wh, err := domain.NewWebhook(tenantID, "hook", "https://hooks.example.com/x", domain.ProviderGeneric)
	require.NoError(t, err)

	webhookRepo.On("FindByID", mock.Anything, tenantID, wh.ID).Return(wh, nil)
	dispatcher.On("Dispatch", mock.Anything, wh, mock.MatchedBy(func(n domain.Notification) bool {
		return n.SyncType == "test"
	})).Return(successLog(wh))
	logRepo.On("Create", mock.Anything, mock.AnythingOfType("*webhook.WebhookLog")).Return(nil)
	webhookRepo.On("Save", mock.Anything, wh).Return(nil)

	log, err := service.Test(context.Background(), tenantID, wh.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.DeliveryStatusSuccess, log.Status)
	assert.Equal(t, int64(1), wh.TotalTriggers)
	assert.Equal(t, int64(1), wh.SuccessTriggers)
	logRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestWebhookService_Deliver_FailureUpdatesCounters(t *testing.T) {
	service, webhookRepo, logRepo, dispatcher := newWebhookService(t)
	tenantID := uuid.New()
	wh, err := domain.NewWebhook(tenantID, "hook", "https://hooks.example.com/x", domain.ProviderGeneric)
	require.NoError(t, err)

	dispatcher.On("Dispatch", mock.Anything, wh, mock.Anything).Return(failedLog(wh))
	logRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	webhookRepo.On("Save", mock.Anything, wh).Return(nil)

	log := service.Deliver(context.Background(), wh, domain.Notification{Status: "FAILED"})

	assert.Equal(t, domain.DeliveryStatusFailed, log.Status)
	assert.Contains(t, log.ErrorMessage, "HTTP 500")
	assert.Equal(t, int64(1), wh.TotalTriggers)
	assert.Equal(t, int64(0), wh.SuccessTriggers)
	assert.Equal(t, int64(1), wh.FailedTriggers)
	assert.Equal(t, domain.DeliveryStatusFailed, wh.LastStatus)
	// Exactly one log row per attempt
	logRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestWebhookService_Deliver_LogPersistenceFailureDoesNotPropagate(t *testing.T) {
	service, webhookRepo, logRepo, dispatcher := newWebhookService(t)
	wh, err := domain.NewWebhook(uuid.New(), "hook", "https://hooks.example.com/x", domain.ProviderGeneric)
	require.NoError(t, err)

	dispatcher.On("Dispatch", mock.Anything, wh, mock.Anything).Return(successLog(wh))
	logRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	webhookRepo.On("Save", mock.Anything, wh).Return(assert.AnError)

	log := service.Deliver(context.Background(), wh, domain.Notification{Status: "SUCCESS"})
	assert.NotNil(t, log)
}

func TestWebhookService_ListLogs(t *testing.T) {
	service, webhookRepo, logRepo, _ := newWebhookService(t)
	tenantID := uuid.New()
	wh, err := domain.NewWebhook(tenantID, "hook", "https://hooks.example.com/x", domain.ProviderGeneric)
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	webhookRepo.On("FindByID", mock.Anything, tenantID, wh.ID).Return(wh, nil)
	logRepo.On("FindByWebhook", mock.Anything, tenantID, wh.ID, filter).
		Return([]domain.WebhookLog{*successLog(wh)}, int64(1), nil)

	page, err := service.ListLogs(context.Background(), tenantID, wh.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
}

func TestWebhookService_ListLogs_UnknownWebhook(t *testing.T) {
	service, webhookRepo, _, _ := newWebhookService(t)
	tenantID := uuid.New()

	webhookRepo.On("FindByID", mock.Anything, tenantID, mock.Anything).Return(nil, shared.ErrNotFound)

	_, err := service.ListLogs(context.Background(), tenantID, uuid.New(), shared.DefaultFilter())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
