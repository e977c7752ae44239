package webhook

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWebhook_Validation(t *testing.T) {
	tenantID := uuid.New()

	wh, err := NewWebhook(tenantID, "alerts", "https://hooks.example.com/x", ProviderSlack)
	require.NoError(t, err)
	assert.True(t, wh.Enabled)
	assert.True(t, wh.TriggerOnSuccess)
	assert.True(t, wh.TriggerOnError)
	assert.Equal(t, AuthTypeNone, wh.AuthType)

	_, err = NewWebhook(tenantID, "", "https://hooks.example.com/x", ProviderSlack)
	assert.Error(t, err)

	_, err = NewWebhook(tenantID, "alerts", "ftp://hooks.example.com/x", ProviderSlack)
	assert.Error(t, err)

	_, err = NewWebhook(tenantID, "alerts", "not a url", ProviderSlack)
	assert.Error(t, err)

	_, err = NewWebhook(tenantID, "alerts", "https://hooks.example.com/x", Provider("TEAMS"))
	assert.Error(t, err)
}

func TestWebhook_SetAuth(t *testing.T) {
	wh, err := NewWebhook(uuid.New(), "alerts", "https://hooks.example.com/x", ProviderGeneric)
	require.NoError(t, err)

	require.NoError(t, wh.SetAuth(AuthTypeBearer, "tok-123"))
	assert.Equal(t, "tok-123", wh.AuthToken)

	// Switching back to none drops the stored token
	require.NoError(t, wh.SetAuth(AuthTypeNone, "ignored"))
	assert.Empty(t, wh.AuthToken)

	assert.Error(t, wh.SetAuth(AuthTypeBearer, ""))
	assert.Error(t, wh.SetAuth(AuthType("digest"), "tok"))
}

func TestWebhook_ShouldTrigger(t *testing.T) {
	wh, err := NewWebhook(uuid.New(), "alerts", "https://hooks.example.com/x", ProviderGeneric)
	require.NoError(t, err)

	wh.TriggerOnSuccess = false
	wh.TriggerOnError = true
	assert.False(t, wh.ShouldTrigger(true))
	assert.True(t, wh.ShouldTrigger(false))

	wh.TriggerOnSuccess = true
	wh.TriggerOnError = false
	assert.True(t, wh.ShouldTrigger(true))
	assert.False(t, wh.ShouldTrigger(false))

	wh.Enabled = false
	assert.False(t, wh.ShouldTrigger(true))
	assert.False(t, wh.ShouldTrigger(false))
}

func TestWebhook_RecordDelivery(t *testing.T) {
	wh, err := NewWebhook(uuid.New(), "alerts", "https://hooks.example.com/x", ProviderDiscord)
	require.NoError(t, err)

	wh.RecordDelivery(DeliveryStatusSuccess)
	wh.RecordDelivery(DeliveryStatusFailed)
	wh.RecordDelivery(DeliveryStatusFailed)

	assert.Equal(t, int64(3), wh.TotalTriggers)
	assert.Equal(t, int64(1), wh.SuccessTriggers)
	assert.Equal(t, int64(2), wh.FailedTriggers)
	assert.Equal(t, DeliveryStatusFailed, wh.LastStatus)
	require.NotNil(t, wh.LastTriggeredAt)
}
