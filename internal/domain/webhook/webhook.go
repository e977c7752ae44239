package webhook

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// Provider selects the payload format for a webhook endpoint
type Provider string

const (
	ProviderGeneric Provider = "GENERIC"
	ProviderSlack   Provider = "SLACK"
	ProviderDiscord Provider = "DISCORD"
)

// AuthType selects the optional authentication scheme for delivery
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeBasic  AuthType = "basic"
)

// DeliveryStatus is the recorded outcome of one delivery attempt
type DeliveryStatus string

const (
	DeliveryStatusSuccess DeliveryStatus = "SUCCESS"
	DeliveryStatusFailed  DeliveryStatus = "FAILED"
)

// Webhook is a tenant-managed notification endpoint. Trigger flags
// select which sync outcomes fire it; rolling counters track delivery
// history regardless of outcome.
type Webhook struct {
	shared.TenantEntity
	Name             string         `gorm:"type:varchar(100);not null"`
	URL              string         `gorm:"type:varchar(500);not null"`
	Provider         Provider       `gorm:"type:varchar(20);not null;default:'GENERIC'"`
	Enabled          bool           `gorm:"not null;default:true"`
	TriggerOnSuccess bool           `gorm:"not null;default:true"`
	TriggerOnError   bool           `gorm:"not null;default:true"`
	AuthType         AuthType       `gorm:"type:varchar(20);not null;default:'none'"`
	AuthToken        string         `gorm:"type:varchar(500)"`
	TotalTriggers    int64          `gorm:"not null;default:0"`
	SuccessTriggers  int64          `gorm:"not null;default:0"`
	FailedTriggers   int64          `gorm:"not null;default:0"`
	LastStatus       DeliveryStatus `gorm:"type:varchar(20)"`
	LastTriggeredAt  *time.Time
}

// TableName returns the table name for GORM
func (Webhook) TableName() string {
	return "webhooks"
}

// NewWebhook creates a webhook after validating its target URL and
// provider. Malformed configurations are rejected here, at write time,
// so they never reach the dispatcher.
func NewWebhook(tenantID uuid.UUID, name, rawURL string, provider Provider) (*Webhook, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Webhook name is required")
	}
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}
	if !provider.Valid() {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Unknown webhook provider")
	}

	return &Webhook{
		TenantEntity:     shared.NewTenantEntity(tenantID),
		Name:             name,
		URL:              rawURL,
		Provider:         provider,
		Enabled:          true,
		TriggerOnSuccess: true,
		TriggerOnError:   true,
		AuthType:         AuthTypeNone,
	}, nil
}

// Valid reports whether the provider is a known value
func (p Provider) Valid() bool {
	switch p {
	case ProviderGeneric, ProviderSlack, ProviderDiscord:
		return true
	}
	return false
}

// ValidateURL checks that the target is an absolute http(s) URL
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return shared.ErrInvalidWebhookURL
	}
	return nil
}

// Update replaces the mutable configuration of the webhook
func (w *Webhook) Update(name, rawURL string, provider Provider, enabled, onSuccess, onError bool) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Webhook name is required")
	}
	if err := ValidateURL(rawURL); err != nil {
		return err
	}
	if !provider.Valid() {
		return shared.NewDomainError("INVALID_PROVIDER", "Unknown webhook provider")
	}

	w.Name = name
	w.URL = rawURL
	w.Provider = provider
	w.Enabled = enabled
	w.TriggerOnSuccess = onSuccess
	w.TriggerOnError = onError
	w.Touch()
	return nil
}

// SetAuth configures the optional delivery authentication
func (w *Webhook) SetAuth(authType AuthType, token string) error {
	switch authType {
	case AuthTypeNone:
		token = ""
	case AuthTypeBearer, AuthTypeBasic:
		if token == "" {
			return shared.NewDomainError("INVALID_AUTH", "Auth token is required for the selected scheme")
		}
	default:
		return shared.NewDomainError("INVALID_AUTH", "Unknown auth type")
	}
	w.AuthType = authType
	w.AuthToken = token
	w.Touch()
	return nil
}

// ShouldTrigger reports whether the webhook fires for the given outcome.
// SUCCESS matches the success flag; FAILED and PARTIAL match the error flag.
func (w *Webhook) ShouldTrigger(succeeded bool) bool {
	if !w.Enabled {
		return false
	}
	if succeeded {
		return w.TriggerOnSuccess
	}
	return w.TriggerOnError
}

// RecordDelivery updates the rolling counters after one delivery attempt
func (w *Webhook) RecordDelivery(status DeliveryStatus) {
	now := time.Now()
	w.TotalTriggers++
	if status == DeliveryStatusSuccess {
		w.SuccessTriggers++
	} else {
		w.FailedTriggers++
	}
	w.LastStatus = status
	w.LastTriggeredAt = &now
	w.Touch()
}
