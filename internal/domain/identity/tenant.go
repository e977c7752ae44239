package identity

import (
	"strings"
	"time"

	"github.com/catsync/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant represents an account owning a product catalog and its
// sync/webhook configuration. Marketplace credentials are stored
// encrypted and decrypted just-in-time by the sync pipeline.
type Tenant struct {
	shared.BaseEntity
	Name               string       `gorm:"type:varchar(100);not null"`
	StoreName          string       `gorm:"type:varchar(200);not null"`
	Status             TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	EncryptedAPIKey    string       `gorm:"type:text"`
	EncryptedAPISecret string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant
func NewTenant(name, storeName string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tenant name is required")
	}
	if storeName == "" {
		storeName = name
	}

	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		StoreName:  storeName,
		Status:     TenantStatusActive,
	}, nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// SetEncryptedCredentials stores the already-encrypted marketplace credentials
func (t *Tenant) SetEncryptedCredentials(apiKey, apiSecret string) {
	t.EncryptedAPIKey = apiKey
	t.EncryptedAPISecret = apiSecret
	t.UpdatedAt = time.Now()
}

// HasCredentials returns true if marketplace credentials are configured
func (t *Tenant) HasCredentials() bool {
	return t.EncryptedAPIKey != "" && t.EncryptedAPISecret != ""
}

// Suspend marks the tenant as suspended
func (t *Tenant) Suspend() {
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
}

// Activate marks the tenant as active
func (t *Tenant) Activate() {
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
}
