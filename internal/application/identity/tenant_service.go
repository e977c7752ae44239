package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/identity"
	"github.com/catsync/backend/internal/domain/shared"
)

// CredentialEncryptor seals marketplace credentials for storage
type CredentialEncryptor interface {
	Encrypt(plaintext string) (string, error)
}

// TenantService manages tenant accounts and their marketplace credentials
type TenantService struct {
	tenantRepo identity.TenantRepository
	encryptor  CredentialEncryptor
	logger     *zap.Logger
}

// NewTenantService creates a tenant service
func NewTenantService(tenantRepo identity.TenantRepository, encryptor CredentialEncryptor, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		encryptor:  encryptor,
		logger:     logger,
	}
}

// Get returns one tenant
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	return s.tenantRepo.FindByID(ctx, id)
}

// Create registers a new tenant account
func (s *TenantService) Create(ctx context.Context, name, storeName string) (*identity.Tenant, error) {
	tenant, err := identity.NewTenant(name, storeName)
	if err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	s.logger.Info("tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("name", tenant.Name),
	)
	return tenant, nil
}

// SetCredentials encrypts and stores the tenant's marketplace credentials.
// Plaintext never touches the database.
func (s *TenantService) SetCredentials(ctx context.Context, id uuid.UUID, apiKey, apiSecret string) error {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(apiSecret) == "" {
		return shared.NewDomainError("INVALID_CREDENTIALS", "API key and secret are required")
	}

	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	encKey, err := s.encryptor.Encrypt(apiKey)
	if err != nil {
		return err
	}
	encSecret, err := s.encryptor.Encrypt(apiSecret)
	if err != nil {
		return err
	}

	tenant.SetEncryptedCredentials(encKey, encSecret)
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return err
	}

	s.logger.Info("tenant credentials updated", zap.String("tenant_id", id.String()))
	return nil
}

// SetStatus activates or suspends a tenant
func (s *TenantService) SetStatus(ctx context.Context, id uuid.UUID, active bool) (*identity.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		tenant.Activate()
	} else {
		tenant.Suspend()
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}
