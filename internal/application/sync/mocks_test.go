package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/identity"
	"github.com/catsync/backend/internal/domain/integration"
	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/sync"
)

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAllActive(ctx context.Context) ([]identity.Tenant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByMarketplaceID(ctx context.Context, tenantID uuid.UUID, marketplaceProductID string) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, marketplaceProductID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ListEnabled(ctx context.Context, tenantID uuid.UUID, q catalog.ListQuery) ([]catalog.Product, error) {
	args := m.Called(ctx, tenantID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) CountEnabled(ctx context.Context, tenantID uuid.UUID, q catalog.ListQuery) (int64, error) {
	args := m.Called(ctx, tenantID, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, tenantID uuid.UUID) ([]catalog.CategoryCount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.CategoryCount), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Upsert(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLogRepository is a mock implementation of LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, log *domain.SyncLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLogRepository) Update(ctx context.Context, log *domain.SyncLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockLogRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.SyncLog, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncLog), args.Error(1)
}

func (m *MockLogRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]domain.SyncLog, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.SyncLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockLogRepository) FindLatest(ctx context.Context, tenantID uuid.UUID) (*domain.SyncLog, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncLog), args.Error(1)
}

// MockScheduleRepository is a mock implementation of ScheduleRepository
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.SyncSchedule, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SyncSchedule), args.Error(1)
}

func (m *MockScheduleRepository) FindAllEnabled(ctx context.Context) ([]domain.SyncSchedule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncSchedule), args.Error(1)
}

func (m *MockScheduleRepository) Save(ctx context.Context, schedule *domain.SyncSchedule) error {
	args := m.Called(ctx, schedule)
	return args.Error(0)
}

// MockCatalogProvider is a mock implementation of CatalogProvider
type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) FetchCatalog(ctx context.Context, creds integration.Credentials) (*integration.FetchResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.FetchResult), args.Error(1)
}

// MockDecryptor is a mock implementation of CredentialDecryptor
type MockDecryptor struct {
	mock.Mock
}

func (m *MockDecryptor) Decrypt(encoded string) (string, error) {
	args := m.Called(encoded)
	return args.String(0), args.Error(1)
}

// MockPlanner is a mock implementation of CronPlanner
type MockPlanner struct {
	mock.Mock
}

func (m *MockPlanner) Validate(cronExpr, timezone string) error {
	args := m.Called(cronExpr, timezone)
	return args.Error(0)
}

func (m *MockPlanner) Next(cronExpr, timezone string, from time.Time) (time.Time, error) {
	args := m.Called(cronExpr, timezone, from)
	return args.Get(0).(time.Time), args.Error(1)
}

// MockRegistrar is a mock implementation of Registrar
type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) Register(tenantID uuid.UUID, cronExpr, timezone string) error {
	args := m.Called(tenantID, cronExpr, timezone)
	return args.Error(0)
}

func (m *MockRegistrar) Cancel(tenantID uuid.UUID) {
	m.Called(tenantID)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
