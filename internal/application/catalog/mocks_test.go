package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/catsync/backend/internal/domain/affiliate"
	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/settings"
	"github.com/catsync/backend/internal/domain/shared"
)

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

// MockAffiliateRepository is a mock implementation of the affiliate ProductRepository
type MockAffiliateRepository struct {
	mock.Mock
}

func (m *MockAffiliateRepository) List(ctx context.Context, q affiliate.Query) ([]affiliate.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]affiliate.Product), args.Error(1)
}

func (m *MockAffiliateRepository) Count(ctx context.Context, q affiliate.Query) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAffiliateRepository) FindByID(ctx context.Context, id int64) (*affiliate.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliate.Product), args.Error(1)
}

func (m *MockAffiliateRepository) CategoryLevel1(ctx context.Context) ([]affiliate.CategoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]affiliate.CategoryEntry), args.Error(1)
}

func (m *MockAffiliateRepository) CategoryLevel2(ctx context.Context, category1 string) ([]affiliate.CategoryEntry, error) {
	args := m.Called(ctx, category1)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]affiliate.CategoryEntry), args.Error(1)
}

func (m *MockAffiliateRepository) CategoryLevel3(ctx context.Context, category1, category2 string) ([]affiliate.CategoryEntry, error) {
	args := m.Called(ctx, category1, category2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]affiliate.CategoryEntry), args.Error(1)
}

// stubSnapshots serves a fixed settings snapshot
type stubSnapshots struct {
	snap settings.Snapshot
	err  error
}

func (s *stubSnapshots) Snapshot(ctx context.Context) (settings.Snapshot, error) {
	return s.snap, s.err
}
