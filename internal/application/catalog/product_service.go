package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/shared"
)

// ProductService exposes the tenant's mirrored catalog for management
// surfaces. Product contents come from sync runs; only visibility and
// deletion are tenant-editable.
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, tenantID, id)
}

// List returns the tenant's products
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	products, err := s.productRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}
	total, err := s.productRepo.Count(ctx, tenantID)
	if err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}
	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// SetEnabled toggles listing visibility for a product
func (s *ProductService) SetEnabled(ctx context.Context, tenantID, id uuid.UUID, enabled bool) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	product.SetEnabled(enabled)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product from the tenant catalog. The next sync run
// will recreate it if it still exists upstream.
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, tenantID, id)
}
