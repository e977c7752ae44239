package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/catsync/backend/internal/domain/shared"
)

// ListQuery holds the read-side filter for tenant catalog listings
type ListQuery struct {
	CategoryID string // cid in the affiliate taxonomy; empty means all
	Keyword    string // case-insensitive substring match on name
	SortBy     string // latest | price_low | price_high
	Limit      int
	Offset     int
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByMarketplaceID finds a product by its marketplace product ID within a tenant
	FindByMarketplaceID(ctx context.Context, tenantID uuid.UUID, marketplaceProductID string) (*Product, error)

	// FindAll finds all products for a tenant
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// ListEnabled returns enabled products matching the listing query,
	// ordered according to the query's sort key
	ListEnabled(ctx context.Context, tenantID uuid.UUID, q ListQuery) ([]Product, error)

	// CountEnabled counts enabled products matching the listing query
	CountEnabled(ctx context.Context, tenantID uuid.UUID, q ListQuery) (int64, error)

	// CountByCategory groups enabled products by top-level category path segment
	CountByCategory(ctx context.Context, tenantID uuid.UUID) ([]CategoryCount, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Upsert inserts or updates a product keyed by (tenant, marketplace product id)
	Upsert(ctx context.Context, product *Product) error

	// Delete deletes a product within a tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// Count counts all products for a tenant
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// CategoryCount is one aggregated row of a category count query
type CategoryCount struct {
	Name  string
	CID   string
	Count int64
}
