package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/shared"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID within a tenant
func (r *GormProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByMarketplaceID finds a product by its marketplace product ID within a tenant
func (r *GormProductRepository) FindByMarketplaceID(ctx context.Context, tenantID uuid.UUID, marketplaceProductID string) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND marketplace_product_id = ?", tenantID, marketplaceProductID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds all products for a tenant
func (r *GormProductRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.OrderBy != "" {
		dir := "ASC"
		if filter.OrderDir == "desc" {
			dir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Offset(filter.Offset()).Limit(filter.PageSize).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListEnabled returns enabled products matching the listing query
func (r *GormProductRepository) ListEnabled(ctx context.Context, tenantID uuid.UUID, q catalog.ListQuery) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyListQuery(ctx, tenantID, q)

	switch q.SortBy {
	case "price_low":
		query = query.Order("COALESCE(sale_price, price) ASC, id ASC")
	case "price_high":
		query = query.Order("COALESCE(sale_price, price) DESC, id ASC")
	default:
		query = query.Order("created_at DESC, id ASC")
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// CountEnabled counts enabled products matching the listing query
func (r *GormProductRepository) CountEnabled(ctx context.Context, tenantID uuid.UUID, q catalog.ListQuery) (int64, error) {
	var count int64
	if err := r.applyListQuery(ctx, tenantID, q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCategory groups enabled products by top-level category path segment
func (r *GormProductRepository) CountByCategory(ctx context.Context, tenantID uuid.UUID) ([]catalog.CategoryCount, error) {
	var rows []catalog.CategoryCount
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("split_part(category_path, '>', 1) AS name, MIN(category_id) AS c_id, COUNT(*) AS count").
		Where("tenant_id = ? AND enabled = ? AND category_path <> ''", tenantID, true).
		Group("split_part(category_path, '>', 1)").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Upsert inserts or updates a product keyed by (tenant, marketplace product id)
func (r *GormProductRepository) Upsert(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "marketplace_product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "price", "sale_price", "stock", "images",
			"category_path", "category_id", "sync_status",
			"last_synced_at", "updated_at", "version",
		}),
	}).Create(product).Error
}

// Delete deletes a product within a tenant
func (r *GormProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&catalog.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all products for a tenant
func (r *GormProductRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyListQuery builds the shared WHERE clause for listing reads
func (r *GormProductRepository) applyListQuery(ctx context.Context, tenantID uuid.UUID, q catalog.ListQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ? AND enabled = ?", tenantID, true)

	if q.CategoryID != "" {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.Keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q.Keyword)+"%")
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
