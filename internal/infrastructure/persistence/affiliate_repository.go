package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/catsync/backend/internal/domain/affiliate"
	"github.com/catsync/backend/internal/domain/shared"
)

// GormAffiliateRepository implements the affiliate ProductRepository.
// The affiliate dataset is owned by another system; this repository
// only ever reads it, with parameterized queries.
type GormAffiliateRepository struct {
	db *gorm.DB
}

// NewGormAffiliateRepository creates a new GormAffiliateRepository
func NewGormAffiliateRepository(db *gorm.DB) *GormAffiliateRepository {
	return &GormAffiliateRepository{db: db}
}

// List returns enabled affiliate products matching the query
func (r *GormAffiliateRepository) List(ctx context.Context, q affiliate.Query) ([]affiliate.Product, error) {
	var products []affiliate.Product
	query := r.applyQuery(ctx, q)

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

// Count counts enabled affiliate products matching the query
func (r *GormAffiliateRepository) Count(ctx context.Context, q affiliate.Query) (int64, error) {
	var count int64
	if err := r.applyQuery(ctx, q).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID finds one affiliate product by its numeric ID
func (r *GormAffiliateRepository) FindByID(ctx context.Context, id int64) (*affiliate.Product, error) {
	var product affiliate.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CategoryLevel1 returns the distinct top-level categories with a
// representative cid and aggregated product count
func (r *GormAffiliateRepository) CategoryLevel1(ctx context.Context) ([]affiliate.CategoryEntry, error) {
	var entries []affiliate.CategoryEntry
	err := r.db.WithContext(ctx).
		Raw(`SELECT category1 AS name, MIN(cid) AS cid, COUNT(*) AS count
		     FROM affiliate_products
		     WHERE enabled = ? AND category1 <> ''
		     GROUP BY category1
		     ORDER BY count DESC`, true).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CategoryLevel2 returns second-level categories under a top-level category
func (r *GormAffiliateRepository) CategoryLevel2(ctx context.Context, category1 string) ([]affiliate.CategoryEntry, error) {
	var entries []affiliate.CategoryEntry
	err := r.db.WithContext(ctx).
		Raw(`SELECT category2 AS name, MIN(cid) AS cid, COUNT(*) AS count
		     FROM affiliate_products
		     WHERE enabled = ? AND category1 = ? AND category2 <> ''
		     GROUP BY category2
		     ORDER BY count DESC`, true, category1).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CategoryLevel3 returns third-level categories under the given parents
func (r *GormAffiliateRepository) CategoryLevel3(ctx context.Context, category1, category2 string) ([]affiliate.CategoryEntry, error) {
	var entries []affiliate.CategoryEntry
	err := r.db.WithContext(ctx).
		Raw(`SELECT category3 AS name, MIN(cid) AS cid, COUNT(*) AS count
		     FROM affiliate_products
		     WHERE enabled = ? AND category1 = ? AND category2 = ? AND category3 <> ''
		     GROUP BY category3
		     ORDER BY count DESC`, true, category1, category2).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// applyQuery builds the shared WHERE clause for listing reads
func (r *GormAffiliateRepository) applyQuery(ctx context.Context, q affiliate.Query) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&affiliate.Product{}).
		Where("enabled = ?", true)

	if q.CID != "" {
		query = query.Where("cid = ?", q.CID)
	}
	if q.Keyword != "" {
		pattern := "%" + strings.ToLower(q.Keyword) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(keyword) LIKE ?", pattern, pattern)
	}
	return query
}

// Ensure GormAffiliateRepository implements ProductRepository
var _ affiliate.ProductRepository = (*GormAffiliateRepository)(nil)
