package catalog

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/affiliate"
	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/settings"
	"github.com/catsync/backend/internal/domain/shared"
)

// Sort keys accepted by the composition read interface
const (
	SortLatest    = "latest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

// CompositionQuery is the read-side filter for the merged listing
type CompositionQuery struct {
	CategoryID string
	Keyword    string
	SortBy     string
	Page       int
	PageSize   int
}

// normalize clamps paging values and the sort key
func (q *CompositionQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	switch q.SortBy {
	case SortPriceLow, SortPriceHigh:
	default:
		q.SortBy = SortLatest
	}
}

// CompositionResult is one merged page plus the per-source breakdown
type CompositionResult struct {
	Combined       []CombinedProduct `json:"combined"`
	TenantItems    int64             `json:"tenant_items"`
	AffiliateItems int64             `json:"affiliate_items"`
	Total          int64             `json:"total"`
	Page           int               `json:"page"`
	PageSize       int               `json:"page_size"`
	TotalPages     int               `json:"total_pages"`
}

// CompositionService merges the tenant catalog with the affiliate
// catalog into one ordered, paginated sequence. The settings snapshot
// decides whether the affiliate source participates; pagination always
// applies to the merged sequence, never per source.
type CompositionService struct {
	productRepo   catalog.ProductRepository
	affiliateRepo affiliate.ProductRepository
	snapshots     settings.SnapshotProvider
	logger        *zap.Logger
}

// NewCompositionService creates a composition service
func NewCompositionService(
	productRepo catalog.ProductRepository,
	affiliateRepo affiliate.ProductRepository,
	snapshots settings.SnapshotProvider,
	logger *zap.Logger,
) *CompositionService {
	return &CompositionService{
		productRepo:   productRepo,
		affiliateRepo: affiliateRepo,
		snapshots:     snapshots,
		logger:        logger,
	}
}

// Compose returns one contiguous cross-source page of the merged listing
func (s *CompositionService) Compose(ctx context.Context, tenantID uuid.UUID, query CompositionQuery) (*CompositionResult, error) {
	query.normalize()

	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// The merged window needs every candidate up to the end of the
	// requested page from both sources
	window := query.Page * query.PageSize

	tenantProducts, err := s.productRepo.ListEnabled(ctx, tenantID, catalog.ListQuery{
		CategoryID: query.CategoryID,
		Keyword:    query.Keyword,
		SortBy:     query.SortBy,
		Limit:      window,
	})
	if err != nil {
		return nil, err
	}
	tenantTotal, err := s.productRepo.CountEnabled(ctx, tenantID, catalog.ListQuery{
		CategoryID: query.CategoryID,
		Keyword:    query.Keyword,
	})
	if err != nil {
		return nil, err
	}

	combined := make([]CombinedProduct, 0, window)
	for i := range tenantProducts {
		combined = append(combined, fromTenantProduct(&tenantProducts[i]))
	}

	var affiliateTotal int64
	if snap.AffiliateVisible {
		affiliateProducts, affErr := s.affiliateRepo.List(ctx, affiliate.Query{
			CID:     query.CategoryID,
			Keyword: query.Keyword,
			SortBy:  query.SortBy,
			Limit:   window,
		})
		if affErr == nil {
			affiliateTotal, affErr = s.affiliateRepo.Count(ctx, affiliate.Query{
				CID:     query.CategoryID,
				Keyword: query.Keyword,
			})
		}
		if affErr != nil {
			// Degrade to tenant-only rather than failing the read
			s.logger.Warn("affiliate catalog unavailable, serving tenant-only results",
				zap.Error(affErr),
			)
			affiliateTotal = 0
		} else {
			for i := range affiliateProducts {
				combined = append(combined, fromAffiliateProduct(&affiliateProducts[i]))
			}
		}
	}

	sortCombined(combined, query.SortBy)

	total := tenantTotal + affiliateTotal
	page := paginate(combined, query.Page, query.PageSize)

	totalPages := int(total) / query.PageSize
	if int(total)%query.PageSize > 0 {
		totalPages++
	}

	return &CompositionResult{
		Combined:       page,
		TenantItems:    tenantTotal,
		AffiliateItems: affiliateTotal,
		Total:          total,
		Page:           query.Page,
		PageSize:       query.PageSize,
		TotalPages:     totalPages,
	}, nil
}

// GetByRef resolves a tagged identifier against the correct store
func (s *CompositionService) GetByRef(ctx context.Context, tenantID uuid.UUID, ref string) (*CombinedProduct, error) {
	parsed, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}

	switch parsed.Source {
	case SourceTenant:
		product, err := s.productRepo.FindByID(ctx, tenantID, parsed.TenantID)
		if err != nil {
			return nil, err
		}
		combined := fromTenantProduct(product)
		return &combined, nil
	default:
		snap, err := s.snapshots.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		if !snap.AffiliateVisible {
			return nil, shared.ErrNotFound
		}
		product, err := s.affiliateRepo.FindByID(ctx, parsed.AffiliateID)
		if err != nil {
			return nil, err
		}
		combined := fromAffiliateProduct(product)
		return &combined, nil
	}
}

// sortCombined orders the merged sequence; ties break on the tagged id
// so pagination stays stable across requests
func sortCombined(items []CombinedProduct, sortBy string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch sortBy {
		case SortPriceLow:
			if !a.EffectivePrice.Equal(b.EffectivePrice) {
				return a.EffectivePrice.LessThan(b.EffectivePrice)
			}
		case SortPriceHigh:
			if !a.EffectivePrice.Equal(b.EffectivePrice) {
				return a.EffectivePrice.GreaterThan(b.EffectivePrice)
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})
}

// paginate slices one page out of the merged, sorted sequence
func paginate(items []CombinedProduct, page, pageSize int) []CombinedProduct {
	offset := (page - 1) * pageSize
	if offset >= len(items) {
		return []CombinedProduct{}
	}
	end := offset + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// zeroIfNil converts an optional decimal to a value for serialization
func zeroIfNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
