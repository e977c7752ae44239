package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/affiliate"
	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/settings"
)

// CategoryService resolves the three-level category drilldown over the
// affiliate taxonomy. When the affiliate catalog is visible its counts
// are authoritative; the tenant catalog only backs level 1 when the
// affiliate catalog is hidden, and levels 2/3 are then empty because
// the tenant catalog lacks the full taxonomy.
type CategoryService struct {
	productRepo   catalog.ProductRepository
	affiliateRepo affiliate.ProductRepository
	snapshots     settings.SnapshotProvider
	logger        *zap.Logger
}

// NewCategoryService creates a category service
func NewCategoryService(
	productRepo catalog.ProductRepository,
	affiliateRepo affiliate.ProductRepository,
	snapshots settings.SnapshotProvider,
	logger *zap.Logger,
) *CategoryService {
	return &CategoryService{
		productRepo:   productRepo,
		affiliateRepo: affiliateRepo,
		snapshots:     snapshots,
		logger:        logger,
	}
}

// Level1 returns the top-level categories with aggregated counts
func (s *CategoryService) Level1(ctx context.Context, tenantID uuid.UUID) ([]affiliate.CategoryEntry, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if snap.AffiliateVisible {
		entries, err := s.affiliateRepo.CategoryLevel1(ctx)
		if err == nil {
			return entries, nil
		}
		// Degrade to the tenant grouping rather than failing the read
		s.logger.Warn("affiliate taxonomy unavailable, falling back to tenant categories",
			zap.Error(err),
		)
	}

	counts, err := s.productRepo.CountByCategory(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	entries := make([]affiliate.CategoryEntry, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, affiliate.CategoryEntry{
			Name:  c.Name,
			CID:   c.CID,
			Count: c.Count,
		})
	}
	return entries, nil
}

// Level2 returns the second-level categories under category1
func (s *CategoryService) Level2(ctx context.Context, category1 string) ([]affiliate.CategoryEntry, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.AffiliateVisible {
		return []affiliate.CategoryEntry{}, nil
	}
	return s.affiliateRepo.CategoryLevel2(ctx, category1)
}

// Level3 returns the third-level categories under the given parents
func (s *CategoryService) Level3(ctx context.Context, category1, category2 string) ([]affiliate.CategoryEntry, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if !snap.AffiliateVisible {
		return []affiliate.CategoryEntry{}, nil
	}
	return s.affiliateRepo.CategoryLevel3(ctx, category1, category2)
}
