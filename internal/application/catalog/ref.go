package catalog

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catsync/backend/internal/domain/affiliate"
	"github.com/catsync/backend/internal/domain/catalog"
	"github.com/catsync/backend/internal/domain/shared"
)

// Source tags which store a combined item came from
type Source string

const (
	SourceTenant    Source = "tenant"
	SourceAffiliate Source = "affiliate"
)

// Tagged id prefixes keep the two id spaces collision-free at lookup
const (
	tenantRefPrefix    = "p_"
	affiliateRefPrefix = "a_"
)

// ProductRef is a parsed tagged identifier
type ProductRef struct {
	Source      Source
	TenantID    uuid.UUID
	AffiliateID int64
}

// TenantRef builds the tagged id for a tenant catalog product
func TenantRef(id uuid.UUID) string {
	return tenantRefPrefix + id.String()
}

// AffiliateRef builds the tagged id for an affiliate catalog product
func AffiliateRef(id int64) string {
	return affiliateRefPrefix + strconv.FormatInt(id, 10)
}

// ParseRef dispatches a tagged id to the correct id space
func ParseRef(ref string) (ProductRef, error) {
	switch {
	case strings.HasPrefix(ref, tenantRefPrefix):
		id, err := uuid.Parse(strings.TrimPrefix(ref, tenantRefPrefix))
		if err != nil {
			return ProductRef{}, shared.NewDomainError("INVALID_REF", "Malformed product reference")
		}
		return ProductRef{Source: SourceTenant, TenantID: id}, nil
	case strings.HasPrefix(ref, affiliateRefPrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(ref, affiliateRefPrefix), 10, 64)
		if err != nil {
			return ProductRef{}, shared.NewDomainError("INVALID_REF", "Malformed product reference")
		}
		return ProductRef{Source: SourceAffiliate, AffiliateID: id}, nil
	default:
		return ProductRef{}, shared.NewDomainError("INVALID_REF", "Unknown product reference prefix")
	}
}

// CombinedProduct is one item of the merged cross-source listing
type CombinedProduct struct {
	ID             string          `json:"id"`
	Source         Source          `json:"source"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	SalePrice      decimal.Decimal `json:"sale_price"`
	EffectivePrice decimal.Decimal `json:"effective_price"`
	ImageURL       string          `json:"image_url"`
	CategoryPath   string          `json:"category_path"`
	CategoryID     string          `json:"category_id"`
	CreatedAt      time.Time       `json:"created_at"`
}

// fromTenantProduct maps a tenant catalog row into the combined shape
func fromTenantProduct(p *catalog.Product) CombinedProduct {
	return CombinedProduct{
		ID:             TenantRef(p.ID),
		Source:         SourceTenant,
		Name:           p.Name,
		Price:          p.Price,
		SalePrice:      zeroIfNil(p.SalePrice),
		EffectivePrice: p.EffectivePrice(),
		ImageURL:       firstImage(p.Images),
		CategoryPath:   p.CategoryPath,
		CategoryID:     p.CategoryID,
		CreatedAt:      p.CreatedAt,
	}
}

// fromAffiliateProduct maps an affiliate catalog row into the combined shape
func fromAffiliateProduct(p *affiliate.Product) CombinedProduct {
	return CombinedProduct{
		ID:             AffiliateRef(p.ID),
		Source:         SourceAffiliate,
		Name:           p.Name,
		Price:          p.Price,
		SalePrice:      zeroIfNil(p.SalePrice),
		EffectivePrice: p.EffectivePrice(),
		ImageURL:       p.ImageURL,
		CategoryPath:   joinCategories(p.Category1, p.Category2, p.Category3),
		CategoryID:     p.CID,
		CreatedAt:      p.CreatedAt,
	}
}

// firstImage extracts the first entry of a JSON image array
func firstImage(images string) string {
	if images == "" {
		return ""
	}
	var urls []string
	if err := json.Unmarshal([]byte(images), &urls); err != nil || len(urls) == 0 {
		return ""
	}
	return urls[0]
}

// joinCategories renders the affiliate taxonomy path
func joinCategories(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ">")
}
