package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catsync/backend/internal/domain/shared"
)

// SyncStatus represents the sync state of a mirrored product
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "PENDING"
	SyncStatusSynced  SyncStatus = "SYNCED"
	SyncStatusFailed  SyncStatus = "FAILED"
)

// Product mirrors a marketplace item into the tenant catalog.
// MarketplaceProductID is the upsert key within a tenant.
type Product struct {
	shared.TenantEntity
	MarketplaceProductID string           `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_tenant_mpid,priority:2"`
	Name                 string           `gorm:"type:varchar(300);not null"`
	Price                decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	SalePrice            *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Stock                int              `gorm:"not null;default:0"`
	Images               string           `gorm:"type:jsonb;default:'[]'"` // JSON array of image URLs
	CategoryPath         string           `gorm:"type:varchar(500)"`
	CategoryID           string           `gorm:"type:varchar(32);index"` // cid in the affiliate taxonomy
	SyncStatus           SyncStatus       `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Enabled              bool             `gorm:"not null;default:true"`
	LastSyncedAt         *time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// ProductData carries the transformed shape of one marketplace record
type ProductData struct {
	MarketplaceProductID string
	Name                 string
	Price                decimal.Decimal
	SalePrice            *decimal.Decimal
	Stock                int
	Images               string
	CategoryPath         string
	CategoryID           string
}

// NewProduct creates a tenant product from fetched marketplace data
func NewProduct(tenantID uuid.UUID, data ProductData) (*Product, error) {
	if strings.TrimSpace(data.MarketplaceProductID) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Marketplace product ID is required")
	}
	if strings.TrimSpace(data.Name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}

	p := &Product{
		TenantEntity: shared.NewTenantEntity(tenantID),
		SyncStatus:   SyncStatusPending,
		Enabled:      true,
	}
	p.applyData(data)
	return p, nil
}

// ApplyRemote overwrites the mirrored fields with freshly fetched data
func (p *Product) ApplyRemote(data ProductData) error {
	if strings.TrimSpace(data.Name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name is required")
	}
	p.applyData(data)
	p.Touch()
	return nil
}

func (p *Product) applyData(data ProductData) {
	p.MarketplaceProductID = data.MarketplaceProductID
	p.Name = data.Name
	p.Price = data.Price
	p.SalePrice = data.SalePrice
	p.Stock = data.Stock
	if data.Images != "" {
		p.Images = data.Images
	}
	p.CategoryPath = data.CategoryPath
	p.CategoryID = data.CategoryID
}

// MarkSynced marks the product as successfully upserted in the current run
func (p *Product) MarkSynced() {
	now := time.Now()
	p.SyncStatus = SyncStatusSynced
	p.LastSyncedAt = &now
	p.UpdatedAt = now
}

// MarkFailed marks the product as failed in the current run
func (p *Product) MarkFailed() {
	p.SyncStatus = SyncStatusFailed
	p.UpdatedAt = time.Now()
}

// SetEnabled toggles listing visibility for the product
func (p *Product) SetEnabled(enabled bool) {
	p.Enabled = enabled
	p.Touch()
}

// EffectivePrice returns the sale price when set, else the list price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}
