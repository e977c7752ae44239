package affiliate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one row of the affiliate bulk catalog. The dataset is
// owned by another system and is read-only to this service; rows are
// addressed through parameterized queries only.
type Product struct {
	ID        int64            `gorm:"primaryKey"`
	CID       string           `gorm:"column:cid;type:varchar(32);index"`
	Name      string           `gorm:"type:varchar(300)"`
	Price     decimal.Decimal  `gorm:"type:decimal(18,2)"`
	SalePrice *decimal.Decimal `gorm:"type:decimal(18,2)"`
	ImageURL  string           `gorm:"type:varchar(500)"`
	Category1 string           `gorm:"type:varchar(100)"`
	Category2 string           `gorm:"type:varchar(100)"`
	Category3 string           `gorm:"type:varchar(100)"`
	Keyword   string           `gorm:"type:varchar(200)"`
	Rank      int              `gorm:"column:rank"`
	Enabled   bool
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "affiliate_products"
}

// EffectivePrice returns the sale price when set, else the list price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}
