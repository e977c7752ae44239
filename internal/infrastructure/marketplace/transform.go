package marketplace

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/catsync/backend/internal/domain/catalog"
)

// productRecord is the wire shape of one listing item
type productRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	SalePrice string   `json:"sale_price"`
	Stock     int      `json:"stock"`
	Images    []string `json:"images"`
	Category  struct {
		ID   string `json:"id"`
		Path string `json:"path"`
	} `json:"category"`
}

// toProductData transforms a wire record into the internal product shape.
// Unparseable prices default to zero rather than failing the record.
func (r productRecord) toProductData() catalog.ProductData {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		price = decimal.Zero
	}

	var salePrice *decimal.Decimal
	if r.SalePrice != "" {
		if sp, err := decimal.NewFromString(r.SalePrice); err == nil && sp.IsPositive() {
			salePrice = &sp
		}
	}

	images := "[]"
	if len(r.Images) > 0 {
		if encoded, err := json.Marshal(r.Images); err == nil {
			images = string(encoded)
		}
	}

	return catalog.ProductData{
		MarketplaceProductID: r.ID,
		Name:                 r.Name,
		Price:                price,
		SalePrice:            salePrice,
		Stock:                r.Stock,
		Images:               images,
		CategoryPath:         r.Category.Path,
		CategoryID:           r.Category.ID,
	}
}
