package affiliate

import "context"

// Query holds the read-side filter for the affiliate catalog
type Query struct {
	CID     string // exact cid match; empty means all
	Keyword string // case-insensitive substring match on name/keyword
	SortBy  string // latest | price_low | price_high
	Limit   int
	Offset  int
}

// CategoryEntry is one entry of a category drilldown level
type CategoryEntry struct {
	Name  string `json:"name"`
	CID   string `json:"cid"`
	Count int64  `json:"count"`
}

// ProductRepository defines read-only access to the affiliate catalog
type ProductRepository interface {
	// List returns enabled affiliate products matching the query
	List(ctx context.Context, q Query) ([]Product, error)

	// Count counts enabled affiliate products matching the query
	Count(ctx context.Context, q Query) (int64, error)

	// FindByID finds one affiliate product by its numeric ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// CategoryLevel1 returns the distinct top-level categories with a
	// representative cid and aggregated product count
	CategoryLevel1(ctx context.Context) ([]CategoryEntry, error)

	// CategoryLevel2 returns second-level categories under the given
	// top-level category name
	CategoryLevel2(ctx context.Context, category1 string) ([]CategoryEntry, error)

	// CategoryLevel3 returns third-level categories under the given
	// first and second level category names
	CategoryLevel3(ctx context.Context, category1, category2 string) ([]CategoryEntry, error)
}
