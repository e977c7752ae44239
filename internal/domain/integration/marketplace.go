// Package integration defines the ports to external marketplace systems.
package integration

import (
	"context"
	"errors"

	"github.com/catsync/backend/internal/domain/catalog"
)

// Marketplace integration errors
var (
	ErrMarketplaceUnavailable = errors.New("marketplace unavailable")
	ErrMarketplaceRequest     = errors.New("marketplace request failed")
	ErrMarketplaceAuth        = errors.New("marketplace authentication failed")
)

// Credentials are the decrypted tenant API credentials for one call
type Credentials struct {
	APIKey    string
	APISecret string
}

// FetchResult is the outcome of a catalog fetch. When Partial is true a
// page-level error stopped the fetch early and Products holds everything
// retrieved before the failure.
type FetchResult struct {
	Products []catalog.ProductData
	Partial  bool
	Pages    int
	Err      string
}

// CatalogProvider fetches the full remote product listing for a tenant
type CatalogProvider interface {
	FetchCatalog(ctx context.Context, creds Credentials) (*FetchResult, error)
}
