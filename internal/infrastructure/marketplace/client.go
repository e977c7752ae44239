package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/integration"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response

	tokenPath    = "/oauth/token"
	productsPath = "/v1/products"
)

// Config holds marketplace client settings
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	PageSize       int
	TokenMargin    time.Duration
}

// Validate checks required configuration values
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("marketplace: base URL is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("marketplace: page size must be positive")
	}
	return nil
}

// cachedToken is a bearer token with its expiry
type cachedToken struct {
	value     string
	expiresAt time.Time
}

// Client implements the marketplace catalog provider against the
// remote REST API. Bearer tokens are cached per API key and refreshed
// when absent or within the configured safety margin of expiry.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger

	mu     sync.Mutex
	tokens map[string]cachedToken // API key -> token
}

// NewClient creates a marketplace client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	margin := config.TokenMargin
	if margin <= 0 {
		margin = 60 * time.Second
	}
	config.TokenMargin = margin

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		tokens:     make(map[string]cachedToken),
	}, nil
}

// FetchCatalog retrieves the full remote product listing page by page.
// A page-fetch error stops the loop but never discards records already
// retrieved; the result is flagged partial instead.
func (c *Client) FetchCatalog(ctx context.Context, creds integration.Credentials) (*integration.FetchResult, error) {
	token, err := c.getToken(ctx, creds)
	if err != nil {
		return nil, err
	}

	result := &integration.FetchResult{}
	page := 1

	for {
		records, err := c.fetchPage(ctx, token, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			c.logger.Warn("catalog page fetch failed, returning partial result",
				zap.Int("page", page),
				zap.Int("fetched", len(result.Products)),
				zap.Error(err),
			)
			result.Partial = true
			result.Err = err.Error()
			return result, nil
		}

		for _, record := range records {
			result.Products = append(result.Products, record.toProductData())
		}
		result.Pages = page

		if len(records) < c.config.PageSize {
			return result, nil
		}
		page++
	}
}

// getToken returns a cached bearer token, refreshing it when absent or
// within the safety margin of expiry
func (c *Client) getToken(ctx context.Context, creds integration.Credentials) (string, error) {
	c.mu.Lock()
	cached, ok := c.tokens[creds.APIKey]
	c.mu.Unlock()

	if ok && time.Until(cached.expiresAt) > c.config.TokenMargin {
		return cached.value, nil
	}

	token, expiresIn, err := c.exchangeToken(ctx, creds)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.tokens[creds.APIKey] = cachedToken{
		value:     token,
		expiresAt: time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
	c.mu.Unlock()

	return token, nil
}

// exchangeToken performs the client-credentials form POST
func (c *Client) exchangeToken(ctx context.Context, creds integration.Credentials) (string, int64, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", creds.APIKey)
	form.Set("client_secret", creds.APISecret)

	endpoint := c.config.BaseURL + tokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("marketplace: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", integration.ErrMarketplaceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", 0, fmt.Errorf("marketplace: failed to read token response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", 0, fmt.Errorf("%w: HTTP %d", integration.ErrMarketplaceAuth, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return "", 0, fmt.Errorf("%w: HTTP %d", integration.ErrMarketplaceRequest, resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", 0, fmt.Errorf("marketplace: failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", 0, fmt.Errorf("%w: empty access token", integration.ErrMarketplaceAuth)
	}

	return tokenResp.AccessToken, tokenResp.ExpiresIn, nil
}

// fetchPage retrieves one page of the product listing
func (c *Client) fetchPage(ctx context.Context, token string, page int) ([]productRecord, error) {
	endpoint := fmt.Sprintf("%s%s?page=%s&size=%s",
		c.config.BaseURL, productsPath,
		strconv.Itoa(page), strconv.Itoa(c.config.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("marketplace: failed to create listing request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrMarketplaceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("marketplace: failed to read listing response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrMarketplaceRequest, resp.StatusCode)
	}

	var listing struct {
		Items []productRecord `json:"items"`
		Total int             `json:"total"`
		Page  int             `json:"page"`
		Size  int             `json:"size"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("marketplace: failed to parse listing response: %w", err)
	}

	return listing.Items, nil
}

// Ensure Client implements CatalogProvider
var _ integration.CatalogProvider = (*Client)(nil)
