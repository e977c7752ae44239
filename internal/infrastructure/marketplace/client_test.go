package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catsync/backend/internal/domain/integration"
)

func testCreds() integration.Credentials {
	return integration.Credentials{APIKey: "key", APISecret: "secret"}
}

func newTestClient(t *testing.T, baseURL string, pageSize int) *Client {
	t.Helper()
	client, err := NewClient(&Config{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		PageSize:       pageSize,
		TokenMargin:    60 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func writeToken(w http.ResponseWriter, token string, expiresIn int64) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   expiresIn,
	})
}

func writePage(w http.ResponseWriter, items []map[string]any) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"items": items,
		"total": len(items),
	})
}

func makeItems(start, count int) []map[string]any {
	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, map[string]any{
			"id":    fmt.Sprintf("mp-%d", start+i),
			"name":  fmt.Sprintf("Product %d", start+i),
			"price": "19.90",
			"stock": 5,
		})
	}
	return items
}

func TestClient_FetchCatalog_MultiplePages(t *testing.T) {
	var tokenCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tokenPath:
			tokenCalls.Add(1)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
			assert.Equal(t, "key", r.FormValue("client_id"))
			writeToken(w, "tok-1", 3600)
		case productsPath:
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			switch r.URL.Query().Get("page") {
			case "1":
				writePage(w, makeItems(1, 2))
			case "2":
				writePage(w, makeItems(3, 1))
			default:
				t.Fatalf("unexpected page %q", r.URL.Query().Get("page"))
			}
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2)

	result, err := client.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)

	assert.False(t, result.Partial)
	assert.Len(t, result.Products, 3)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, "mp-1", result.Products[0].MarketplaceProductID)
	assert.Equal(t, "19.90", result.Products[0].Price.StringFixed(2))
	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestClient_FetchCatalog_PartialOnPageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tokenPath:
			writeToken(w, "tok-1", 3600)
		case productsPath:
			if r.URL.Query().Get("page") == "1" {
				writePage(w, makeItems(1, 2))
				return
			}
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2)

	result, err := client.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)

	assert.True(t, result.Partial)
	assert.Len(t, result.Products, 2)
	assert.Contains(t, result.Err, "HTTP 502")
}

func TestClient_FetchCatalog_FirstPageErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			writeToken(w, "tok-1", 3600)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2)

	_, err := client.FetchCatalog(context.Background(), testCreds())
	assert.ErrorIs(t, err, integration.ErrMarketplaceRequest)
}

func TestClient_TokenCachedAcrossFetches(t *testing.T) {
	var tokenCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tokenPath:
			tokenCalls.Add(1)
			writeToken(w, "tok-1", 3600)
		case productsPath:
			writePage(w, makeItems(1, 1))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 10)

	_, err := client.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)
	_, err = client.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)

	assert.Equal(t, int32(1), tokenCalls.Load())
}

func TestClient_TokenRefreshedWithinMargin(t *testing.T) {
	var tokenCalls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case tokenPath:
			tokenCalls.Add(1)
			// Expires inside the 60s margin, so the next fetch must refresh
			writeToken(w, fmt.Sprintf("tok-%d", tokenCalls.Load()), 30)
		case productsPath:
			writePage(w, makeItems(1, 1))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 10)

	_, err := client.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)
	_, err = client.FetchCatalog(context.Background(), testCreds())
	require.NoError(t, err)

	assert.Equal(t, int32(2), tokenCalls.Load())
}

func TestClient_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 10)

	_, err := client.FetchCatalog(context.Background(), testCreds())
	assert.ErrorIs(t, err, integration.ErrMarketplaceAuth)
}
