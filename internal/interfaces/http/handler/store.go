package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/catsync/backend/internal/application/catalog"
)

// StoreHandler serves the merged storefront listing and the category
// drilldown backing it
type StoreHandler struct {
	BaseHandler
	compositionService *catalogapp.CompositionService
	categoryService    *catalogapp.CategoryService
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(compositionService *catalogapp.CompositionService, categoryService *catalogapp.CategoryService) *StoreHandler {
	return &StoreHandler{
		compositionService: compositionService,
		categoryService:    categoryService,
	}
}

// StoreListRequest carries the storefront listing query parameters
type StoreListRequest struct {
	CategoryID string `form:"category_id" binding:"omitempty,max=32"`
	Keyword    string `form:"keyword" binding:"omitempty,max=200"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=latest price_low price_high"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListProducts returns one merged cross-source page
func (h *StoreHandler) ListProducts(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req StoreListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.compositionService.Compose(c.Request.Context(), tenantID, catalogapp.CompositionQuery{
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		SortBy:     req.SortBy,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetProduct resolves one tagged product reference
func (h *StoreHandler) GetProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	product, err := h.compositionService.GetByRef(c.Request.Context(), tenantID, c.Param("ref"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Categories returns the top-level category drilldown
func (h *StoreHandler) Categories(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	entries, err := h.categoryService.Level1(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Subcategories returns the second-level drilldown under category1
func (h *StoreHandler) Subcategories(c *gin.Context) {
	if _, err := getTenantID(c); err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	entries, err := h.categoryService.Level2(c.Request.Context(), c.Param("category1"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// SubSubcategories returns the third-level drilldown under the given parents
func (h *StoreHandler) SubSubcategories(c *gin.Context) {
	if _, err := getTenantID(c); err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	entries, err := h.categoryService.Level3(c.Request.Context(), c.Param("category1"), c.Param("category2"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// RegisterRoutes registers storefront routes
func (h *StoreHandler) RegisterRoutes(rg *gin.RouterGroup) {
	store := rg.Group("/store")
	store.GET("/products", h.ListProducts)
	store.GET("/products/:ref", h.GetProduct)
	store.GET("/categories", h.Categories)
	store.GET("/categories/:category1", h.Subcategories)
	store.GET("/categories/:category1/:category2", h.SubSubcategories)
}
