package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	adminapp "github.com/catsync/backend/internal/application/admin"
	identityapp "github.com/catsync/backend/internal/application/identity"
)

// AdminHandler handles platform settings and tenant administration
type AdminHandler struct {
	BaseHandler
	settingsService *adminapp.SettingsService
	tenantService   *identityapp.TenantService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(settingsService *adminapp.SettingsService, tenantService *identityapp.TenantService) *AdminHandler {
	return &AdminHandler{
		settingsService: settingsService,
		tenantService:   tenantService,
	}
}

// UpdateSettingsRequest carries the editable settings flags
type UpdateSettingsRequest struct {
	AffiliateVisible *bool `json:"affiliate_visible"`
	Maintenance      *bool `json:"maintenance"`
}

// CreateTenantRequest carries a tenant creation request
type CreateTenantRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	StoreName string `json:"store_name" binding:"omitempty,max=200"`
}

// SetTenantStatusRequest activates or suspends a tenant
type SetTenantStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetCredentialsRequest carries marketplace credentials for a tenant
type SetCredentialsRequest struct {
	APIKey    string `json:"api_key" binding:"required,min=1,max=200"`
	APISecret string `json:"api_secret" binding:"required,min=1,max=200"`
}

// GetSettings returns the platform settings
func (h *AdminHandler) GetSettings(c *gin.Context) {
	s, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// UpdateSettings applies settings changes
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	s, err := h.settingsService.Update(c.Request.Context(), adminapp.UpdateSettingsInput{
		AffiliateVisible: req.AffiliateVisible,
		Maintenance:      req.Maintenance,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, s)
}

// CreateTenant registers a new tenant account
func (h *AdminHandler) CreateTenant(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), req.Name, req.StoreName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tenant)
}

// SetTenantStatus activates or suspends a tenant
func (h *AdminHandler) SetTenantStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req SetTenantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tenant, err := h.tenantService.SetStatus(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// SetCredentials stores the calling tenant's marketplace credentials
func (h *AdminHandler) SetCredentials(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req SetCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.tenantService.SetCredentials(c.Request.Context(), tenantID, req.APIKey, req.APISecret); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers admin and credential routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings", h.UpdateSettings)
	admin.POST("/tenants", h.CreateTenant)
	admin.PUT("/tenants/:id/status", h.SetTenantStatus)

	rg.PUT("/credentials", h.SetCredentials)
}
