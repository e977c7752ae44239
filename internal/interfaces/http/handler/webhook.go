package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	webhookapp "github.com/catsync/backend/internal/application/webhook"
	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/webhook"
	"github.com/catsync/backend/internal/interfaces/http/dto"
)

// WebhookHandler handles webhook configuration and delivery history
type WebhookHandler struct {
	BaseHandler
	webhookService *webhookapp.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *webhookapp.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// CreateWebhookRequest carries a webhook creation request
type CreateWebhookRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	URL              string `json:"url" binding:"required,max=500"`
	Provider         string `json:"provider" binding:"required,oneof=GENERIC SLACK DISCORD"`
	AuthType         string `json:"auth_type" binding:"omitempty,oneof=none bearer basic"`
	AuthToken        string `json:"auth_token" binding:"omitempty,max=500"`
	TriggerOnSuccess *bool  `json:"trigger_on_success"`
	TriggerOnError   *bool  `json:"trigger_on_error"`
}

// UpdateWebhookRequest carries a webhook update request
type UpdateWebhookRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	URL              string `json:"url" binding:"required,max=500"`
	Provider         string `json:"provider" binding:"required,oneof=GENERIC SLACK DISCORD"`
	Enabled          bool   `json:"enabled"`
	TriggerOnSuccess bool   `json:"trigger_on_success"`
	TriggerOnError   bool   `json:"trigger_on_error"`
	AuthType         string `json:"auth_type" binding:"omitempty,oneof=none bearer basic"`
	AuthToken        string `json:"auth_token" binding:"omitempty,max=500"`
}

func defaultTrue(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

// Create registers a new webhook
func (h *WebhookHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	wh, err := h.webhookService.Create(c.Request.Context(), tenantID, webhookapp.CreateInput{
		Name:             req.Name,
		URL:              req.URL,
		Provider:         domain.Provider(req.Provider),
		AuthType:         domain.AuthType(req.AuthType),
		AuthToken:        req.AuthToken,
		TriggerOnSuccess: defaultTrue(req.TriggerOnSuccess),
		TriggerOnError:   defaultTrue(req.TriggerOnError),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, wh)
}

// List returns the tenant's webhooks
func (h *WebhookHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	webhooks, err := h.webhookService.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, webhooks)
}

// GetByID returns one webhook
func (h *WebhookHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	wh, err := h.webhookService.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wh)
}

// Update replaces a webhook's configuration
func (h *WebhookHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	var req UpdateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	wh, err := h.webhookService.Update(c.Request.Context(), tenantID, id, webhookapp.UpdateInput{
		Name:             req.Name,
		URL:              req.URL,
		Provider:         domain.Provider(req.Provider),
		Enabled:          req.Enabled,
		TriggerOnSuccess: req.TriggerOnSuccess,
		TriggerOnError:   req.TriggerOnError,
		AuthType:         domain.AuthType(req.AuthType),
		AuthToken:        req.AuthToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, wh)
}

// Delete removes a webhook and its delivery logs
func (h *WebhookHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	if err := h.webhookService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Test fires a synthetic delivery through the full dispatch path
func (h *WebhookHandler) Test(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	log, err := h.webhookService.Test(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// ListLogs returns one webhook's delivery history, latest first
func (h *WebhookHandler) ListLogs(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid webhook ID")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	result, err := h.webhookService.ListLogs(c.Request.Context(), tenantID, id, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhooks := rg.Group("/webhooks")
	webhooks.POST("", h.Create)
	webhooks.GET("", h.List)
	webhooks.GET("/:id", h.GetByID)
	webhooks.PUT("/:id", h.Update)
	webhooks.DELETE("/:id", h.Delete)
	webhooks.POST("/:id/test", h.Test)
	webhooks.GET("/:id/logs", h.ListLogs)
}
