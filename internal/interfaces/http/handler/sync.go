package handler

import (
	"github.com/gin-gonic/gin"

	syncapp "github.com/catsync/backend/internal/application/sync"
	"github.com/catsync/backend/internal/domain/shared"
	domain "github.com/catsync/backend/internal/domain/sync"
	"github.com/catsync/backend/internal/interfaces/http/dto"
)

// SyncHandler handles sync runs, logs and schedule configuration
type SyncHandler struct {
	BaseHandler
	syncService     *syncapp.SyncService
	scheduleService *syncapp.ScheduleService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(syncService *syncapp.SyncService, scheduleService *syncapp.ScheduleService) *SyncHandler {
	return &SyncHandler{
		syncService:     syncService,
		scheduleService: scheduleService,
	}
}

// UpdateScheduleRequest carries the schedule configuration
type UpdateScheduleRequest struct {
	CronExpr        string `json:"cron_expr" binding:"required,max=100,cron"`
	Timezone        string `json:"timezone" binding:"required,max=64,iana_tz"`
	Enabled         bool   `json:"enabled"`
	SyncProducts    bool   `json:"sync_products"`
	NotifyOnSuccess bool   `json:"notify_on_success"`
	NotifyOnError   bool   `json:"notify_on_error"`
}

// SyncStatusResponse combines the in-flight flag with recent run history
type SyncStatusResponse struct {
	Running    bool                `json:"running"`
	RecentRuns []syncapp.RunRecord `json:"recent_runs"`
}

// Run triggers a manual sync for the tenant
func (h *SyncHandler) Run(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	log, err := h.syncService.RunSync(c.Request.Context(), tenantID, domain.SyncTypeManual)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// Status reports whether a run is in flight plus the recent run history
func (h *SyncHandler) Status(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	h.Success(c, SyncStatusResponse{
		Running:    h.syncService.Running(tenantID),
		RecentRuns: h.syncService.RecentRuns(10),
	})
}

// ListLogs returns the tenant's sync history, latest first
func (h *SyncHandler) ListLogs(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	req.Normalize()

	result, err := h.syncService.ListLogs(c.Request.Context(), tenantID, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// LatestLog returns the most recent sync log
func (h *SyncHandler) LatestLog(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	log, err := h.syncService.LatestLog(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, log)
}

// GetSchedule returns the tenant's sync schedule
func (h *SyncHandler) GetSchedule(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	schedule, err := h.scheduleService.GetSchedule(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, schedule)
}

// UpdateSchedule replaces the tenant's sync schedule
func (h *SyncHandler) UpdateSchedule(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	schedule, err := h.scheduleService.UpdateSchedule(c.Request.Context(), tenantID, syncapp.UpdateScheduleInput{
		CronExpr:        req.CronExpr,
		Timezone:        req.Timezone,
		Enabled:         req.Enabled,
		SyncProducts:    req.SyncProducts,
		NotifyOnSuccess: req.NotifyOnSuccess,
		NotifyOnError:   req.NotifyOnError,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, schedule)
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	sync.POST("/run", h.Run)
	sync.GET("/status", h.Status)
	sync.GET("/logs", h.ListLogs)
	sync.GET("/logs/latest", h.LatestLog)
	sync.GET("/schedule", h.GetSchedule)
	sync.PUT("/schedule", h.UpdateSchedule)
}
