package notifications

import (
	"net/http"

	"warehouse-dashboard/pkg/metadata"
	"warehouse-dashboard/pkg/roles"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	store *Store
}

type countsRequest struct {
	LowStock   int `json:"lowStock" binding:"min=0"`
	Expiring   int `json:"expiring" binding:"min=0"`
	OutOfStock int `json:"outOfStock" binding:"min=0"`
}

type updatesRequest struct {
	HasUpdates bool `json:"hasUpdates"`
	Count      int  `json:"count" binding:"min=0"`
}

func NewNotificationHandler(store *Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	{
		notifications.GET("", h.GetNotifications)
		notifications.PUT("/reports", security.Authorize(roles.Staff), h.UpdateReports)
		notifications.PUT("/system-updates", security.Authorize(roles.Admin), h.UpdateSystemUpdates)
		notifications.PUT("/:module", security.Authorize(roles.Staff), h.UpdateModule)
		notifications.DELETE("/:module", security.Authorize(roles.Staff), h.ClearModule)
	}
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.Snapshot()})
}

func (h *NotificationHandler) UpdateModule(c *gin.Context) {
	module, err := metadata.NewModule(c.Param("module"))
	if err != nil || !module.IsInventory() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid module", "details": c.Param("module")})
		return
	}

	var req countsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input", "details": err.Error()})
		return
	}

	if err := h.store.UpdateModule(module, Counts(req)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid module", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.Snapshot()})
}

func (h *NotificationHandler) UpdateReports(c *gin.Context) {
	var req updatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input", "details": err.Error()})
		return
	}

	h.store.UpdateReports(req.HasUpdates, req.Count)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.Snapshot()})
}

func (h *NotificationHandler) UpdateSystemUpdates(c *gin.Context) {
	var req updatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input", "details": err.Error()})
		return
	}

	h.store.UpdateSystemUpdates(req.HasUpdates, req.Count)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.Snapshot()})
}

func (h *NotificationHandler) ClearModule(c *gin.Context) {
	module, err := metadata.NewModule(c.Param("module"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid module", "details": err.Error()})
		return
	}

	if err := h.store.Clear(module); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid module", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.store.Snapshot()})
}
