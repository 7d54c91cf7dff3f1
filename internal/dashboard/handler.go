package dashboard

import (
	"net/http"

	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/roles"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *DashboardService
}

func NewDashboardHandler(service *DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup, throttle gin.HandlerFunc) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("", h.GetOverview)
		dashboard.POST("/refresh", security.Authorize(roles.Staff), throttle, h.Refresh)
	}
}

func (h *DashboardHandler) GetOverview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.service.Overview()})
}

func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.service.Overview()})
}
