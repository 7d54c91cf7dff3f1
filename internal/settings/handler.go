package settings

import (
	"net/http"

	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/roles"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service *SettingsService
}

func NewSettingsHandler(service *SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup, throttle gin.HandlerFunc) {
	settings := router.Group("/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", security.Authorize(roles.Admin), throttle, h.SaveSettings)
		settings.POST("/password", throttle, h.ChangePassword)
	}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	current, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": current})
}

func (h *SettingsHandler) SaveSettings(c *gin.Context) {
	var req Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input", "details": err.Error()})
		return
	}

	actor, err := security.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unable to identify operator", "details": err.Error()})
		return
	}

	if err := h.service.Save(c.Request.Context(), actor, req); err != nil {
		c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings saved successfully", "data": req})
}

func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	var req PasswordChange
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input", "details": err.Error()})
		return
	}

	actor, err := security.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unable to identify operator", "details": err.Error()})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), actor, req); err != nil {
		c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}
