package auditlog

import (
	"net/http"

	"warehouse-dashboard/pkg/models"
	"warehouse-dashboard/pkg/roles"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
)

var resourceTypes = map[string]bool{
	"archived_item":  true,
	"return_request": true,
	"settings":       true,
}

type LogReader interface {
	GetResourceLog(resourceID string, resourceType string) ([]models.AuditLog, error)
}

type AuditLogHandler struct {
	reader LogReader
}

func NewAuditLogHandler(reader LogReader) *AuditLogHandler {
	return &AuditLogHandler{reader: reader}
}

func (h *AuditLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit/:type/:id", security.Authorize(roles.Manager), h.GetResourceLog)
}

func (h *AuditLogHandler) GetResourceLog(c *gin.Context) {
	resourceType := c.Param("type")
	if !resourceTypes[resourceType] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid resource type", "details": resourceType})
		return
	}

	logs, err := h.reader.GetResourceLog(c.Param("id"), resourceType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch audit log", "details": err.Error()})
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": logs})
}
