package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/metadata"
	"warehouse-dashboard/pkg/models"
	"warehouse-dashboard/pkg/roles"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
)

type ArchiveHandler struct {
	service  *ArchiveService
	pageSize int
	now      func() time.Time
	export   func(w io.Writer, items []ArchivedItem) error
}

func NewArchiveHandler(s *ArchiveService, pageSize int) *ArchiveHandler {
	return &ArchiveHandler{
		service:  s,
		pageSize: pageSize,
		now:      time.Now,
		export:   WriteXLSX,
	}
}

func (h *ArchiveHandler) RegisterRoutes(router *gin.RouterGroup, throttle gin.HandlerFunc) {
	archive := router.Group("/archive")
	{
		archive.GET("", h.GetArchive)
		archive.GET("/export", h.ExportArchive)
		archive.POST("/:id/restore", security.Authorize(roles.Staff), throttle, h.RestoreItem)
		archive.POST("/:id/inactivate", security.Authorize(roles.Staff), throttle, h.MarkInactive)
	}
}

func (h *ArchiveHandler) GetArchive(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid filter", "details": err.Error()})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.pageSize)))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = h.pageSize
	}

	var warning string
	if !h.service.Loaded() || c.Query("refresh") == "true" {
		if err := h.service.Load(c.Request.Context()); err != nil {
			if !h.service.Loaded() {
				respondError(c, err)
				return
			}
			warning = custom_error.UserMessage(err)
		}
	}

	response := gin.H{
		"success": true,
		"data":    h.service.View(criteria, page, pageSize, h.now()),
	}
	if warning != "" {
		response["message"] = warning
	}

	c.JSON(http.StatusOK, response)
}

func (h *ArchiveHandler) ExportArchive(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid filter", "details": err.Error()})
		return
	}

	if !h.service.Loaded() {
		if err := h.service.Load(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}

	now := h.now()
	items := Filter(h.service.Items(), criteria, now)

	var workbook bytes.Buffer
	if err := h.export(&workbook, items); err != nil {
		_ = c.Error(err)
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("archive-%s.xlsx", now.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook.Bytes())
}

func (h *ArchiveHandler) RestoreItem(c *gin.Context) {
	h.runItemAction(c, h.service.Restore, "Item restored successfully")
}

func (h *ArchiveHandler) MarkInactive(c *gin.Context) {
	h.runItemAction(c, h.service.MarkInactive, "Item marked as inactive")
}

func (h *ArchiveHandler) runItemAction(c *gin.Context, action func(ctx context.Context, id int, actor models.Actor) error, successMessage string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid item ID"})
		return
	}

	actor, err := security.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unable to identify operator", "details": err.Error()})
		return
	}

	if err := action(c.Request.Context(), id, actor); err != nil {
		if IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Archived item not found", "message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": successMessage})
}

func criteriaFromQuery(c *gin.Context) (Criteria, error) {
	itemType, err := metadata.NewTypeFilter(c.Query("type"))
	if err != nil {
		return Criteria{}, err
	}

	dateRange, err := metadata.NewDateRange(c.Query("range"))
	if err != nil {
		return Criteria{}, err
	}

	return Criteria{
		SearchTerm: c.Query("search"),
		Type:       itemType,
		DateRange:  dateRange,
	}, nil
}

func respondError(c *gin.Context, err error) {
	c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
}
