package returns

import (
	"net/http"
	"strconv"

	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/roles"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
)

type ReturnsHandler struct {
	controller *Controller
}

type approveRequest struct {
	Notes string `json:"notes"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func NewReturnsHandler(controller *Controller) *ReturnsHandler {
	return &ReturnsHandler{controller: controller}
}

func (h *ReturnsHandler) RegisterRoutes(router *gin.RouterGroup, throttle gin.HandlerFunc) {
	returns := router.Group("/returns")
	{
		returns.GET("/pending", h.GetPending)
		returns.GET("/:id/items", h.GetItems)
		returns.POST("/:id/approve", security.Authorize(roles.Manager), throttle, h.Approve)
		returns.POST("/:id/reject", security.Authorize(roles.Manager), throttle, h.Reject)
	}
}

func (h *ReturnsHandler) GetPending(c *gin.Context) {
	var warning string
	if !h.controller.Loaded() || c.Query("refresh") == "true" {
		if err := h.controller.LoadPending(c.Request.Context()); err != nil {
			if !h.controller.Loaded() {
				c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
				return
			}
			warning = custom_error.UserMessage(err)
		}
	}

	pending := h.controller.Pending()
	response := gin.H{
		"success": true,
		"data":    pending,
		"summary": summarize(pending),
	}
	if warning != "" {
		response["message"] = warning
	}

	c.JSON(http.StatusOK, response)
}

func (h *ReturnsHandler) GetItems(c *gin.Context) {
	returnID, ok := returnIDParam(c)
	if !ok {
		return
	}

	items := h.controller.LoadDetails(c.Request.Context(), returnID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"total":   ItemsTotal(items),
	})
}

func (h *ReturnsHandler) Approve(c *gin.Context) {
	returnID, ok := returnIDParam(c)
	if !ok {
		return
	}

	var req approveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input", "details": err.Error()})
			return
		}
	}

	actor, err := security.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unable to identify operator", "details": err.Error()})
		return
	}

	message, err := h.controller.Approve(c.Request.Context(), returnID, actor, req.Notes)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func (h *ReturnsHandler) Reject(c *gin.Context) {
	returnID, ok := returnIDParam(c)
	if !ok {
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input", "details": err.Error()})
		return
	}

	actor, err := security.ActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unable to identify operator", "details": err.Error()})
		return
	}

	message, err := h.controller.Reject(c.Request.Context(), returnID, actor, req.Reason)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), custom_error.ResponseBody(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func returnIDParam(c *gin.Context) (int, bool) {
	returnID, err := strconv.Atoi(c.Param("id"))
	if err != nil || returnID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid return ID"})
		return 0, false
	}
	return returnID, true
}
