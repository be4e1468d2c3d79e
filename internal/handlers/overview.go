package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tasknest-api/internal/dto"
	apierrors "github.com/yukikurage/tasknest-api/internal/errors"
	"github.com/yukikurage/tasknest-api/internal/middleware"
)

// Notifications lists the current user's overdue and upcoming tasks
func (h *TaskHandler) Notifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	classified, err := h.taskService.Notifications(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationsResponse(classified))
}

// Dashboard returns the current user's progress statistics
func (h *TaskHandler) Dashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	dash, err := h.taskService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

// Meta lists the accepted categories, priorities and sort fields
func (h *TaskHandler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToMetaResponse(h.taskService.Categories()))
}
