package handlers

import (
	"errors"
	"net/http"

	"github.com/MRDEADPOOL12/To-do/internal/domain"
	"github.com/MRDEADPOOL12/To-do/internal/http/middleware"
	"github.com/MRDEADPOOL12/To-do/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) ListGroups(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	groups, err := h.Groups.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.Error("list groups failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if groups == nil {
		groups = []*domain.TaskGroup{}
	}
	c.JSON(http.StatusOK, groups)
}

func (h *Handler) CreateGroup(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req groupRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if problems := req.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": problems})
		return
	}

	group := &domain.TaskGroup{
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.Groups.Create(c.Request.Context(), group); err != nil {
		logger.Error("create group failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Events.Publish(user.ID, "group.created", group)
	c.JSON(http.StatusCreated, group)
}

func (h *Handler) UpdateGroup(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}

	var req groupRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if problems := req.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": problems})
		return
	}

	group := &domain.TaskGroup{
		ID:          groupID,
		UserID:      user.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.Groups.Update(c.Request.Context(), group); err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		logger.Error("update group failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Events.Publish(user.ID, "group.updated", group)
	c.JSON(http.StatusOK, group)
}

func (h *Handler) DeleteGroup(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}

	if err := h.Groups.Delete(c.Request.Context(), groupID, user.ID); err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		logger.Error("delete group failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Events.Publish(user.ID, "group.deleted", gin.H{"id": groupID})
	c.Status(http.StatusNoContent)
}
