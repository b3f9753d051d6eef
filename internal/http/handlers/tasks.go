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

func (h *Handler) ListTasks(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	tasks, err := h.Tasks.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.Error("list tasks failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	in, problems := req.validate()
	if len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": problems})
		return
	}

	ctx := c.Request.Context()

	// The group must exist and belong to the caller; a foreign group is
	// reported as not found, never as forbidden.
	if in.GroupID != nil {
		if _, err := h.Groups.GetByID(ctx, *in.GroupID, user.ID); err != nil {
			if errors.Is(err, domain.ErrGroupNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
				return
			}
			logger.Error("resolve group failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
	}

	task, err := h.Tasks.Create(ctx, &domain.Task{
		UserID:      user.ID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		GroupID:     in.GroupID,
	})
	if err != nil {
		logger.Error("create task failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Events.Publish(user.ID, "task.created", task)
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var req taskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	in, problems := req.validate()
	if len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": problems})
		return
	}

	ctx := c.Request.Context()

	if in.GroupID != nil {
		if _, err := h.Groups.GetByID(ctx, *in.GroupID, user.ID); err != nil {
			if errors.Is(err, domain.ErrGroupNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
				return
			}
			logger.Error("resolve group failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
	}

	// Full replace: an absent groupId clears the group reference.
	task, err := h.Tasks.Update(ctx, &domain.Task{
		ID:          taskID,
		UserID:      user.ID,
		Title:       in.Title,
		Description: in.Description,
		Deadline:    in.Deadline,
		GroupID:     in.GroupID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		logger.Error("update task failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Events.Publish(user.ID, "task.updated", task)
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), taskID, user.ID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		logger.Error("delete task failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Events.Publish(user.ID, "task.deleted", gin.H{"id": taskID})
	c.Status(http.StatusNoContent)
}

func (h *Handler) ToggleTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	task, err := h.Tasks.ToggleCompleted(c.Request.Context(), taskID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		logger.Error("toggle task failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Events.Publish(user.ID, "task.toggled", task)
	c.JSON(http.StatusOK, task)
}
