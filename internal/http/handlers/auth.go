package handlers

import (
	"errors"
	"net/http"

	"github.com/MRDEADPOOL12/To-do/internal/domain"
	"github.com/MRDEADPOOL12/To-do/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if problems := req.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": problems})
		return
	}

	_, token, err := h.Auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		logger.Error("register failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if problems := req.validate(); len(problems) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": problems})
		return
	}

	_, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
