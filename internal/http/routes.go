package http

import (
	"github.com/MRDEADPOOL12/To-do/internal/config"
	"github.com/MRDEADPOOL12/To-do/internal/http/handlers"
	"github.com/MRDEADPOOL12/To-do/internal/http/middleware"
	"github.com/MRDEADPOOL12/To-do/internal/service"
	"github.com/MRDEADPOOL12/To-do/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config) {
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	hub := ws.NewHub()
	h := handlers.NewHandler(db, tokens, hub)
	healthHandler := handlers.NewHealthHandler(db)

	// Health checks stay outside rate limiting
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow))
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	authorized := api.Group("")
	authorized.Use(middleware.Auth(h.Users, tokens))
	{
		authorized.GET("/users/me", h.Me)

		authorized.GET("/tasks", h.ListTasks)
		authorized.POST("/tasks", h.CreateTask)
		authorized.PUT("/tasks/:id", h.UpdateTask)
		authorized.DELETE("/tasks/:id", h.DeleteTask)
		authorized.PATCH("/tasks/:id/toggle", h.ToggleTask)

		authorized.GET("/groups", h.ListGroups)
		authorized.POST("/groups", h.CreateGroup)
		authorized.PUT("/groups/:id", h.UpdateGroup)
		authorized.DELETE("/groups/:id", h.DeleteGroup)
	}

	// Live task/group events
	r.GET("/ws", h.WS(hub, cfg.CORSOrigin))
}
