package handlers

import (
	"github.com/MRDEADPOOL12/To-do/internal/repository"
	"github.com/MRDEADPOOL12/To-do/internal/service"
	"github.com/MRDEADPOOL12/To-do/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB     *pgxpool.Pool
	Users  *repository.UserRepository
	Tasks  *repository.TaskRepository
	Groups *repository.GroupRepository
	Auth   *service.AuthService
	Tokens *service.TokenService
	Events *ws.Hub
}

func NewHandler(db *pgxpool.Pool, tokens *service.TokenService, events *ws.Hub) *Handler {
	users := repository.NewUserRepository(db)
	return &Handler{
		DB:     db,
		Users:  users,
		Tasks:  repository.NewTaskRepository(db),
		Groups: repository.NewGroupRepository(db),
		Auth:   service.NewAuthService(users, tokens),
		Tokens: tokens,
		Events: events,
	}
}
