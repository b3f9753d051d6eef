package domain

import (
	"time"

	"github.com/google/uuid"
)

type TaskGroup struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Tasks       []*Task   `json:"tasks,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
