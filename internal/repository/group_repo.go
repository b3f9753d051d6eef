package repository

import (
	"context"
	"errors"

	"github.com/MRDEADPOOL12/To-do/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GroupRepository struct {
	db *pgxpool.Pool
}

func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListByUser returns the user's groups newest first, each with its tasks
// attached (also newest first).
func (r *GroupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.TaskGroup, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, description, created_at, updated_at
		 FROM task_groups
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*domain.TaskGroup
	byID := make(map[uuid.UUID]*domain.TaskGroup)
	for rows.Next() {
		var g domain.TaskGroup
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
		byID[g.ID] = &g
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	taskRows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, completed, deadline, group_id, created_at, updated_at
		 FROM tasks
		 WHERE user_id = $1 AND group_id IS NOT NULL
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer taskRows.Close()

	for taskRows.Next() {
		var t domain.Task
		if err := taskRows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.Deadline, &t.GroupID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if g, ok := byID[*t.GroupID]; ok {
			g.Tasks = append(g.Tasks, &t)
		}
	}
	return groups, taskRows.Err()
}

// GetByID looks a group up scoped to its owner in a single filtered query.
func (r *GroupRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.TaskGroup, error) {
	var g domain.TaskGroup
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, description, created_at, updated_at
		 FROM task_groups
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&g.ID, &g.UserID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrGroupNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepository) Create(ctx context.Context, g *domain.TaskGroup) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO task_groups (user_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		g.UserID, g.Name, g.Description,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *GroupRepository) Update(ctx context.Context, g *domain.TaskGroup) error {
	err := r.db.QueryRow(ctx,
		`UPDATE task_groups
		 SET name = $1, description = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING created_at, updated_at`,
		g.Name, g.Description, g.ID, g.UserID,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrGroupNotFound
	}
	return err
}

// Delete removes the group. Tasks referencing it are detached by the
// ON DELETE SET NULL constraint, not deleted.
func (r *GroupRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM task_groups WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}
