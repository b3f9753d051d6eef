package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MRDEADPOOL12/To-do/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskWithGroupQuery = `
	SELECT t.id, t.user_id, t.title, t.description, t.completed, t.deadline,
	       t.group_id, t.created_at, t.updated_at,
	       g.id, g.name, g.description, g.user_id, g.created_at, g.updated_at
	FROM tasks t
	LEFT JOIN task_groups g ON g.id = t.group_id`

// ListByUser returns the user's tasks newest first, each with its group
// attached when it has one.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		taskWithGroupQuery+`
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		t, err := scanTaskWithGroup(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// GetByID looks a task up scoped to its owner in a single filtered query.
// Rows belonging to other users are indistinguishable from missing rows.
func (r *TaskRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		taskWithGroupQuery+`
		WHERE t.id = $1 AND t.user_id = $2`,
		id, userID,
	)
	t, err := scanTaskWithGroup(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts the task, then re-reads it with the group relation so the
// caller always gets a fully populated record.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, deadline, group_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		t.UserID, t.Title, t.Description, t.Deadline, t.GroupID,
	).Scan(&t.ID)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, t.ID, t.UserID)
}

// Update replaces title, description, deadline and group of the user's
// task. A nil groupID clears the group reference.
func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, deadline = $3, group_id = $4, updated_at = now()
		 WHERE id = $5 AND user_id = $6`,
		t.Title, t.Description, t.Deadline, t.GroupID, t.ID, t.UserID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.GetByID(ctx, t.ID, t.UserID)
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// ToggleCompleted flips the completed flag and returns the task with its
// group attached.
func (r *TaskRepository) ToggleCompleted(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET completed = NOT completed, updated_at = now()
		 WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.GetByID(ctx, id, userID)
}

func scanTaskWithGroup(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var gID *uuid.UUID
	var gName, gDescription *string
	var gUserID *uuid.UUID
	var gCreatedAt, gUpdatedAt *time.Time

	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Deadline,
		&t.GroupID, &t.CreatedAt, &t.UpdatedAt,
		&gID, &gName, &gDescription, &gUserID, &gCreatedAt, &gUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gID != nil {
		t.Group = &domain.TaskGroup{
			ID:          *gID,
			UserID:      *gUserID,
			Name:        *gName,
			Description: gDescription,
			CreatedAt:   *gCreatedAt,
			UpdatedAt:   *gUpdatedAt,
		}
	}
	return &t, nil
}
