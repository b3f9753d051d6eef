package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MRDEADPOOL12/To-do/internal/domain"
	"github.com/MRDEADPOOL12/To-do/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)
	applyMigrations(t, db)
	return db
}

func createTestUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Name:         "Test User",
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestTaskRepository_OwnershipScoping(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	owner := createTestUser(t, db)
	stranger := createTestUser(t, db)

	tasks := repository.NewTaskRepository(db)
	task, err := tasks.Create(ctx, &domain.Task{UserID: owner.ID, Title: "private"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := tasks.GetByID(ctx, task.ID, stranger.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign read: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := tasks.Update(ctx, &domain.Task{ID: task.ID, UserID: stranger.ID, Title: "stolen"}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign update: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := tasks.ToggleCompleted(ctx, task.ID, stranger.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign toggle: expected ErrTaskNotFound, got %v", err)
	}
	if err := tasks.Delete(ctx, task.ID, stranger.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("foreign delete: expected ErrTaskNotFound, got %v", err)
	}

	// the owner still sees the untouched task
	got, err := tasks.GetByID(ctx, task.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if got.Title != "private" || got.Completed {
		t.Fatalf("task was mutated through a foreign user: %+v", got)
	}
}

func TestTaskRepository_ToggleIsSelfInverse(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	tasks := repository.NewTaskRepository(db)

	task, err := tasks.Create(ctx, &domain.Task{UserID: user.ID, Title: "flip me"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Completed {
		t.Fatalf("new task must start incomplete")
	}

	once, err := tasks.ToggleCompleted(ctx, task.ID, user.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !once.Completed {
		t.Fatalf("expected completed after first toggle")
	}

	twice, err := tasks.ToggleCompleted(ctx, task.ID, user.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if twice.Completed {
		t.Fatalf("expected incomplete after second toggle")
	}
}

func TestGroupRepository_DeleteDetachesTasks(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	user := createTestUser(t, db)
	groups := repository.NewGroupRepository(db)
	tasks := repository.NewTaskRepository(db)

	group := &domain.TaskGroup{UserID: user.ID, Name: "Home"}
	if err := groups.Create(ctx, group); err != nil {
		t.Fatalf("create group: %v", err)
	}

	task, err := tasks.Create(ctx, &domain.Task{UserID: user.ID, Title: "Clean", GroupID: &group.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Group == nil || task.Group.Name != "Home" {
		t.Fatalf("expected group attached after create, got %+v", task.Group)
	}

	if err := groups.Delete(ctx, group.ID, user.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}

	got, err := tasks.GetByID(ctx, task.ID, user.ID)
	if err != nil {
		t.Fatalf("task must survive group deletion: %v", err)
	}
	if got.GroupID != nil || got.Group != nil {
		t.Fatalf("expected group reference cleared, got %+v", got)
	}
}

func TestGroupRepository_CrossUserGroupIsNotFound(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	owner := createTestUser(t, db)
	stranger := createTestUser(t, db)

	groups := repository.NewGroupRepository(db)
	group := &domain.TaskGroup{UserID: owner.ID, Name: "Theirs"}
	if err := groups.Create(ctx, group); err != nil {
		t.Fatalf("create group: %v", err)
	}

	if _, err := groups.GetByID(ctx, group.ID, stranger.ID); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
	if err := groups.Delete(ctx, group.ID, stranger.ID); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	email := uuid.NewString() + "@example.com"

	if err := users.Create(ctx, &domain.User{Email: email, PasswordHash: "x", Name: "First"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	err := users.Create(ctx, &domain.User{Email: email, PasswordHash: "y", Name: "Second"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}
