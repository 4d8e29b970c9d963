package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskboard-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func seedUser(t *testing.T, repo *SQLiteRepository, id, email string) {
	t.Helper()
	err := repo.CreateUser(context.Background(), User{
		ID:           id,
		Name:         "Ada",
		Email:        email,
		PasswordHash: "hash",
		Role:         "manager",
		CreatedAt:    time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func seedProject(t *testing.T, repo *SQLiteRepository, id, createdBy string) {
	t.Helper()
	err := repo.CreateProject(context.Background(), Project{
		ID:        id,
		Name:      "Apollo",
		CreatedBy: createdBy,
		Status:    "active",
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
}

func TestUserEmailUniqueness(t *testing.T) {
	repo := setupRepo(t)
	seedUser(t, repo, "u1", "ada@example.com")

	err := repo.CreateUser(context.Background(), User{
		ID:           "u2",
		Name:         "Other",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         "developer",
		CreatedAt:    time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	repo := setupRepo(t)
	seedUser(t, repo, "u1", "ada@example.com")

	got, err := repo.GetUserByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != "u1" || got.Role != "manager" {
		t.Fatalf("unexpected user: %#v", got)
	}

	if _, err := repo.GetUserByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "ada@example.com")
	seedProject(t, repo, "p1", "u1")

	got, err := repo.GetProject(ctx, "p1")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.Name != "Apollo" || got.CreatedBy != "u1" {
		t.Fatalf("unexpected project: %#v", got)
	}

	got.Name = "Apollo v2"
	got.Status = "completed"
	if err := repo.UpdateProject(ctx, got); err != nil {
		t.Fatalf("update project: %v", err)
	}

	completed, err := repo.ListProjects(ctx, ProjectListFilter{Status: "completed"})
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(completed) != 1 || completed[0].Name != "Apollo v2" {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	if err := repo.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if err := repo.DeleteProject(ctx, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestTaskCRUDAndPartitionedList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "ada@example.com")
	seedProject(t, repo, "p1", "u1")
	seedProject(t, repo, "p2", "u1")

	due := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:         "t1",
		Title:      "Write schema",
		Status:     "pending",
		Priority:   "high",
		AssignedTo: "u1",
		ProjectID:  "p1",
		DueAt:      &due,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	other := task
	other.ID = "t2"
	other.ProjectID = "p2"
	other.AssignedTo = ""
	other.DueAt = nil
	if err := repo.CreateTask(ctx, other); err != nil {
		t.Fatalf("create second task: %v", err)
	}

	got, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.DueAt == nil || !got.DueAt.Equal(due) {
		t.Fatalf("unexpected due date: %#v", got.DueAt)
	}

	p1Tasks, err := repo.ListTasks(ctx, TaskListFilter{ProjectID: "p1"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(p1Tasks) != 1 || p1Tasks[0].ID != "t1" {
		t.Fatalf("expected only p1 tasks, got %#v", p1Tasks)
	}

	got.Status = "completed"
	got.UpdatedAt = now.Add(time.Hour)
	if err := repo.UpdateTask(ctx, got); err != nil {
		t.Fatalf("update task: %v", err)
	}

	if err := repo.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedUser(t, repo, "u1", "ada@example.com")
	seedProject(t, repo, "p1", "u1")

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if err := repo.CreateTask(ctx, Task{
		ID: "t1", Title: "orphan-to-be", Status: "pending", Priority: "low",
		ProjectID: "p1", CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := repo.DeleteProject(ctx, "p1"); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := repo.GetTask(ctx, "t1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected cascade delete, got %v", err)
	}
}

func TestMigrateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	seedUser(t, repo, "u1", "ada@example.com")
	got, err := repo.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Fatalf("unexpected email after roundtrip: %q", got.Email)
	}
}

func TestMigrateUpSkipsAppliedScripts(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-rerun.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	seedUser(t, repo, "u1", "ada@example.com")

	if err := MigrateUp(db); err != nil {
		t.Fatalf("rerun migrate up: %v", err)
	}
	if _, err := repo.GetUser(context.Background(), "u1"); err != nil {
		t.Fatalf("seeded row lost after rerun: %v", err)
	}

	var recorded int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&recorded); err != nil {
		t.Fatalf("count applied migrations: %v", err)
	}
	if recorded != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", recorded)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&recorded); err != nil {
		t.Fatalf("count after down: %v", err)
	}
	if recorded != 0 {
		t.Fatalf("expected migration record removed, got %d", recorded)
	}
}
