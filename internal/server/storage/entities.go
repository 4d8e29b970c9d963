package storage

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type Project struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	Status      string
	CreatedAt   time.Time
}

type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	Priority    string
	AssignedTo  string
	ProjectID   string
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProjectListFilter struct {
	Status string
	Limit  int
	Offset int
}

type TaskListFilter struct {
	ProjectID string
	Status    string
	Limit     int
	Offset    int
}
