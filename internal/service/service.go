// Package service defines the backend-agnostic interface for taskboard
// operations. The update loop never imports the REST client directly.
package service

import (
	"context"
	"errors"

	"taskboard/internal/model"
)

// ErrUnauthorized is returned by implementations when the backend rejects
// the session. By the time a caller sees it, the implementation has already
// run its credential-clearing policy.
var ErrUnauthorized = errors.New("service: unauthorized")

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the account-creation payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// AuthResult is returned by login and register: a bearer token plus the
// authenticated identity.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// ProjectInput carries project create/update fields. Zero-value fields are
// omitted from update payloads so partial updates stay partial.
type ProjectInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// TaskInput carries task create/update fields.
type TaskInput struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// Service is the full operation surface the client consumes.
type Service interface {
	// Login exchanges credentials for a token and identity.
	Login(ctx context.Context, creds Credentials) (AuthResult, error)

	// Register creates an account; same contract as Login.
	Register(ctx context.Context, reg Registration) (AuthResult, error)

	// ListUsers returns assignable users.
	ListUsers(ctx context.Context) ([]model.User, error)

	// ListProjects returns all projects in server order.
	ListProjects(ctx context.Context) ([]model.Project, error)

	// GetProject fetches one project by id.
	GetProject(ctx context.Context, id string) (model.Project, error)

	// CreateProject creates a project and returns the server's copy.
	CreateProject(ctx context.Context, in ProjectInput) (model.Project, error)

	// UpdateProject applies a partial update and returns the updated project.
	UpdateProject(ctx context.Context, id string, in ProjectInput) (model.Project, error)

	// DeleteProject deletes a project by id.
	DeleteProject(ctx context.Context, id string) error

	// ListTasks returns the tasks of one project in server order.
	ListTasks(ctx context.Context, projectID string) ([]model.Task, error)

	// GetTask fetches one task.
	GetTask(ctx context.Context, projectID, taskID string) (model.Task, error)

	// CreateTask creates a task in the project and returns the server's copy.
	CreateTask(ctx context.Context, projectID string, in TaskInput) (model.Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, projectID, taskID string, in TaskInput) (model.Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, projectID, taskID string) error
}
