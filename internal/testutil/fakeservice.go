// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	users    []model.User
	projects []model.Project
	tasks    map[string][]model.Task // projectID -> tasks
	nextID   int

	// Error injection, per method.
	LoginErr         error
	RegisterErr      error
	ListUsersErr     error
	ListProjectsErr  error
	GetProjectErr    error
	CreateProjectErr error
	UpdateProjectErr error
	DeleteProjectErr error
	ListTasksErr     map[string]error // projectID -> error
	GetTaskErr       error
	CreateTaskErr    error
	UpdateTaskErr    error
	DeleteTaskErr    error
}

// NewFakeService creates an empty fake backend.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:        make(map[string][]model.Task),
		ListTasksErr: make(map[string]error),
		nextID:       1,
	}
}

func (f *FakeService) newID(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, f.nextID)
	f.nextID++
	return id
}

// AddUser seeds an assignable user.
func (f *FakeService) AddUser(u model.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, u)
}

// AddProject seeds a project.
func (f *FakeService) AddProject(p model.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, p)
}

// AddTask seeds a task into its project's list.
func (f *FakeService) AddTask(t model.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[t.Project] = append(f.tasks[t.Project], t)
}

func (f *FakeService) Login(ctx context.Context, creds service.Credentials) (service.AuthResult, error) {
	if f.LoginErr != nil {
		return service.AuthResult{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.users {
		if u.Email == creds.Email {
			return service.AuthResult{Token: "fake-token-" + u.ID, User: u}, nil
		}
	}
	return service.AuthResult{}, errors.New("invalid credentials")
}

func (f *FakeService) Register(ctx context.Context, reg service.Registration) (service.AuthResult, error) {
	if f.RegisterErr != nil {
		return service.AuthResult{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u := model.User{ID: f.newID("u"), Name: reg.Name, Email: reg.Email, Role: reg.Role}
	if u.Role == "" {
		u.Role = "developer"
	}
	f.users = append(f.users, u)
	return service.AuthResult{Token: "fake-token-" + u.ID, User: u}, nil
}

func (f *FakeService) ListUsers(ctx context.Context) ([]model.User, error) {
	if f.ListUsersErr != nil {
		return nil, f.ListUsersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]model.User(nil), f.users...), nil
}

func (f *FakeService) ListProjects(ctx context.Context) ([]model.Project, error) {
	if f.ListProjectsErr != nil {
		return nil, f.ListProjectsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]model.Project(nil), f.projects...), nil
}

func (f *FakeService) GetProject(ctx context.Context, id string) (model.Project, error) {
	if f.GetProjectErr != nil {
		return model.Project{}, f.GetProjectErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, ErrNotFound
}

func (f *FakeService) CreateProject(ctx context.Context, in service.ProjectInput) (model.Project, error) {
	if f.CreateProjectErr != nil {
		return model.Project{}, f.CreateProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := model.Project{
		ID:          f.newID("p"),
		Name:        in.Name,
		Description: in.Description,
		Status:      model.ProjectActive,
		CreatedAt:   time.Now().UTC(),
	}
	if in.Status != "" {
		p.Status = model.ProjectStatus(in.Status)
	}
	f.projects = append(f.projects, p)
	return p, nil
}

func (f *FakeService) UpdateProject(ctx context.Context, id string, in service.ProjectInput) (model.Project, error) {
	if f.UpdateProjectErr != nil {
		return model.Project{}, f.UpdateProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID != id {
			continue
		}
		if in.Name != "" {
			p.Name = in.Name
		}
		if in.Description != "" {
			p.Description = in.Description
		}
		if in.Status != "" {
			p.Status = model.ProjectStatus(in.Status)
		}
		f.projects[i] = p
		return p, nil
	}
	return model.Project{}, ErrNotFound
}

func (f *FakeService) DeleteProject(ctx context.Context, id string) error {
	if f.DeleteProjectErr != nil {
		return f.DeleteProjectErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			delete(f.tasks, id)
			return nil
		}
	}
	return ErrNotFound
}

func (f *FakeService) ListTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	if err := f.ListTasksErr[projectID]; err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]model.Task(nil), f.tasks[projectID]...), nil
}

func (f *FakeService) GetTask(ctx context.Context, projectID, taskID string) (model.Task, error) {
	if f.GetTaskErr != nil {
		return model.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks[projectID] {
		if t.ID == taskID {
			return t, nil
		}
	}
	return model.Task{}, ErrNotFound
}

func (f *FakeService) CreateTask(ctx context.Context, projectID string, in service.TaskInput) (model.Task, error) {
	if f.CreateTaskErr != nil {
		return model.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	t := model.Task{
		ID:          f.newID("t"),
		Title:       in.Title,
		Description: in.Description,
		Status:      model.StatusPending,
		Priority:    model.PriorityMedium,
		Project:     projectID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != "" {
		t.Status = model.TaskStatus(in.Status)
	}
	if in.Priority != "" {
		t.Priority = model.Priority(in.Priority)
	}
	f.applyAssignee(&t, in.AssignedTo)
	f.tasks[projectID] = append(f.tasks[projectID], t)
	return t, nil
}

func (f *FakeService) UpdateTask(ctx context.Context, projectID, taskID string, in service.TaskInput) (model.Task, error) {
	if f.UpdateTaskErr != nil {
		return model.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks[projectID] {
		if t.ID != taskID {
			continue
		}
		if in.Title != "" {
			t.Title = in.Title
		}
		if in.Description != "" {
			t.Description = in.Description
		}
		if in.Status != "" {
			t.Status = model.TaskStatus(in.Status)
		}
		if in.Priority != "" {
			t.Priority = model.Priority(in.Priority)
		}
		f.applyAssignee(&t, in.AssignedTo)
		t.UpdatedAt = time.Now().UTC()
		f.tasks[projectID][i] = t
		return t, nil
	}
	return model.Task{}, ErrNotFound
}

func (f *FakeService) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.tasks[projectID]
	for i, t := range list {
		if t.ID == taskID {
			f.tasks[projectID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *FakeService) applyAssignee(t *model.Task, userID string) {
	if userID == "" {
		return
	}
	for _, u := range f.users {
		if u.ID == userID {
			assignee := u
			t.AssignedTo = &assignee
			return
		}
	}
}

var _ service.Service = (*FakeService)(nil)
