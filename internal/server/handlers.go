package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/model"
	"taskboard/internal/server/storage"
	"taskboard/internal/service"
)

func (s *Server) handleLogin(c *gin.Context) {
	var creds service.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, http.StatusBadRequest, "invalid login payload")
		return
	}
	user, err := s.repo.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil || !checkPassword(user.PasswordHash, creds.Password) {
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	token, err := s.issueToken(user.ID, user.Role)
	if err != nil {
		s.log.Error("issue token", "err", err)
		respondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	respondData(c, http.StatusOK, service.AuthResult{Token: token, User: toAPIUser(user)})
}

func (s *Server) handleRegister(c *gin.Context) {
	var reg service.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		respondError(c, http.StatusBadRequest, "invalid registration payload")
		return
	}
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	if reg.Name == "" || reg.Email == "" || reg.Password == "" {
		respondError(c, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if reg.Role == "" {
		reg.Role = "developer"
	}
	hash, err := hashPassword(reg.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not hash password")
		return
	}
	user := storage.User{
		ID:           uuid.NewString(),
		Name:         reg.Name,
		Email:        reg.Email,
		PasswordHash: hash,
		Role:         reg.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "email already registered")
			return
		}
		s.log.Error("create user", "err", err)
		respondError(c, http.StatusInternalServerError, "could not create user")
		return
	}
	token, err := s.issueToken(user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not issue token")
		return
	}
	respondData(c, http.StatusCreated, service.AuthResult{Token: token, User: toAPIUser(user)})
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.repo.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not list users")
		return
	}
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, toAPIUser(u))
	}
	respondData(c, http.StatusOK, out)
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.repo.ListProjects(c.Request.Context(), storage.ProjectListFilter{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not list projects")
		return
	}
	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, s.apiProject(c.Request.Context(), p))
	}
	respondData(c, http.StatusOK, out)
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid project payload")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		respondError(c, http.StatusBadRequest, "project name is required")
		return
	}
	status := model.ProjectActive
	if in.Status != "" {
		status = model.ProjectStatus(in.Status)
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid project status")
			return
		}
	}
	creator, _ := currentUser(c)
	project := storage.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   creator.ID,
		Status:      string(status),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateProject(c.Request.Context(), project); err != nil {
		s.log.Error("create project", "err", err)
		respondError(c, http.StatusInternalServerError, "could not create project")
		return
	}
	respondData(c, http.StatusCreated, s.apiProject(c.Request.Context(), project))
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.repo.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not load project")
		return
	}
	respondData(c, http.StatusOK, s.apiProject(c.Request.Context(), project))
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	project, err := s.repo.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not load project")
		return
	}
	var in service.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid project payload")
		return
	}
	if in.Name != "" {
		project.Name = strings.TrimSpace(in.Name)
	}
	if in.Description != "" {
		project.Description = in.Description
	}
	if in.Status != "" {
		if !model.ProjectStatus(in.Status).IsValid() {
			respondError(c, http.StatusBadRequest, "invalid project status")
			return
		}
		project.Status = in.Status
	}
	if err := s.repo.UpdateProject(c.Request.Context(), project); err != nil {
		respondError(c, http.StatusInternalServerError, "could not update project")
		return
	}
	respondData(c, http.StatusOK, s.apiProject(c.Request.Context(), project))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := s.repo.DeleteProject(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete project")
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": id})
}

func (s *Server) handleListTasks(c *gin.Context) {
	projectID := c.Param("id")
	if _, err := s.repo.GetProject(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not load project")
		return
	}
	tasks, err := s.repo.ListTasks(c.Request.Context(), storage.TaskListFilter{ProjectID: projectID})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not list tasks")
		return
	}
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, s.apiTask(c.Request.Context(), t))
	}
	respondData(c, http.StatusOK, out)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	projectID := c.Param("id")
	if _, err := s.repo.GetProject(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "project not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not load project")
		return
	}
	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid task payload")
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		respondError(c, http.StatusBadRequest, "task title is required")
		return
	}
	status := model.StatusPending
	if in.Status != "" {
		status = model.TaskStatus(in.Status)
		if !status.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid task status")
			return
		}
	}
	priority := model.PriorityMedium
	if in.Priority != "" {
		priority = model.Priority(in.Priority)
		if !priority.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid task priority")
			return
		}
	}
	dueAt, err := parseDueDate(in.DueDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid due date")
		return
	}
	if in.AssignedTo != "" {
		if _, err := s.repo.GetUser(c.Request.Context(), in.AssignedTo); err != nil {
			respondError(c, http.StatusBadRequest, "assignee does not exist")
			return
		}
	}
	now := time.Now().UTC()
	task := storage.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      string(status),
		Priority:    string(priority),
		AssignedTo:  in.AssignedTo,
		ProjectID:   projectID,
		DueAt:       dueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateTask(c.Request.Context(), task); err != nil {
		s.log.Error("create task", "err", err)
		respondError(c, http.StatusInternalServerError, "could not create task")
		return
	}
	respondData(c, http.StatusCreated, s.apiTask(c.Request.Context(), task))
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, ok := s.loadProjectTask(c)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, s.apiTask(c.Request.Context(), task))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	task, ok := s.loadProjectTask(c)
	if !ok {
		return
	}
	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid task payload")
		return
	}
	if in.Title != "" {
		task.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Status != "" {
		if !model.TaskStatus(in.Status).IsValid() {
			respondError(c, http.StatusBadRequest, "invalid task status")
			return
		}
		task.Status = in.Status
	}
	if in.Priority != "" {
		if !model.Priority(in.Priority).IsValid() {
			respondError(c, http.StatusBadRequest, "invalid task priority")
			return
		}
		task.Priority = in.Priority
	}
	if in.AssignedTo != "" {
		if _, err := s.repo.GetUser(c.Request.Context(), in.AssignedTo); err != nil {
			respondError(c, http.StatusBadRequest, "assignee does not exist")
			return
		}
		task.AssignedTo = in.AssignedTo
	}
	if in.DueDate != "" {
		dueAt, err := parseDueDate(in.DueDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid due date")
			return
		}
		task.DueAt = dueAt
	}
	task.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateTask(c.Request.Context(), task); err != nil {
		respondError(c, http.StatusInternalServerError, "could not update task")
		return
	}
	respondData(c, http.StatusOK, s.apiTask(c.Request.Context(), task))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	task, ok := s.loadProjectTask(c)
	if !ok {
		return
	}
	if err := s.repo.DeleteTask(c.Request.Context(), task.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "could not delete task")
		return
	}
	respondData(c, http.StatusOK, gin.H{"id": task.ID})
}

// loadProjectTask resolves the :taskId route param and enforces that the
// task belongs to the :id project. A task reached through the wrong project
// is a 404, not a leak.
func (s *Server) loadProjectTask(c *gin.Context) (storage.Task, bool) {
	task, err := s.repo.GetTask(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusNotFound, "task not found")
			return storage.Task{}, false
		}
		respondError(c, http.StatusInternalServerError, "could not load task")
		return storage.Task{}, false
	}
	if task.ProjectID != c.Param("id") {
		respondError(c, http.StatusNotFound, "task not found")
		return storage.Task{}, false
	}
	return task, true
}

func toAPIUser(u storage.User) model.User {
	return model.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (s *Server) apiProject(ctx context.Context, p storage.Project) model.Project {
	out := model.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      model.ProjectStatus(p.Status),
		CreatedAt:   p.CreatedAt,
	}
	if p.CreatedBy != "" {
		if creator, err := s.repo.GetUser(ctx, p.CreatedBy); err == nil {
			u := toAPIUser(creator)
			out.CreatedBy = &u
		}
	}
	return out
}

func (s *Server) apiTask(ctx context.Context, t storage.Task) model.Task {
	out := model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      model.TaskStatus(t.Status),
		Priority:    model.Priority(t.Priority),
		Project:     t.ProjectID,
		DueDate:     t.DueAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != "" {
		if assignee, err := s.repo.GetUser(ctx, t.AssignedTo); err == nil {
			u := toAPIUser(assignee)
			out.AssignedTo = &u
		}
	}
	return out
}

// parseDueDate accepts RFC 3339 timestamps or bare dates.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
