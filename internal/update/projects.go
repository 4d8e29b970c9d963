package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
)

// dispatchFetchProjects replaces the list wholesale on success. The bumped
// generation makes a slow response that arrives after a newer dispatch (or
// after a local mutation's refetch) land dead.
func (m *Model) dispatchFetchProjects() tea.Cmd {
	m.Projects.Loading = true
	m.Projects.Err = ""
	m.Projects.gen++
	gen := m.Projects.gen
	svc := m.svc
	return func() tea.Msg {
		projects, err := svc.ListProjects(context.Background())
		if err != nil {
			return ProjectsFailedMsg{Gen: gen, Err: err}
		}
		return ProjectsLoadedMsg{Gen: gen, Projects: projects}
	}
}

func (m *Model) dispatchFetchProject(id string) tea.Cmd {
	m.Projects.Loading = true
	m.Projects.Err = ""
	svc := m.svc
	return func() tea.Msg {
		project, err := svc.GetProject(context.Background(), id)
		if err != nil {
			return ProjectOpFailedMsg{Err: err}
		}
		return ProjectDetailMsg{Project: project}
	}
}

func (m *Model) dispatchCreateProject(in service.ProjectInput) tea.Cmd {
	m.Projects.Loading = true
	m.Projects.Err = ""
	svc := m.svc
	return func() tea.Msg {
		project, err := svc.CreateProject(context.Background(), in)
		if err != nil {
			return ProjectOpFailedMsg{Err: err}
		}
		return ProjectCreatedMsg{Project: project}
	}
}

func (m *Model) dispatchUpdateProject(id string, in service.ProjectInput) tea.Cmd {
	m.Projects.Loading = true
	m.Projects.Err = ""
	svc := m.svc
	return func() tea.Msg {
		project, err := svc.UpdateProject(context.Background(), id, in)
		if err != nil {
			return ProjectOpFailedMsg{Err: err}
		}
		return ProjectSavedMsg{Project: project}
	}
}

func (m *Model) dispatchDeleteProject(id string) tea.Cmd {
	m.Projects.Loading = true
	m.Projects.Err = ""
	svc := m.svc
	return func() tea.Msg {
		if err := svc.DeleteProject(context.Background(), id); err != nil {
			return ProjectOpFailedMsg{Err: err}
		}
		return ProjectDeletedMsg{ID: id}
	}
}

func (m *Model) applyProjectsLoaded(msg ProjectsLoadedMsg) {
	if msg.Gen != m.Projects.gen {
		return // stale response, a newer dispatch owns the slice
	}
	m.Projects.Loading = false
	m.Projects.ProjectList = msg.Projects
	if m.ProjectCursor >= len(msg.Projects) {
		m.ProjectCursor = 0
	}
}

func (m *Model) applyProjectsFailed(msg ProjectsFailedMsg) tea.Cmd {
	if errors.Is(msg.Err, service.ErrUnauthorized) {
		return m.forceLogout()
	}
	if msg.Gen != m.Projects.gen {
		return nil
	}
	m.Projects.Loading = false
	m.Projects.Err = msg.Err.Error()
	return nil
}

func (m *Model) applyProjectDetail(msg ProjectDetailMsg) {
	m.Projects.Loading = false
	project := msg.Project
	m.Projects.CurrentProject = &project
}

// Created projects append to the end of the list; the server's order is
// only re-established by the next full fetch.
func (m *Model) applyProjectCreated(msg ProjectCreatedMsg) tea.Cmd {
	m.Projects.Loading = false
	m.Projects.ProjectList = append(m.Projects.ProjectList, msg.Project)
	return m.pushNotice("project created: "+msg.Project.Name, noticeInfo)
}

func (m *Model) applyProjectSaved(msg ProjectSavedMsg) tea.Cmd {
	m.Projects.Loading = false
	for i, p := range m.Projects.ProjectList {
		if p.ID == msg.Project.ID {
			m.Projects.ProjectList[i] = msg.Project
			break
		}
	}
	if m.Projects.CurrentProject != nil && m.Projects.CurrentProject.ID == msg.Project.ID {
		project := msg.Project
		m.Projects.CurrentProject = &project
	}
	return m.pushNotice("project updated: "+msg.Project.Name, noticeInfo)
}

func (m *Model) applyProjectDeleted(msg ProjectDeletedMsg) tea.Cmd {
	m.Projects.Loading = false
	list := m.Projects.ProjectList[:0]
	for _, p := range m.Projects.ProjectList {
		if p.ID != msg.ID {
			list = append(list, p)
		}
	}
	m.Projects.ProjectList = list
	if m.Projects.CurrentProject != nil && m.Projects.CurrentProject.ID == msg.ID {
		m.Projects.CurrentProject = nil
	}
	delete(m.Tasks.TasksByProject, msg.ID)
	if m.ProjectCursor >= len(list) && m.ProjectCursor > 0 {
		m.ProjectCursor = len(list) - 1
	}
	return m.pushNotice("project deleted", noticeInfo)
}

func (m *Model) applyProjectOpFailed(msg ProjectOpFailedMsg) tea.Cmd {
	if errors.Is(msg.Err, service.ErrUnauthorized) {
		return m.forceLogout()
	}
	m.Projects.Loading = false
	m.Projects.Err = msg.Err.Error()
	return m.pushNotice(msg.Err.Error(), noticeError)
}

func (m Model) handleProjectsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	projects := m.Projects.ProjectList
	switch msg.String() {
	case "up", "k":
		if m.ProjectCursor > 0 {
			m.ProjectCursor--
		}
	case "down", "j":
		if m.ProjectCursor < len(projects)-1 {
			m.ProjectCursor++
		}
	case "enter":
		if m.ProjectCursor < len(projects) {
			return m.openProject(projects[m.ProjectCursor].ID)
		}
	case "r":
		cmd := m.dispatchFetchProjects()
		return m, cmd
	case "x":
		if m.ProjectCursor < len(projects) {
			cmd := m.dispatchDeleteProject(projects[m.ProjectCursor].ID)
			return m, cmd
		}
	}
	return m, nil
}

// openProject selects a project and loads its detail and task partition.
// The cached list entry fills the selection immediately so the screen is
// usable while the fresh copy is in flight.
func (m Model) openProject(id string) (Model, tea.Cmd) {
	for _, p := range m.Projects.ProjectList {
		if p.ID == id {
			project := p
			m.Projects.CurrentProject = &project
			break
		}
	}
	m.Screen = ScreenTasks
	m.TaskCursor = 0
	detailCmd := m.dispatchFetchProject(id)
	tasksCmd := m.dispatchFetchTasks(id)
	return m, tea.Batch(detailCmd, tasksCmd)
}
