package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/alerts"
)

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.alerts != nil {
		cmds = append(cmds, waitForAlertCmd(m.alerts.C()))
	}
	if m.Auth.IsAuthenticated {
		cmds = append(cmds, func() tea.Msg { return SessionRestoredMsg{} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.Height = typed.Height
		return m, nil

	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Screen == ScreenLogin {
			return m.handleLoginKey(typed)
		}
		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input.SetValue("")
			m.Palette.Input.Focus()
			m.setStatus("command palette active", false)
			return m, nil
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "f":
			m.Filter.Status = nextStatusFilter(m.Filter.Status)
			m.TaskCursor = 0
			m.setStatus("status filter: "+m.Filter.Status, false)
			return m, nil
		case "F":
			m.Filter.Priority = nextPriorityFilter(m.Filter.Priority)
			m.TaskCursor = 0
			m.setStatus("priority filter: "+m.Filter.Priority, false)
			return m, nil
		case "o":
			m.Sort = nextSortKey(m.Sort)
			m.setStatus("sort: "+sortLabel(m.Sort), false)
			return m, nil
		}
		switch m.Screen {
		case ScreenProjects:
			return m.handleProjectsKey(typed)
		case ScreenTasks:
			return m.handleTasksKey(typed)
		case ScreenTaskDetail:
			return m.handleTaskDetailKey(typed)
		}
		return m, nil

	case AuthSuccessMsg:
		m.applyAuthSuccess(typed)
		return m, tea.Batch(m.dispatchCheckAuth(), m.dispatchFetchProjects())
	case SessionRestoredMsg:
		return m, tea.Batch(m.dispatchCheckAuth(), m.dispatchFetchProjects())
	case AuthFailedMsg:
		m.applyAuthFailed(typed)
		return m, nil
	case SessionExpiredMsg:
		cmd := m.forceLogout()
		return m, cmd
	case UsersLoadedMsg:
		m.Users = typed.Users
		return m, nil
	case UsersFailedMsg:
		m.setStatus(typed.Err.Error(), true)
		return m, nil

	case ProjectsLoadedMsg:
		m.applyProjectsLoaded(typed)
		return m, nil
	case ProjectsFailedMsg:
		cmd := m.applyProjectsFailed(typed)
		return m, cmd
	case ProjectDetailMsg:
		m.applyProjectDetail(typed)
		return m, nil
	case ProjectCreatedMsg:
		cmd := m.applyProjectCreated(typed)
		return m, cmd
	case ProjectSavedMsg:
		cmd := m.applyProjectSaved(typed)
		return m, cmd
	case ProjectDeletedMsg:
		cmd := m.applyProjectDeleted(typed)
		return m, cmd
	case ProjectOpFailedMsg:
		cmd := m.applyProjectOpFailed(typed)
		return m, cmd

	case TasksLoadedMsg:
		cmd := m.applyTasksLoaded(typed)
		return m, cmd
	case TasksFailedMsg:
		cmd := m.applyTasksFailed(typed)
		return m, cmd
	case TaskDetailMsg:
		m.applyTaskDetail(typed)
		return m, nil
	case TaskCreatedMsg:
		cmd := m.applyTaskCreated(typed)
		return m, cmd
	case TaskSavedMsg:
		cmd := m.applyTaskSaved(typed)
		return m, cmd
	case TaskDeletedMsg:
		cmd := m.applyTaskDeleted(typed)
		return m, cmd
	case TaskOpFailedMsg:
		cmd := m.applyTaskOpFailed(typed)
		return m, cmd

	case DueAlertMsg:
		noticeCmd := m.applyDueAlert(typed)
		if m.alerts != nil {
			return m, tea.Batch(noticeCmd, waitForAlertCmd(m.alerts.C()))
		}
		return m, noticeCmd
	case DismissNoticeMsg:
		m.applyDismissNotice(typed)
		return m, nil
	}

	return m, nil
}

func waitForAlertCmd(ch <-chan alerts.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueAlertMsg{Event: ev}
	}
}
