package update

import (
	"fmt"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/views"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	body := ""
	side := ""
	switch m.Screen {
	case ScreenLogin:
		body = m.renderLoginView()
	case ScreenProjects:
		body = m.renderProjectsView()
	case ScreenTasks:
		body = m.renderTasksView()
	case ScreenTaskDetail:
		body = m.renderTaskDetailView()
		side = m.renderTasksView()
	}
	if m.Palette.Active {
		side = strings.TrimSpace(side + "\n" + views.RenderCommandPalette(true, m.Palette.Input.View()))
	}

	return views.RenderApp(views.AppData{
		Header:     m.renderHeader(),
		Body:       body,
		SidePane:   side,
		StatusLine: status,
		Notices:    m.renderNoticesView(),
		Footer:     "keys: / cmd | q quit",
	})
}

// renderHeader shows the signed-in identity as "name (role)".
func (m Model) renderHeader() string {
	who := "anonymous"
	if m.Auth.User != nil {
		who = fmt.Sprintf("%s (%s)", m.Auth.User.Name, m.Auth.User.Role)
	}
	return fmt.Sprintf("taskboard | %s | %s", m.Screen, who)
}

func (m Model) renderLoginView() string {
	return views.RenderLoginPanel(views.LoginPanelData{
		Register:     m.Login.Register,
		NameView:     m.Login.Name.View(),
		EmailView:    m.Login.Email.View(),
		PasswordView: m.Login.Password.View(),
		Loading:      m.Auth.Loading,
		ErrorText:    m.Auth.Err,
	})
}

func (m Model) renderProjectsView() string {
	projects := m.Projects.Projects()
	items := make([]views.ProjectItemData, 0, len(projects))
	for _, p := range projects {
		createdBy := ""
		if p.CreatedBy != nil {
			createdBy = p.CreatedBy.Name
		}
		items = append(items, views.ProjectItemData{
			Name:      p.Name,
			Status:    string(p.Status),
			CreatedBy: createdBy,
		})
	}
	return views.RenderProjectsPanel(views.ProjectsPanelData{
		Items:     items,
		Cursor:    m.ProjectCursor,
		Loading:   m.Projects.Loading,
		ErrorText: m.Projects.Err,
	})
}

func (m Model) renderTasksView() string {
	projectName := ""
	if project, ok := m.Projects.Current(); ok {
		projectName = project.Name
	}
	now := time.Now()
	visible := m.VisibleTasks()
	items := make([]views.TaskItemData, 0, len(visible))
	for _, t := range visible {
		due := ""
		overdue := false
		if t.DueDate != nil {
			due = t.DueDate.Local().Format("2006-01-02")
			overdue = t.DueDate.Before(now) && t.Status != model.StatusCompleted
		}
		items = append(items, views.TaskItemData{
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Assignee: t.AssigneeName(),
			DueAt:    due,
			Overdue:  overdue,
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		ProjectName:    projectName,
		Items:          items,
		Cursor:         m.TaskCursor,
		StatusFilter:   m.Filter.Status,
		PriorityFilter: m.Filter.Priority,
		SortKey:        sortLabel(m.Sort),
		Loading:        m.Tasks.Loading,
		ErrorText:      m.Tasks.Err,
	})
}

func (m Model) renderTaskDetailView() string {
	task, ok := m.Tasks.Current()
	if !ok {
		return "task:\n(no selection)"
	}
	due := ""
	if task.DueDate != nil {
		due = task.DueDate.Local().Format("2006-01-02 15:04")
	}
	return views.RenderTaskDetailPanel(views.TaskDetailData{
		Title:           task.Title,
		Status:          string(task.Status),
		Priority:        string(task.Priority),
		Assignee:        task.AssigneeName(),
		DueAt:           due,
		DescriptionView: views.RenderMarkdown(task.Description, m.theme),
	})
}

func (m Model) renderNoticesView() string {
	lines := make([]string, 0, len(m.Notices))
	for _, n := range m.Notices {
		lines = append(lines, fmt.Sprintf("[%s] %s", strings.ToUpper(n.Level), n.Text))
	}
	return views.RenderNotices(lines)
}
