package update

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/alerts"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

func (m *Model) dispatchFetchTasks(projectID string) tea.Cmd {
	m.Tasks.Loading = true
	m.Tasks.Err = ""
	m.Tasks.gen++
	gen := m.Tasks.gen
	svc := m.svc
	return func() tea.Msg {
		tasks, err := svc.ListTasks(context.Background(), projectID)
		if err != nil {
			return TasksFailedMsg{Gen: gen, Err: err}
		}
		return TasksLoadedMsg{Gen: gen, ProjectID: projectID, Tasks: tasks}
	}
}

func (m *Model) dispatchFetchTask(projectID, taskID string) tea.Cmd {
	m.Tasks.Loading = true
	m.Tasks.Err = ""
	svc := m.svc
	return func() tea.Msg {
		task, err := svc.GetTask(context.Background(), projectID, taskID)
		if err != nil {
			return TaskOpFailedMsg{Err: err}
		}
		return TaskDetailMsg{Task: task}
	}
}

func (m *Model) dispatchCreateTask(projectID string, in service.TaskInput) tea.Cmd {
	m.Tasks.Loading = true
	m.Tasks.Err = ""
	svc := m.svc
	return func() tea.Msg {
		task, err := svc.CreateTask(context.Background(), projectID, in)
		if err != nil {
			return TaskOpFailedMsg{Err: err}
		}
		return TaskCreatedMsg{Task: task}
	}
}

func (m *Model) dispatchUpdateTask(projectID, taskID string, in service.TaskInput) tea.Cmd {
	m.Tasks.Loading = true
	m.Tasks.Err = ""
	svc := m.svc
	return func() tea.Msg {
		task, err := svc.UpdateTask(context.Background(), projectID, taskID, in)
		if err != nil {
			return TaskOpFailedMsg{Err: err}
		}
		return TaskSavedMsg{Task: task}
	}
}

func (m *Model) dispatchDeleteTask(projectID, taskID string) tea.Cmd {
	m.Tasks.Loading = true
	m.Tasks.Err = ""
	svc := m.svc
	return func() tea.Msg {
		if err := svc.DeleteTask(context.Background(), projectID, taskID); err != nil {
			return TaskOpFailedMsg{Err: err}
		}
		return TaskDeletedMsg{ProjectID: projectID, TaskID: taskID}
	}
}

// applyTasksLoaded replaces exactly one partition; other projects' cached
// partitions are untouched.
func (m *Model) applyTasksLoaded(msg TasksLoadedMsg) tea.Cmd {
	if msg.Gen != m.Tasks.gen {
		return nil
	}
	m.Tasks.Loading = false
	m.Tasks.TasksByProject[msg.ProjectID] = msg.Tasks
	if m.TaskCursor >= len(msg.Tasks) {
		m.TaskCursor = 0
	}
	return m.scheduleDueAlerts(msg.Tasks)
}

func (m *Model) applyTasksFailed(msg TasksFailedMsg) tea.Cmd {
	if errors.Is(msg.Err, service.ErrUnauthorized) {
		return m.forceLogout()
	}
	if msg.Gen != m.Tasks.gen {
		return nil
	}
	m.Tasks.Loading = false
	m.Tasks.Err = msg.Err.Error()
	return nil
}

func (m *Model) applyTaskDetail(msg TaskDetailMsg) {
	m.Tasks.Loading = false
	task := msg.Task
	m.Tasks.CurrentTask = &task
}

// applyTaskCreated files the new task under the partition named by the
// response's own project field. An unfetched partition is created lazily so
// the task is never silently dropped from the cache.
func (m *Model) applyTaskCreated(msg TaskCreatedMsg) tea.Cmd {
	m.Tasks.Loading = false
	projectID := msg.Task.Project
	m.Tasks.TasksByProject[projectID] = append(m.Tasks.TasksByProject[projectID], msg.Task)
	return tea.Batch(
		m.scheduleDueAlerts([]model.Task{msg.Task}),
		m.pushNotice("task created: "+msg.Task.Title, noticeInfo),
	)
}

func (m *Model) applyTaskSaved(msg TaskSavedMsg) tea.Cmd {
	m.Tasks.Loading = false
	partition := m.Tasks.TasksByProject[msg.Task.Project]
	for i, t := range partition {
		if t.ID == msg.Task.ID {
			partition[i] = msg.Task
			break
		}
	}
	if m.Tasks.CurrentTask != nil && m.Tasks.CurrentTask.ID == msg.Task.ID {
		task := msg.Task
		m.Tasks.CurrentTask = &task
	}
	return tea.Batch(
		m.scheduleDueAlerts([]model.Task{msg.Task}),
		m.pushNotice("task updated: "+msg.Task.Title, noticeInfo),
	)
}

func (m *Model) applyTaskDeleted(msg TaskDeletedMsg) tea.Cmd {
	m.Tasks.Loading = false
	partition := m.Tasks.TasksByProject[msg.ProjectID]
	if partition != nil {
		kept := partition[:0]
		for _, t := range partition {
			if t.ID != msg.TaskID {
				kept = append(kept, t)
			}
		}
		m.Tasks.TasksByProject[msg.ProjectID] = kept
	}
	if m.Tasks.CurrentTask != nil && m.Tasks.CurrentTask.ID == msg.TaskID {
		m.Tasks.CurrentTask = nil
		if m.Screen == ScreenTaskDetail {
			m.Screen = ScreenTasks
		}
	}
	if m.alerts != nil {
		m.alerts.Cancel(msg.TaskID)
	}
	visible := len(m.VisibleTasks())
	if m.TaskCursor >= visible && m.TaskCursor > 0 {
		m.TaskCursor = visible - 1
	}
	return m.pushNotice("task deleted", noticeInfo)
}

func (m *Model) applyTaskOpFailed(msg TaskOpFailedMsg) tea.Cmd {
	if errors.Is(msg.Err, service.ErrUnauthorized) {
		return m.forceLogout()
	}
	m.Tasks.Loading = false
	m.Tasks.Err = msg.Err.Error()
	return m.pushNotice(msg.Err.Error(), noticeError)
}

// scheduleDueAlerts queues a local alert for every incomplete task due
// within the configured window. Overdue tasks alert immediately.
func (m *Model) scheduleDueAlerts(tasks []model.Task) tea.Cmd {
	if m.alerts == nil {
		return nil
	}
	now := time.Now().UTC()
	for _, t := range tasks {
		if t.DueDate == nil || t.Status == model.StatusCompleted {
			if t.DueDate != nil {
				m.alerts.Cancel(t.ID)
			}
			continue
		}
		due := t.DueDate.UTC()
		if due.After(now.Add(m.window)) {
			m.alerts.Cancel(t.ID)
			continue
		}
		trigger := due.Add(-time.Hour)
		if trigger.Before(now) {
			trigger = now
		}
		_ = m.alerts.Schedule(alerts.Event{
			TaskID:    t.ID,
			ProjectID: t.Project,
			Title:     t.Title,
			DueAt:     due,
			TriggerAt: trigger,
		})
	}
	return nil
}

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.VisibleTasks()
	project, hasProject := m.Projects.Current()

	switch msg.String() {
	case "esc":
		m.Screen = ScreenProjects
		m.Projects.CurrentProject = nil
		m.Filter = FilterState{Status: model.FilterAll, Priority: model.FilterAll}
		m.Sort = model.SortNone
		return m, nil
	case "up", "k":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
	case "down", "j":
		if m.TaskCursor < len(visible)-1 {
			m.TaskCursor++
		}
	case "enter":
		if hasProject && m.TaskCursor < len(visible) {
			task := visible[m.TaskCursor]
			m.Tasks.CurrentTask = &task
			m.Screen = ScreenTaskDetail
			cmd := m.dispatchFetchTask(project.ID, task.ID)
			return m, cmd
		}
	case "r":
		if hasProject {
			cmd := m.dispatchFetchTasks(project.ID)
			return m, cmd
		}
	case "s":
		if m.TaskCursor < len(visible) {
			return m.cycleTaskStatus(visible[m.TaskCursor])
		}
	case "p":
		if m.TaskCursor < len(visible) {
			return m.cycleTaskPriority(visible[m.TaskCursor])
		}
	case "a":
		if m.TaskCursor < len(visible) {
			return m.cycleTaskAssignee(visible[m.TaskCursor])
		}
	case "x":
		if hasProject && m.TaskCursor < len(visible) {
			cmd := m.dispatchDeleteTask(project.ID, visible[m.TaskCursor].ID)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleTaskDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	task, hasTask := m.Tasks.Current()

	switch msg.String() {
	case "esc":
		m.Screen = ScreenTasks
		m.Tasks.CurrentTask = nil
		return m, nil
	case "s":
		if hasTask {
			return m.cycleTaskStatus(task)
		}
	case "p":
		if hasTask {
			return m.cycleTaskPriority(task)
		}
	case "a":
		if hasTask {
			return m.cycleTaskAssignee(task)
		}
	case "x":
		if hasTask {
			cmd := m.dispatchDeleteTask(task.Project, task.ID)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) cycleTaskStatus(task model.Task) (Model, tea.Cmd) {
	next := task.Status.Next()
	cmd := m.dispatchUpdateTask(task.Project, task.ID, service.TaskInput{Status: string(next)})
	return m, cmd
}

func (m Model) cycleTaskPriority(task model.Task) (Model, tea.Cmd) {
	next := task.Priority.Next()
	cmd := m.dispatchUpdateTask(task.Project, task.ID, service.TaskInput{Priority: string(next)})
	return m, cmd
}

// cycleTaskAssignee walks the user directory loaded at startup; from the
// last user it wraps back to the first rather than unassigning, since the
// API's partial update cannot express "clear this field".
func (m Model) cycleTaskAssignee(task model.Task) (Model, tea.Cmd) {
	if len(m.Users) == 0 {
		m.setStatus("no assignable users loaded", true)
		return m, nil
	}
	next := 0
	if task.AssignedTo != nil {
		for i, u := range m.Users {
			if u.ID == task.AssignedTo.ID {
				next = (i + 1) % len(m.Users)
				break
			}
		}
	}
	cmd := m.dispatchUpdateTask(task.Project, task.ID, service.TaskInput{AssignedTo: m.Users[next].ID})
	return m, cmd
}
