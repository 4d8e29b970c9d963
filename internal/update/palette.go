package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/commands"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input.SetValue("")
		m.Palette.Input.Blur()
		return m, nil
	case "enter":
		input := m.Palette.Input.Value()
		m.Palette.Active = false
		m.Palette.Input.SetValue("")
		m.Palette.Input.Blur()
		return m.runPaletteCommand(input)
	}
	var cmd tea.Cmd
	m.Palette.Input, cmd = m.Palette.Input.Update(msg)
	return m, cmd
}

func (m Model) runPaletteCommand(input string) (Model, tea.Cmd) {
	parsed, err := commands.Parse(input)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	var pending tea.Cmd
	result, err := commands.Execute(parsed, commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			project, ok := m.Projects.Current()
			if !ok {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: "add needs an open project",
				}
			}
			pending = m.dispatchCreateTask(project.ID, service.TaskInput{
				Title:    args.Title,
				Status:   string(model.StatusPending),
				Priority: string(model.PriorityMedium),
			})
			return commands.Result{Message: fmt.Sprintf("adding %q", args.Title)}, nil
		},
		Project: func(args commands.ProjectArgs) (commands.Result, error) {
			pending = m.dispatchCreateProject(service.ProjectInput{Name: args.Name})
			return commands.Result{Message: fmt.Sprintf("creating project %q", args.Name)}, nil
		},
		Filter: func(args commands.FilterArgs) (commands.Result, error) {
			if args.Clear {
				m.Filter = FilterState{Status: model.FilterAll, Priority: model.FilterAll}
				return commands.Result{Message: "filters cleared"}, nil
			}
			if args.Status != "" {
				if args.Status != model.FilterAll && !model.TaskStatus(args.Status).IsValid() {
					return commands.Result{}, &commands.CommandError{
						Code:    commands.ErrCodeInvalidArgument,
						Message: fmt.Sprintf("unknown status: %s", args.Status),
					}
				}
				m.Filter.Status = args.Status
			}
			if args.Priority != "" {
				if args.Priority != model.FilterAll && !model.Priority(args.Priority).IsValid() {
					return commands.Result{}, &commands.CommandError{
						Code:    commands.ErrCodeInvalidArgument,
						Message: fmt.Sprintf("unknown priority: %s", args.Priority),
					}
				}
				m.Filter.Priority = args.Priority
			}
			m.TaskCursor = 0
			return commands.Result{Message: "filters updated"}, nil
		},
		Sort: func(args commands.SortArgs) (commands.Result, error) {
			key := model.SortKey(args.Key)
			if args.Key == "none" {
				key = model.SortNone
			}
			m.Sort = key
			return commands.Result{Message: fmt.Sprintf("sorting by %s", args.Key)}, nil
		},
		Refresh: func() (commands.Result, error) {
			cmds := []tea.Cmd{m.dispatchFetchProjects()}
			if project, ok := m.Projects.Current(); ok {
				cmds = append(cmds, m.dispatchFetchTasks(project.ID))
			}
			pending = tea.Batch(cmds...)
			return commands.Result{Message: "refreshing"}, nil
		},
		Logout: func() (commands.Result, error) {
			m.logout()
			return commands.Result{Message: "signed out"}, nil
		},
	})
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus(result.Message, false)
	return m, pending
}
