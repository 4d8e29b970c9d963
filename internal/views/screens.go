package views

import (
	"fmt"
	"strings"
)

type LoginPanelData struct {
	Register     bool
	NameView     string
	EmailView    string
	PasswordView string
	Loading      bool
	ErrorText    string
}

type ProjectItemData struct {
	Name      string
	Status    string
	CreatedBy string
}

type ProjectsPanelData struct {
	Items     []ProjectItemData
	Cursor    int
	Loading   bool
	ErrorText string
}

type TaskItemData struct {
	Title    string
	Status   string
	Priority string
	Assignee string
	DueAt    string
	Overdue  bool
}

type TasksPanelData struct {
	ProjectName    string
	Items          []TaskItemData
	Cursor         int
	StatusFilter   string
	PriorityFilter string
	SortKey        string
	Loading        bool
	ErrorText      string
}

type TaskDetailData struct {
	Title           string
	Status          string
	Priority        string
	Assignee        string
	DueAt           string
	DescriptionView string
}

func RenderLoginPanel(data LoginPanelData) string {
	var b strings.Builder
	if data.Register {
		b.WriteString("register:\n")
		b.WriteString("name:     " + data.NameView + "\n")
	} else {
		b.WriteString("sign in:\n")
	}
	b.WriteString("email:    " + data.EmailView + "\n")
	b.WriteString("password: " + data.PasswordView + "\n")
	if data.Loading {
		b.WriteString("(authenticating...)\n")
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	b.WriteString("actions: [enter]submit [tab]next field [ctrl+r]toggle register")
	return strings.TrimSpace(b.String())
}

func RenderProjectsPanel(data ProjectsPanelData) string {
	var b strings.Builder
	b.WriteString("projects:\n")
	b.WriteString("actions: [j/k]move [enter]open [r]refresh [x]delete [/]cmd\n")
	if data.Loading {
		b.WriteString("(loading...)\n")
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	if len(data.Items) == 0 && !data.Loading {
		b.WriteString("(no projects)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		line := fmt.Sprintf("%s [%s] %s", cursor, item.Status, item.Name)
		if item.CreatedBy != "" {
			line += " by " + item.CreatedBy
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: %s\n", data.ProjectName))
	b.WriteString(fmt.Sprintf("filter: status=%s priority=%s | sort: %s\n", data.StatusFilter, data.PriorityFilter, data.SortKey))
	b.WriteString("actions: [j/k]move [enter]detail [s]tatus [p]riority [a]ssign [x]delete [f/F]filter [o]sort [esc]back\n")
	if data.Loading {
		b.WriteString("(loading...)\n")
	}
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	if len(data.Items) == 0 && !data.Loading {
		b.WriteString("(no tasks match)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s/%s] %s", cursor, priorityBadge(item), item.Status, item.Priority, item.Title))
		if item.Assignee != "" {
			b.WriteString(" @" + item.Assignee)
		}
		if item.DueAt != "" {
			b.WriteString(" due:" + item.DueAt)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskDetailPanel(data TaskDetailData) string {
	var b strings.Builder
	b.WriteString("task:\n")
	b.WriteString(fmt.Sprintf("title: %s\n", data.Title))
	b.WriteString(fmt.Sprintf("status: %s | priority: %s\n", data.Status, data.Priority))
	if data.Assignee != "" {
		b.WriteString("assignee: " + data.Assignee + "\n")
	}
	if data.DueAt != "" {
		b.WriteString("due: " + data.DueAt + "\n")
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView + "\n")
	}
	b.WriteString("\nactions: [s]tatus [p]riority [a]ssign [x]delete [esc]back")
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderNotices(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func priorityBadge(item TaskItemData) string {
	if item.Overdue || item.Priority == "high" {
		return "[RED]"
	}
	if item.Priority == "medium" {
		return "[YELLOW]"
	}
	return "[GREEN]"
}
