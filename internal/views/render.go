// Package views renders plain-string panels from flat data structs. It has
// no knowledge of application state; callers flatten whatever they want
// shown into the panel data types.
package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header     string
	Body       string
	SidePane   string
	StatusLine string
	Notices    string
	Footer     string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	noticeStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Foreground(lipgloss.Color("11"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderApp(data AppData) string {
	body := panelStyle.Width(62).Render(data.Body)
	if data.SidePane != "" {
		side := panelStyle.Width(42).Render(data.SidePane)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, side)
	}

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		body,
		status,
	}
	if data.Notices != "" {
		lines = append(lines, noticeStyle.Render(data.Notices))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown pretty-prints a description body. On renderer failure the
// raw text is shown rather than nothing.
func RenderMarkdown(md, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if theme == "" {
		theme = "dark"
	}
	out, err := glamour.Render(md, theme)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
