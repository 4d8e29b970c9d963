// Package update owns the client state machine. Every state transition runs
// atomically inside the bubbletea update loop; suspension happens only at
// network calls, which run as commands and deliver typed messages back.
package update

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"taskboard/internal/alerts"
	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

type Screen string

const (
	ScreenLogin      Screen = "login"
	ScreenProjects   Screen = "projects"
	ScreenTasks      Screen = "tasks"
	ScreenTaskDetail Screen = "task-detail"
)

// AuthState mirrors the session for rendering: anonymous, authenticating
// (Loading) or authenticated.
type AuthState struct {
	User            *model.User
	IsAuthenticated bool
	Loading         bool
	Err             string
}

// ProjectsState caches the project list and the transient current selection.
// gen is the fetch generation: responses stamped with an older generation
// are discarded, so the most recent dispatch always wins.
type ProjectsState struct {
	ProjectList    []model.Project
	CurrentProject *model.Project
	Loading        bool
	Err            string
	gen            uint64
}

// Projects returns a snapshot copy of the cached list.
func (s ProjectsState) Projects() []model.Project {
	return append([]model.Project(nil), s.ProjectList...)
}

// Current returns the transient selection, if any.
func (s ProjectsState) Current() (model.Project, bool) {
	if s.CurrentProject == nil {
		return model.Project{}, false
	}
	return *s.CurrentProject, true
}

// TasksState caches tasks partitioned by owning project, plus one transient
// current-task slot for the detail view.
type TasksState struct {
	TasksByProject map[string][]model.Task
	CurrentTask    *model.Task
	Loading        bool
	Err            string
	gen            uint64
}

// TasksFor returns a snapshot copy of one partition. A never-fetched
// partition yields an empty slice.
func (s TasksState) TasksFor(projectID string) []model.Task {
	return append([]model.Task(nil), s.TasksByProject[projectID]...)
}

// Current returns the transient task selection, if any.
func (s TasksState) Current() (model.Task, bool) {
	if s.CurrentTask == nil {
		return model.Task{}, false
	}
	return *s.CurrentTask, true
}

type FilterState struct {
	Status   string
	Priority string
}

type StatusBar struct {
	Text    string
	IsError bool
}

// Notice is a transient toast, auto-dismissed after NoticeTTL.
type Notice struct {
	Seq   int
	Text  string
	Level string
}

// NoticeTTL matches the original client's 3 second toast timeout.
const NoticeTTL = 3 * time.Second

// DefaultDueSoonWindow bounds how far ahead due alerts are scheduled.
const DefaultDueSoonWindow = 24 * time.Hour

type LoginForm struct {
	Name     textinput.Model
	Email    textinput.Model
	Password textinput.Model
	Focus    int
	Register bool
}

type PaletteState struct {
	Active bool
	Input  textinput.Model
}

type RuntimeConfig struct {
	Theme         string
	Alerts        *alerts.Engine
	DueSoonWindow time.Duration
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{Theme: "dark", DueSoonWindow: DefaultDueSoonWindow}
}

type Model struct {
	svc     service.Service
	session *session.Store
	alerts  *alerts.Engine
	window  time.Duration
	theme   string

	Screen   Screen
	Auth     AuthState
	Projects ProjectsState
	Tasks    TasksState
	Users    []model.User

	Filter FilterState
	Sort   model.SortKey

	ProjectCursor int
	TaskCursor    int

	Login   LoginForm
	Palette PaletteState

	Status    StatusBar
	Notices   []Notice
	noticeSeq int

	Width    int
	Height   int
	Quitting bool
}

func NewModel(svc service.Service, sess *session.Store) Model {
	return NewModelWithConfig(svc, sess, DefaultRuntimeConfig())
}

func NewModelWithConfig(svc service.Service, sess *session.Store, cfg RuntimeConfig) Model {
	name := textinput.New()
	name.Placeholder = "name"
	name.CharLimit = 64
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	palette := textinput.New()
	palette.Placeholder = "add <title> | project <name> | filter status:pending | sort due | refresh | logout"
	palette.CharLimit = 256

	if cfg.DueSoonWindow <= 0 {
		cfg.DueSoonWindow = DefaultDueSoonWindow
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}

	m := Model{
		svc:     svc,
		session: sess,
		alerts:  cfg.Alerts,
		window:  cfg.DueSoonWindow,
		theme:   cfg.Theme,
		Screen:  ScreenLogin,
		Tasks:   TasksState{TasksByProject: make(map[string][]model.Task)},
		Filter:  FilterState{Status: model.FilterAll, Priority: model.FilterAll},
		Sort:    model.SortNone,
		Login:   LoginForm{Name: name, Email: email, Password: password},
		Palette: PaletteState{Input: palette},
	}
	m.Login.Email.Focus()

	if sess != nil && sess.IsAuthenticated() {
		m.Auth.IsAuthenticated = true
		if user, ok := sess.User(); ok {
			u := user
			m.Auth.User = &u
		}
		m.Screen = ScreenProjects
	}
	return m
}

// VisibleTasks derives the task list for the current project: the cached
// partition narrowed by the active filters and ordered by the active sort.
// Recomputed per render, never cached.
func (m Model) VisibleTasks() []model.Task {
	project, ok := m.Projects.Current()
	if !ok {
		return nil
	}
	tasks := m.Tasks.TasksFor(project.ID)
	tasks = model.FilterByStatus(tasks, m.Filter.Status)
	tasks = model.FilterByPriority(tasks, m.Filter.Priority)
	return model.SortTasks(tasks, m.Sort)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.Status = StatusBar{Text: text, IsError: isErr}
}
