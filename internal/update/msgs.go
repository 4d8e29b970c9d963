package update

import (
	"taskboard/internal/alerts"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// Fulfilled/rejected messages delivered by the async commands. Each carries
// enough to apply its transition without re-reading the server response.

type AuthSuccessMsg struct {
	Result service.AuthResult
}

type AuthFailedMsg struct {
	Err error
}

// SessionExpiredMsg is the global 401 outcome: whichever store's request hit
// it, the session is already cleared and the client routes to login.
type SessionExpiredMsg struct{}

// SessionRestoredMsg kicks off the startup auth probe and project fetch for
// a persisted session. Init emits it instead of dispatching directly: the
// dispatch thunks bump generation counters on the model, and only Update
// returns the mutated model to the runtime.
type SessionRestoredMsg struct{}

type UsersLoadedMsg struct {
	Users []model.User
}

type UsersFailedMsg struct {
	Err error
}

type ProjectsLoadedMsg struct {
	Gen      uint64
	Projects []model.Project
}

type ProjectsFailedMsg struct {
	Gen uint64
	Err error
}

type ProjectDetailMsg struct {
	Project model.Project
}

type ProjectCreatedMsg struct {
	Project model.Project
}

type ProjectSavedMsg struct {
	Project model.Project
}

type ProjectDeletedMsg struct {
	ID string
}

type ProjectOpFailedMsg struct {
	Err error
}

type TasksLoadedMsg struct {
	Gen       uint64
	ProjectID string
	Tasks     []model.Task
}

type TasksFailedMsg struct {
	Gen uint64
	Err error
}

type TaskDetailMsg struct {
	Task model.Task
}

type TaskCreatedMsg struct {
	Task model.Task
}

type TaskSavedMsg struct {
	Task model.Task
}

type TaskDeletedMsg struct {
	ProjectID string
	TaskID    string
}

type TaskOpFailedMsg struct {
	Err error
}

type DismissNoticeMsg struct {
	Seq int
}

type DueAlertMsg struct {
	Event alerts.Event
}
