package update

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/model"
	"taskboard/internal/service"
)

// dispatchLogin runs the pending phase synchronously, then exchanges
// credentials off the loop. The token and identity are persisted before the
// fulfilled message is delivered, matching the login contract.
func (m *Model) dispatchLogin(creds service.Credentials) tea.Cmd {
	m.Auth.Loading = true
	m.Auth.Err = ""
	svc, sess := m.svc, m.session
	return func() tea.Msg {
		res, err := svc.Login(context.Background(), creds)
		if err != nil {
			return AuthFailedMsg{Err: err}
		}
		if sess != nil {
			if err := sess.SaveAuth(res.Token, res.User); err != nil {
				return AuthFailedMsg{Err: err}
			}
		}
		return AuthSuccessMsg{Result: res}
	}
}

func (m *Model) dispatchRegister(reg service.Registration) tea.Cmd {
	m.Auth.Loading = true
	m.Auth.Err = ""
	svc, sess := m.svc, m.session
	return func() tea.Msg {
		res, err := svc.Register(context.Background(), reg)
		if err != nil {
			return AuthFailedMsg{Err: err}
		}
		if sess != nil {
			if err := sess.SaveAuth(res.Token, res.User); err != nil {
				return AuthFailedMsg{Err: err}
			}
		}
		return AuthSuccessMsg{Result: res}
	}
}

// dispatchCheckAuth validates the persisted token with an authenticated
// round-trip instead of trusting its presence. The user listing doubles as
// the assignee directory, so the probe is not wasted.
func (m *Model) dispatchCheckAuth() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		users, err := svc.ListUsers(context.Background())
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return SessionExpiredMsg{}
			}
			return UsersFailedMsg{Err: err}
		}
		return UsersLoadedMsg{Users: users}
	}
}

// logout is synchronous: no server call, credentials destroyed, everything
// cached is dropped.
func (m *Model) logout() {
	if m.session != nil {
		_ = m.session.Clear()
	}
	m.Auth = AuthState{}
	m.Projects = ProjectsState{}
	m.Tasks = TasksState{TasksByProject: make(map[string][]model.Task)}
	m.Users = nil
	m.ProjectCursor = 0
	m.TaskCursor = 0
	m.Palette.Active = false
	m.Screen = ScreenLogin
	m.Login.Email.Focus()
	m.Login.Password.Blur()
	m.Login.Name.Blur()
	m.Login.Focus = loginFieldEmail
}

func (m *Model) applyAuthSuccess(msg AuthSuccessMsg) {
	m.Auth.Loading = false
	m.Auth.Err = ""
	user := msg.Result.User
	m.Auth.User = &user
	m.Auth.IsAuthenticated = true
	m.Login.Password.SetValue("")
	m.Screen = ScreenProjects
}

func (m *Model) applyAuthFailed(msg AuthFailedMsg) {
	m.Auth.Loading = false
	m.Auth.Err = msg.Err.Error()
}

// Login form field order: name is only reachable in register mode.
const (
	loginFieldName = iota
	loginFieldEmail
	loginFieldPassword
)

func (m Model) handleLoginKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+r":
		m.Login.Register = !m.Login.Register
		if m.Login.Register {
			m.focusLoginField(loginFieldName)
			m.setStatus("register mode", false)
		} else {
			m.focusLoginField(loginFieldEmail)
			m.setStatus("login mode", false)
		}
		return m, nil
	case "tab", "down":
		m.cycleLoginFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.cycleLoginFocus(-1)
		return m, nil
	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	switch m.Login.Focus {
	case loginFieldName:
		m.Login.Name, cmd = m.Login.Name.Update(msg)
	case loginFieldEmail:
		m.Login.Email, cmd = m.Login.Email.Update(msg)
	default:
		m.Login.Password, cmd = m.Login.Password.Update(msg)
	}
	return m, cmd
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.Login.Email.Value())
	password := m.Login.Password.Value()
	if email == "" || password == "" {
		m.setStatus("email and password are required", true)
		return m, nil
	}
	if m.Login.Register {
		name := strings.TrimSpace(m.Login.Name.Value())
		if name == "" {
			m.setStatus("name is required", true)
			return m, nil
		}
		cmd := m.dispatchRegister(service.Registration{Name: name, Email: email, Password: password})
		return m, cmd
	}
	cmd := m.dispatchLogin(service.Credentials{Email: email, Password: password})
	return m, cmd
}

func (m *Model) cycleLoginFocus(dir int) {
	first := loginFieldEmail
	if m.Login.Register {
		first = loginFieldName
	}
	next := m.Login.Focus + dir
	if next > loginFieldPassword {
		next = first
	}
	if next < first {
		next = loginFieldPassword
	}
	m.focusLoginField(next)
}

func (m *Model) focusLoginField(field int) {
	m.Login.Focus = field
	m.Login.Name.Blur()
	m.Login.Email.Blur()
	m.Login.Password.Blur()
	switch field {
	case loginFieldName:
		m.Login.Name.Focus()
	case loginFieldEmail:
		m.Login.Email.Focus()
	default:
		m.Login.Password.Focus()
	}
}
