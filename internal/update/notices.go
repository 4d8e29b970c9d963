package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	noticeInfo  = "info"
	noticeError = "error"
	noticeAlert = "alert"
)

// pushNotice appends a toast and arms its auto-dismiss timer.
func (m *Model) pushNotice(text, level string) tea.Cmd {
	m.noticeSeq++
	seq := m.noticeSeq
	m.Notices = append(m.Notices, Notice{Seq: seq, Text: text, Level: level})
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg {
		return DismissNoticeMsg{Seq: seq}
	})
}

func (m *Model) applyDismissNotice(msg DismissNoticeMsg) {
	kept := m.Notices[:0]
	for _, n := range m.Notices {
		if n.Seq != msg.Seq {
			kept = append(kept, n)
		}
	}
	m.Notices = kept
}

func (m *Model) applyDueAlert(msg DueAlertMsg) tea.Cmd {
	text := fmt.Sprintf("due soon: %s (%s)", msg.Event.Title, msg.Event.DueAt.Local().Format("Jan 2 15:04"))
	return m.pushNotice(text, noticeAlert)
}

// forceLogout is the single handler for an expired or revoked token, no
// matter which request surfaced it. Credentials are already cleared by the
// transport layer; here the whole client state collapses back to login.
func (m *Model) forceLogout() tea.Cmd {
	m.logout()
	return m.pushNotice("session expired, please sign in again", noticeError)
}
