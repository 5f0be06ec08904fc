package ui

import (
	"fmt"

	"github.com/atomicstack/drilldown-menu/internal/backend"
	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	"github.com/atomicstack/drilldown-menu/internal/logging"
	"github.com/atomicstack/drilldown-menu/internal/markup"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
		return
	}
	if evt.Document == nil {
		return
	}
	if err := m.reload(evt.Document); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

// reload replaces the menu instance with one built from doc. The old
// instance is destroyed first so listeners never overlap; when the new
// document is rejected the previous one is rebuilt.
func (m *Model) reload(doc *markup.Document) error {
	m.menu.Destroy()
	instance, err := drilldown.Init(doc, m.opts, m)
	if err == nil {
		m.menu = instance
		m.doc = doc
		return nil
	}
	previous, prevErr := drilldown.Init(m.doc, m.opts, m)
	if prevErr != nil {
		return fmt.Errorf("reload menu: %w (restore failed: %v)", err, prevErr)
	}
	m.menu = previous
	return fmt.Errorf("reload menu: %w", err)
}
