package ui

import (
	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	"github.com/atomicstack/drilldown-menu/internal/router"
	tea "github.com/charmbracelet/bubbletea"
)

const searchKey = "/"

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	name := keyMsg.String()
	if name == "ctrl+c" {
		return tea.Quit
	}
	if m.view.SearchFocused {
		return m.handleSearchKey(keyMsg)
	}
	switch name {
	case "q":
		return tea.Quit
	case searchKey:
		if m.searchEnabled {
			return m.menu.ToggleSearch()
		}
		return nil
	case "esc":
		// A closed popup has nothing left to dismiss.
		if !m.view.Open {
			return tea.Quit
		}
	}
	m.errMsg = ""
	return m.dispatch(drilldown.ListenKey, router.Key(name))
}

// activate delivers a pointer activation of target to the instance.
func (m *Model) activate(target string) tea.Cmd {
	if target == "" {
		return nil
	}
	m.errMsg = ""
	return m.dispatch(drilldown.ListenActivate, router.Activate(target))
}
