package ui

import (
	"github.com/atomicstack/drilldown-menu/internal/logging/events"
	"github.com/atomicstack/drilldown-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// selectedMsg reports a followed leaf back to the model.
type selectedMsg struct {
	node menu.Node
}

func selectNode(n menu.Node) tea.Msg {
	return selectedMsg{node: n}
}

func (m *Model) handleSelectedMsg(msg tea.Msg) tea.Cmd {
	selected, ok := msg.(selectedMsg)
	if !ok {
		return nil
	}
	node := selected.node
	m.selected = &node
	m.errMsg = ""
	events.App.Select(node.ID, node.Href)
	return tea.Quit
}
