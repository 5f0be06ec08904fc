package command

import (
	"fmt"

	"github.com/atomicstack/drilldown-menu/internal/logging/events"
	"github.com/atomicstack/drilldown-menu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Action follows a menu entry and reports the outcome as a message.
type Action func(menu.Node) tea.Msg

// Request encapsulates one follow invocation.
type Request struct {
	ID      string
	Label   string
	Handler Action
	Node    menu.Node
}

// Bus coordinates following menu entries.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler(req.Node)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
