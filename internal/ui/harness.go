package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const zoneSyncTimeout = time.Second

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
	quit  bool
	syncs int
}

// NewHarness creates a harness for the provided model. The search cursor is
// made static so focusing the field does not start an endless blink loop.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.search.Cursor.SetMode(cursor.CursorStatic)
	}
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Key sends a key press by name ("down", "enter", "/", or runes to type).
func (h *Harness) Key(name string) {
	h.Send(keyMsg(name))
}

// Click draws the current view, as the program would before any input, and
// sends a left mouse press at x, y.
func (h *Harness) Click(x, y int) {
	if h.model == nil {
		return
	}
	h.render()
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

// render scans the view together with a marker line below it and waits for
// the marker's zone; the zone manager records zones in the background.
func (h *Harness) render() {
	zones := h.model.zones
	h.syncs++
	marker := fmt.Sprintf("@sync-%d", h.syncs)
	zones.Scan(h.model.render() + "\n" + zones.Mark(marker, "~"))
	deadline := time.Now().Add(zoneSyncTimeout)
	for zones.Get(marker) == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil || h.quit {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.QuitMsg:
		h.quit = true
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
		return
	}
	mdl, next := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(next)
}

// Quit reports whether the model asked the program to exit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}
