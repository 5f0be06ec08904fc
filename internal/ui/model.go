package ui

import (
	"fmt"
	"reflect"

	"github.com/atomicstack/drilldown-menu/internal/backend"
	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	"github.com/atomicstack/drilldown-menu/internal/markup"
	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/atomicstack/drilldown-menu/internal/task"
	"github.com/atomicstack/drilldown-menu/internal/theme"
	"github.com/atomicstack/drilldown-menu/internal/ui/command"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

const menuHeaderSeparator = " → "

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config describes how the model is built.
type Config struct {
	Document   *markup.Document
	Menu       drilldown.Options
	Width      int
	Height     int
	ShowFooter bool
	// Search enables the "/" search affordance.
	Search  bool
	Watcher *backend.Watcher
}

type listenerEntry struct {
	id      int
	handler drilldown.Handler
}

// Model implements the Bubble Tea model for the drill-down menu. It is also
// the drilldown.Surface of the menu instance it owns.
type Model struct {
	menu *drilldown.Menu
	doc  *markup.Document
	opts drilldown.Options
	view drilldown.View

	listeners    map[drilldown.Listener]listenerEntry
	nextListener int

	handlers map[reflect.Type]msgHandler

	bus     *command.Bus
	backend *backend.Watcher
	help    help.Model
	zones   *zone.Manager

	searchEnabled bool
	search        textinput.Model
	results       []searchResult
	resultCursor  int

	selected    *menu.Node
	errMsg      string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
}

// NewModel builds the menu instance described by cfg and wires it to a new
// model.
func NewModel(cfg Config) (*Model, error) {
	m := &Model{
		doc:           cfg.Document,
		opts:          cfg.Menu,
		listeners:     make(map[drilldown.Listener]listenerEntry),
		bus:           command.New(),
		backend:       cfg.Watcher,
		help:          help.New(),
		zones:         zone.New(),
		searchEnabled: cfg.Search,
		search:        newSearchInput(),
		showFooter:    cfg.ShowFooter,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	instance, err := drilldown.Init(cfg.Document, cfg.Menu, m)
	if err != nil {
		m.zones.Close()
		return nil, err
	}
	m.menu = instance
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(task.FiredMsg{}):     m.handleFiredMsg,
		reflect.TypeOf(selectedMsg{}):       m.handleSelectedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate keeps the text field in step with the instance's deferred
// search focus.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	switch {
	case m.view.SearchFocused && !m.search.Focused():
		if cmd := m.search.Focus(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case !m.view.SearchFocused && m.search.Focused():
		m.search.Blur()
	}
	if !m.view.SearchVisible && (m.search.Value() != "" || len(m.results) > 0) {
		m.resetSearch()
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Attach registers a handler for one listener kind. A later attach for the
// same kind replaces the earlier one; a stale Detach is then a no-op.
func (m *Model) Attach(l drilldown.Listener, h drilldown.Handler) (drilldown.Detach, error) {
	if h == nil {
		return nil, fmt.Errorf("attach %s: nil handler", l)
	}
	if m.listeners == nil {
		m.listeners = make(map[drilldown.Listener]listenerEntry)
	}
	m.nextListener++
	id := m.nextListener
	m.listeners[l] = listenerEntry{id: id, handler: h}
	return func() {
		if current, ok := m.listeners[l]; ok && current.id == id {
			delete(m.listeners, l)
		}
	}, nil
}

// Render stores the view the next View call draws.
func (m *Model) Render(v drilldown.View) {
	m.view = v
}

// Follow routes a leaf through the command bus; the program quits with the
// entry selected.
func (m *Model) Follow(n *menu.Node) tea.Cmd {
	if n == nil {
		return nil
	}
	node := *n
	return m.bus.Execute(command.Request{
		ID:      node.ID,
		Label:   node.Label,
		Node:    node,
		Handler: selectNode,
	})
}

func (m *Model) dispatch(l drilldown.Listener, msg tea.Msg) tea.Cmd {
	entry, ok := m.listeners[l]
	if !ok {
		return nil
	}
	return entry.handler(msg)
}

func (m *Model) handleFiredMsg(msg tea.Msg) tea.Cmd {
	return m.dispatch(drilldown.ListenDeferred, msg)
}

// Selected returns the entry the user followed, if any.
func (m *Model) Selected() (menu.Node, bool) {
	if m.selected == nil {
		return menu.Node{}, false
	}
	return *m.selected, true
}

// Menu exposes the current menu instance.
func (m *Model) Menu() *drilldown.Menu {
	return m.menu
}

// Close destroys the menu instance and stops the zone manager.
func (m *Model) Close() {
	m.menu.Destroy()
	m.zones.Close()
}
