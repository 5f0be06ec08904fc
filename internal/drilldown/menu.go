// Package drilldown ties the menu tree, the transition engine, the focus
// synchronizer and the input router into one menu instance.
//
// Init validates the configuration, builds the tree and attaches the
// instance's listeners to a Surface. Each listener runs one input-handling
// turn to completion: route the input, apply the transition, recompute the
// tab order and focus, and hand a fresh View to the surface. Destroy detaches
// every listener and releases the state; it is safe to call more than once.
package drilldown

import (
	"fmt"

	"github.com/atomicstack/drilldown-menu/internal/focus"
	"github.com/atomicstack/drilldown-menu/internal/logging/events"
	"github.com/atomicstack/drilldown-menu/internal/markup"
	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/atomicstack/drilldown-menu/internal/nav"
	"github.com/atomicstack/drilldown-menu/internal/router"
	"github.com/atomicstack/drilldown-menu/internal/task"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Listener names the input streams an instance subscribes to.
type Listener int

const (
	ListenActivate Listener = iota
	ListenKey
	ListenDeferred
)

func (l Listener) String() string {
	switch l {
	case ListenActivate:
		return "activate"
	case ListenKey:
		return "key"
	case ListenDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Handler processes one input. Activation and key listeners receive a
// router.Event, the deferred listener a task.FiredMsg.
type Handler func(tea.Msg) tea.Cmd

// Detach removes a previously attached handler.
type Detach func()

// Surface is the visual collaborator: it delivers input to attached handlers,
// draws views, and performs link navigation for leaves.
type Surface interface {
	Attach(l Listener, h Handler) (Detach, error)
	Render(View)
	Follow(*menu.Node) tea.Cmd
}

// Menu is one independent menu instance.
type Menu struct {
	id      string
	opts    Options
	tree    *menu.Tree
	router  *router.Router
	surface Surface

	state         nav.State
	focus         string
	search        bool
	searchFocused bool
	deferred      *task.Deferred

	detach    []Detach
	destroyed bool
}

// Init builds a menu from doc and attaches it to surface. Configuration
// problems are reported as *menu.ConfigurationError before any listener is
// attached.
func Init(doc *markup.Document, opts Options, surface Surface) (*Menu, error) {
	m, err := initMenu(doc, opts, surface)
	if err != nil {
		events.Menu.InitFailed(err)
		return nil, err
	}
	return m, nil
}

func initMenu(doc *markup.Document, opts Options, surface Surface) (*Menu, error) {
	opts = opts.withDefaults()
	if err := menu.ValidatePosition(opts.Position); err != nil {
		return nil, err
	}
	container := opts.Container
	if container == nil {
		resolved, err := doc.Resolve(opts.Menu)
		if err != nil {
			return nil, &menu.ConfigurationError{Field: "menu", Value: opts.Menu, Reason: err.Error()}
		}
		container = resolved
	}
	tree, err := menu.Build(container)
	if err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, &menu.ConfigurationError{Field: "surface", Reason: "no surface supplied"}
	}

	id := uuid.NewString()
	m := &Menu{
		id:       id,
		opts:     opts,
		tree:     tree,
		router:   router.New(router.DefaultKeyMap()),
		surface:  surface,
		state:    nav.Initial(opts.Active),
		deferred: task.NewDeferred(id),
	}
	listeners := []struct {
		kind    Listener
		handler Handler
	}{
		{ListenActivate, m.handleEvent},
		{ListenKey, m.handleEvent},
		{ListenDeferred, m.handleDeferred},
	}
	for _, l := range listeners {
		detach, err := surface.Attach(l.kind, l.handler)
		if err != nil {
			m.detachAll()
			return nil, fmt.Errorf("attach %s listener: %w", l.kind, err)
		}
		m.detach = append(m.detach, detach)
	}
	events.Menu.Init(m.id, container.ID, opts.Position, opts.Active)
	m.sync()
	return m, nil
}

// Destroy detaches every listener, cancels pending deferred focus and
// releases the navigation state.
func (m *Menu) Destroy() {
	if m == nil || m.destroyed {
		return
	}
	m.destroyed = true
	if m.deferred.Cancel() {
		events.Task.Cancel(m.id)
	}
	detached := m.detachAll()
	m.state = nav.State{}
	m.focus = ""
	m.search = false
	m.searchFocused = false
	events.Menu.Destroy(m.id, detached)
}

func (m *Menu) detachAll() int {
	n := 0
	for i := len(m.detach) - 1; i >= 0; i-- {
		if d := m.detach[i]; d != nil {
			d()
			n++
		}
	}
	m.detach = nil
	return n
}

// ID returns the instance identifier.
func (m *Menu) ID() string { return m.id }

// Tree returns the menu tree.
func (m *Menu) Tree() *menu.Tree { return m.tree }

// Options returns the effective options.
func (m *Menu) Options() Options { return m.opts }

// Keys returns the key bindings the instance routes with.
func (m *Menu) Keys() router.KeyMap { return m.router.Keys() }

// State returns a copy of the navigation state.
func (m *Menu) State() nav.State { return m.state.Clone() }

// Focus returns the focused element, or "" when focus is outside the menu
// levels (on the toggle control or the search field).
func (m *Menu) Focus() string { return m.focus }

// Destroyed reports whether Destroy has been called.
func (m *Menu) Destroyed() bool { return m.destroyed }

// SearchVisible reports whether the search affordance is shown.
func (m *Menu) SearchVisible() bool { return m.search }

// SearchFocused reports whether the deferred focus has reached the search field.
func (m *Menu) SearchFocused() bool { return m.searchFocused }

// Snapshot derives the current focus snapshot.
func (m *Menu) Snapshot() focus.Snapshot {
	return focus.Take(m.state, m.tree, m.focus)
}

// Toggle hides an open menu and shows a closed one.
func (m *Menu) Toggle() {
	if m.state.Open {
		m.Hide()
		return
	}
	m.Show()
}

// Show opens the menu surface.
func (m *Menu) Show() {
	if m.destroyed {
		return
	}
	next, r := nav.Open(m.state)
	if m.commit("open", "", next, r) {
		m.sync()
	}
}

// Hide closes the menu, collapses every submenu and cancels pending
// deferred focus.
func (m *Menu) Hide() {
	if m.destroyed {
		return
	}
	if m.deferred.Cancel() {
		events.Task.Cancel(m.id)
	}
	next, r := nav.Close(m.state)
	changed := m.commit("close", "", next, r)
	if m.search || m.focus != "" {
		changed = true
	}
	m.search = false
	m.searchFocused = false
	m.moveFocus("")
	if changed {
		m.sync()
	}
}

// ToggleSearch shows the search affordance (opening the menu when needed)
// and schedules focus to move into it, or hides it when already shown.
func (m *Menu) ToggleSearch() tea.Cmd {
	if m.destroyed {
		return nil
	}
	if m.search {
		if m.deferred.Cancel() {
			events.Task.Cancel(m.id)
		}
		m.search = false
		m.searchFocused = false
		m.sync()
		return nil
	}
	if !m.state.Open {
		next, r := nav.Open(m.state)
		m.commit("open", "", next, r)
	}
	m.search = true
	m.searchFocused = false
	m.sync()
	events.Task.Schedule(m.id, m.opts.SearchDelay.Milliseconds())
	return m.deferred.Schedule(m.opts.SearchDelay)
}

// Dispatch routes ev and applies the resulting request.
func (m *Menu) Dispatch(ev router.Event) tea.Cmd {
	if m.destroyed {
		return nil
	}
	req := m.router.Route(ev, router.Context{
		Open:  m.state.Open,
		Focus: m.focus,
		Level: m.state.DeepestLevel(),
		Tree:  m.tree,
	})
	input := ev.Key
	if ev.Kind == router.EventActivate {
		input = ev.Target
	}
	events.Input.Route(m.id, ev.Kind.String(), input, req.Op.String())
	switch req.Op {
	case router.OpToggle:
		m.Toggle()
	case router.OpClose:
		m.Hide()
	case router.OpEnter:
		m.enter(req.Target)
	case router.OpBack:
		m.back()
	case router.OpFocusNext:
		m.step(focus.Next)
	case router.OpFocusPrevious:
		m.step(focus.Previous)
	case router.OpFollow:
		if node, ok := m.tree.Find(req.Target); ok {
			m.moveFocus(node.ID)
			m.sync()
			return m.surface.Follow(node)
		}
	}
	return nil
}

// Reveal navigates to the level that contains id and focuses it. The
// transitions are applied one by one through the engine; if any of them is
// rejected the previous state is kept.
func (m *Menu) Reveal(id string) bool {
	if m.destroyed {
		return false
	}
	node, ok := m.tree.Find(id)
	if !ok || !node.Interactive() {
		return false
	}
	s, _ := nav.Open(m.state)
	for len(s.ActivePath) > 0 {
		s, _ = nav.Back(s)
	}
	for _, branch := range m.tree.Ancestors(id) {
		next, r := nav.Enter(s, m.tree, branch)
		if r == nav.Rejected {
			return false
		}
		s = next
	}
	m.commit("reveal", id, s, nav.Applied)
	m.searchFocused = false
	m.moveFocus(id)
	m.sync()
	return true
}

func (m *Menu) handleEvent(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(router.Event)
	if !ok {
		return nil
	}
	return m.Dispatch(ev)
}

func (m *Menu) handleDeferred(msg tea.Msg) tea.Cmd {
	fired, ok := msg.(task.FiredMsg)
	if !ok || m.destroyed {
		return nil
	}
	if !m.deferred.Accept(fired) {
		return nil
	}
	events.Task.Fire(m.id)
	if !m.state.Open || !m.search {
		return nil
	}
	m.searchFocused = true
	m.moveFocus("")
	m.sync()
	return nil
}

func (m *Menu) enter(id string) {
	next, r := nav.Enter(m.state, m.tree, id)
	if !m.commit("enter", id, next, r) {
		return
	}
	m.searchFocused = false
	m.moveFocus(focus.AfterEnter(m.state, m.tree))
	m.sync()
}

func (m *Menu) back() {
	prev := m.state
	next, r := nav.Back(m.state)
	if !m.commit("back", "", next, r) {
		return
	}
	m.searchFocused = false
	m.moveFocus(focus.AfterBack(prev, m.tree))
	m.sync()
}

func (m *Menu) step(dir focus.Direction) {
	to := focus.Step(m.state, m.tree, m.focus, dir)
	if to == "" || to == m.focus {
		return
	}
	m.searchFocused = false
	m.moveFocus(to)
	m.sync()
}

func (m *Menu) commit(op, target string, next nav.State, r nav.Result) bool {
	events.Nav.Transition(m.id, op, target, r.String(), next.ActivePath)
	if r != nav.Applied {
		return false
	}
	m.state = next
	return true
}

func (m *Menu) moveFocus(to string) {
	if to == m.focus {
		return
	}
	events.Focus.Move(m.id, m.focus, to)
	m.focus = to
}

// sync recomputes the tab order and focus from scratch and renders.
func (m *Menu) sync() {
	snap := focus.Take(m.state, m.tree, m.focus)
	if snap.Focus != m.focus {
		m.moveFocus(snap.Focus)
	}
	events.Focus.Sync(m.id, m.state.DeepestLevel(), len(snap.Focusable))
	m.surface.Render(m.buildView(snap))
}
