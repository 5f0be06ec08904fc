// Package router classifies raw input events into navigation requests. It
// holds no state: every decision is a function of the event and the context
// supplied by the caller.
package router

import (
	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/charmbracelet/bubbles/key"
)

// Targets of the controls that live outside the menu tree.
const (
	ToggleTarget = "@toggle"
	CloseTarget  = "@close"
)

// EventKind distinguishes pointer/keyboard activation from navigation keys.
type EventKind int

const (
	EventActivate EventKind = iota
	EventKey
)

func (k EventKind) String() string {
	switch k {
	case EventActivate:
		return "activate"
	case EventKey:
		return "key"
	default:
		return "unknown"
	}
}

// Event is one raw input: an activation of an element, or a key press.
type Event struct {
	Kind   EventKind
	Target string
	Key    string
}

// Activate builds an activation event for target.
func Activate(target string) Event {
	return Event{Kind: EventActivate, Target: target}
}

// Key builds a key event.
func Key(name string) Event {
	return Event{Kind: EventKey, Key: name}
}

// Op is the operation requested from the transition engine or host.
type Op int

const (
	OpNone Op = iota
	OpToggle
	OpClose
	OpEnter
	OpBack
	OpFocusNext
	OpFocusPrevious
	// OpFollow asks the host to follow a leaf's link.
	OpFollow
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return "none"
	case OpToggle:
		return "toggle"
	case OpClose:
		return "close"
	case OpEnter:
		return "enter"
	case OpBack:
		return "back"
	case OpFocusNext:
		return "focus-next"
	case OpFocusPrevious:
		return "focus-previous"
	case OpFollow:
		return "follow"
	default:
		return "unknown"
	}
}

// Request is the routed form of an event.
type Request struct {
	Op     Op
	Target string
	// PreventDefault suppresses the element's default action (link navigation).
	PreventDefault bool
}

// Context carries what the router needs to know about the menu.
type Context struct {
	Open  bool
	Focus string
	// Level is the deepest active level, menu.RootLevel when no submenu is open.
	Level string
	Tree  *menu.Tree
}

// Router maps events to requests using a key map.
type Router struct {
	keys KeyMap
}

// New creates a router with the given bindings.
func New(keys KeyMap) *Router {
	return &Router{keys: keys}
}

// Keys returns the router's bindings.
func (r *Router) Keys() KeyMap {
	return r.keys
}

// Route classifies ev. Unknown or out-of-state input yields OpNone.
func (r *Router) Route(ev Event, ctx Context) Request {
	switch ev.Kind {
	case EventActivate:
		return r.activate(ev.Target, ctx)
	case EventKey:
		return r.key(ev.Key, ctx)
	}
	return Request{}
}

func (r *Router) activate(target string, ctx Context) Request {
	if target == ToggleTarget {
		return Request{Op: OpToggle, PreventDefault: true}
	}
	if !ctx.Open {
		return Request{}
	}
	if target == CloseTarget {
		return Request{Op: OpClose, PreventDefault: true}
	}
	node, ok := reachable(target, ctx)
	if !ok {
		return Request{}
	}
	switch {
	case node.IsBackAffordance():
		return Request{Op: OpBack, Target: node.ID, PreventDefault: true}
	case node.IsBranch() && ctx.Tree.HasLevel(node.ID):
		return Request{Op: OpEnter, Target: node.ID, PreventDefault: true}
	default:
		return Request{Op: OpFollow, Target: node.ID}
	}
}

func (r *Router) key(name string, ctx Context) Request {
	if name == "" {
		return Request{}
	}
	k := keyName(name)
	if key.Matches(k, r.keys.Activate) {
		target := ctx.Focus
		if target == "" {
			target = ToggleTarget
		}
		return r.activate(target, ctx)
	}
	if !ctx.Open {
		return Request{}
	}
	switch {
	case key.Matches(k, r.keys.Close):
		return Request{Op: OpClose}
	case key.Matches(k, r.keys.Down):
		return Request{Op: OpFocusNext}
	case key.Matches(k, r.keys.Up):
		return Request{Op: OpFocusPrevious}
	case key.Matches(k, r.keys.Back):
		return Request{Op: OpBack}
	case key.Matches(k, r.keys.Enter):
		if node, ok := reachable(ctx.Focus, ctx); ok && node.IsBranch() {
			return Request{Op: OpEnter, Target: node.ID}
		}
	}
	return Request{}
}

// reachable resolves target against the visible level: an element of the
// deepest active level, or a branch beside the last active one.
func reachable(target string, ctx Context) (*menu.Node, bool) {
	if node, ok := ctx.Tree.Child(ctx.Level, target); ok {
		return node, true
	}
	if ctx.Level == menu.RootLevel {
		return nil, false
	}
	node, ok := ctx.Tree.Find(target)
	if !ok || !node.IsBranch() {
		return nil, false
	}
	active, ok := ctx.Tree.Find(ctx.Level)
	if !ok || node.Parent != active.Parent {
		return nil, false
	}
	return node, true
}
