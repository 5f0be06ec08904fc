// Package nav holds the navigation state of a drill-down menu and the pure
// transition functions that move it between levels.
//
// Every transition takes the current State and the menu tree and returns a
// new State plus a Result. Inputs are never mutated, so callers can keep the
// previous State around (the focus synchronizer needs it after a back
// transition). Transitions that do not correspond to a legal move are
// Rejected and return the input State unchanged; they are never errors.
package nav

import "github.com/atomicstack/drilldown-menu/internal/menu"

// Result describes the outcome of a transition request.
type Result int

const (
	// Applied means the state changed.
	Applied Result = iota
	// Unchanged means the request was legal but already satisfied.
	Unchanged
	// Rejected means the request did not correspond to a legal transition.
	Rejected
)

func (r Result) String() string {
	switch r {
	case Applied:
		return "applied"
	case Unchanged:
		return "unchanged"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Changed reports whether the transition produced a new state.
func (r Result) Changed() bool {
	return r == Applied
}

// State is the run-time navigation state of one menu instance.
type State struct {
	Open       bool
	ActivePath []string
}

// Initial returns the state a menu starts in.
func Initial(active bool) State {
	return State{Open: active}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	dup := State{Open: s.Open}
	if len(s.ActivePath) > 0 {
		dup.ActivePath = make([]string, len(s.ActivePath))
		copy(dup.ActivePath, s.ActivePath)
	}
	return dup
}

// Depth returns the number of submenu levels drilled into.
func (s State) Depth() int {
	return len(s.ActivePath)
}

// DeepestLevel returns the branch whose submenu is currently visible, or
// menu.RootLevel when no submenu is active.
func (s State) DeepestLevel() string {
	if len(s.ActivePath) == 0 {
		return menu.RootLevel
	}
	return s.ActivePath[len(s.ActivePath)-1]
}

// IsActive reports whether id is a branch on the active path.
func (s State) IsActive(id string) bool {
	for _, active := range s.ActivePath {
		if active == id {
			return true
		}
	}
	return false
}

// Open shows the menu surface. The active path is left as is.
func Open(s State) (State, Result) {
	if s.Open {
		return s, Unchanged
	}
	next := s.Clone()
	next.Open = true
	return next, Applied
}

// Close hides the menu surface and collapses the active path.
func Close(s State) (State, Result) {
	if !s.Open && len(s.ActivePath) == 0 {
		return s, Unchanged
	}
	return State{}, Applied
}

// Toggle closes an open menu and opens a closed one.
func Toggle(s State) (State, Result) {
	if s.Open {
		return Close(s)
	}
	return Open(s)
}

// Enter drills into branchID. The branch must be a child of the deepest active
// level, or a sibling of the last active branch, in which case that branch's
// level is left before the new one is appended.
func Enter(s State, tree *menu.Tree, branchID string) (State, Result) {
	if !s.Open || tree == nil {
		return s, Rejected
	}
	node, ok := tree.Find(branchID)
	if !ok || !node.IsBranch() || !tree.HasLevel(branchID) {
		return s, Rejected
	}
	if n := len(s.ActivePath); n > 0 && s.ActivePath[n-1] == branchID {
		return s, Unchanged
	}
	depth := node.Depth
	if depth != len(s.ActivePath) && depth != len(s.ActivePath)-1 {
		return s, Rejected
	}
	if depth > 0 && s.ActivePath[depth-1] != node.Parent {
		return s, Rejected
	}
	if depth == 0 && node.Parent != menu.RootLevel {
		return s, Rejected
	}
	next := State{Open: true, ActivePath: make([]string, 0, depth+1)}
	next.ActivePath = append(next.ActivePath, s.ActivePath[:depth]...)
	next.ActivePath = append(next.ActivePath, branchID)
	return next, Applied
}

// Back returns to the parent level. It never closes the menu.
func Back(s State) (State, Result) {
	if !s.Open || len(s.ActivePath) == 0 {
		return s, Rejected
	}
	next := s.Clone()
	next.ActivePath = next.ActivePath[:len(next.ActivePath)-1]
	if len(next.ActivePath) == 0 {
		next.ActivePath = nil
	}
	return next, Applied
}
