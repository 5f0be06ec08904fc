package focus

import (
	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/atomicstack/drilldown-menu/internal/nav"
)

// Tab order values applied to interactive elements.
const (
	Reachable = 0
	Excluded  = -1
)

// Direction selects the neighbour for Step.
type Direction int

const (
	Next Direction = iota
	Previous
)

// Snapshot is the focus view derived from a navigation state. It is never
// stored; recompute it after every transition.
type Snapshot struct {
	TabOrder  map[string]int
	Focusable []string
	Focus     string
}

// Focusable returns the interactive elements of the deepest active level in
// tab order. A closed menu has none.
func Focusable(s nav.State, tree *menu.Tree) []string {
	if !s.Open || tree == nil {
		return nil
	}
	level := tree.Level(s.DeepestLevel())
	ids := make([]string, 0, len(level))
	for _, id := range level {
		if node, ok := tree.Find(id); ok && node.Interactive() {
			ids = append(ids, id)
		}
	}
	return ids
}

// TabOrder assigns every interactive element of the tree its tab order. The
// map is rebuilt from scratch: everything is excluded first, then the active
// level is included.
func TabOrder(s nav.State, tree *menu.Tree) map[string]int {
	all := tree.Interactive()
	order := make(map[string]int, len(all))
	for _, id := range all {
		order[id] = Excluded
	}
	for _, id := range Focusable(s, tree) {
		order[id] = Reachable
	}
	return order
}

// AfterEnter returns the element that receives focus once a submenu is shown:
// the first interactive element of the new level.
func AfterEnter(s nav.State, tree *menu.Tree) string {
	ids := Focusable(s, tree)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// AfterBack returns the branch the user originally drilled in through, which
// sits in the level revealed by leaving prev's deepest submenu.
func AfterBack(prev nav.State, tree *menu.Tree) string {
	if len(prev.ActivePath) == 0 {
		return ""
	}
	id := prev.ActivePath[len(prev.ActivePath)-1]
	if _, ok := tree.Find(id); !ok {
		return ""
	}
	return id
}

// Step moves focus within the active level and clamps at both ends. When
// current is not part of the level, focus lands on the first element.
func Step(s nav.State, tree *menu.Tree, current string, dir Direction) string {
	ids := Focusable(s, tree)
	if len(ids) == 0 {
		return ""
	}
	idx := indexOf(ids, current)
	if idx < 0 {
		return ids[0]
	}
	switch dir {
	case Next:
		if idx < len(ids)-1 {
			idx++
		}
	case Previous:
		if idx > 0 {
			idx--
		}
	}
	return ids[idx]
}

// Take computes the full snapshot for s with the given focus. Focus outside
// the focusable set is dropped.
func Take(s nav.State, tree *menu.Tree, current string) Snapshot {
	ids := Focusable(s, tree)
	if indexOf(ids, current) < 0 {
		current = ""
	}
	return Snapshot{
		TabOrder:  TabOrder(s, tree),
		Focusable: ids,
		Focus:     current,
	}
}

func indexOf(ids []string, id string) int {
	if id == "" {
		return -1
	}
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
