package drilldown

import (
	"github.com/atomicstack/drilldown-menu/internal/focus"
	"github.com/atomicstack/drilldown-menu/internal/menu"
)

// Class tokens applied to levels and entries.
const (
	ClassHasChildren = "has-children"
	ClassMenuActive  = "menu-active"
	ClassMenuHidden  = "menu-hidden"
	ClassMoveOut     = "move-out"
	ClassMenuBack    = "menu-back"
	ClassBackBlock   = "back-block"
	ClassClose       = "fws-menu-close"
)

// View is everything the visual collaborator needs to draw the menu after a
// transition. It is rebuilt in full every time.
type View struct {
	Instance   string
	Open       bool
	Position   string
	ActivePath []string
	// Level is the branch whose submenu is visible; menu.RootLevel for the root.
	Level     string
	Focusable []string
	TabOrder  map[string]int
	Focus     string

	SearchVisible bool
	SearchFocused bool

	// Container holds the class tokens of the outer menu element.
	Container []string
	// Toggle holds the class tokens of the toggle control.
	Toggle []string
	// Levels maps a level key (menu.RootLevel or a branch ID) to its tokens.
	Levels map[string][]string
	// Entries maps an element ID to its tokens.
	Entries map[string][]string
}

// Reachable reports whether id is in the tab sequence.
func (v View) Reachable(id string) bool {
	return v.TabOrder[id] == focus.Reachable && contains(v.Focusable, id)
}

func (m *Menu) buildView(snap focus.Snapshot) View {
	v := View{
		Instance:      m.id,
		Open:          m.state.Open,
		Position:      m.opts.Position,
		ActivePath:    m.state.Clone().ActivePath,
		Level:         m.state.DeepestLevel(),
		Focusable:     snap.Focusable,
		TabOrder:      snap.TabOrder,
		Focus:         snap.Focus,
		SearchVisible: m.search,
		SearchFocused: m.searchFocused,
		Toggle:        []string{m.opts.ToggleClass},
		Levels:        make(map[string][]string),
		Entries:       make(map[string][]string),
	}
	v.Container = []string{m.opts.NavClass, "menu-" + m.opts.Position}
	if m.state.Open {
		v.Container = append(v.Container, m.opts.ActiveClass)
	}

	v.Levels[menu.RootLevel] = m.levelClasses(menu.RootLevel, nil)
	m.tree.Walk(func(n *menu.Node) bool {
		switch n.Kind {
		case menu.KindBranch:
			v.Entries[n.ID] = []string{ClassHasChildren}
			v.Levels[n.ID] = m.levelClasses(n.ID, []string{m.opts.SubMenuClass})
		case menu.KindBack:
			v.Entries[n.ID] = []string{ClassMenuBack}
		case menu.KindBackRegion:
			v.Entries[n.ID] = []string{ClassMenuBack, ClassBackBlock}
		}
		return true
	})
	return v
}

// levelClasses derives the state class tokens of a level: the deepest
// active level is menu-active, levels it was drilled through are move-out and
// every other submenu is menu-hidden.
func (m *Menu) levelClasses(level string, base []string) []string {
	classes := append([]string(nil), base...)
	deepest := m.state.DeepestLevel()
	switch {
	case !m.state.Open:
		if level != menu.RootLevel {
			classes = append(classes, ClassMenuHidden)
		}
	case level == deepest:
		classes = append(classes, ClassMenuActive)
	case level == menu.RootLevel || m.state.IsActive(level):
		classes = append(classes, ClassMoveOut)
	default:
		classes = append(classes, ClassMenuHidden)
	}
	return classes
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
