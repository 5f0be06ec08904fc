package drilldown

import (
	"time"

	"github.com/atomicstack/drilldown-menu/internal/markup"
)

// Options configures one menu instance. Zero-valued string fields fall back
// to the defaults.
type Options struct {
	// Active opens the menu immediately.
	Active bool
	// Menu selects the container in the document (".class", "#id" or id).
	Menu string
	// Container, when set, is used instead of resolving Menu.
	Container *markup.Container
	// Position anchors the menu to the left or right edge.
	Position string

	NavClass     string
	ToggleClass  string
	SubMenuClass string
	ActiveClass  string

	// SearchDelay postpones moving focus into the search field after the
	// search affordance is shown.
	SearchDelay time.Duration
}

// Defaults returns the default option set.
func Defaults() Options {
	return Options{
		Menu:         ".fws-menu",
		Position:     "right",
		NavClass:     "fws-menu",
		ToggleClass:  "menu-toggle",
		SubMenuClass: "sub-menu",
		ActiveClass:  "fws-menu-active",
		SearchDelay:  300 * time.Millisecond,
	}
}

func (o Options) withDefaults() Options {
	def := Defaults()
	if o.Menu == "" {
		o.Menu = def.Menu
	}
	if o.Position == "" {
		o.Position = def.Position
	}
	if o.NavClass == "" {
		o.NavClass = def.NavClass
	}
	if o.ToggleClass == "" {
		o.ToggleClass = def.ToggleClass
	}
	if o.SubMenuClass == "" {
		o.SubMenuClass = def.SubMenuClass
	}
	if o.ActiveClass == "" {
		o.ActiveClass = def.ActiveClass
	}
	if o.SearchDelay < 0 {
		o.SearchDelay = 0
	}
	return o
}
