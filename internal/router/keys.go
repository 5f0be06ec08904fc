package router

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings understood by the router.
type KeyMap struct {
	Close    key.Binding
	Up       key.Binding
	Down     key.Binding
	Back     key.Binding
	Enter    key.Binding
	Activate key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "open submenu"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Enter, k.Back, k.Activate, k.Close}
}

// FullHelp groups the bindings for an expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up},
		{k.Enter, k.Back},
		{k.Activate, k.Close},
	}
}

// keyName adapts a key name to the fmt.Stringer key.Matches expects.
type keyName string

func (k keyName) String() string { return string(k) }
