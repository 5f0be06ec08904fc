package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atomicstack/drilldown-menu/internal/backend"
	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	"github.com/atomicstack/drilldown-menu/internal/format/table"
	"github.com/atomicstack/drilldown-menu/internal/logging/events"
	"github.com/atomicstack/drilldown-menu/internal/markup"
	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/atomicstack/drilldown-menu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const reloadInterval = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	MenuFile   string
	Menu       drilldown.Options
	Width      int
	Height     int
	ShowFooter bool
	Search     bool
	Watch      bool
	Mouse      bool
}

// Result is what the user chose before the program exited.
type Result struct {
	Selected bool
	Node     menu.Node
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) (Result, error) {
	doc, err := markup.Load(cfg.MenuFile)
	if err != nil {
		return Result{}, err
	}
	var watcher *backend.Watcher
	if cfg.Watch {
		watcher, err = backend.NewWatcher(cfg.MenuFile, reloadInterval)
		if err != nil {
			return Result{}, fmt.Errorf("watch menu file: %w", err)
		}
		defer watcher.Stop()
	}
	model, err := ui.NewModel(ui.Config{
		Document:   doc,
		Menu:       cfg.Menu,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Search:     cfg.Search,
		Watcher:    watcher,
	})
	if err != nil {
		return Result{}, err
	}
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return Result{}, err
	}
	node, ok := model.Selected()
	events.App.Exit(ok)
	return Result{Selected: ok, Node: node}, nil
}

// Dump writes the resolved menu tree, synthetic entries included, as an
// aligned listing.
func Dump(w io.Writer, cfg Config) error {
	doc, err := markup.Load(cfg.MenuFile)
	if err != nil {
		return err
	}
	selector := cfg.Menu.Menu
	if selector == "" {
		selector = drilldown.Defaults().Menu
	}
	container, err := doc.Resolve(selector)
	if err != nil {
		return &menu.ConfigurationError{Field: "menu", Value: selector, Reason: err.Error()}
	}
	tree, err := menu.Build(container)
	if err != nil {
		return err
	}
	rows := [][]string{{"LABEL", "KIND", "ID", "HREF"}}
	tree.Walk(func(n *menu.Node) bool {
		label := strings.Repeat("  ", n.Depth) + n.Label
		rows = append(rows, []string{label, n.Kind.String(), n.ID, n.Href})
		return true
	})
	for _, line := range table.Format(rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
