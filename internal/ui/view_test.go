package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestPositionAnchorsPanel(t *testing.T) {
	cases := map[string]bool{"left": false, "right": true}
	for position, indented := range cases {
		m := newTestModel(t, Config{Width: 80, Menu: drilldown.Options{Position: position, Active: true}})
		first := strings.Split(ansi.Strip(m.View()), "\n")[0]
		if got := strings.HasPrefix(first, " "); got != indented {
			t.Fatalf("%s: unexpected toggle row %q", position, first)
		}
		if !strings.Contains(first, "☰ Menu") {
			t.Fatalf("%s: missing toggle label in %q", position, first)
		}
	}
}

func TestFooterListsBindings(t *testing.T) {
	m := newTestModel(t, Config{ShowFooter: true, Search: true})
	view := ansi.Strip(m.View())
	for _, want := range []string{"close", "back", "search", "quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in footer:\n%s", want, view)
		}
	}
}

func TestFocusedRowIsHighlighted(t *testing.T) {
	m := newTestModel(t, Config{Menu: drilldown.Options{Active: true}})
	h := NewHarness(m)
	h.Key("down")
	var focused row
	for _, r := range m.layout() {
		if r.target == "home" {
			focused = r
		}
	}
	if focused.line.style != styles.FocusedItem || focused.line.prefixStyle != styles.FocusedIndicator {
		t.Fatalf("expected focused styles on home row")
	}
}

func TestViewRespectsHeight(t *testing.T) {
	m := newTestModel(t, Config{Height: 4, Menu: drilldown.Options{Active: true}})
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	if strings.TrimSpace(lines[3]) != "…" {
		t.Fatalf("expected ellipsis on last row, got %q", lines[3])
	}
	NewHarness(m).Click(0, 3)
	if m.Menu().State().DeepestLevel() != "" {
		t.Fatalf("click on the ellipsis row must not activate anything")
	}
}

func TestWindowSizeUpdatesUnlessFixed(t *testing.T) {
	m := newTestModel(t, Config{Width: 30})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	if m.width != 30 || m.height != 20 {
		t.Fatalf("unexpected size %dx%d", m.width, m.height)
	}
	if m.panelWidth() != 30 {
		t.Fatalf("expected panel width clamped to terminal, got %d", m.panelWidth())
	}
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"Products", 0, "Products"},
		{"Products", 8, "Products"},
		{"Products", 5, "Prod…"},
		{"Products", 1, "P"},
	}
	for _, tc := range cases {
		if got := truncateText(tc.in, tc.width); got != tc.want {
			t.Fatalf("truncateText(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
