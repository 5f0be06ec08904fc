package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/drilldown-menu/internal/backend"
	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	"github.com/atomicstack/drilldown-menu/internal/markup"
	"github.com/atomicstack/drilldown-menu/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
)

func newTestModel(t *testing.T, cfg Config) *Model {
	t.Helper()
	if cfg.Document == nil {
		cfg.Document = testutil.LoadDocument(t, "menu.yaml")
	}
	m, err := NewModel(cfg)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func plainView(h *Harness) string {
	return ansi.Strip(h.View())
}

func TestNewModelRejectsInvalidConfiguration(t *testing.T) {
	_, err := NewModel(Config{
		Document: testutil.LoadDocument(t, "menu.yaml"),
		Menu:     drilldown.Options{Position: "top"},
	})
	if err == nil || !strings.Contains(err.Error(), "left, right") {
		t.Fatalf("expected position error listing accepted values, got %v", err)
	}
}

func TestEnterTogglesClosedMenu(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{}))
	if strings.Contains(plainView(h), "Home") {
		t.Fatalf("closed menu must not draw entries:\n%s", plainView(h))
	}
	h.Key("enter")
	if !h.Model().Menu().State().Open {
		t.Fatalf("expected enter on the toggle to open the menu")
	}
	if view := plainView(h); !strings.Contains(view, "Home") || !strings.Contains(view, "× close") {
		t.Fatalf("expected root level and close control, got:\n%s", view)
	}
	h.Key("esc")
	if h.Model().Menu().State().Open {
		t.Fatalf("expected esc to close the menu")
	}
	if h.Quit() {
		t.Fatalf("closing the menu must not quit")
	}
	h.Key("esc")
	if !h.Quit() {
		t.Fatalf("expected esc on a closed menu to quit")
	}
}

func TestKeyboardDrillDown(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{Menu: drilldown.Options{Active: true}}))
	h.Key("down")
	h.Key("down")
	if got := h.Model().Menu().Focus(); got != "products" {
		t.Fatalf("expected focus on products, got %q", got)
	}
	h.Key("right")
	if diff := cmp.Diff([]string{"products"}, h.Model().Menu().State().ActivePath); diff != "" {
		t.Fatalf("path (-want +got):\n%s", diff)
	}
	view := plainView(h)
	for _, want := range []string{"Menu → Products", "‹ Back", "Shoes ›", "Hats", "‹ Products"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Contact") {
		t.Fatalf("root entries must be hidden inside a submenu:\n%s", view)
	}
	h.Key("left")
	if got := h.Model().Menu().Focus(); got != "products" {
		t.Fatalf("expected focus restored to products, got %q", got)
	}
}

func TestActivateLeafSelectsAndQuits(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{Menu: drilldown.Options{Active: true}}))
	h.Key("down")
	h.Key("enter")
	node, ok := h.Model().Selected()
	if !ok || node.ID != "home" || node.Href != "/" {
		t.Fatalf("expected home selected, got %#v (%v)", node, ok)
	}
	if !h.Quit() {
		t.Fatalf("expected program to quit after following a leaf")
	}
}

func TestSpaceActivatesFocusedBranch(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{Menu: drilldown.Options{Active: true}}))
	h.Key("down")
	h.Key("down")
	h.Key("down")
	h.Key(" ")
	if got := h.Model().Menu().State().DeepestLevel(); got != "about" {
		t.Fatalf("expected about level, got %q", got)
	}
}

func TestMouseClicksRouteActivations(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{}))
	h.Click(0, 0)
	if !h.Model().Menu().State().Open {
		t.Fatalf("expected click on toggle to open")
	}
	// rows: toggle, close, home, products, about, contact
	h.Click(0, 3)
	if got := h.Model().Menu().State().DeepestLevel(); got != "products" {
		t.Fatalf("expected products level, got %q", got)
	}
	// rows: toggle, close, header, back, shoes, hats, back region
	h.Click(0, 6)
	if got := len(h.Model().Menu().State().ActivePath); got != 0 {
		t.Fatalf("expected back region click to return to root, depth %d", got)
	}
	h.Click(0, 1)
	if h.Model().Menu().State().Open {
		t.Fatalf("expected close control to hide the menu")
	}
	h.Click(0, 40)
}

func TestMouseClicksOutsidePanelIgnored(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{Width: 120}))
	h.Click(0, 0)
	if h.Model().Menu().State().Open {
		t.Fatalf("click left of the right-anchored panel must not toggle")
	}
	h.Click(119, 0)
	if !h.Model().Menu().State().Open {
		t.Fatalf("expected click on toggle to open")
	}
	// rows: toggle, close, home, products, about, contact
	h.Click(1, 3)
	if got := h.Model().Menu().State().DeepestLevel(); got != "" {
		t.Fatalf("click in blank space must not enter a submenu, got %q", got)
	}
	h.Click(100, 3)
	if got := h.Model().Menu().State().DeepestLevel(); got != "products" {
		t.Fatalf("expected products level, got %q", got)
	}
}

func TestMouseIgnoresNonPress(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{}))
	h.Send(tea.MouseMsg{Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if h.Model().Menu().State().Open {
		t.Fatalf("release must not activate")
	}
}

func TestSearchRevealsNestedEntry(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{Search: true}))
	h.Key("/")
	m := h.Model()
	if !m.view.SearchVisible || !m.view.SearchFocused || !m.search.Focused() {
		t.Fatalf("expected focused search field after the delay")
	}
	h.Key("run")
	if len(m.results) != 1 || m.results[0].id != "running" {
		t.Fatalf("unexpected results %#v", m.results)
	}
	if view := plainView(h); !strings.Contains(view, "Products › Shoes › Running") {
		t.Fatalf("expected result path in view:\n%s", view)
	}
	h.Key("enter")
	if diff := cmp.Diff([]string{"products", "shoes"}, m.Menu().State().ActivePath); diff != "" {
		t.Fatalf("path (-want +got):\n%s", diff)
	}
	if m.Menu().Focus() != "running" {
		t.Fatalf("expected focus on running, got %q", m.Menu().Focus())
	}
	if m.view.SearchVisible || m.search.Value() != "" {
		t.Fatalf("expected search hidden and reset after reveal")
	}
}

func TestSearchEscapeHidesField(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{Search: true}))
	h.Key("/")
	h.Key("zz")
	if view := plainView(h); !strings.Contains(view, `No matches for "zz"`) {
		t.Fatalf("expected empty-result notice:\n%s", view)
	}
	h.Key("esc")
	m := h.Model()
	if m.view.SearchVisible || m.search.Focused() || m.search.Value() != "" {
		t.Fatalf("expected search hidden and cleared")
	}
	if !m.Menu().State().Open {
		t.Fatalf("hiding search must leave the menu open")
	}
}

func TestSearchDisabledIgnoresSlash(t *testing.T) {
	h := NewHarness(newTestModel(t, Config{}))
	h.Key("/")
	if h.Model().view.SearchVisible || h.Model().Menu().State().Open {
		t.Fatalf("search must stay off unless enabled")
	}
}

func TestAttachReplacesAndStaleDetachIsNoop(t *testing.T) {
	m := newTestModel(t, Config{})
	calls := 0
	detach, err := m.Attach(drilldown.ListenKey, func(tea.Msg) tea.Cmd {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	_, err = m.Attach(drilldown.ListenKey, func(tea.Msg) tea.Cmd { return nil })
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	detach()
	if _, ok := m.listeners[drilldown.ListenKey]; !ok {
		t.Fatalf("stale detach removed the newer handler")
	}
	if calls != 0 {
		t.Fatalf("replaced handler must not run")
	}
	if _, err := m.Attach(drilldown.ListenKey, nil); err == nil {
		t.Fatalf("expected error for nil handler")
	}
}

func TestBackendReloadReplacesInstance(t *testing.T) {
	m := newTestModel(t, Config{Menu: drilldown.Options{Active: true}})
	h := NewHarness(m)
	before := m.Menu().ID()
	doc, err := markup.Parse([]byte("menus:\n  - class: fws-menu\n    items:\n      - label: Docs\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	h.Send(backendEventMsg{event: backend.Event{Document: doc}})
	if m.Menu().ID() == before {
		t.Fatalf("expected a new instance after reload")
	}
	if !strings.Contains(plainView(h), "Docs") {
		t.Fatalf("expected reloaded entries:\n%s", plainView(h))
	}
	if len(m.listeners) != 3 {
		t.Fatalf("expected exactly the new instance's listeners, got %d", len(m.listeners))
	}
}

func TestBackendReloadKeepsPreviousOnError(t *testing.T) {
	m := newTestModel(t, Config{Menu: drilldown.Options{Active: true}})
	h := NewHarness(m)
	broken, err := markup.Parse([]byte("menus:\n  - id: other\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	h.Send(backendEventMsg{event: backend.Event{Document: broken}})
	view := plainView(h)
	if !strings.Contains(view, "Error:") || !strings.Contains(view, "Home") {
		t.Fatalf("expected error and previous menu:\n%s", view)
	}
	if m.Menu().Destroyed() {
		t.Fatalf("expected a live instance after failed reload")
	}
}

func TestBackendDoneStopsWaiting(t *testing.T) {
	m := newTestModel(t, Config{})
	m.Update(backendDoneMsg{})
	if m.Init() != nil {
		t.Fatalf("expected no backend command once the watcher is done")
	}
}
