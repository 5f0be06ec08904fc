package router

import (
	"testing"

	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/atomicstack/drilldown-menu/internal/testutil"
)

func sampleTree(t *testing.T) *menu.Tree {
	t.Helper()
	tree, err := menu.Build(testutil.SampleContainer(t))
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	return tree
}

func TestRouteActivations(t *testing.T) {
	tree := sampleTree(t)
	r := New(DefaultKeyMap())
	open := Context{Open: true, Tree: tree}
	cases := []struct {
		name    string
		target  string
		want    Request
		context Context
	}{
		{"toggle while closed", ToggleTarget, Request{Op: OpToggle, PreventDefault: true}, Context{Tree: tree}},
		{"toggle while open", ToggleTarget, Request{Op: OpToggle, PreventDefault: true}, open},
		{"close control", CloseTarget, Request{Op: OpClose, PreventDefault: true}, open},
		{"branch", "products", Request{Op: OpEnter, Target: "products", PreventDefault: true}, open},
		{"back leaf", "products:back", Request{Op: OpBack, Target: "products:back", PreventDefault: true}, Context{Open: true, Level: "products", Tree: tree}},
		{"back region", "shoes:back-region", Request{Op: OpBack, Target: "shoes:back-region", PreventDefault: true}, Context{Open: true, Level: "shoes", Tree: tree}},
		{"leaf", "home", Request{Op: OpFollow, Target: "home"}, open},
		{"unknown", "nope", Request{}, open},
		{"branch while closed", "products", Request{}, Context{Tree: tree}},
	}
	for _, tc := range cases {
		got := r.Route(Activate(tc.target), tc.context)
		if got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.name, tc.want, got)
		}
	}
}

func TestRouteKeys(t *testing.T) {
	tree := sampleTree(t)
	r := New(DefaultKeyMap())
	cases := []struct {
		name string
		key  string
		ctx  Context
		want Request
	}{
		{"escape closes", "esc", Context{Open: true, Tree: tree}, Request{Op: OpClose}},
		{"down steps next", "down", Context{Open: true, Tree: tree}, Request{Op: OpFocusNext}},
		{"up steps previous", "up", Context{Open: true, Tree: tree}, Request{Op: OpFocusPrevious}},
		{"left goes back", "left", Context{Open: true, Tree: tree}, Request{Op: OpBack}},
		{"right enters focused branch", "right", Context{Open: true, Focus: "about", Tree: tree}, Request{Op: OpEnter, Target: "about"}},
		{"right on leaf does nothing", "right", Context{Open: true, Focus: "home", Tree: tree}, Request{}},
		{"enter activates focused branch", "enter", Context{Open: true, Focus: "about", Tree: tree}, Request{Op: OpEnter, Target: "about", PreventDefault: true}},
		{"enter without focus activates toggle", "enter", Context{Tree: tree}, Request{Op: OpToggle, PreventDefault: true}},
		{"unbound key", "x", Context{Open: true, Tree: tree}, Request{}},
	}
	for _, tc := range cases {
		got := r.Route(Key(tc.key), tc.ctx)
		if got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.name, tc.want, got)
		}
	}
}

func TestRouteKeysIgnoredWhileClosed(t *testing.T) {
	tree := sampleTree(t)
	r := New(DefaultKeyMap())
	closed := Context{Focus: "about", Tree: tree}
	for _, k := range []string{"esc", "up", "down", "left", "right"} {
		if got := r.Route(Key(k), closed); got.Op != OpNone {
			t.Fatalf("key %s: expected no-op while closed, got %s", k, got.Op)
		}
	}
}

func TestShortHelpListsBindings(t *testing.T) {
	keys := DefaultKeyMap()
	if len(keys.ShortHelp()) != 6 {
		t.Fatalf("expected 6 bindings, got %d", len(keys.ShortHelp()))
	}
	keys.Close.SetEnabled(false)
	r := New(keys)
	if got := r.Route(Key("esc"), Context{Open: true, Tree: sampleTree(t)}); got.Op != OpNone {
		t.Fatalf("disabled binding must not match, got %s", got.Op)
	}
}

func TestRouteIgnoresElementsOutsideVisibleLevel(t *testing.T) {
	tree := sampleTree(t)
	r := New(DefaultKeyMap())
	shoes := Context{Open: true, Level: "shoes", Tree: tree}
	cases := []struct {
		name   string
		target string
		want   Request
	}{
		{"own back leaf", "shoes:back", Request{Op: OpBack, Target: "shoes:back", PreventDefault: true}},
		{"own back region", "shoes:back-region", Request{Op: OpBack, Target: "shoes:back-region", PreventDefault: true}},
		{"own leaf", "running", Request{Op: OpFollow, Target: "running"}},
		{"ancestor back leaf", "products:back", Request{}},
		{"ancestor back region", "products:back-region", Request{}},
		{"leaf of hidden level", "team", Request{}},
		{"root leaf", "home", Request{}},
		{"branch of hidden level", "about", Request{}},
	}
	for _, tc := range cases {
		got := r.Route(Activate(tc.target), shoes)
		if got != tc.want {
			t.Fatalf("%s: expected %#v, got %#v", tc.name, tc.want, got)
		}
	}
}

func TestRouteAllowsSiblingBranch(t *testing.T) {
	tree := sampleTree(t)
	r := New(DefaultKeyMap())
	products := Context{Open: true, Level: "products", Tree: tree}
	want := Request{Op: OpEnter, Target: "about", PreventDefault: true}
	if got := r.Route(Activate("about"), products); got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
	if got := r.Route(Activate("contact"), products); got.Op != OpNone {
		t.Fatalf("leaf beside the active branch must be ignored, got %s", got.Op)
	}
}

func TestRouteFocusedBranchMustBeVisible(t *testing.T) {
	tree := sampleTree(t)
	r := New(DefaultKeyMap())
	stale := Context{Open: true, Focus: "shoes", Level: menu.RootLevel, Tree: tree}
	if got := r.Route(Key("right"), stale); got.Op != OpNone {
		t.Fatalf("expected no-op for a focused branch outside the level, got %s", got.Op)
	}
}
