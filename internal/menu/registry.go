package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/drilldown-menu/internal/markup"
)

// RootLevel is the level key of the root list.
const RootLevel = ""

// Tree is the immutable menu structure built from a markup container.
type Tree struct {
	nodes  map[string]*Node
	levels map[string][]string
	order  []string
	toggle string
	// reserved holds the explicit ids of the document while it is built.
	reserved map[string]bool
}

// Build classifies the container's entries and injects the back affordances
// of every submenu.
func Build(container *markup.Container) (*Tree, error) {
	if container == nil {
		return nil, &ConfigurationError{Field: "menu", Reason: "container could not be resolved"}
	}
	if len(container.Items) == 0 {
		return nil, &ConfigurationError{Field: "menu", Value: containerName(container), Reason: "container has no entries"}
	}
	t := &Tree{
		nodes:  make(map[string]*Node),
		levels: make(map[string][]string),
		toggle: strings.TrimSpace(container.Toggle),
	}
	if t.toggle == "" {
		t.toggle = "Menu"
	}
	t.reserved = make(map[string]bool)
	reserveIDs(container.Items, t.reserved)
	ids, err := t.addLevel(container.Items, nil, 0, "")
	t.reserved = nil
	if err != nil {
		return nil, err
	}
	t.levels[RootLevel] = ids
	return t, nil
}

// reserveIDs collects every explicit id so derived ids never claim one.
func reserveIDs(entries []*markup.Entry, into map[string]bool) {
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if id := strings.TrimSpace(entry.ID); id != "" {
			into[id] = true
		}
		reserveIDs(entry.Items, into)
	}
}

func (t *Tree) addLevel(entries []*markup.Entry, parent *Node, depth int, prefix string) ([]string, error) {
	ids := make([]string, 0, len(entries)+2)
	parentID := ""
	if parent != nil {
		parentID = parent.ID
		back := &Node{ID: BackID(parentID), Label: "Back", Href: "#back", Kind: KindBack, Parent: parentID, Depth: depth}
		if err := t.insert(back); err != nil {
			return nil, err
		}
		ids = append(ids, back.ID)
	}
	for i, entry := range entries {
		if entry == nil {
			continue
		}
		id, err := t.entryID(entry, prefix, i)
		if err != nil {
			return nil, err
		}
		label := strings.TrimSpace(entry.Label)
		if label == "" {
			label = prettyLabel(id)
		}
		node := &Node{ID: id, Label: label, Href: entry.Href, Kind: KindLeaf, Parent: parentID, Depth: depth}
		if err := t.insert(node); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if len(entry.Items) > 0 {
			node.Kind = KindBranch
			children, err := t.addLevel(entry.Items, node, depth+1, id+pathSeparator)
			if err != nil {
				return nil, err
			}
			node.Children = children
			t.levels[id] = children
		}
	}
	if parent != nil {
		region := &Node{ID: BackRegionID(parentID), Label: parent.Label, Kind: KindBackRegion, Parent: parentID, Depth: depth}
		if err := t.insert(region); err != nil {
			return nil, err
		}
		ids = append(ids, region.ID)
	}
	return ids, nil
}

func (t *Tree) entryID(entry *markup.Entry, prefix string, index int) (string, error) {
	if id := strings.TrimSpace(entry.ID); id != "" {
		if _, exists := t.nodes[id]; exists {
			return "", &ConfigurationError{Field: "id", Value: id, Reason: "duplicate entry id"}
		}
		return id, nil
	}
	base := slug(entry.Label)
	if base == "" {
		base = "item-" + strconv.Itoa(index+1)
	}
	candidate := prefix + base
	for n := 2; ; n++ {
		if _, exists := t.nodes[candidate]; !exists && !t.reserved[candidate] {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%s-%d", prefix, base, n)
	}
}

func (t *Tree) insert(node *Node) error {
	if _, exists := t.nodes[node.ID]; exists {
		return &ConfigurationError{Field: "id", Value: node.ID, Reason: "duplicate entry id"}
	}
	t.nodes[node.ID] = node
	t.order = append(t.order, node.ID)
	return nil
}

// Root returns the identifiers of the root level in markup order.
func (t *Tree) Root() []string {
	return t.Level(RootLevel)
}

// Level returns the ordered identifiers of the submenu owned by branchID, or
// the root level for RootLevel. The synthetic back leaf comes first and the
// back region last. Unknown branches yield nil.
func (t *Tree) Level(branchID string) []string {
	if t == nil {
		return nil
	}
	ids, ok := t.levels[branchID]
	if !ok {
		return nil
	}
	dup := make([]string, len(ids))
	copy(dup, ids)
	return dup
}

// HasLevel reports whether branchID owns a non-empty submenu.
func (t *Tree) HasLevel(branchID string) bool {
	if t == nil {
		return false
	}
	return len(t.levels[branchID]) > 0
}

// Find locates a node by ID.
func (t *Tree) Find(id string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	node, ok := t.nodes[id]
	return node, ok
}

// Child resolves id within the level owned by parentID.
func (t *Tree) Child(parentID, id string) (*Node, bool) {
	node, ok := t.Find(id)
	if !ok || node.Parent != parentID {
		return nil, false
	}
	return node, true
}

// IsBranch reports whether id names a branch node.
func (t *Tree) IsBranch(id string) bool {
	node, ok := t.Find(id)
	return ok && node.IsBranch()
}

// Interactive returns every interactive element of the tree in markup order.
func (t *Tree) Interactive() []string {
	if t == nil {
		return nil
	}
	ids := make([]string, 0, len(t.order))
	for _, id := range t.order {
		if t.nodes[id].Interactive() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Walk visits every node in markup order until fn returns false.
func (t *Tree) Walk(fn func(*Node) bool) {
	if t == nil {
		return
	}
	for _, id := range t.order {
		if !fn(t.nodes[id]) {
			return
		}
	}
}

// Ancestors returns the branch chain from the root level down to the branch
// owning id's level, excluding id itself.
func (t *Tree) Ancestors(id string) []string {
	var chain []string
	node, ok := t.Find(id)
	for ok && node.Parent != "" {
		chain = append(chain, node.Parent)
		node, ok = t.Find(node.Parent)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Len returns the number of nodes, synthetic ones included.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// ToggleLabel is the caption of the control that opens the menu.
func (t *Tree) ToggleLabel() string {
	if t == nil {
		return ""
	}
	return t.toggle
}

func containerName(c *markup.Container) string {
	if c.ID != "" {
		return "#" + c.ID
	}
	if c.Class != "" {
		return "." + strings.Join(strings.Fields(c.Class), ".")
	}
	return ""
}
