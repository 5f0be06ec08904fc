package menu

import (
	"strings"
	"unicode"
)

// Kind classifies a node of the menu tree.
type Kind int

const (
	KindLeaf Kind = iota
	KindBranch
	// KindBack is the synthetic "back" link injected first in every submenu.
	KindBack
	// KindBackRegion covers the sliver of the parent level that stays visible
	// while a submenu is active. Pointer activation only.
	KindBackRegion
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	case KindBack:
		return "back"
	case KindBackRegion:
		return "back-region"
	default:
		return "unknown"
	}
}

// Node represents one menu entry. Parent and Children hold identifiers only;
// lookups always go through the owning Tree.
type Node struct {
	ID       string
	Label    string
	Href     string
	Kind     Kind
	Parent   string
	Depth    int
	Children []string
}

// IsBranch reports whether the node owns a submenu.
func (n *Node) IsBranch() bool {
	return n != nil && n.Kind == KindBranch
}

// IsBackAffordance reports whether activating the node triggers a back transition.
func (n *Node) IsBackAffordance() bool {
	return n != nil && (n.Kind == KindBack || n.Kind == KindBackRegion)
}

// Interactive reports whether the node takes part in the tab sequence when its
// level is active.
func (n *Node) Interactive() bool {
	return n != nil && n.Kind != KindBackRegion
}

const (
	backSuffix       = ":back"
	backRegionSuffix = ":back-region"
	pathSeparator    = "/"
)

// BackID returns the identifier of the back leaf injected into branchID's submenu.
func BackID(branchID string) string {
	return branchID + backSuffix
}

// BackRegionID returns the identifier of the back region of branchID's submenu.
func BackRegionID(branchID string) string {
	return branchID + backRegionSuffix
}

func slug(label string) string {
	fields := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, "-")
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	if idx := strings.LastIndex(id, pathSeparator); idx >= 0 {
		id = id[idx+1:]
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		runes := []rune(part)
		if len(runes) == 0 {
			continue
		}
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
