package markup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a selector does not match any container.
var ErrNotFound = errors.New("menu container not found")

// Document is the parsed menu source. A document may describe several menu
// containers; the menu instance picks one with a selector.
type Document struct {
	Menus []*Container `yaml:"menus"`
}

// Container is the outer menu element: it owns the toggle control label and
// the root level of entries.
type Container struct {
	ID     string   `yaml:"id"`
	Class  string   `yaml:"class"`
	Toggle string   `yaml:"toggle"`
	Items  []*Entry `yaml:"items"`
}

// Entry is one list item of the menu markup. Entries with items own a submenu.
type Entry struct {
	ID    string   `yaml:"id"`
	Label string   `yaml:"label"`
	Href  string   `yaml:"href"`
	Items []*Entry `yaml:"items"`
}

// Parse decodes a YAML menu document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse menu document: %w", err)
	}
	return &doc, nil
}

// Load reads and parses the menu document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu document: %w", err)
	}
	return Parse(data)
}

// Resolve finds a container by selector. ".name" matches a class token,
// "#name" and bare names match the container id.
func (d *Document) Resolve(selector string) (*Container, error) {
	if d == nil {
		return nil, ErrNotFound
	}
	sel := strings.TrimSpace(selector)
	if sel == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrNotFound)
	}
	for _, c := range d.Menus {
		if c == nil {
			continue
		}
		if c.Matches(sel) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, sel)
}

// Matches reports whether the container is selected by sel.
func (c *Container) Matches(sel string) bool {
	switch {
	case strings.HasPrefix(sel, "."):
		want := sel[1:]
		for _, class := range strings.Fields(c.Class) {
			if class == want {
				return true
			}
		}
		return false
	case strings.HasPrefix(sel, "#"):
		return c.ID != "" && c.ID == sel[1:]
	default:
		return c.ID != "" && c.ID == sel
	}
}
