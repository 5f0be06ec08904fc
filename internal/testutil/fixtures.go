package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/drilldown-menu/internal/markup"
)

// FixturePath returns the absolute path of a file under the repository's
// testdata directory.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(repoRoot(t), "testdata", name)
}

// LoadDocument parses a menu document from testdata.
func LoadDocument(t *testing.T, name string) *markup.Document {
	t.Helper()
	doc, err := markup.Load(FixturePath(t, name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}
	return doc
}

// LoadContainer parses a menu document from testdata and resolves selector.
func LoadContainer(t *testing.T, name, selector string) *markup.Container {
	t.Helper()
	doc := LoadDocument(t, name)
	c, err := doc.Resolve(selector)
	if err != nil {
		t.Fatalf("failed to resolve %s in %s: %v", selector, name, err)
	}
	return c
}

// SampleContainer returns the main menu of testdata/menu.yaml:
//
//	home
//	products > shoes > running, trail
//	products > hats
//	about > team, history
//	contact
func SampleContainer(t *testing.T) *markup.Container {
	t.Helper()
	return LoadContainer(t, "menu.yaml", ".fws-menu")
}

func repoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
