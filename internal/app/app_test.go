package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/drilldown-menu/internal/drilldown"
	"github.com/atomicstack/drilldown-menu/internal/menu"
	"github.com/atomicstack/drilldown-menu/internal/testutil"
)

func TestDumpListsTree(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{MenuFile: testutil.FixturePath(t, "menu.yaml")}
	if err := Dump(&buf, cfg); err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 17 {
		t.Fatalf("expected header plus 16 nodes, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "LABEL") {
		t.Fatalf("expected header row, got %q", lines[0])
	}
	var running string
	for _, line := range lines {
		if strings.Contains(line, "running") {
			running = line
		}
	}
	if !strings.HasPrefix(running, "    Running") || !strings.Contains(running, "/products/shoes/running") {
		t.Fatalf("unexpected row for running: %q", running)
	}
	if !strings.Contains(buf.String(), "back-region") {
		t.Fatalf("expected synthetic entries in dump")
	}
}

func TestDumpSelectsContainer(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{
		MenuFile: testutil.FixturePath(t, "menu.yaml"),
		Menu:     drilldown.Options{Menu: "#secondary"},
	}
	if err := Dump(&buf, cfg); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "settings/profile-2") {
		t.Fatalf("expected derived ids in dump:\n%s", buf.String())
	}
}

func TestDumpUnknownSelector(t *testing.T) {
	cfg := Config{
		MenuFile: testutil.FixturePath(t, "menu.yaml"),
		Menu:     drilldown.Options{Menu: ".missing"},
	}
	err := Dump(&bytes.Buffer{}, cfg)
	var cfgErr *menu.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunMissingFile(t *testing.T) {
	if _, err := Run(Config{MenuFile: "does-not-exist.yaml"}); err == nil {
		t.Fatalf("expected error for missing menu file")
	}
}
