package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleMenu = `menus:
  - id: main
    class: fws-menu
    items:
      - label: Home
`

const editedMenu = `menus:
  - id: main
    class: fws-menu
    items:
      - label: Home
      - label: About
`

func TestThrottleReservesSpacedSlots(t *testing.T) {
	base := time.Unix(1000, 0)
	th := newThrottle(100 * time.Millisecond)
	th.now = func() time.Time { return base }
	if d := th.delay(); d != 0 {
		t.Fatalf("first slot should be immediate, got %v", d)
	}
	if d := th.delay(); d != 100*time.Millisecond {
		t.Fatalf("second slot should wait one interval, got %v", d)
	}
	base = base.Add(time.Second)
	if d := th.delay(); d != 0 {
		t.Fatalf("slot after idle period should be immediate, got %v", d)
	}
}

func TestThrottleDisabled(t *testing.T) {
	var nilThrottle *throttle
	if d := nilThrottle.delay(); d != 0 {
		t.Fatalf("nil throttle must not delay")
	}
	if d := newThrottle(0).delay(); d != 0 {
		t.Fatalf("zero interval must not delay")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte(sampleMenu), 0o644); err != nil {
		t.Fatalf("write menu: %v", err)
	}
	w, err := NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(editedMenu), 0o644); err != nil {
		t.Fatalf("rewrite menu: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events closed before reload")
			}
			if evt.Err != nil || evt.Document == nil {
				continue
			}
			items := evt.Document.Menus[0].Items
			if len(items) == 2 {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for reload event")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte(sampleMenu), 0o644); err != nil {
		t.Fatalf("write menu: %v", err)
	}
	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	select {
	case evt := <-w.Events():
		t.Fatalf("unexpected event %+v", evt)
	case <-time.After(200 * time.Millisecond):
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed after stop")
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "menu.yaml"), 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
