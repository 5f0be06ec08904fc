package backend

import (
	"sync"
	"time"
)

// throttle spaces successive reloads at least interval apart.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
	now  func() time.Time
}

func newThrottle(interval time.Duration) *throttle {
	t := &throttle{now: time.Now}
	if interval > 0 {
		t.interval = interval
	}
	return t
}

// delay reserves the next slot and returns how long the caller must wait
// before using it.
func (t *throttle) delay() time.Duration {
	if t == nil || t.interval <= 0 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	return slot.Sub(now)
}

func (t *throttle) wait() {
	if d := t.delay(); d > 0 {
		time.Sleep(d)
	}
}
