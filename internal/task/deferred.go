package task

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FiredMsg is delivered when a scheduled deferred action elapses.
type FiredMsg struct {
	Owner string
	Token uint64
}

// Deferred is a cancelable one-shot action driven by the Bubble Tea loop.
// Scheduling again or canceling invalidates any tick still in flight, so a
// stale FiredMsg is simply not accepted.
type Deferred struct {
	owner   string
	token   uint64
	pending bool
}

// NewDeferred creates a deferred action whose messages carry owner.
func NewDeferred(owner string) *Deferred {
	return &Deferred{owner: owner}
}

// Schedule arms the action to fire after d.
func (d *Deferred) Schedule(delay time.Duration) tea.Cmd {
	d.token++
	d.pending = true
	msg := FiredMsg{Owner: d.owner, Token: d.token}
	if delay <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}

// Cancel disarms the action. It reports whether one was pending.
func (d *Deferred) Cancel() bool {
	if !d.pending {
		return false
	}
	d.token++
	d.pending = false
	return true
}

// Pending reports whether the action is armed.
func (d *Deferred) Pending() bool {
	return d.pending
}

// Accept consumes msg and reports whether it belongs to the armed action.
func (d *Deferred) Accept(msg FiredMsg) bool {
	if !d.pending || msg.Owner != d.owner || msg.Token != d.token {
		return false
	}
	d.pending = false
	return true
}
