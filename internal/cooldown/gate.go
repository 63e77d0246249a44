// /internal/cooldown/gate.go

// Package cooldown enforces minimum spacing between a user's successive
// actions of one class. State is process-local on purpose: a restart resets
// all cooldowns, which is a benign degradation, not a correctness problem.
package cooldown

import (
	"sync"
	"time"
)

type entry struct {
	mu   sync.Mutex
	last time.Time
}

// Gate tracks one action class. Independent classes (giving smuckles,
// bonking) get independent Gate instances with their own durations and maps.
type Gate struct {
	d       time.Duration
	now     func() time.Time
	entries sync.Map // int64 -> *entry
}

func New(d time.Duration) *Gate {
	return NewWithClock(d, time.Now)
}

// NewWithClock exists for tests that need a deterministic clock.
func NewWithClock(d time.Duration, now func() time.Time) *Gate {
	return &Gate{d: d, now: now}
}

// Allow reports whether the user may act now and, if so, stamps the attempt
// in the same step. Check-and-stamp is atomic per user: of two concurrent
// calls for the same user at most one passes. A denied call does not re-arm
// the cooldown.
func (g *Gate) Allow(userID int64) bool {
	v, _ := g.entries.LoadOrStore(userID, &entry{})
	e := v.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	now := g.now()
	if !e.last.IsZero() && now.Sub(e.last) < g.d {
		return false
	}
	e.last = now
	return true
}

// Remaining returns how long the user still has to wait, zero if allowed.
// Read-only; never stamps.
func (g *Gate) Remaining(userID int64) time.Duration {
	v, ok := g.entries.Load(userID)
	if !ok {
		return 0
	}
	e := v.(*entry)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last.IsZero() {
		return 0
	}
	left := g.d - g.now().Sub(e.last)
	if left < 0 {
		return 0
	}
	return left
}
