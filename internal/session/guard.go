// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

// Package session implements the vault's authenticated/locked state machine.
//
// A Guard owns the derived encryption key for exactly as long as the session
// is unlocked. Locking, whether explicit or by idle timeout, zeroizes the key
// before anything else observes the transition, so a lock acts as a
// revocation signal: callers must treat any cached plaintext as stale.
package session

import (
	"sync"
	"time"

	"github.com/bigcommunity/ashypass/internal/crypto"
	"github.com/bigcommunity/ashypass/internal/logger"
)

// State is the session state: Locked or Unlocked.
type State int

const (
	// Locked means no derived key is held; every vault operation that
	// needs plaintext fails until the next login.
	Locked State = iota

	// Unlocked means the guard holds the derived key and the idle timer
	// is running.
	Unlocked
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Guard is the single session state machine of a running vault. It is safe
// for concurrent use: the idle timer fires on a background goroutine and is
// serialized with foreground calls through one mutex.
//
// Invariant: the guard holds a key if and only if the state is Unlocked.
type Guard struct {
	timeout time.Duration
	logger  *logger.Logger

	mu           sync.Mutex
	state        State
	key          *crypto.Key
	lastActivity time.Time
	timer        *time.Timer

	// lockCallback is invoked (outside the mutex, fire-and-forget) on
	// every transition to Locked. The presentation layer subscribes here
	// instead of the core assuming any particular event loop.
	lockCallback func()
}

// NewGuard constructs a locked Guard with the given idle timeout.
func NewGuard(timeout time.Duration, log *logger.Logger) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	return &Guard{
		timeout: timeout,
		logger:  log,
		state:   Locked,
	}
}

// SetLockCallback registers the single lock-notification callback. Passing
// nil removes it. The callback runs on the goroutine that triggered the
// lock and must not call back into the Guard synchronously holding locks of
// its own that a vault operation might also take.
func (g *Guard) SetLockCallback(cb func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lockCallback = cb
}

// Login transitions the guard to Unlocked, taking ownership of key and
// starting the idle timer. Logging in over an existing session discards
// (and zeroizes) the previously held key first.
func (g *Guard) Login(key *crypto.Key) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.key != nil {
		g.key.Zero()
	}

	g.state = Unlocked
	g.key = key
	g.lastActivity = time.Now()
	g.scheduleLocked(g.timeout)

	g.logger.Debug().Dur("idle_timeout", g.timeout).Msg("session unlocked")
}

// Logout transitions the guard to Locked: the derived key is zeroized and
// dropped, the idle timer is cancelled, and the lock callback (if any) is
// invoked. A no-op when already Locked.
func (g *Guard) Logout() {
	g.mu.Lock()
	cb := g.lockLocked()
	g.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// OnActivity refreshes the idle deadline. A no-op when Locked.
func (g *Guard) OnActivity() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unlocked {
		return
	}

	g.lastActivity = time.Now()
	g.scheduleLocked(g.timeout)
}

// State reports the current session state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Key returns the derived key held by the session, or nil when Locked.
// Callers must not retain the returned key across a lock transition.
func (g *Guard) Key() *crypto.Key {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unlocked {
		return nil
	}
	return g.key
}

// KeyBytes returns a private copy of the derived key material, or nil when
// Locked. The snapshot is taken under the mutex, so a lock transition that
// races the caller zeroizes only the guard's own copy; the returned slice
// stays intact for the duration of the operation using it.
func (g *Guard) KeyBytes() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unlocked || g.key == nil {
		return nil
	}

	material := g.key.Bytes()
	snapshot := make([]byte, len(material))
	copy(snapshot, material)
	return snapshot
}

// RemainingSeconds returns the whole seconds left before the idle timeout
// locks the session, or 0 when already Locked.
func (g *Guard) RemainingSeconds() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != Unlocked {
		return 0
	}

	remaining := g.timeout - time.Since(g.lastActivity)
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining / time.Second)
}

// scheduleLocked (re)arms the idle timer for d. Caller must hold g.mu.
func (g *Guard) scheduleLocked(d time.Duration) {
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(d, g.onIdleTimeout)
}

// onIdleTimeout runs on the timer goroutine. The timer is advisory: the
// elapsed time since the last activity is recomputed here, and the guard
// only locks when the full timeout has really passed; a timer that fired
// early (drift, coalescing, an OnActivity that raced the fire) reschedules
// itself for the remainder instead.
func (g *Guard) onIdleTimeout() {
	g.mu.Lock()

	if g.state != Unlocked {
		g.mu.Unlock()
		return
	}

	elapsed := time.Since(g.lastActivity)
	if elapsed < g.timeout {
		g.scheduleLocked(g.timeout - elapsed)
		g.mu.Unlock()
		return
	}

	g.logger.Debug().Dur("elapsed", elapsed).Msg("idle timeout reached, locking session")
	cb := g.lockLocked()
	g.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// lockLocked performs the transition to Locked and returns the callback to
// invoke after the mutex is released. Caller must hold g.mu.
func (g *Guard) lockLocked() func() {
	if g.state != Unlocked {
		return nil
	}

	g.state = Locked
	if g.key != nil {
		g.key.Zero()
		g.key = nil
	}
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}

	g.logger.Debug().Msg("session locked")
	return g.lockCallback
}
