package session

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/bigcommunity/ashypass/internal/crypto"
	"github.com/bigcommunity/ashypass/internal/logger"
)

func testKey() *crypto.Key {
	return crypto.NewKey([]byte("0123456789abcdef0123456789abcdef"))
}

func TestGuard_StartsLocked(t *testing.T) {
	g := NewGuard(time.Second, logger.Nop())

	if g.State() != Locked {
		t.Fatalf("new guard state = %v, want Locked", g.State())
	}
	if g.Key() != nil {
		t.Fatalf("locked guard must hold no key")
	}
	if got := g.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds = %d, want 0", got)
	}
}

func TestGuard_LoginUnlocks(t *testing.T) {
	g := NewGuard(10*time.Second, logger.Nop())
	g.Login(testKey())
	defer g.Logout()

	if g.State() != Unlocked {
		t.Fatalf("state = %v, want Unlocked", g.State())
	}
	if g.Key() == nil || g.Key().Bytes() == nil {
		t.Fatalf("unlocked guard must expose the derived key")
	}
	if got := g.RemainingSeconds(); got < 9 || got > 10 {
		t.Fatalf("RemainingSeconds = %d, want ~10", got)
	}
}

func TestGuard_LogoutZeroizesKey(t *testing.T) {
	g := NewGuard(10*time.Second, logger.Nop())
	key := testKey()
	g.Login(key)

	g.Logout()

	if g.State() != Locked {
		t.Fatalf("state = %v, want Locked", g.State())
	}
	if g.Key() != nil {
		t.Fatalf("locked guard must hold no key")
	}
	if key.Bytes() != nil {
		t.Fatalf("derived key must be zeroized on logout, got %v", key.Bytes())
	}
}

func TestGuard_LogoutWhenLockedIsNoOp(t *testing.T) {
	g := NewGuard(time.Second, logger.Nop())

	fired := false
	g.SetLockCallback(func() { fired = true })

	g.Logout()

	if fired {
		t.Fatalf("lock callback must not fire for a logout on an already locked guard")
	}
}

func TestGuard_IdleTimeoutLocks(t *testing.T) {
	g := NewGuard(100*time.Millisecond, logger.Nop())
	g.Login(testKey())

	time.Sleep(150 * time.Millisecond)

	if g.State() != Locked {
		t.Fatalf("state = %v, want Locked after idle timeout", g.State())
	}
	if got := g.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds = %d, want 0 after lock", got)
	}
}

func TestGuard_ActivityResetsIdleTimer(t *testing.T) {
	// Two consecutive idle gaps of 0.8x the timeout: the cumulative idle
	// time exceeds the timeout but each gap does not, so the session must
	// stay unlocked.
	g := NewGuard(250*time.Millisecond, logger.Nop())
	g.Login(testKey())
	defer g.Logout()

	time.Sleep(200 * time.Millisecond)
	g.OnActivity()
	time.Sleep(200 * time.Millisecond)

	if g.State() != Unlocked {
		t.Fatalf("state = %v, want Unlocked after activity reset", g.State())
	}
}

func TestGuard_LockCallbackFiresOnIdleTimeout(t *testing.T) {
	g := NewGuard(100*time.Millisecond, logger.Nop())

	done := make(chan struct{})
	var once sync.Once
	g.SetLockCallback(func() { once.Do(func() { close(done) }) })

	key := testKey()
	g.Login(key)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("lock callback not invoked after idle timeout")
	}

	if key.Bytes() != nil {
		t.Fatalf("key must already be zeroized when the lock callback fires")
	}
}

func TestGuard_LockCallbackFiresOnLogout(t *testing.T) {
	g := NewGuard(10*time.Second, logger.Nop())

	calls := 0
	g.SetLockCallback(func() { calls++ })

	g.Login(testKey())
	g.Logout()

	if calls != 1 {
		t.Fatalf("lock callback calls = %d, want 1", calls)
	}
}

func TestGuard_ReloginReplacesKey(t *testing.T) {
	g := NewGuard(10*time.Second, logger.Nop())

	first := testKey()
	second := crypto.NewKey([]byte("fedcba9876543210fedcba9876543210"))

	g.Login(first)
	g.Login(second)
	defer g.Logout()

	if first.Bytes() != nil {
		t.Fatalf("previous key must be zeroized on re-login")
	}
	if g.Key() != second {
		t.Fatalf("guard must hold the most recent key")
	}
}

func TestGuard_KeyBytesSnapshotSurvivesLogout(t *testing.T) {
	g := NewGuard(10*time.Second, logger.Nop())
	g.Login(testKey())

	snapshot := g.KeyBytes()
	if snapshot == nil {
		t.Fatalf("unlocked guard must expose key bytes")
	}

	g.Logout()

	// An operation that took its snapshot before the lock must still see
	// the full key material, not a zeroized slice.
	if !bytes.Equal(snapshot, []byte("0123456789abcdef0123456789abcdef")) {
		t.Fatalf("snapshot corrupted by logout: %v", snapshot)
	}
	if g.KeyBytes() != nil {
		t.Fatalf("locked guard must expose no key bytes")
	}
}

func TestGuard_OnActivityWhenLockedIsNoOp(t *testing.T) {
	g := NewGuard(time.Second, logger.Nop())

	g.OnActivity()

	if g.State() != Locked {
		t.Fatalf("OnActivity on a locked guard must not unlock it")
	}
}

func TestGuard_ConcurrentActivityAndTimeout(t *testing.T) {
	// Hammer OnActivity from several goroutines while the short timer
	// fires repeatedly; the guard must stay internally consistent and end
	// up locked once activity stops.
	g := NewGuard(50*time.Millisecond, logger.Nop())
	g.Login(testKey())

	var wg sync.WaitGroup
	stop := time.Now().Add(200 * time.Millisecond)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(stop) {
				g.OnActivity()
				g.RemainingSeconds()
				time.Sleep(5 * time.Millisecond)
			}
		}()
	}
	wg.Wait()

	time.Sleep(100 * time.Millisecond)

	if g.State() != Locked {
		t.Fatalf("state = %v, want Locked after activity stops", g.State())
	}
}
