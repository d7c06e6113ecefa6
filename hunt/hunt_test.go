package hunt

import (
	"sync"
	"testing"
	"time"

	"huntserver/models"

	"go.uber.org/zap"
)

// fakeClock lets tests control the coordinator's idea of time.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newTestCoordinator(t *testing.T) (*Coordinator, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)}
	opts := DefaultOptions()
	opts.Now = clk.Now
	opts.CountdownUnit = time.Millisecond
	c := New(opts, nil, zap.NewNop())
	t.Cleanup(c.Close)
	return c, clk
}

func addPlayer(t *testing.T, c *Coordinator, deviceID, role string) {
	t.Helper()
	if _, err := c.Login(deviceID, ""); err != nil {
		t.Fatalf("login %q: %v", deviceID, err)
	}
	if role != models.RoleUnassigned {
		if _, err := c.UpdateProfile(deviceID, models.PlayerUpdateRequest{Role: &role}); err != nil {
			t.Fatalf("set role %q for %q: %v", role, deviceID, err)
		}
		ready := models.StatusReady
		if _, err := c.UpdateProfile(deviceID, models.PlayerUpdateRequest{Status: &ready}); err != nil {
			t.Fatalf("set ready for %q: %v", deviceID, err)
		}
	}
}

// startRunning starts the game with a 1-unit countdown and waits for the
// delayed transition to commit.
func startRunning(t *testing.T, c *Coordinator) {
	t.Helper()
	if err := c.Start(5, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	waitForPhase(t, c, models.PhaseRunning)
}

func waitForPhase(t *testing.T, c *Coordinator, phase string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Game().Phase == phase {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("phase never became %q, still %q", phase, c.Game().Phase)
}

func mustGet(t *testing.T, c *Coordinator, deviceID string) models.Player {
	t.Helper()
	p, err := c.Get(deviceID)
	if err != nil {
		t.Fatalf("get %q: %v", deviceID, err)
	}
	return p
}
