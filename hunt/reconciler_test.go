package hunt

import (
	"testing"
	"time"

	"huntserver/models"
)

func TestReconcileMarksSilentPlayersOffline(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)

	clk.Advance(c.opts.OfflineTimeout - time.Second)
	// PREY01だけ生存を報告
	if _, err := c.ReportTick(models.TrackerPingRequest{DeviceID: "PREY01"}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	clk.Advance(2 * time.Second)
	c.Reconcile()

	pred := mustGet(t, c, "PRED01")
	if pred.Online || pred.Status != models.StatusOffline {
		t.Fatalf("silent player: online=%v status=%q", pred.Online, pred.Status)
	}
	prey := mustGet(t, c, "PREY01")
	if !prey.Online {
		t.Fatal("reporting player went offline")
	}
	if countEvents(c, "player_offline") != 1 {
		t.Fatalf("player_offline events = %d, want 1", countEvents(c, "player_offline"))
	}
}

func TestReconcileEndsExpiredGame(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	clk.Advance(5*time.Minute + time.Second)
	c.Reconcile()

	g := c.Game()
	if g.Phase != models.PhaseEnded {
		t.Fatalf("phase = %q, want ended", g.Phase)
	}
}

func TestReconcileDoesNotEndBeforeDeadline(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	clk.Advance(4 * time.Minute)
	c.Reconcile()
	if g := c.Game(); g.Phase != models.PhaseRunning {
		t.Fatalf("phase = %q, want running", g.Phase)
	}
}

func TestReconcileSkipsAutoEndDuringEmergency(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	if err := c.TriggerEmergency("PREY01", "help"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	clk.Advance(10 * time.Minute)
	c.Reconcile()

	// 緊急停止でpausedに落ちているため、時間切れでも終了しない
	if g := c.Game(); g.Phase != models.PhasePaused {
		t.Fatalf("phase = %q, want paused", g.Phase)
	}
}

func TestReconcilePrunesExpiredCooldowns(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	if err := c.AttemptCapture("PRED01", "PREY01", -50); err != nil {
		t.Fatalf("capture: %v", err)
	}
	c.mu.Lock()
	n := len(c.captureCooldown)
	c.mu.Unlock()
	if n != 1 {
		t.Fatalf("cooldowns after capture = %d, want 1", n)
	}

	clk.Advance(c.opts.CaptureCooldown + time.Second)
	c.Reconcile()

	c.mu.Lock()
	n = len(c.captureCooldown)
	c.mu.Unlock()
	if n != 0 {
		t.Fatalf("cooldowns after prune = %d, want 0", n)
	}
}
