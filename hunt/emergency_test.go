package hunt

import (
	"testing"
	"time"

	"huntserver/models"
)

func TestEmergencyPausesRunningGame(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	if err := c.TriggerEmergency("PRED01", "twisted ankle"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	g := c.Game()
	if g.Phase != models.PhasePaused {
		t.Fatalf("phase = %q, want paused", g.Phase)
	}
	if !g.Emergency.Active || g.Emergency.TriggeredBy != "PRED01" {
		t.Fatalf("emergency = %+v", g.Emergency)
	}
}

func TestEmergencyBlocksCapture(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	if err := c.TriggerEmergency("PREY01", "help"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	err := c.AttemptCapture("PRED01", "PREY01", -50)
	if RejectKind(err) != KindEmergencyBlocked {
		t.Fatalf("capture during emergency: %v", err)
	}
}

// 緊急停止はrunning→pausedに落とすため、フェーズ検査が先だと
// 「game not running」に化ける。必ず緊急の専用理由で拒否されること。
func TestEmergencyBlocksSighting(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	if err := c.TriggerEmergency("PREY01", "help"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	_, err := c.RecordSighting("PRED01", "PREY01")
	if RejectKind(err) != KindEmergencyBlocked {
		t.Fatalf("sighting during emergency: %v", err)
	}
}

func TestEmergencyClearThenResumeRestoresClock(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	clk.Advance(2 * time.Minute)
	if err := c.TriggerEmergency("PREY01", "lost"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if err := c.ClearEmergency(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	g := c.Game()
	if g.Phase != models.PhasePaused {
		t.Fatalf("phase after clear = %q, want paused", g.Phase)
	}
	if g.Emergency.Active {
		t.Fatal("emergency should be cleared")
	}

	// 再開は明示的なResumeで行う
	if err := c.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	g = c.Game()
	if g.Phase != models.PhaseRunning {
		t.Fatalf("phase after resume = %q", g.Phase)
	}
	if got := g.Deadline.Sub(clk.Now()); got != 3*time.Minute {
		t.Fatalf("remaining after resume = %v, want 3m", got)
	}
}

func TestResumeRejectedWhileEmergencyActive(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	if err := c.TriggerEmergency("PREY01", "help"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	err := c.Resume()
	if RejectKind(err) != KindEmergencyBlocked {
		t.Fatalf("resume during emergency: %v", err)
	}
}

func TestEmergencyRespondersOrderedByProximity(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	addPlayer(t, c, "PREY02", models.RolePrey)
	startRunning(t, c)

	// 発報者から見た近傍テーブル
	_, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID: "PREY01",
		PeerRSSI: map[string]int{"PRED01": -60, "PREY02": -85},
	})
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if err := c.TriggerEmergency("PREY01", "injured"); err != nil {
		t.Fatalf("trigger: %v", err)
	}
	st := c.EmergencyStatus()
	if len(st.Responders) != 2 {
		t.Fatalf("responders = %v", st.Responders)
	}
	if st.Responders[0] != "PRED01" || st.Responders[1] != "PREY02" {
		t.Fatalf("responders order = %v, want strongest signal first", st.Responders)
	}
}

func TestTriggerEmergencyUnknownPlayer(t *testing.T) {
	c, _ := newTestCoordinator(t)
	err := c.TriggerEmergency("NOBODY99", "oops")
	if RejectKind(err) != KindNotFound {
		t.Fatalf("unknown trigger: %v", err)
	}
}

func TestSystemEmergency(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	c.TriggerSystemEmergency("gateway battery low")
	g := c.Game()
	if !g.Emergency.Active || g.Emergency.TriggeredBy != "system" {
		t.Fatalf("emergency = %+v", g.Emergency)
	}
	if g.Phase != models.PhasePaused {
		t.Fatalf("phase = %q, want paused", g.Phase)
	}
}
