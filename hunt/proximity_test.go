package hunt

import (
	"testing"

	"huntserver/models"
)

func countEvents(c *Coordinator, eventType string) int {
	n := 0
	for _, ev := range c.Events(0) {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

func TestSafeZoneEntryAndExit(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)
	if _, err := c.AddBeacon(models.BeaconRequest{ID: "B1"}); err != nil {
		t.Fatalf("add beacon: %v", err)
	}

	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -70},
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	p := mustGet(t, c, "PREY01")
	if !p.InSafeZone || p.SafeZoneBeacon != "B1" {
		t.Fatalf("in_safe_zone=%v beacon=%q, want true/B1", p.InSafeZone, p.SafeZoneBeacon)
	}

	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -90},
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	p = mustGet(t, c, "PREY01")
	if p.InSafeZone {
		t.Fatal("player should have left the safe zone")
	}
	if got := countEvents(c, "safezone_left"); got != 1 {
		t.Fatalf("safezone_left events = %d, want 1", got)
	}
}

func TestSafeZoneIdempotentReports(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)
	if _, err := c.AddBeacon(models.BeaconRequest{ID: "B1"}); err != nil {
		t.Fatalf("add beacon: %v", err)
	}

	req := models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -70},
	}
	for i := 0; i < 3; i++ {
		if _, err := c.ReportTick(req); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if got := countEvents(c, "safezone_entered"); got != 1 {
		t.Fatalf("safezone_entered events = %d, want 1 (no flapping)", got)
	}
}

func TestSafeZoneNearestBeaconWins(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)
	for _, id := range []string{"B1", "B2"} {
		if _, err := c.AddBeacon(models.BeaconRequest{ID: id}); err != nil {
			t.Fatalf("add beacon %q: %v", id, err)
		}
	}

	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -70, "B2": -55},
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got := mustGet(t, c, "PREY01").SafeZoneBeacon; got != "B2" {
		t.Fatalf("nearest beacon = %q, want B2 (strongest signal)", got)
	}
	// switching nearest while staying safe updates the reference silently
	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -50, "B2": -65},
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if got := mustGet(t, c, "PREY01").SafeZoneBeacon; got != "B1" {
		t.Fatalf("nearest beacon = %q, want B1", got)
	}
	if got := countEvents(c, "safezone_entered"); got != 1 {
		t.Fatalf("safezone_entered events = %d, want 1", got)
	}
}

func TestSafeZoneInactiveBeaconIgnored(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)
	inactive := false
	if _, err := c.AddBeacon(models.BeaconRequest{ID: "B1", Active: &inactive}); err != nil {
		t.Fatalf("add beacon: %v", err)
	}
	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -40},
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if mustGet(t, c, "PREY01").InSafeZone {
		t.Fatal("inactive beacon must not grant safety")
	}
}

func TestSafeZonePerBeaconThresholdOverride(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)
	strict := -50
	if _, err := c.AddBeacon(models.BeaconRequest{ID: "B1", RSSIThreshold: &strict}); err != nil {
		t.Fatalf("add beacon: %v", err)
	}
	// -60 satisfies the -75 global threshold but not the beacon's own -50
	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -60},
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if mustGet(t, c, "PREY01").InSafeZone {
		t.Fatal("beacon override threshold should apply")
	}
}

func TestNearestHintRespectsConsent(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)
	addPlayer(t, c, "PRED01", models.RolePred)

	resp, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID: "PREY01",
		PeerRSSI: map[string]int{"PRED01": -55},
	})
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if resp.NearestHint == hiddenHint || resp.NearestHint == "" {
		t.Fatalf("nearest hint = %q, want the peer name", resp.NearestHint)
	}

	off := false
	if _, err := c.SetConsent("PREY01", models.ConsentRequest{Location: &off}); err != nil {
		t.Fatalf("consent: %v", err)
	}
	resp, err = c.ReportTick(models.TrackerPingRequest{
		DeviceID: "PREY01",
		PeerRSSI: map[string]int{"PRED01": -55},
	})
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if resp.NearestHint != hiddenHint {
		t.Fatalf("nearest hint = %q, want %q", resp.NearestHint, hiddenHint)
	}
}

func TestHonorSystemSelfReport(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)
	on := true
	if _, err := c.UpdateSettings(models.SettingsRequest{HonorSystem: &on}); err != nil {
		t.Fatalf("settings: %v", err)
	}
	inZone := true
	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		InSafeZone: &inZone,
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !mustGet(t, c, "PREY01").InSafeZone {
		t.Fatal("honor system self-report should be honored")
	}
}

// ビーコン削除で在圏者が保護されたまま残らないこと。
func TestSafeZoneClearedWhenBeaconDeleted(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	if _, err := c.AddBeacon(models.BeaconRequest{ID: "B1"}); err != nil {
		t.Fatalf("add beacon: %v", err)
	}
	startRunning(t, c)

	if _, err := c.ReportTick(models.TrackerPingRequest{
		DeviceID:   "PREY01",
		BeaconRSSI: map[string]int{"B1": -70},
	}); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if p := mustGet(t, c, "PREY01"); !p.InSafeZone {
		t.Fatal("prey should be in the safe zone")
	}

	if err := c.DeleteBeacon("B1"); err != nil {
		t.Fatalf("delete beacon: %v", err)
	}
	p := mustGet(t, c, "PREY01")
	if p.InSafeZone || p.SafeZoneBeacon != "" {
		t.Fatalf("in_safe_zone=%v beacon=%q after delete, want false/empty", p.InSafeZone, p.SafeZoneBeacon)
	}
	if got := countEvents(c, "safezone_left"); got != 1 {
		t.Fatalf("safezone_left events = %d, want 1", got)
	}
	// 保護は消えているので捕獲が成立する
	if err := c.AttemptCapture("PRED01", "PREY01", -50); err != nil {
		t.Fatalf("capture after beacon delete: %v", err)
	}
}
