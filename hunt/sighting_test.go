package hunt

import (
	"testing"
	"time"

	"huntserver/models"
)

func TestSightingAwardsPointsAndPhotoCredit(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	startRunning(t, c)

	points, err := c.RecordSighting("PRED01", "PREY01")
	if err != nil {
		t.Fatalf("sighting: %v", err)
	}
	if points != 25 {
		t.Fatalf("points = %d, want 25", points)
	}
	spotter := mustGet(t, c, "PRED01")
	if spotter.Sightings != 1 {
		t.Fatalf("sightings = %d, want 1", spotter.Sightings)
	}
	if !spotter.HasPhotoOf["PREY01"] {
		t.Fatal("photo credit missing")
	}
}

func TestSightingRespectsPhotoConsent(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	no := false
	if _, err := c.SetConsent("PREY01", models.ConsentRequest{Photo: &no}); err != nil {
		t.Fatalf("consent: %v", err)
	}
	startRunning(t, c)

	_, err := c.RecordSighting("PRED01", "PREY01")
	if RejectKind(err) != KindPermissionDenied {
		t.Fatalf("sighting against declined consent: %v", err)
	}
}

func TestSightingPairCooldown(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	addPlayer(t, c, "PREY02", models.RolePrey)
	startRunning(t, c)

	if _, err := c.RecordSighting("PRED01", "PREY01"); err != nil {
		t.Fatalf("first sighting: %v", err)
	}
	_, err := c.RecordSighting("PRED01", "PREY01")
	if RejectKind(err) != KindPreconditionFailed {
		t.Fatalf("repeat sighting: %v", err)
	}
	// クールダウンは相手ごと
	if _, err := c.RecordSighting("PRED01", "PREY02"); err != nil {
		t.Fatalf("different target: %v", err)
	}
	clk.Advance(c.opts.SightingCooldown + time.Second)
	if _, err := c.RecordSighting("PRED01", "PREY01"); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}
}

func TestSightingOnlyWhileRunning(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)

	_, err := c.RecordSighting("PRED01", "PREY01")
	if RejectKind(err) != KindInvalidState {
		t.Fatalf("sighting in lobby: %v", err)
	}
}

func TestSightingUnlocksPhotoModeCapture(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	if err := c.SetMode("photo"); err != nil {
		t.Fatalf("mode: %v", err)
	}
	startRunning(t, c)

	err := c.AttemptCapture("PRED01", "PREY01", -50)
	if RejectKind(err) != KindPreconditionFailed {
		t.Fatalf("capture without photo: %v", err)
	}
	if _, err := c.RecordSighting("PRED01", "PREY01"); err != nil {
		t.Fatalf("sighting: %v", err)
	}
	if err := c.AttemptCapture("PRED01", "PREY01", -50); err != nil {
		t.Fatalf("capture after photo: %v", err)
	}
}
