package hunt

import (
	"testing"

	"huntserver/models"
)

func TestPlayerPointsTable(t *testing.T) {
	std, _ := ModeByKey("standard")
	cases := []struct {
		name      string
		player    models.Player
		gameEnded bool
		want      int
	}{
		{"zero", models.Player{Role: models.RolePred}, false, 0},
		{"single capture", models.Player{Role: models.RolePred, Captures: 1}, false, 100},
		{"hat trick bonus", models.Player{Role: models.RolePred, Captures: 3}, false, 350},
		{"five capture streak", models.Player{Role: models.RolePred, Captures: 5}, false, 650},
		{"escapes and sightings", models.Player{Role: models.RolePrey, Escapes: 2, Sightings: 3}, false, 225},
		{"bounty earnings stack", models.Player{Role: models.RolePred, Captures: 1, BountyEarned: 150}, false, 250},
		{"survivor before end", models.Player{Role: models.RolePrey}, false, 0},
		{"survivor after end", models.Player{Role: models.RolePrey}, true, 200},
		{"captured prey no survival bonus", models.Player{Role: models.RolePrey, TimesCaptured: 1}, true, 0},
		{"predator never gets survival bonus", models.Player{Role: models.RolePred}, true, 0},
	}
	for _, tc := range cases {
		p := tc.player
		if got := playerPoints(&p, std, tc.gameEnded); got != tc.want {
			t.Errorf("%s: points = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPlayerPointsModeWeights(t *testing.T) {
	photo, _ := ModeByKey("photo")
	p := models.Player{Role: models.RolePrey, Sightings: 2}
	if got := playerPoints(&p, photo, false); got != 100 {
		t.Fatalf("photo mode sighting points = %d, want 100", got)
	}

	infection, _ := ModeByKey("infection")
	p = models.Player{Role: models.RolePrey, Escapes: 4}
	if got := playerPoints(&p, infection, false); got != 0 {
		t.Fatalf("infection mode escape points = %d, want 0", got)
	}
}

func TestLeaderboardSplitsByRoleAndSorts(t *testing.T) {
	c, clk := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	addPlayer(t, c, "PREY02", models.RolePrey)
	startRunning(t, c)

	if err := c.AttemptCapture("PRED01", "PREY01", -50); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if err := c.ReleaseCaptured("PREY01"); err != nil {
		t.Fatalf("release: %v", err)
	}
	clk.Advance(c.opts.CaptureCooldown + 1)
	if err := c.AttemptCapture("PRED01", "PREY02", -50); err != nil {
		t.Fatalf("capture: %v", err)
	}

	board := c.Leaderboard()
	if len(board.Predators) != 1 || len(board.Prey) != 2 {
		t.Fatalf("board sizes = %d/%d", len(board.Predators), len(board.Prey))
	}
	if board.Predators[0].Points != 200 {
		t.Fatalf("predator points = %d, want 200", board.Predators[0].Points)
	}
	// 同点はDeviceID昇順で安定
	if board.Prey[0].DeviceID != "PREY01" || board.Prey[1].DeviceID != "PREY02" {
		t.Fatalf("prey order = %q, %q", board.Prey[0].DeviceID, board.Prey[1].DeviceID)
	}
}

func TestLeaderboardIncludesTeamScores(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	if err := c.SetMode("team"); err != nil {
		t.Fatalf("mode: %v", err)
	}
	startRunning(t, c)

	if err := c.AttemptCapture("PRED01", "PREY01", -50); err != nil {
		t.Fatalf("capture: %v", err)
	}
	board := c.Leaderboard()
	if board.TeamScores == nil {
		t.Fatal("team scores missing in team mode")
	}
	pred := mustGet(t, c, "PRED01")
	if board.TeamScores[pred.Team] != 100 {
		t.Fatalf("team %q score = %d, want 100", pred.Team, board.TeamScores[pred.Team])
	}
}

func TestPointsUnknownPlayer(t *testing.T) {
	c, _ := newTestCoordinator(t)
	if _, err := c.Points("NOBODY99"); RejectKind(err) != KindNotFound {
		t.Fatalf("unknown player: %v", err)
	}
}
