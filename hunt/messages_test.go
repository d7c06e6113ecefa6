package hunt

import (
	"strings"
	"testing"

	"huntserver/models"
)

func TestSendMessageToAll(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)

	msg, err := c.SendMessage("PRED01", models.MessageToAll, "", "see you at the gate", false)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.FromName == "" || msg.Text != "see you at the gate" {
		t.Fatalf("msg = %+v", msg)
	}
	// 受信者には通知が積まれ、送信者には積まれない
	if n := c.PendingNotifications("PREY01"); len(n) != 1 {
		t.Fatalf("recipient notifications = %d, want 1", len(n))
	}
	if n := c.PendingNotifications("PRED01"); len(n) != 0 {
		t.Fatalf("sender notifications = %d, want 0", len(n))
	}
}

func TestSendMessageDeviceScope(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	addPlayer(t, c, "PREY02", models.RolePrey)

	if _, err := c.SendMessage("PRED01", models.MessageToDevice, "PREY01", "tag", false); err != nil {
		t.Fatalf("send: %v", err)
	}
	if n := c.PendingNotifications("PREY01"); len(n) != 1 {
		t.Fatalf("target notifications = %d, want 1", len(n))
	}
	if n := c.PendingNotifications("PREY02"); len(n) != 0 {
		t.Fatalf("bystander notifications = %d, want 0", len(n))
	}
	// 他人宛のDMは履歴にも見えない
	if msgs := c.Messages("PREY02", 0); len(msgs) != 0 {
		t.Fatalf("bystander sees %d messages", len(msgs))
	}
	if msgs := c.Messages("PREY01", 0); len(msgs) != 1 {
		t.Fatalf("target sees %d messages", len(msgs))
	}
}

func TestSendMessageTeamScope(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)
	addPlayer(t, c, "PREY01", models.RolePrey)
	addPlayer(t, c, "PREY02", models.RolePrey)
	addPlayer(t, c, "PREY03", models.RolePrey)
	if err := c.SetMode("team"); err != nil {
		t.Fatalf("mode: %v", err)
	}

	sender := mustGet(t, c, "PRED01")
	if sender.Team == "" {
		t.Fatal("team mode should assign teams")
	}
	// モード変更の全体通知を捨ててから数える
	for _, p := range c.Players() {
		if _, err := c.DrainNotifications(p.DeviceID); err != nil {
			t.Fatalf("drain: %v", err)
		}
	}
	if _, err := c.SendMessage("PRED01", models.MessageToTeam, "", "regroup", false); err != nil {
		t.Fatalf("send: %v", err)
	}
	for _, p := range c.Players() {
		if p.DeviceID == "PRED01" {
			continue
		}
		n := len(c.PendingNotifications(p.DeviceID))
		if p.Team == sender.Team && n != 1 {
			t.Errorf("teammate %s notifications = %d, want 1", p.DeviceID, n)
		}
		if p.Team != sender.Team && n != 0 {
			t.Errorf("opponent %s notifications = %d, want 0", p.DeviceID, n)
		}
	}
}

func TestSendMessageValidation(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)

	if _, err := c.SendMessage("PRED01", models.MessageToAll, "", "   ", false); RejectKind(err) != KindPreconditionFailed {
		t.Fatalf("empty text: %v", err)
	}
	if _, err := c.SendMessage("PRED01", "broadcast", "", "hi", false); RejectKind(err) != KindPreconditionFailed {
		t.Fatalf("bad scope: %v", err)
	}
	if _, err := c.SendMessage("NOBODY99", models.MessageToAll, "", "hi", false); RejectKind(err) != KindNotFound {
		t.Fatalf("unknown sender: %v", err)
	}
	if _, err := c.SendMessage("PRED01", models.MessageToDevice, "NOBODY99", "hi", false); RejectKind(err) != KindNotFound {
		t.Fatalf("unknown recipient: %v", err)
	}
	if _, err := c.SendMessage("PRED01", models.MessageToTeam, "", "hi", false); RejectKind(err) != KindPreconditionFailed {
		t.Fatalf("team message without team: %v", err)
	}
}

func TestSendMessageTruncatesLongText(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PRED01", models.RolePred)

	msg, err := c.SendMessage("PRED01", models.MessageToAll, "", strings.Repeat("あ", 250), false)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := len([]rune(msg.Text)); got != 200 {
		t.Fatalf("text runes = %d, want 200", got)
	}
}

func TestAdminMessageBypassesRegistry(t *testing.T) {
	c, _ := newTestCoordinator(t)
	addPlayer(t, c, "PREY01", models.RolePrey)

	msg, err := c.SendMessage("", models.MessageToAll, "", "game starts soon", true)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !msg.IsAdmin || msg.FromName != "admin" {
		t.Fatalf("msg = %+v", msg)
	}
	if n := c.PendingNotifications("PREY01"); len(n) != 1 {
		t.Fatalf("notifications = %d, want 1", len(n))
	}
}
