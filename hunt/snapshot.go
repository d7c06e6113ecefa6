package hunt

import (
	"huntserver/models"

	"go.uber.org/zap"
)

// Snapshot はロック下で状態のコピーを組み立てて返します。
// 呼び出し側（database.SnapshotWriter）がロック外でJSON化・書き込みを行います。
func (c *Coordinator) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := models.Snapshot{
		TakenAt:  c.now(),
		EventSeq: c.eventSeq,
		MsgSeq:   c.msgSeq,
	}
	snap.Game = *c.game
	snap.Game.TeamScores = copyIntMap(c.game.TeamScores)
	snap.Game.Moderators = copyBoolMap(c.game.Moderators)
	for _, p := range c.players {
		snap.Players = append(snap.Players, clonePlayer(p))
	}
	for _, b := range c.beacons {
		snap.Beacons = append(snap.Beacons, *b)
	}
	for _, b := range c.bounties {
		snap.Bounties = append(snap.Bounties, *b)
	}
	snap.Events = append(snap.Events, c.events...)
	snap.Messages = append(snap.Messages, c.messages...)
	return snap
}

// Restore はスナップショットから状態を復元します。起動直後専用で、
// 接続済みプレイヤーがいる状態での呼び出しは想定していません。
// 復元後は誰もオンライン扱いにしません（次のpingで復帰します）。
func (c *Coordinator) Restore(snap models.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	g := snap.Game
	if g.TeamScores == nil {
		g.TeamScores = make(map[string]int)
	}
	if g.Moderators == nil {
		g.Moderators = make(map[string]bool)
	}
	c.game = &g
	c.eventSeq = snap.EventSeq

	c.players = make(map[string]*models.Player, len(snap.Players))
	for i := range snap.Players {
		p := snap.Players[i]
		p.Online = false
		if p.Status != models.StatusCaptured {
			p.Status = models.StatusOffline
		}
		if p.HasPhotoOf == nil {
			p.HasPhotoOf = make(map[string]bool)
		}
		if p.LastPeerRSSI == nil {
			p.LastPeerRSSI = make(map[string]int)
		}
		c.players[p.DeviceID] = &p
	}
	c.beacons = make(map[string]*models.Beacon, len(snap.Beacons))
	for i := range snap.Beacons {
		b := snap.Beacons[i]
		c.beacons[b.ID] = &b
	}
	c.bounties = make(map[string]*models.Bounty, len(snap.Bounties))
	for i := range snap.Bounties {
		b := snap.Bounties[i]
		c.bounties[b.ID] = &b
	}
	c.events = append([]models.Event(nil), snap.Events...)
	c.messages = append([]models.Message(nil), snap.Messages...)
	// 旧形式のスナップショットにはmsg_seqが無いので、復元した履歴の最大IDから補う
	c.msgSeq = snap.MsgSeq
	for _, m := range c.messages {
		if m.ID > c.msgSeq {
			c.msgSeq = m.ID
		}
	}

	if c.logger != nil {
		c.logger.Info("state restored from snapshot",
			zap.Int("players", len(c.players)),
			zap.String("phase", c.game.Phase),
			zap.Time("takenAt", snap.TakenAt))
	}
}
