package hunt

import (
	"huntserver/models"

	"go.uber.org/zap"
)

// AttemptCapture は捕獲試行を検証して適用します。前提条件は順番に検査し、
// 最初に破れた条件の理由を返します。成立時のみクールダウンを記録します。
func (c *Coordinator) AttemptCapture(predID, preyID string, rssi int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 緊急停止はrunning→pausedに落とすため、フェーズより先に検査しないと
	// 緊急中の試行が「game not running」に化けてしまう
	if c.game.Emergency.Active {
		return emergencyBlocked("emergency active")
	}
	if c.game.Phase != models.PhaseRunning {
		return invalidState("game not running")
	}
	if predID == preyID {
		return preconditionFailed("cannot capture yourself")
	}
	pred, ok := c.players[predID]
	if !ok {
		return notFound("unknown predator")
	}
	if pred.Role != models.RolePred {
		return permissionDenied("not a predator")
	}
	if pred.Status == models.StatusCaptured {
		return invalidState("predator is captured")
	}
	// RSSIは負のdBm。しきい値以上（＝同じか強い信号）で成立
	if rssi < c.game.Settings.CaptureRSSI {
		return preconditionFailed("too far")
	}
	prey, ok := c.players[preyID]
	if !ok {
		return notFound("unknown target")
	}
	if prey.Role != models.RolePrey {
		return preconditionFailed("target is not prey")
	}
	mode := c.modeLocked()
	if !mode.Infection {
		if prey.Status == models.StatusCaptured {
			return preconditionFailed("already captured")
		}
		if prey.InSafeZone {
			return preconditionFailed("target in safe zone")
		}
	}
	if prey.Status != models.StatusActive && prey.Status != models.StatusCaptured {
		return preconditionFailed("target not in play")
	}
	if last, ok := c.captureCooldown[predID]; ok && c.now().Sub(last) < c.opts.CaptureCooldown {
		return preconditionFailed("capture cooldown")
	}
	if mode.PhotoRequired && !pred.HasPhotoOf[preyID] {
		return preconditionFailed("photo of target required")
	}

	c.captureCooldown[predID] = c.now()
	prey.TimesCaptured++
	pred.Captures++

	if mode.Infection {
		prey.Role = models.RolePred
		prey.Status = models.StatusActive
		prey.CapturedBy = ""
		pred.Infections++
		c.notifyLocked(prey, "infected", "infected by "+pred.Name)
		c.notifyLocked(pred, "infection", "you infected "+prey.Name)
		c.broadcastLocked("infection", prey.Name+" was infected", map[string]interface{}{
			"pred": predID,
			"prey": preyID,
		})
		if c.logger != nil {
			c.logger.Info("infection", zap.String("pred", predID), zap.String("prey", preyID))
		}
		// 獲物が尽きたらタイマーを待たずに即時終了
		if c.countActivePreyLocked() == 0 {
			c.endLocked("all prey infected")
		}
		return nil
	}

	prey.Status = models.StatusCaptured
	prey.CapturedBy = predID
	if mode.TeamBased && pred.Team != "" {
		c.game.TeamScores[pred.Team] += mode.CapturePoints
	}
	if b := c.bountyOnLocked(preyID); b != nil {
		pred.BountyEarned += b.Points
		delete(c.bounties, b.ID)
		c.notifyLocked(pred, "bounty", "bounty collected")
		c.appendEventLocked("bounty_paid", map[string]interface{}{
			"pred":   predID,
			"prey":   preyID,
			"points": b.Points,
		})
	}
	c.notifyLocked(prey, "captured", "captured by "+pred.Name)
	c.notifyLocked(pred, "capture", "you captured "+prey.Name)
	c.broadcastLocked("capture", prey.Name+" was captured", map[string]interface{}{
		"pred": predID,
		"prey": preyID,
	})
	if c.logger != nil {
		c.logger.Info("capture", zap.String("pred", predID), zap.String("prey", preyID))
	}
	return nil
}

// countActivePreyLocked はまだ狩られていない獲物の数です。
func (c *Coordinator) countActivePreyLocked() int {
	n := 0
	for _, p := range c.players {
		if p.Role == models.RolePrey && p.Status == models.StatusActive {
			n++
		}
	}
	return n
}

// bountyOnLocked は対象プレイヤーに懸けられた賞金を返します。無ければnil。
func (c *Coordinator) bountyOnLocked(targetID string) *models.Bounty {
	for _, b := range c.bounties {
		if b.TargetID == targetID {
			return b
		}
	}
	return nil
}

// Escape は獲物側からの明示的な脱出申告です。セーフゾーン到達時の自動脱出は
// 判定側（applySafeZoneLocked）から直接escapeLockedが呼ばれます。
func (c *Coordinator) Escape(deviceID, beaconID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	if c.modeLocked().Infection {
		return invalidState("no escape in infection mode")
	}
	if p.Status != models.StatusCaptured {
		return invalidState("not captured")
	}
	if !c.game.Settings.HonorSystem && !p.InSafeZone {
		return preconditionFailed("not in a safe zone")
	}
	c.escapeLocked(p, beaconID)
	return nil
}

// escapeLocked は脱出を成立させます。呼び出し側が前提（非感染モード・捕獲中）を保証します。
func (c *Coordinator) escapeLocked(p *models.Player, beaconID string) {
	hunter := p.CapturedBy
	p.Status = models.StatusActive
	p.CapturedBy = ""
	p.Escapes++
	c.notifyLocked(p, "escape", "you escaped")
	if h, ok := c.players[hunter]; ok {
		c.notifyLocked(h, "escape", p.Name+" escaped")
	}
	c.broadcastLocked("escape", p.Name+" escaped", map[string]interface{}{
		"prey":   p.DeviceID,
		"beacon": beaconID,
	})
	if c.logger != nil {
		c.logger.Info("escape", zap.String("prey", p.DeviceID), zap.String("beacon", beaconID))
	}
}

// ReleaseCaptured はモデレーターによる捕獲解除です。脱出にはカウントしません。
func (c *Coordinator) ReleaseCaptured(deviceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	if p.Status != models.StatusCaptured {
		return invalidState("not captured")
	}
	p.Status = models.StatusActive
	p.CapturedBy = ""
	c.notifyLocked(p, "released", "released by moderator")
	c.appendEventLocked("released", map[string]interface{}{
		"device_id": deviceID,
	})
	return nil
}
