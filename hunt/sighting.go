package hunt

import (
	"huntserver/models"
)

// RecordSighting は目撃報告を記録します。写真ファイル自体の保存はHTTP層の責務で、
// コアは目撃の事実・クールダウン・（写真必須モードでの）捕獲解禁だけを扱います。
// 戻り値は加点されたポイントです。
func (c *Coordinator) RecordSighting(spotterID, targetID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 緊急検査はフェーズ検査より先（緊急停止でpausedに落ちているため）
	if c.game.Emergency.Active {
		return 0, emergencyBlocked("emergency active")
	}
	if c.game.Phase != models.PhaseRunning {
		return 0, invalidState("game not running")
	}
	if spotterID == targetID {
		return 0, preconditionFailed("cannot sight yourself")
	}
	spotter, ok := c.players[spotterID]
	if !ok {
		return 0, notFound("unknown spotter")
	}
	target, ok := c.players[targetID]
	if !ok {
		return 0, notFound("unknown target")
	}
	if !target.ConsentPhoto {
		return 0, permissionDenied("target declined photos")
	}
	key := pairKey(spotterID, targetID)
	if last, ok := c.sightingCooldown[key]; ok && c.now().Sub(last) < c.opts.SightingCooldown {
		return 0, preconditionFailed("sighting cooldown")
	}

	c.sightingCooldown[key] = c.now()
	spotter.Sightings++
	spotter.HasPhotoOf[targetID] = true
	mode := c.modeLocked()
	c.notifyLocked(target, "sighted", "you were sighted")
	c.appendEventLocked("sighting", map[string]interface{}{
		"spotter": spotterID,
		"target":  targetID,
	})
	return mode.SightingPoints, nil
}
