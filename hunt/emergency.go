package hunt

import (
	"sort"
	"time"

	"huntserver/models"

	"go.uber.org/zap"
)

// TriggerEmergency はプレイヤーの緊急ボタン発報です。ゲームがrunningなら
// pausedに落とし、発報者の直近の対向機RSSIから近い順の応援候補リストを作ります。
// 既に発生中の再発報は理由を上書きするだけで積み重なりません。
func (c *Coordinator) TriggerEmergency(deviceID, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	c.triggerLocked(deviceID, reason, c.respondersLocked(p))
	return nil
}

// TriggerSystemEmergency は運営側からの発報です。特定の発報者を持ちません。
func (c *Coordinator) TriggerSystemEmergency(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.triggerLocked("system", reason, nil)
}

func (c *Coordinator) triggerLocked(by, reason string, responders []string) {
	e := &c.game.Emergency
	e.Active = true
	e.TriggeredBy = by
	e.Reason = reason
	e.TriggeredAt = c.now()
	e.Responders = responders
	if c.game.Phase == models.PhaseRunning {
		c.game.Remaining = c.game.Deadline.Sub(c.now())
		if c.game.Remaining < 0 {
			c.game.Remaining = 0
		}
		c.game.Phase = models.PhasePaused
		c.game.Deadline = time.Time{}
	}
	c.broadcastLocked("emergency", "EMERGENCY: "+reason, map[string]interface{}{
		"by":         by,
		"reason":     reason,
		"responders": responders,
	})
	if c.logger != nil {
		c.logger.Warn("emergency triggered", zap.String("by", by), zap.String("reason", reason))
	}
}

// respondersLocked は発報者から見て信号の強い順（＝近い順）のDeviceIDリストです。
func (c *Coordinator) respondersLocked(p *models.Player) []string {
	type reading struct {
		id   string
		rssi int
	}
	list := make([]reading, 0, len(p.LastPeerRSSI))
	for id, rssi := range p.LastPeerRSSI {
		if _, ok := c.players[id]; ok {
			list = append(list, reading{id, rssi})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].rssi != list[j].rssi {
			return list[i].rssi > list[j].rssi
		}
		return list[i].id < list[j].id
	})
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.id
	}
	return out
}

// ClearEmergency はフラグを下ろすだけで、フェーズは自動では再開しません。
// 再開はResumeの明示的な呼び出しで行います。
func (c *Coordinator) ClearEmergency() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.game.Emergency.Active {
		return invalidState("no emergency active")
	}
	c.game.Emergency = models.Emergency{}
	c.broadcastLocked("emergency_cleared", "emergency cleared", nil)
	if c.logger != nil {
		c.logger.Info("emergency cleared")
	}
	return nil
}

// EmergencyStatus は現在の緊急状態のコピーを返します。
func (c *Coordinator) EmergencyStatus() models.Emergency {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.game.Emergency
	e.Responders = append([]string(nil), c.game.Emergency.Responders...)
	return e
}
