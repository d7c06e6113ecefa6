package hunt

import (
	"context"
	"time"

	"huntserver/models"

	"go.uber.org/zap"
)

// RunReconciler は定期バックグラウンド整合処理です。5秒間隔程度で、
// (1) 無応答端末のオフライン化 (2) 期限切れゲームの自動終了
// (3) 期限切れクールダウンの掃除 を行います。
func (c *Coordinator) RunReconciler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.Reconcile()
		case <-ctx.Done():
			return
		}
	}
}

// Reconcile は1回分の整合処理です。テストから直接呼べるよう公開しています。
func (c *Coordinator) Reconcile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()

	for _, p := range c.players {
		if p.Online && now.Sub(p.LastSeen) > c.opts.OfflineTimeout {
			p.Online = false
			p.Status = models.StatusOffline
			c.appendEventLocked("player_offline", map[string]interface{}{
				"device_id": p.DeviceID,
			})
			if c.logger != nil {
				c.logger.Info("player timed out", zap.String("deviceID", p.DeviceID))
			}
		}
	}

	// 緊急停止中はpausedに落ちているので、自動終了はrunningのまま期限を過ぎた場合だけ
	if c.game.Phase == models.PhaseRunning && !c.game.Emergency.Active &&
		!c.game.Deadline.IsZero() && now.After(c.game.Deadline) {
		c.endLocked("time up")
	}

	c.pruneCooldownsLocked()
}
