package hunt

import (
	"time"

	"huntserver/models"

	"go.uber.org/zap"
)

// Start はロビーからカウントダウンへ遷移します。開始条件:
// readyな捕食者1人以上、readyな獲物1人以上、オンライン2人以上。
// duration/countdownのゼロ値はモード既定値と設定値で補い、範囲内にクランプします。
func (c *Coordinator) Start(durationMin, countdownSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game.Phase != models.PhaseLobby {
		return invalidState("not in lobby")
	}
	if c.game.Emergency.Active {
		return emergencyBlocked("emergency active")
	}

	readyPred, readyPrey, online := 0, 0, 0
	for _, p := range c.players {
		if p.Online {
			online++
		}
		if p.Status != models.StatusReady {
			continue
		}
		switch p.Role {
		case models.RolePred:
			readyPred++
		case models.RolePrey:
			readyPrey++
		}
	}
	if readyPred < 1 || readyPrey < 1 {
		return preconditionFailed("need a ready pred and prey")
	}
	if online < 2 {
		return preconditionFailed("need 2 players online")
	}

	mode := c.modeLocked()
	if durationMin <= 0 {
		durationMin = mode.DurationMin
	}
	durationMin = clamp(durationMin, c.opts.MinDurationMin, c.opts.MaxDurationMin)
	if countdownSec <= 0 {
		countdownSec = c.game.Settings.CountdownSec
	}
	countdownSec = clamp(countdownSec, c.opts.MinCountdownSec, c.opts.MaxCountdownSec)

	c.game.Settings.DurationMin = durationMin
	c.game.Phase = models.PhaseCountdown
	c.game.Started = time.Time{}
	c.game.Ended = time.Time{}
	c.game.Deadline = c.now().Add(time.Duration(countdownSec) * c.opts.CountdownUnit)

	for _, p := range c.players {
		if p.Status == models.StatusReady && p.Role != models.RoleUnassigned {
			p.Status = models.StatusActive
		}
	}

	c.countdownSeq++
	seq := c.countdownSeq
	c.broadcastLocked("countdown", "game starting", map[string]interface{}{
		"countdown_sec": countdownSec,
		"duration_min":  durationMin,
	})
	if c.logger != nil {
		c.logger.Info("countdown started",
			zap.Int("durationMin", durationMin), zap.Int("countdownSec", countdownSec))
	}

	// カウントダウン満了で running へ。待機中にpause等でフェーズが変わった場合、
	// 世代番号の不一致で遷移は破棄されます。
	time.AfterFunc(time.Duration(countdownSec)*c.opts.CountdownUnit, func() {
		c.commitCountdown(seq)
	})
	return nil
}

// commitCountdown はカウントダウン満了時のrunning遷移です。
// 自分の世代のカウントダウンがまだ生きている場合だけ確定します。
func (c *Coordinator) commitCountdown(seq int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game.Phase != models.PhaseCountdown || c.countdownSeq != seq {
		return
	}
	c.game.Phase = models.PhaseRunning
	c.game.Started = c.now()
	c.game.Deadline = c.now().Add(time.Duration(c.game.Settings.DurationMin) * time.Minute)
	c.broadcastLocked("game_started", "hunt is on", map[string]interface{}{
		"duration_min": c.game.Settings.DurationMin,
	})
	if c.logger != nil {
		c.logger.Info("game running", zap.Time("deadline", c.game.Deadline))
	}
}

// Pause はrunning→paused（残り時間を退避）、countdown→lobby（キャンセル）です。
func (c *Coordinator) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.game.Phase {
	case models.PhaseRunning:
		c.game.Remaining = c.game.Deadline.Sub(c.now())
		if c.game.Remaining < 0 {
			c.game.Remaining = 0
		}
		c.game.Phase = models.PhasePaused
		c.game.Deadline = time.Time{}
		c.broadcastLocked("paused", "game paused", nil)
		return nil
	case models.PhaseCountdown:
		c.game.Phase = models.PhaseLobby
		c.game.Deadline = time.Time{}
		c.countdownSeq++ // 待機中のカウントダウンを無効化
		for _, p := range c.players {
			if p.Status == models.StatusActive {
				p.Status = models.StatusReady
			}
		}
		c.broadcastLocked("start_cancelled", "start cancelled", nil)
		return nil
	default:
		return invalidState("nothing to pause")
	}
}

// Resume は退避した残り時間から再開します。緊急停止中は再開できません。
func (c *Coordinator) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game.Phase != models.PhasePaused {
		return invalidState("not paused")
	}
	if c.game.Emergency.Active {
		return emergencyBlocked("emergency active")
	}
	c.game.Phase = models.PhaseRunning
	c.game.Deadline = c.now().Add(c.game.Remaining)
	c.game.Remaining = 0
	c.broadcastLocked("resumed", "game resumed", nil)
	return nil
}

// End はどのフェーズからでも強制終了できます。
func (c *Coordinator) End(reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game.Phase == models.PhaseEnded {
		return invalidState("already ended")
	}
	c.endLocked(reason)
	return nil
}

// endLocked はゲームを終了し最終結果を全体配信します。
// 感染モードの全滅終了と自動タイマー終了もここに合流します。
func (c *Coordinator) endLocked(reason string) {
	c.game.Phase = models.PhaseEnded
	c.game.Ended = c.now()
	c.game.Deadline = time.Time{}
	c.game.Remaining = 0
	c.countdownSeq++
	board := c.leaderboardLocked()
	c.broadcastLocked("game_ended", "game over", map[string]interface{}{
		"reason":      reason,
		"leaderboard": board,
		"team_scores": copyIntMap(c.game.TeamScores),
	})
	if c.logger != nil {
		c.logger.Info("game ended", zap.String("reason", reason))
	}
}

// Reset は全てをロビーに戻します。カウンター・ロール・チーム・捕獲状態・
// クールダウン・賞金・チームスコアを消し、名前や同意などのプロフィールは残します。
func (c *Coordinator) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.game.Phase = models.PhaseLobby
	c.game.Mode = DefaultMode
	c.game.Settings = defaultSettings()
	c.game.Started = time.Time{}
	c.game.Ended = time.Time{}
	c.game.Deadline = time.Time{}
	c.game.Remaining = 0
	c.game.TeamScores = make(map[string]int)
	c.countdownSeq++
	c.captureCooldown = make(map[string]time.Time)
	c.sightingCooldown = make(map[string]time.Time)
	c.bounties = make(map[string]*models.Bounty)
	for _, p := range c.players {
		p.Role = models.RoleUnassigned
		p.Team = ""
		p.CapturedBy = ""
		p.InSafeZone = false
		p.SafeZoneBeacon = ""
		p.Captures = 0
		p.Escapes = 0
		p.TimesCaptured = 0
		p.Sightings = 0
		p.Infections = 0
		p.BountyEarned = 0
		p.HasPhotoOf = make(map[string]bool)
		if p.Online {
			p.Status = models.StatusLobby
		} else {
			p.Status = models.StatusOffline
		}
	}
	c.broadcastLocked("reset", "back to lobby", nil)
	if c.logger != nil {
		c.logger.Info("game reset")
	}
	return nil
}

// SetMode はロビー中のみモードを変更できます。チーム戦はここでチームを割り直します。
func (c *Coordinator) SetMode(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game.Phase != models.PhaseLobby {
		return invalidState("mode locked outside lobby")
	}
	mode, ok := modeTable[key]
	if !ok {
		return notFound("unknown mode")
	}
	c.game.Mode = key
	c.game.Settings.DurationMin = mode.DurationMin
	if mode.TeamBased {
		c.assignTeamsLocked()
	} else {
		for _, p := range c.players {
			p.Team = ""
		}
		c.game.TeamScores = make(map[string]int)
	}
	c.broadcastLocked("mode_changed", "mode: "+mode.Name, map[string]interface{}{
		"mode": key,
	})
	return nil
}

// UpdateSettings は設定の部分更新です。nilのフィールドは変更しません。
func (c *Coordinator) UpdateSettings(req models.SettingsRequest) (models.Settings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &c.game.Settings
	if req.DurationMin != nil {
		s.DurationMin = clamp(*req.DurationMin, c.opts.MinDurationMin, c.opts.MaxDurationMin)
	}
	if req.CountdownSec != nil {
		s.CountdownSec = clamp(*req.CountdownSec, c.opts.MinCountdownSec, c.opts.MaxCountdownSec)
	}
	if req.CaptureRSSI != nil {
		if !validSignalThreshold(*req.CaptureRSSI) {
			return models.Settings{}, preconditionFailed("bad capture rssi")
		}
		s.CaptureRSSI = *req.CaptureRSSI
	}
	if req.SafeZoneRSSI != nil {
		if !validSignalThreshold(*req.SafeZoneRSSI) {
			return models.Settings{}, preconditionFailed("bad safezone rssi")
		}
		s.SafeZoneRSSI = *req.SafeZoneRSSI
	}
	if req.ProximityAlertRSSI != nil {
		if !validSignalThreshold(*req.ProximityAlertRSSI) {
			return models.Settings{}, preconditionFailed("bad proximity rssi")
		}
		s.ProximityAlertRSSI = *req.ProximityAlertRSSI
	}
	if req.HonorSystem != nil {
		s.HonorSystem = *req.HonorSystem
	}
	if req.AllowRoleChangeInField != nil {
		s.AllowRoleChangeInField = *req.AllowRoleChangeInField
	}
	c.appendEventLocked("settings_changed", nil)
	return *s, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
