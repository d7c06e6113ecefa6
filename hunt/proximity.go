package hunt

import (
	"sort"

	"huntserver/models"
)

// 位置共有を拒否しているプレイヤーのヒント表示に使う固定のプレースホルダ。
const hiddenHint = "hidden"

// ReportTick はトラッカーpingの本体です。プレイヤーの生存確認、対向機RSSIの記録、
// セーフゾーン判定、通知の払い出しまでを1回のロックで処理します。
// 同一内容のpingを繰り返し受けても状態は変化しません（フラッピング防止）。
func (c *Coordinator) ReportTick(req models.TrackerPingRequest) (models.PollResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.getOrCreateLocked(req.DeviceID)
	if err != nil {
		return models.PollResponse{}, err
	}
	wasOffline := !p.Online
	p.Online = true
	p.LastSeen = c.now()
	if p.Status == models.StatusOffline {
		p.Status = models.StatusLobby
	}
	if wasOffline {
		c.appendEventLocked("player_online", map[string]interface{}{
			"device_id": p.DeviceID,
		})
	}

	if req.PeerRSSI != nil {
		p.LastPeerRSSI = copyIntMap(req.PeerRSSI)
	}
	p.NearestHint = c.nearestHintLocked(p)

	// セーフゾーン判定。ビーコン情報の無いping（対向機専用パケット等）では
	// 判定自体を行わず、直前の状態を維持します。
	if c.game.Settings.HonorSystem {
		if req.InSafeZone != nil {
			c.applySafeZoneLocked(p, *req.InSafeZone, "")
		}
	} else if req.BeaconRSSI != nil {
		beaconID, ok := c.nearestQualifyingBeaconLocked(req.BeaconRSSI)
		c.applySafeZoneLocked(p, ok, beaconID)
	}

	return c.buildPollResponseLocked(p), nil
}

// nearestQualifyingBeaconLocked は報告されたビーコン読み取りのうち、
// 実在し、有効で、しきい値を満たすものから最も信号の強い1基を選びます。
func (c *Coordinator) nearestQualifyingBeaconLocked(readings map[string]int) (string, bool) {
	bestID := ""
	bestRSSI := 0
	found := false
	for id, rssi := range readings {
		b, ok := c.beacons[id]
		if !ok || !b.Active {
			continue
		}
		threshold := c.game.Settings.SafeZoneRSSI
		if b.RSSIThreshold != 0 {
			threshold = b.RSSIThreshold
		}
		if rssi < threshold {
			continue
		}
		if !found || rssi > bestRSSI {
			bestID, bestRSSI, found = id, rssi, true
		}
	}
	return bestID, found
}

// applySafeZoneLocked は在圏状態の遷移を適用します。在圏のままビーコンが
// 変わった場合は参照だけ差し替え、イベントは出しません。
func (c *Coordinator) applySafeZoneLocked(p *models.Player, safe bool, beaconID string) {
	switch {
	case safe && !p.InSafeZone:
		p.InSafeZone = true
		p.SafeZoneBeacon = beaconID
		c.notifyLocked(p, "safezone", "safe zone entered")
		c.appendEventLocked("safezone_entered", map[string]interface{}{
			"device_id": p.DeviceID,
			"beacon":    beaconID,
		})
		// 捕獲中のプレイヤーがセーフゾーンに到達した場合は自動で脱出成立
		if p.Status == models.StatusCaptured && !c.modeLocked().Infection {
			c.escapeLocked(p, beaconID)
		}
	case !safe && p.InSafeZone:
		p.InSafeZone = false
		p.SafeZoneBeacon = ""
		c.notifyLocked(p, "safezone", "no longer protected")
		c.appendEventLocked("safezone_left", map[string]interface{}{
			"device_id": p.DeviceID,
		})
	case safe:
		p.SafeZoneBeacon = beaconID
	}
}

// nearestHintLocked は最も強い対向機読み取りから表示用ヒントを作ります。
// 本人が位置共有を拒否している場合は固定のプレースホルダに置き換えます。
func (c *Coordinator) nearestHintLocked(p *models.Player) string {
	if !p.ConsentLocation {
		return hiddenHint
	}
	bestID := ""
	bestRSSI := 0
	for id, rssi := range p.LastPeerRSSI {
		if _, ok := c.players[id]; !ok {
			continue
		}
		if bestID == "" || rssi > bestRSSI {
			bestID, bestRSSI = id, rssi
		}
	}
	if bestID == "" {
		return ""
	}
	return c.players[bestID].Name
}

// proximityWarnLocked は獲物に対する捕食者接近の警告判定です。
func (c *Coordinator) proximityWarnLocked(p *models.Player) bool {
	if p.Role != models.RolePrey || c.game.Phase != models.PhaseRunning {
		return false
	}
	for id, rssi := range p.LastPeerRSSI {
		peer, ok := c.players[id]
		if ok && peer.Role == models.RolePred && rssi >= c.game.Settings.ProximityAlertRSSI {
			return true
		}
	}
	return false
}

// buildPollResponseLocked はファームウェア向け応答を組み立て、通知キューから
// 直近PollDrain件を払い出してキューを空にします。
func (c *Coordinator) buildPollResponseLocked(p *models.Player) models.PollResponse {
	mode := c.modeLocked()

	pending := p.Notifications
	if len(pending) > c.opts.PollDrain {
		pending = pending[len(pending)-c.opts.PollDrain:]
	}
	drained := make([]models.Notification, len(pending))
	copy(drained, pending)
	p.Notifications = nil

	activeBeacons := make([]string, 0, len(c.beacons))
	for id, b := range c.beacons {
		if b.Active {
			activeBeacons = append(activeBeacons, id)
		}
	}
	sort.Strings(activeBeacons)

	photoOf := make([]string, 0, len(p.HasPhotoOf))
	for id := range p.HasPhotoOf {
		photoOf = append(photoOf, id)
	}
	sort.Strings(photoOf)

	var team *string
	if p.Team != "" {
		t := p.Team
		team = &t
	}

	return models.PollResponse{
		Phase:         c.game.Phase,
		Status:        p.Status,
		Role:          p.Role,
		Name:          p.Name,
		InSafeZone:    p.InSafeZone,
		Team:          team,
		Notifications: drained,
		Settings:      c.game.Settings,
		ActiveBeacons: activeBeacons,
		GameMode:      mode.Key,
		GameModeName:  mode.Name,
		RemainingSec:  c.remainingSecLocked(),
		Emergency:     c.game.Emergency.Active,
		EmergencyBy:   c.game.Emergency.TriggeredBy,
		InfectionMode: mode.Infection,
		PhotoRequired: mode.PhotoRequired,
		HasPhotoOf:    photoOf,
		NearestHint:   p.NearestHint,
		ProximityWarn: c.proximityWarnLocked(p),
		ConsentPhys:   p.ConsentPhysical,
		ConsentPhoto:  p.ConsentPhoto,
		ConsentLoc:    p.ConsentLocation,
		ConsentBadge:  ConsentBadge(p),
		Ready:         p.Status == models.StatusReady,
	}
}

func (c *Coordinator) remainingSecLocked() int {
	switch c.game.Phase {
	case models.PhaseCountdown, models.PhaseRunning:
		rem := int(c.game.Deadline.Sub(c.now()).Seconds())
		if rem < 0 {
			rem = 0
		}
		return rem
	case models.PhasePaused:
		return int(c.game.Remaining.Seconds())
	default:
		return 0
	}
}
