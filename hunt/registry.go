package hunt

import (
	"regexp"
	"sort"
	"strings"

	"huntserver/models"

	"go.uber.org/zap"
)

// DeviceIDは外部で払い出される英大文字+数字、4〜10文字の固定形式です。
var deviceIDPattern = regexp.MustCompile(`^[A-Z0-9]{4,10}$`)

// 表示名に残す文字のallowlist。それ以外は除去されます。
var namePattern = regexp.MustCompile(`[^0-9A-Za-zぁ-んァ-ヶ一-龠ー _-]`)

const maxNameLen = 24

// ValidDeviceID はDeviceIDの形式チェックです。
func ValidDeviceID(id string) bool {
	return deviceIDPattern.MatchString(id)
}

// sanitizeName は表示名を整形します。空に潰れた場合はDeviceID末尾4文字から
// フォールバック名を決定的に生成します。
func sanitizeName(name, deviceID string) string {
	name = strings.TrimSpace(name)
	name = namePattern.ReplaceAllString(name, "")
	if runes := []rune(name); len(runes) > maxNameLen {
		name = string(runes[:maxNameLen])
	}
	if name == "" {
		suffix := deviceID
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
		name = "Player_" + suffix
	}
	return name
}

// getOrCreateLocked は初回アクセス時にプレイヤーを生成します。
// 上限超過時はCapacityExceededで拒否します。
func (c *Coordinator) getOrCreateLocked(deviceID string) (*models.Player, error) {
	if p, ok := c.players[deviceID]; ok {
		return p, nil
	}
	if !ValidDeviceID(deviceID) {
		return nil, notFound("bad device id")
	}
	if len(c.players) >= c.opts.MaxPlayers {
		return nil, capacityExceeded("player limit reached")
	}
	p := &models.Player{
		DeviceID:        deviceID,
		Name:            sanitizeName("", deviceID),
		Role:            models.RoleUnassigned,
		Status:          models.StatusLobby,
		Online:          true,
		ConsentPhoto:    true,
		ConsentLocation: true,
		HasPhotoOf:      make(map[string]bool),
		LastPeerRSSI:    make(map[string]int),
		LastSeen:        c.now(),
	}
	c.players[deviceID] = p
	if c.logger != nil {
		c.logger.Info("player created", zap.String("deviceID", deviceID))
	}
	c.appendEventLocked("player_joined", map[string]interface{}{
		"device_id": deviceID,
		"name":      p.Name,
	})
	return p, nil
}

// Login は端末の初回接続・再接続を処理します。未知の端末はここで生成されます。
func (c *Coordinator) Login(deviceID, name string) (models.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.getOrCreateLocked(deviceID)
	if err != nil {
		return models.Player{}, err
	}
	p.Online = true
	p.LastSeen = c.now()
	if p.Status == models.StatusOffline {
		p.Status = models.StatusLobby
	}
	if name != "" {
		clean := sanitizeName(name, deviceID)
		if clean != p.Name {
			p.Name = clean
			c.appendEventLocked("player_renamed", map[string]interface{}{
				"device_id": deviceID,
				"name":      clean,
			})
		}
	}
	return clonePlayer(p), nil
}

// Get はプレイヤーのコピーを返します。
func (c *Coordinator) Get(deviceID string) (models.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return models.Player{}, notFound("unknown player")
	}
	return clonePlayer(p), nil
}

// Players は全プレイヤーのコピーをDeviceID順で返します。
func (c *Coordinator) Players() []models.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Player, 0, len(c.players))
	for _, p := range c.players {
		out = append(out, clonePlayer(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out
}

// UpdateProfile は本人による名前・ロール・ステータスの変更です。
// ロール変更はロビー中は自由、ゲーム中は設定で許可され且つセーフゾーン内の場合のみです。
func (c *Coordinator) UpdateProfile(deviceID string, req models.PlayerUpdateRequest) (models.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return models.Player{}, notFound("unknown player")
	}
	if req.Name != nil {
		clean := sanitizeName(*req.Name, deviceID)
		if clean != p.Name {
			p.Name = clean
			c.appendEventLocked("player_renamed", map[string]interface{}{
				"device_id": deviceID,
				"name":      clean,
			})
		}
	}
	if req.Role != nil && *req.Role != p.Role {
		if err := c.roleChangeAllowedLocked(p); err != nil {
			return models.Player{}, err
		}
		if err := c.applyRoleLocked(p, *req.Role); err != nil {
			return models.Player{}, err
		}
	}
	if req.Status != nil && *req.Status != p.Status {
		if err := c.applyStatusLocked(p, *req.Status); err != nil {
			return models.Player{}, err
		}
	}
	return clonePlayer(p), nil
}

func (c *Coordinator) roleChangeAllowedLocked(p *models.Player) error {
	switch c.game.Phase {
	case models.PhaseLobby:
		return nil
	case models.PhaseRunning, models.PhasePaused:
		if !c.game.Settings.AllowRoleChangeInField {
			return invalidState("role locked during game")
		}
		if !p.InSafeZone {
			return preconditionFailed("enter a safe zone first")
		}
		return nil
	default:
		return invalidState("role locked during game")
	}
}

// applyRoleLocked はゲートを通過した後のロール適用です。捕獲状態は解除されます。
func (c *Coordinator) applyRoleLocked(p *models.Player, role string) error {
	switch role {
	case models.RolePred, models.RolePrey, models.RoleUnassigned:
	default:
		return preconditionFailed("bad role")
	}
	p.Role = role
	if p.Status == models.StatusCaptured {
		p.Status = models.StatusActive
		p.CapturedBy = ""
	}
	c.appendEventLocked("role_changed", map[string]interface{}{
		"device_id": p.DeviceID,
		"role":      role,
	})
	return nil
}

// applyStatusLocked は本人が選べるステータス遷移だけを許可します。
// captured/activeは状態機械側の専有で、直接の指定はできません。
func (c *Coordinator) applyStatusLocked(p *models.Player, status string) error {
	switch status {
	case models.StatusReady:
		if p.Status != models.StatusLobby {
			return invalidState("not in lobby")
		}
		if p.Role == models.RoleUnassigned {
			return preconditionFailed("pick a role first")
		}
	case models.StatusLobby:
		if p.Status != models.StatusReady && p.Status != models.StatusDND {
			return invalidState("cannot return to lobby now")
		}
	case models.StatusDND:
		if p.Status == models.StatusCaptured {
			return invalidState("captured players cannot pause")
		}
	default:
		return preconditionFailed("bad status")
	}
	p.Status = status
	c.appendEventLocked("status_changed", map[string]interface{}{
		"device_id": p.DeviceID,
		"status":    status,
	})
	return nil
}

// SetConsent は同意フラグを更新し、変更をイベントに残します。
func (c *Coordinator) SetConsent(deviceID string, req models.ConsentRequest) (models.Player, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return models.Player{}, notFound("unknown player")
	}
	if req.Physical != nil {
		p.ConsentPhysical = *req.Physical
	}
	if req.Photo != nil {
		p.ConsentPhoto = *req.Photo
	}
	if req.Location != nil {
		p.ConsentLocation = *req.Location
	}
	c.appendEventLocked("consent_changed", map[string]interface{}{
		"device_id": deviceID,
		"badge":     ConsentBadge(p),
	})
	return clonePlayer(p), nil
}

// SetProfilePhoto はアップロード済み写真の保存先をプレイヤーに紐付けます。
func (c *Coordinator) SetProfilePhoto(deviceID, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	p.PhotoPath = path
	return nil
}

// ForceRole はモデレーターによるロール強制変更です。フェーズを問わず適用されます。
func (c *Coordinator) ForceRole(deviceID, role string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	if err := c.applyRoleLocked(p, role); err != nil {
		return err
	}
	c.notifyLocked(p, "role_forced", "role set to "+role)
	return nil
}

// Kick はモデレーターによる強制退場です。プレイヤーと、そのプレイヤーに
// 紐付くクールダウン・賞金・モデレーター権限をまとめて削除します。
func (c *Coordinator) Kick(deviceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	delete(c.players, deviceID)
	delete(c.captureCooldown, deviceID)
	for key := range c.sightingCooldown {
		spotter, target, ok := splitPairKey(key)
		if ok && (spotter == deviceID || target == deviceID) {
			delete(c.sightingCooldown, key)
		}
	}
	for id, b := range c.bounties {
		if b.TargetID == deviceID {
			delete(c.bounties, id)
		}
	}
	delete(c.game.Moderators, deviceID)
	for _, other := range c.players {
		if other.CapturedBy == deviceID {
			other.CapturedBy = ""
		}
	}
	if c.logger != nil {
		c.logger.Info("player kicked", zap.String("deviceID", deviceID), zap.String("name", p.Name))
	}
	c.broadcastLocked("player_kicked", p.Name+" removed", map[string]interface{}{
		"device_id": deviceID,
	})
	return nil
}

// Logout はオフライン扱いにするだけで、プレイヤー自体は保持します。
func (c *Coordinator) Logout(deviceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	p.Online = false
	p.Status = models.StatusOffline
	return nil
}

// AddModerator / RemoveModerator は管理者によるモデレーター管理です。
func (c *Coordinator) AddModerator(deviceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return notFound("unknown player")
	}
	c.game.Moderators[deviceID] = true
	c.notifyLocked(p, "moderator", "you are now a moderator")
	return nil
}

func (c *Coordinator) RemoveModerator(deviceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.game.Moderators[deviceID] {
		return notFound("not a moderator")
	}
	delete(c.game.Moderators, deviceID)
	return nil
}

func clonePlayer(p *models.Player) models.Player {
	out := *p
	out.HasPhotoOf = copyBoolMap(p.HasPhotoOf)
	out.LastPeerRSSI = copyIntMap(p.LastPeerRSSI)
	out.Notifications = append([]models.Notification(nil), p.Notifications...)
	return out
}
