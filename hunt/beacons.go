package hunt

import (
	"regexp"
	"sort"

	"huntserver/models"
)

var beaconIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,16}$`)

// validSignalThreshold はRSSIしきい値の範囲チェックです（負のdBmのみ有効）。
func validSignalThreshold(rssi int) bool {
	return rssi >= -120 && rssi <= -1
}

// validBeaconThreshold はビーコン個別しきい値用で、0は「全体設定を使う」の意味。
func validBeaconThreshold(rssi int) bool {
	return rssi == 0 || validSignalThreshold(rssi)
}

// AddBeacon はビーコンを登録します。既定で有効状態です。
func (c *Coordinator) AddBeacon(req models.BeaconRequest) (models.Beacon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !beaconIDPattern.MatchString(req.ID) {
		return models.Beacon{}, preconditionFailed("bad beacon id")
	}
	if _, exists := c.beacons[req.ID]; exists {
		return models.Beacon{}, invalidState("beacon already exists")
	}
	b := &models.Beacon{ID: req.ID, Name: req.ID, Active: true}
	if req.Name != nil && *req.Name != "" {
		b.Name = *req.Name
	}
	if req.RSSIThreshold != nil {
		if !validBeaconThreshold(*req.RSSIThreshold) {
			return models.Beacon{}, preconditionFailed("bad rssi threshold")
		}
		b.RSSIThreshold = *req.RSSIThreshold
	}
	if req.Active != nil {
		b.Active = *req.Active
	}
	c.beacons[b.ID] = b
	c.appendEventLocked("beacon_added", map[string]interface{}{
		"beacon": b.ID,
		"name":   b.Name,
	})
	return *b, nil
}

// UpdateBeacon は部分更新です。nilのフィールドは変更しません。
func (c *Coordinator) UpdateBeacon(id string, req models.BeaconRequest) (models.Beacon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.beacons[id]
	if !ok {
		return models.Beacon{}, notFound("unknown beacon")
	}
	if req.Name != nil && *req.Name != "" {
		b.Name = *req.Name
	}
	if req.RSSIThreshold != nil {
		if !validBeaconThreshold(*req.RSSIThreshold) {
			return models.Beacon{}, preconditionFailed("bad rssi threshold")
		}
		b.RSSIThreshold = *req.RSSIThreshold
	}
	if req.Active != nil {
		b.Active = *req.Active
	}
	c.appendEventLocked("beacon_updated", map[string]interface{}{
		"beacon": b.ID,
		"active": b.Active,
	})
	return *b, nil
}

// DeleteBeacon はビーコンを削除し、そのビーコンに在圏中のプレイヤーの参照を外します。
func (c *Coordinator) DeleteBeacon(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.beacons[id]; !ok {
		return notFound("unknown beacon")
	}
	delete(c.beacons, id)
	// 消えたビーコンの在圏者をそのまま保護し続けない。次のpingを待たずに退圏させる
	for _, p := range c.players {
		if p.SafeZoneBeacon == id {
			c.applySafeZoneLocked(p, false, "")
		}
	}
	c.appendEventLocked("beacon_deleted", map[string]interface{}{
		"beacon": id,
	})
	return nil
}

// Beacons は全ビーコンのコピーをID順で返します。
func (c *Coordinator) Beacons() []models.Beacon {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Beacon, 0, len(c.beacons))
	for _, b := range c.beacons {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
