package hunt

import (
	"sort"

	"huntserver/models"

	"github.com/google/uuid"
)

// PlaceBounty は対象プレイヤーに賞金を懸けます。支払いは捕獲成立時
// （AttemptCapture内）で、支払いと同時に削除されます。
func (c *Coordinator) PlaceBounty(targetID string, points int, reason, placedBy string) (models.Bounty, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.players[targetID]; !ok {
		return models.Bounty{}, notFound("unknown target")
	}
	if points <= 0 {
		return models.Bounty{}, preconditionFailed("points must be positive")
	}
	if c.bountyOnLocked(targetID) != nil {
		return models.Bounty{}, invalidState("bounty already placed")
	}
	b := &models.Bounty{
		ID:       uuid.New().String(),
		TargetID: targetID,
		Points:   points,
		Reason:   reason,
		PlacedBy: placedBy,
		PlacedAt: c.now(),
	}
	c.bounties[b.ID] = b
	c.broadcastLocked("bounty_placed", "bounty on "+c.players[targetID].Name, map[string]interface{}{
		"target": targetID,
		"points": points,
	})
	return *b, nil
}

// RemoveBounty は未払いの賞金を取り下げます。
func (c *Coordinator) RemoveBounty(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.bounties[id]; !ok {
		return notFound("unknown bounty")
	}
	delete(c.bounties, id)
	c.appendEventLocked("bounty_removed", map[string]interface{}{
		"bounty": id,
	})
	return nil
}

// Bounties は未払いの賞金一覧を設定順で返します。
func (c *Coordinator) Bounties() []models.Bounty {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Bounty, 0, len(c.bounties))
	for _, b := range c.bounties {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlacedAt.Before(out[j].PlacedAt) })
	return out
}
