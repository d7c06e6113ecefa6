package hunt

import (
	"strings"

	"huntserver/models"
)

const maxMessageLen = 200

// SendMessage はゲーム内チャットを記録し、宛先のプレイヤーに通知を積みます。
// scopeはall/team/device。adminからの送信はIsAdminフラグ付きで残ります。
func (c *Coordinator) SendMessage(fromID, scope, target, text string, isAdmin bool) (models.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, preconditionFailed("empty message")
	}
	if runes := []rune(text); len(runes) > maxMessageLen {
		text = string(runes[:maxMessageLen])
	}

	fromName := "admin"
	var from *models.Player
	if !isAdmin {
		p, ok := c.players[fromID]
		if !ok {
			return models.Message{}, notFound("unknown sender")
		}
		from = p
		fromName = p.Name
	}

	switch scope {
	case models.MessageToAll:
	case models.MessageToTeam:
		if target == "" && from != nil {
			target = from.Team
		}
		if target == "" {
			return models.Message{}, preconditionFailed("no team")
		}
	case models.MessageToDevice:
		if _, ok := c.players[target]; !ok {
			return models.Message{}, notFound("unknown recipient")
		}
	default:
		return models.Message{}, preconditionFailed("bad scope")
	}

	c.msgSeq++
	msg := models.Message{
		ID:       c.msgSeq,
		From:     fromID,
		FromName: fromName,
		Scope:    scope,
		Target:   target,
		Text:     text,
		IsAdmin:  isAdmin,
		SentAt:   c.now(),
	}
	c.messages = append(c.messages, msg)
	if over := len(c.messages) - c.opts.MessageCap; over > 0 {
		c.messages = c.messages[over:]
	}

	for id, p := range c.players {
		if id == fromID || !p.Online {
			continue
		}
		switch scope {
		case models.MessageToAll:
			c.notifyLocked(p, "message", fromName+": "+text)
		case models.MessageToTeam:
			if p.Team == target {
				c.notifyLocked(p, "message", fromName+": "+text)
			}
		case models.MessageToDevice:
			if id == target {
				c.notifyLocked(p, "message", fromName+": "+text)
			}
		}
	}
	return msg, nil
}

// Messages は本人が読める範囲のチャット履歴を新しい方からlimit件返します。
func (c *Coordinator) Messages(deviceID string, limit int) []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	var team string
	if p, ok := c.players[deviceID]; ok {
		team = p.Team
	}
	out := make([]models.Message, 0, len(c.messages))
	for _, m := range c.messages {
		visible := m.Scope == models.MessageToAll ||
			m.From == deviceID ||
			(m.Scope == models.MessageToTeam && team != "" && m.Target == team) ||
			(m.Scope == models.MessageToDevice && m.Target == deviceID)
		if visible {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Announce はモデレーターによる全体アナウンスです。
func (c *Coordinator) Announce(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	text = strings.TrimSpace(text)
	if text == "" {
		return preconditionFailed("empty announcement")
	}
	c.broadcastLocked("announcement", text, map[string]interface{}{
		"text": text,
	})
	return nil
}
