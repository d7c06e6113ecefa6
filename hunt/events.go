package hunt

import (
	"huntserver/models"
)

// appendEventLocked はイベントログに1件追加し、上限を超えた古い分を破棄します。
// 併せてWebSocket全体配信と観測者チャネルへ流します。呼び出し側がロックを保持します。
func (c *Coordinator) appendEventLocked(eventType string, payload map[string]interface{}) models.Event {
	c.eventSeq++
	ev := models.Event{
		ID:        c.eventSeq,
		Type:      eventType,
		Payload:   payload,
		CreatedAt: c.now(),
	}
	c.events = append(c.events, ev)
	if over := len(c.events) - c.opts.EventCap; over > 0 {
		c.events = c.events[over:]
	}
	c.enqueuePush("", map[string]interface{}{
		"type":    "event",
		"event":   ev.Type,
		"payload": ev.Payload,
		"id":      ev.ID,
	})
	for _, obs := range c.observers {
		select {
		case obs <- ev:
		default:
		}
	}
	return ev
}

// notifyLocked はプレイヤー個人の通知キューに積み、ライブ接続にも流します。
// キュー上限を超えた分は古い順に破棄します（drop-oldest）。
func (c *Coordinator) notifyLocked(p *models.Player, notifType, message string) {
	n := models.Notification{Type: notifType, Message: message, CreatedAt: c.now()}
	p.Notifications = append(p.Notifications, n)
	if over := len(p.Notifications) - c.opts.NotificationCap; over > 0 {
		p.Notifications = p.Notifications[over:]
	}
	c.enqueuePush(p.DeviceID, map[string]interface{}{
		"type":    "notification",
		"kind":    notifType,
		"message": message,
	})
}

// broadcastLocked は全オンラインプレイヤーに同じ通知を積み、イベントも記録します。
func (c *Coordinator) broadcastLocked(eventType, message string, payload map[string]interface{}) {
	for _, p := range c.players {
		if p.Online {
			c.notifyLocked(p, eventType, message)
		}
	}
	c.appendEventLocked(eventType, payload)
}

// Events はイベントログの新しい方からlimit件を返します。limit<=0は全件。
func (c *Coordinator) Events(limit int) []models.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.events)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]models.Event, limit)
	copy(out, c.events[n-limit:])
	return out
}

// DrainNotifications はプレイヤーの未読通知を全件取り出してキューを空にします。
// Web側の通知取得用。トラッカーpingはReportTick内で直近数件だけ取り出します。
func (c *Coordinator) DrainNotifications(deviceID string) ([]models.Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return nil, notFound("unknown player")
	}
	out := p.Notifications
	p.Notifications = nil
	return out, nil
}

// PendingNotifications は通知キューを消費せずに複製を返します。
// WebSocket再接続時の未配送分リプレイに使います。
func (c *Coordinator) PendingNotifications(deviceID string) []models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.players[deviceID]
	if !ok {
		return nil
	}
	out := make([]models.Notification, len(p.Notifications))
	copy(out, p.Notifications)
	return out
}
